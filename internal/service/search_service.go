// FILE: internal/service/search_service.go
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/repository/contract"
)

const highlightWindow = 60

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

type searchService struct {
	indexRepo contract.DocumentIndexRepository
}

func NewSearchService(indexRepo contract.DocumentIndexRepository) ISearchService {
	return &searchService{indexRepo: indexRepo}
}

func (c *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	pageable := entity.Pageable{Page: req.Page, Size: req.Size}

	var base entity.DocumentIndexPage
	var err error
	if strings.TrimSpace(req.Query) != "" {
		base, err = c.indexRepo.SearchByText(ctx, req.Query, pageable)
	} else {
		base, err = c.indexRepo.FindAll(ctx, pageable)
	}
	if err != nil {
		return nil, err
	}

	types := toSet(req.DocumentTypes)
	departments := toSet(req.Departments)

	filtered := make([]*entity.DocumentIndex, 0, len(base.Items))
	for _, d := range base.Items {
		if len(types) > 0 && (d.DocumentType == "" || !types[d.DocumentType]) {
			continue
		}
		if len(departments) > 0 && (d.Department == "" || !departments[d.Department]) {
			continue
		}
		if req.IsActive != nil && (d.IsActive == nil || *d.IsActive != *req.IsActive) {
			continue
		}
		if req.CreatedFrom != nil && (d.CreatedAt == nil || d.CreatedAt.Before(*req.CreatedFrom)) {
			continue
		}
		if req.CreatedTo != nil && (d.CreatedAt == nil || d.CreatedAt.After(*req.CreatedTo)) {
			continue
		}
		filtered = append(filtered, d)
	}

	items := make([]*dto.SearchResultItem, 0, len(filtered))
	for _, d := range filtered {
		items = append(items, indexToSearchResultItem(d))
	}

	return &dto.SearchResponse{
		Page:       req.Page,
		Size:       req.Size,
		Total:      base.Total,
		Items:      items,
		Highlights: buildHighlights(filtered, req.Query),
	}, nil
}

// Suggest gathers completions for a prefix in priority order: file name
// prefix matches first, then original-name prefix matches, then tags
// containing the prefix. Insertion order is kept and duplicates dropped.
func (c *searchService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}

	seen := map[string]bool{}
	suggestions := []string{}
	add := func(s string) {
		if len(suggestions) < limit && !seen[s] {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	byFileName, err := c.indexRepo.SuggestByFileNamePrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	for _, d := range byFileName {
		add(d.FileName)
	}

	if len(suggestions) < limit {
		byOriginalName, err := c.indexRepo.SuggestByOriginalNamePrefix(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, d := range byOriginalName {
			add(d.OriginalName)
		}
	}

	if len(suggestions) < limit {
		byTags, err := c.indexRepo.FindByTagsContaining(ctx, prefix)
		if err != nil {
			return nil, err
		}
		lowerPrefix := strings.ToLower(prefix)
		for _, d := range byTags {
			if d.Tags == "" {
				continue
			}
			for _, t := range strings.Split(d.Tags, ",") {
				tag := strings.TrimSpace(t)
				if strings.Contains(strings.ToLower(tag), lowerPrefix) {
					add(tag)
				}
			}
		}
	}

	return suggestions, nil
}

// buildHighlights returns one snippet per document whose extracted text
// contains the query: up to highlightWindow characters of context on
// each side of the first match, every in-window occurrence wrapped in
// <mark> tags, ellipses marking truncated edges. Documents without a
// match are simply absent from the map.
func buildHighlights(docs []*entity.DocumentIndex, query string) map[string]string {
	highlights := map[string]string{}
	needle := strings.TrimSpace(query)
	if needle == "" {
		return highlights
	}

	for _, d := range docs {
		text := d.ExtractedText
		if strings.TrimSpace(text) == "" {
			continue
		}
		pos := indexFold(text, needle)
		if pos < 0 {
			continue
		}

		start := pos - highlightWindow
		if start < 0 {
			start = 0
		}
		end := pos + len(needle) + highlightWindow
		if end > len(text) {
			end = len(text)
		}

		// The window is byte-based, snap it outward so it never cuts
		// a multi-byte rune in half.
		for start > 0 && !utf8.RuneStart(text[start]) {
			start--
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}

		snippet := markAllFold(text[start:end], needle)
		if start > 0 {
			snippet = "..." + snippet
		}
		if end < len(text) {
			snippet = snippet + "..."
		}
		highlights[d.DocumentId.String()] = snippet
	}
	return highlights
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// markAllFold wraps every case-insensitive occurrence of needle in
// <mark> tags, preserving the original casing of each occurrence.
func markAllFold(s, needle string) string {
	var b strings.Builder
	for {
		pos := indexFold(s, needle)
		if pos < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:pos])
		b.WriteString("<mark>")
		b.WriteString(s[pos : pos+len(needle)])
		b.WriteString("</mark>")
		s = s[pos+len(needle):]
	}
}

func toSet(values []string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}
