// FILE: internal/service/search_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func textDoc(text string) *entity.DocumentIndex {
	id := uuid.New()
	return &entity.DocumentIndex{
		Id:            id.String(),
		DocumentId:    id,
		FileName:      "report.pdf",
		ExtractedText: text,
	}
}

func named(fileName, originalName, tags string) *entity.DocumentIndex {
	id := uuid.New()
	return &entity.DocumentIndex{
		Id:           id.String(),
		DocumentId:   id,
		FileName:     fileName,
		OriginalName: originalName,
		Tags:         tags,
	}
}

func TestSearchBlankQueryListsEverything(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{textDoc("hello")}, Total: 1},
	}
	svc := NewSearchService(indexRepo)

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "   ", Page: 0, Size: 20})

	assert.NoError(t, err)
	assert.Equal(t, 0, indexRepo.searchCalls)
	assert.Equal(t, 1, indexRepo.findAllCalls)
	assert.Len(t, res.Items, 1)
	assert.Empty(t, res.Highlights, "no query means nothing to highlight")
}

func TestSearchFiltersTypesDepartmentsAndDates(t *testing.T) {
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	active := true

	contract := named("contract.pdf", "", "")
	contract.DocumentType = "CONTRACT"
	contract.Department = "Finance"
	contract.CreatedAt = &march
	contract.IsActive = &active

	memo := named("memo.pdf", "", "")
	memo.DocumentType = "MEMO"
	memo.Department = "Finance"
	memo.CreatedAt = &march
	memo.IsActive = &active

	late := named("late.pdf", "", "")
	late.DocumentType = "CONTRACT"
	late.Department = "Finance"
	late.CreatedAt = &june
	late.IsActive = &active

	undated := named("undated.pdf", "", "")
	undated.DocumentType = "CONTRACT"
	undated.Department = "Finance"
	undated.IsActive = &active

	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{contract, memo, late, undated},
			Total: 4,
		},
	}
	svc := NewSearchService(indexRepo)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	res, err := svc.Search(context.Background(), &dto.SearchRequest{
		DocumentTypes: []string{"CONTRACT"},
		Departments:   []string{"Finance"},
		IsActive:      &active,
		CreatedFrom:   &from,
		CreatedTo:     &to,
		Page:          0,
		Size:          20,
	})

	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "contract.pdf", res.Items[0].FileName)
	assert.Equal(t, int64(4), res.Total, "total reports the index count before local filters")
}

func TestHighlightMarksEveryOccurrenceInWindow(t *testing.T) {
	doc := textDoc("The Tender was published. A tender notice follows the TENDER rules.")
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{doc}, Total: 1},
	}
	svc := NewSearchService(indexRepo)

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "tender", Page: 0, Size: 20})

	assert.NoError(t, err)
	snippet, ok := res.Highlights[doc.DocumentId.String()]
	assert.True(t, ok)
	assert.Equal(t, 3, strings.Count(snippet, "<mark>"))
	// Original casing survives inside the tags.
	assert.Contains(t, snippet, "<mark>Tender</mark>")
	assert.Contains(t, snippet, "<mark>tender</mark>")
	assert.Contains(t, snippet, "<mark>TENDER</mark>")
	// The whole text fits in the window: no ellipses.
	assert.False(t, strings.HasPrefix(snippet, "..."))
	assert.False(t, strings.HasSuffix(snippet, "..."))
}

func TestHighlightWindowAndEllipses(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	suffix := strings.Repeat("b", 100)
	doc := textDoc(prefix + "tender" + suffix)
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{doc}, Total: 1},
	}
	svc := NewSearchService(indexRepo)

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "tender", Page: 0, Size: 20})

	assert.NoError(t, err)
	snippet := res.Highlights[doc.DocumentId.String()]
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	// 60 chars each side plus the marked term plus two ellipses.
	core := strings.TrimSuffix(strings.TrimPrefix(snippet, "..."), "...")
	core = strings.ReplaceAll(core, "<mark>", "")
	core = strings.ReplaceAll(core, "</mark>", "")
	assert.Len(t, core, 60+len("tender")+60)
	assert.Equal(t, "...aaa", snippet[:6])
}

func TestHighlightAtTextStartSkipsLeadingEllipsis(t *testing.T) {
	doc := textDoc("tender " + strings.Repeat("x", 200))
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{doc}, Total: 1},
	}
	svc := NewSearchService(indexRepo)

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "tender", Page: 0, Size: 20})

	assert.NoError(t, err)
	snippet := res.Highlights[doc.DocumentId.String()]
	assert.True(t, strings.HasPrefix(snippet, "<mark>tender</mark>"))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestHighlightOmitsNonMatchingAndBlankText(t *testing.T) {
	noMatch := textDoc("nothing relevant here")
	blank := textDoc("   ")
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{noMatch, blank}, Total: 2},
	}
	svc := NewSearchService(indexRepo)

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "tender", Page: 0, Size: 20})

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2, "items are not dropped just because they have no snippet")
	assert.Empty(t, res.Highlights)
}

func TestSuggestPriorityDedupeAndLimit(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		fileNameHits: []*entity.DocumentIndex{
			named("invoice-2026.pdf", "", ""),
			named("invoice-2025.pdf", "", ""),
		},
		originalNameHits: []*entity.DocumentIndex{
			named("x", "invoice-2026.pdf", ""), // duplicate of a file name hit
			named("x", "Invoice Scan.pdf", ""),
		},
		tagHits: []*entity.DocumentIndex{
			named("x", "", "invoices, finance, paid-invoices"),
		},
	}
	svc := NewSearchService(indexRepo)

	got, err := svc.Suggest(context.Background(), "invoice", 10)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"invoice-2026.pdf",
		"invoice-2025.pdf",
		"Invoice Scan.pdf",
		"invoices",
		"paid-invoices",
	}, got)
}

func TestSuggestStopsAtLimit(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		fileNameHits: []*entity.DocumentIndex{
			named("invoice-a.pdf", "", ""),
			named("invoice-b.pdf", "", ""),
			named("invoice-c.pdf", "", ""),
		},
		originalNameHits: []*entity.DocumentIndex{named("x", "invoice-d.pdf", "")},
	}
	svc := NewSearchService(indexRepo)

	got, err := svc.Suggest(context.Background(), "invoice", 2)

	assert.NoError(t, err)
	assert.Equal(t, []string{"invoice-a.pdf", "invoice-b.pdf"}, got)
	assert.Equal(t, 1, indexRepo.suggestCalls, "later sources are skipped once the limit is reached")
}

func TestSuggestBlankPrefixReturnsNothing(t *testing.T) {
	indexRepo := &fakeIndexRepository{}
	svc := NewSearchService(indexRepo)

	got, err := svc.Suggest(context.Background(), "   ", 10)

	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, indexRepo.suggestCalls)
}

func TestHighlightKeepsMultiByteRunesIntact(t *testing.T) {
	texts := []string{
		// Window start lands inside a euro sign.
		strings.Repeat("€", 30) + " tender",
		// Window end lands inside a euro sign.
		"tender " + strings.Repeat("€", 30),
	}
	for _, text := range texts {
		doc := textDoc(text)
		indexRepo := &fakeIndexRepository{
			page: entity.DocumentIndexPage{Items: []*entity.DocumentIndex{doc}, Total: 1},
		}
		svc := NewSearchService(indexRepo)

		res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "tender", Page: 0, Size: 20})

		assert.NoError(t, err)
		snippet := res.Highlights[doc.DocumentId.String()]
		assert.True(t, utf8.ValidString(snippet), "snippet %q holds a torn rune", snippet)
		assert.Contains(t, snippet, "<mark>tender</mark>")
	}
}
