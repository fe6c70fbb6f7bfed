package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/contract"
	"dms-backend/pkg/boolquery"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DocumentIndexRepositoryImpl talks to the Elasticsearch REST API.
// Free-text queries go through the Boolean query compiler so operators
// and quoted phrases turn into structured bool/multi_match bodies.
type DocumentIndexRepositoryImpl struct {
	baseURL string
	index   string
	client  *http.Client
}

func NewDocumentIndexRepository(baseURL, index string) contract.DocumentIndexRepository {
	if baseURL == "" {
		baseURL = "http://localhost:9200"
	}
	if index == "" {
		index = "documents"
	}
	return &DocumentIndexRepositoryImpl{
		baseURL: baseURL,
		index:   index,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// esDocument is the wire form of an index entry.
type esDocument struct {
	DocumentId         string `json:"documentId"`
	FileName           string `json:"fileName"`
	OriginalName       string `json:"originalName"`
	ExtractedText      string `json:"extractedText"`
	Description        string `json:"description"`
	DocumentType       string `json:"documentType"`
	Tags               string `json:"tags"`
	Department         string `json:"department"`
	UploadedByUsername string `json:"uploadedByUsername"`
	CreatedAt          string `json:"createdAt,omitempty"`
	IsActive           *bool  `json:"isActive,omitempty"`
}

type esSearchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Id     string     `json:"_id"`
			Source esDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (r *DocumentIndexRepositoryImpl) SearchByText(ctx context.Context, query string, pageable entity.Pageable) (entity.DocumentIndexPage, error) {
	compiled := boolquery.Compile(boolquery.Parse(query), boolquery.DefaultSearchFields)
	return r.search(ctx, compiled, pageable)
}

func (r *DocumentIndexRepositoryImpl) FindAll(ctx context.Context, pageable entity.Pageable) (entity.DocumentIndexPage, error) {
	compiled := boolquery.Compile(boolquery.ParsedQuery{Kind: boolquery.KindSimple}, nil)
	return r.search(ctx, compiled, pageable)
}

func (r *DocumentIndexRepositoryImpl) SuggestByFileNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error) {
	body := fmt.Sprintf(`{"wildcard": {"fileName": "%s*"}}`, boolquery.Escape(prefix))
	return r.list(ctx, body)
}

func (r *DocumentIndexRepositoryImpl) SuggestByOriginalNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error) {
	body := fmt.Sprintf(`{"wildcard": {"originalName": "%s*"}}`, boolquery.Escape(prefix))
	return r.list(ctx, body)
}

func (r *DocumentIndexRepositoryImpl) FindByTagsContaining(ctx context.Context, substring string) ([]*entity.DocumentIndex, error) {
	body := fmt.Sprintf(`{"wildcard": {"tags": "*%s*"}}`, boolquery.Escape(substring))
	return r.list(ctx, body)
}

func (r *DocumentIndexRepositoryImpl) Save(ctx context.Context, doc *entity.DocumentIndex) error {
	wire := toWire(doc)
	payload, err := json.Marshal(wire)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/_doc/%s", r.baseURL, r.index, doc.DocumentId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("index save failed (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

func (r *DocumentIndexRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	url := fmt.Sprintf("%s/%s/_doc/%s", r.baseURL, r.index, documentId)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 404 means the document was never indexed; nothing to delete.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("index delete failed (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

// search runs a compiled query body with paging and returns one page.
func (r *DocumentIndexRepositoryImpl) search(ctx context.Context, compiledQuery string, pageable entity.Pageable) (entity.DocumentIndexPage, error) {
	body := fmt.Sprintf(`{"from": %d,"size": %d,"query": %s}`,
		pageable.Page*pageable.Size, pageable.Size, compiledQuery)

	esResp, err := r.execute(ctx, body)
	if err != nil {
		return entity.DocumentIndexPage{}, err
	}

	items := make([]*entity.DocumentIndex, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		items = append(items, toEntity(hit.Id, hit.Source))
	}

	return entity.DocumentIndexPage{
		Items: items,
		Page:  pageable.Page,
		Size:  pageable.Size,
		Total: esResp.Hits.Total.Value,
	}, nil
}

// list runs an unpaged query (bounded by the default suggestion window).
func (r *DocumentIndexRepositoryImpl) list(ctx context.Context, query string) ([]*entity.DocumentIndex, error) {
	body := fmt.Sprintf(`{"size": 50,"query": %s}`, query)

	esResp, err := r.execute(ctx, body)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.DocumentIndex, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		items = append(items, toEntity(hit.Id, hit.Source))
	}
	return items, nil
}

func (r *DocumentIndexRepositoryImpl) execute(ctx context.Context, body string) (*esSearchResponse, error) {
	url := fmt.Sprintf("%s/%s/_search", r.baseURL, r.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index search failed (%d): %s", resp.StatusCode, string(raw))
	}

	var esResp esSearchResponse
	if err := json.Unmarshal(raw, &esResp); err != nil {
		return nil, err
	}
	return &esResp, nil
}

func toWire(doc *entity.DocumentIndex) esDocument {
	wire := esDocument{
		DocumentId:         doc.DocumentId.String(),
		FileName:           doc.FileName,
		OriginalName:       doc.OriginalName,
		ExtractedText:      doc.ExtractedText,
		Description:        doc.Description,
		DocumentType:       doc.DocumentType,
		Tags:               doc.Tags,
		Department:         doc.Department,
		UploadedByUsername: doc.UploadedByUsername,
		IsActive:           doc.IsActive,
	}
	if doc.CreatedAt != nil {
		wire.CreatedAt = doc.CreatedAt.Format(dateLayout)
	}
	return wire
}

func toEntity(id string, wire esDocument) *entity.DocumentIndex {
	doc := &entity.DocumentIndex{
		Id:                 id,
		FileName:           wire.FileName,
		OriginalName:       wire.OriginalName,
		ExtractedText:      wire.ExtractedText,
		Description:        wire.Description,
		DocumentType:       wire.DocumentType,
		Tags:               wire.Tags,
		Department:         wire.Department,
		UploadedByUsername: wire.UploadedByUsername,
		IsActive:           wire.IsActive,
	}
	if parsed, err := uuid.Parse(wire.DocumentId); err == nil {
		doc.DocumentId = parsed
	}
	if wire.CreatedAt != "" {
		if t, err := time.Parse(dateLayout, wire.CreatedAt); err == nil {
			doc.CreatedAt = &t
		}
	}
	return doc
}
