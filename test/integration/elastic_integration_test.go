package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/elastic"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestElasticIndexRoundTrip(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	baseURL := os.Getenv("ELASTICSEARCH_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: ELASTICSEARCH_URL not set")
	}
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "documents-test"
	}

	repo := elastic.NewDocumentIndexRepository(baseURL, index)
	ctx := context.Background()

	docId := uuid.New()
	createdAt := time.Now().UTC().Truncate(24 * time.Hour)
	active := true
	doc := &entity.DocumentIndex{
		Id:                 docId.String(),
		DocumentId:         docId,
		FileName:           "integration-tender-notice.pdf",
		OriginalName:       "Tender Notice 2026.pdf",
		ExtractedText:      "A public tender notice for integration coverage.",
		DocumentType:       "NOTICE",
		Tags:               "tender,integration",
		Department:         "IT",
		UploadedByUsername: "integration",
		CreatedAt:          &createdAt,
		IsActive:           &active,
	}

	err = repo.Save(ctx, doc)
	assert.NoError(t, err)

	// The index refreshes asynchronously.
	time.Sleep(1 * time.Second)

	t.Run("Boolean search finds the document", func(t *testing.T) {
		page, err := repo.SearchByText(ctx, `tender AND notice`, entity.Pageable{Page: 0, Size: 10})
		assert.NoError(t, err)
		found := false
		for _, hit := range page.Items {
			if hit.DocumentId == docId {
				found = true
			}
		}
		assert.True(t, found, "saved document should match its own terms")
	})

	t.Run("File name prefix suggestion", func(t *testing.T) {
		hits, err := repo.SuggestByFileNamePrefix(ctx, "integration-tender")
		assert.NoError(t, err)
		assert.NotEmpty(t, hits)
	})

	// Cleanup
	err = repo.DeleteByDocumentId(ctx, docId)
	assert.NoError(t, err)
}
