// FILE: internal/service/smart_folder_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeIndexRepository records calls and serves canned results.
type fakeIndexRepository struct {
	page             entity.DocumentIndexPage
	err              error
	searchCalls      int
	findAllCalls     int
	lastQuery        string
	fileNameHits     []*entity.DocumentIndex
	originalNameHits []*entity.DocumentIndex
	tagHits          []*entity.DocumentIndex
	suggestCalls     int
}

func (f *fakeIndexRepository) SearchByText(ctx context.Context, query string, pageable entity.Pageable) (entity.DocumentIndexPage, error) {
	f.searchCalls++
	f.lastQuery = query
	if f.err != nil {
		return entity.DocumentIndexPage{}, f.err
	}
	return f.page, nil
}

func (f *fakeIndexRepository) FindAll(ctx context.Context, pageable entity.Pageable) (entity.DocumentIndexPage, error) {
	f.findAllCalls++
	if f.err != nil {
		return entity.DocumentIndexPage{}, f.err
	}
	return f.page, nil
}

func (f *fakeIndexRepository) SuggestByFileNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error) {
	f.suggestCalls++
	return f.fileNameHits, nil
}

func (f *fakeIndexRepository) SuggestByOriginalNamePrefix(ctx context.Context, prefix string) ([]*entity.DocumentIndex, error) {
	f.suggestCalls++
	return f.originalNameHits, nil
}

func (f *fakeIndexRepository) FindByTagsContaining(ctx context.Context, substring string) ([]*entity.DocumentIndex, error) {
	f.suggestCalls++
	return f.tagHits, nil
}

func (f *fakeIndexRepository) Save(ctx context.Context, doc *entity.DocumentIndex) error { return nil }

func (f *fakeIndexRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func indexDoc(dept string, active bool) *entity.DocumentIndex {
	id := uuid.New()
	createdAt := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &entity.DocumentIndex{
		Id:         id.String(),
		DocumentId: id,
		FileName:   "doc.pdf",
		Department: dept,
		CreatedAt:  &createdAt,
		IsActive:   &active,
	}
}

func newEvaluator(indexRepo *fakeIndexRepository) ISmartFolderService {
	evalCache := memory.NewEvalCacheRepository(time.Minute, time.Minute)
	return NewSmartFolderService(nil, indexRepo, evalCache, nil, noopLogger{})
}

func activeFolder(owner uuid.UUID, scope entity.SmartFolderScope, definition string) *entity.SmartFolder {
	return &entity.SmartFolder{
		Id:         uuid.New(),
		Name:       "folder",
		Definition: definition,
		Scope:      scope,
		OwnerId:    owner,
		IsActive:   true,
		UpdatedAt:  time.Now(),
	}
}

func TestEvaluateInactiveFolderReturnsEmptyPage(t *testing.T) {
	indexRepo := &fakeIndexRepository{}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	folder.IsActive = false

	page := svc.Evaluate(context.Background(), folder, &entity.User{Id: owner}, entity.Pageable{Page: 0, Size: 20})

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
	assert.Zero(t, indexRepo.searchCalls+indexRepo.findAllCalls, "inactive folder must not hit the index")
}

func TestEvaluatePrivateFolderHiddenFromNonOwner(t *testing.T) {
	indexRepo := &fakeIndexRepository{}
	svc := newEvaluator(indexRepo)

	folder := activeFolder(uuid.New(), entity.SmartFolderScopePrivate, "{}")
	stranger := &entity.User{Id: uuid.New(), Role: entity.UserRoleUser}

	page := svc.Evaluate(context.Background(), folder, stranger, entity.Pageable{Page: 0, Size: 20})

	assert.Empty(t, page.Items)
	assert.Zero(t, indexRepo.searchCalls+indexRepo.findAllCalls)
}

func TestEvaluateNonAdminIsDepartmentScoped(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{
				indexDoc("Finance", true),
				indexDoc("HR", true),
				indexDoc("", true), // no department passes through
			},
			Total: 3,
		},
	}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	viewer := &entity.User{Id: owner, Role: entity.UserRoleUser, Department: "Finance"}

	page := svc.Evaluate(context.Background(), folder, viewer, entity.Pageable{Page: 0, Size: 20})

	assert.Len(t, page.Items, 2)
	for _, doc := range page.Items {
		assert.NotEqual(t, "HR", doc.Department)
	}
}

func TestEvaluateAdminSeesAllDepartments(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{indexDoc("Finance", true), indexDoc("HR", true)},
			Total: 2,
		},
	}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	admin := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin, Department: "IT"}

	page := svc.Evaluate(context.Background(), folder, admin, entity.Pageable{Page: 0, Size: 20})

	assert.Len(t, page.Items, 2)
}

func TestEvaluateQueryRoutesToTextSearch(t *testing.T) {
	indexRepo := &fakeIndexRepository{page: entity.DocumentIndexPage{Total: 0}}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	viewer := &entity.User{Id: owner, Role: entity.UserRoleAdmin}

	folder := activeFolder(owner, entity.SmartFolderScopeShared, `{"query": "tender AND contract"}`)
	svc.Evaluate(context.Background(), folder, viewer, entity.Pageable{Page: 0, Size: 20})

	assert.Equal(t, 1, indexRepo.searchCalls)
	assert.Equal(t, 0, indexRepo.findAllCalls)
	assert.Equal(t, "tender AND contract", indexRepo.lastQuery)

	blank := activeFolder(owner, entity.SmartFolderScopeShared, `{"query": "   "}`)
	svc.Evaluate(context.Background(), blank, viewer, entity.Pageable{Page: 0, Size: 20})

	assert.Equal(t, 1, indexRepo.searchCalls)
	assert.Equal(t, 1, indexRepo.findAllCalls, "blank query must request the unfiltered page")
}

func TestEvaluateTotalStaysPreFilter(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{indexDoc("Finance", true), indexDoc("HR", true)},
			Total: 57,
		},
	}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	viewer := &entity.User{Id: owner, Role: entity.UserRoleUser, Department: "Finance"}

	page := svc.Evaluate(context.Background(), folder, viewer, entity.Pageable{Page: 0, Size: 20})

	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(57), page.Total, "total reports the index count, not the filtered count")
}

func TestEvaluateRulePredicatesFilterHits(t *testing.T) {
	finance := indexDoc("Finance", true)
	finance.DocumentType = "CONTRACT"
	hr := indexDoc("HR", true)
	hr.DocumentType = "CONTRACT"
	memo := indexDoc("Finance", true)
	memo.DocumentType = "MEMO"

	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{finance, hr, memo},
			Total: 3,
		},
	}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared,
		`{"documentTypes": ["CONTRACT"], "departments": ["Finance"]}`)
	admin := &entity.User{Id: owner, Role: entity.UserRoleAdmin}

	page := svc.Evaluate(context.Background(), folder, admin, entity.Pageable{Page: 0, Size: 20})

	assert.Len(t, page.Items, 1)
	assert.Equal(t, finance.Id, page.Items[0].Id)
}

func TestEvaluateIndexErrorFailsToEmptyPage(t *testing.T) {
	indexRepo := &fakeIndexRepository{err: errors.New("index unreachable")}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	viewer := &entity.User{Id: owner, Role: entity.UserRoleAdmin}

	page := svc.Evaluate(context.Background(), folder, viewer, entity.Pageable{Page: 2, Size: 10})

	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Size)
}

func TestEvaluateCachesByFolderVersionAndViewer(t *testing.T) {
	indexRepo := &fakeIndexRepository{
		page: entity.DocumentIndexPage{
			Items: []*entity.DocumentIndex{indexDoc("Finance", true)},
			Total: 1,
		},
	}
	svc := newEvaluator(indexRepo)

	owner := uuid.New()
	folder := activeFolder(owner, entity.SmartFolderScopeShared, "{}")
	viewer := &entity.User{Id: owner, Role: entity.UserRoleAdmin}
	pageable := entity.Pageable{Page: 0, Size: 20}

	first := svc.Evaluate(context.Background(), folder, viewer, pageable)
	second := svc.Evaluate(context.Background(), folder, viewer, pageable)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, indexRepo.findAllCalls, "second evaluation must be served from cache")

	// Editing the folder bumps updatedAt, which changes the key.
	folder.UpdatedAt = folder.UpdatedAt.Add(time.Second)
	svc.Evaluate(context.Background(), folder, viewer, pageable)
	assert.Equal(t, 2, indexRepo.findAllCalls)

	// A different viewer never shares cache entries.
	other := &entity.User{Id: uuid.New(), Role: entity.UserRoleAdmin}
	svc.Evaluate(context.Background(), folder, other, pageable)
	assert.Equal(t, 3, indexRepo.findAllCalls)
}

func TestEvaluateEmptyResultsAreCachedToo(t *testing.T) {
	indexRepo := &fakeIndexRepository{}
	svc := newEvaluator(indexRepo)

	folder := activeFolder(uuid.New(), entity.SmartFolderScopePrivate, "{}")
	stranger := &entity.User{Id: uuid.New(), Role: entity.UserRoleUser}
	pageable := entity.Pageable{Page: 0, Size: 20}

	svc.Evaluate(context.Background(), folder, stranger, pageable)
	page := svc.Evaluate(context.Background(), folder, stranger, pageable)

	assert.Empty(t, page.Items)
	assert.Zero(t, indexRepo.searchCalls+indexRepo.findAllCalls)
}
