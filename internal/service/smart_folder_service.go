// FILE: internal/service/smart_folder_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/pkg/logger"
	"dms-backend/internal/repository/contract"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/pkg/events"
	"dms-backend/pkg/folderrule"
	pktNats "dms-backend/pkg/nats"

	"github.com/google/uuid"
)

type ISmartFolderService interface {
	Create(ctx context.Context, owner *entity.User, req *dto.CreateSmartFolderRequest) (*dto.CreateSmartFolderResponse, error)
	Show(ctx context.Context, viewer *entity.User, id uuid.UUID) (*dto.SmartFolderResponse, error)
	List(ctx context.Context, viewer *entity.User, scope string) ([]*dto.SmartFolderResponse, error)
	Update(ctx context.Context, viewer *entity.User, req *dto.UpdateSmartFolderRequest) (*dto.UpdateSmartFolderResponse, error)
	Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error
	Share(ctx context.Context, viewer *entity.User, id uuid.UUID, scope string) (*dto.SmartFolderResponse, error)
	Evaluate(ctx context.Context, folder *entity.SmartFolder, viewer *entity.User, pageable entity.Pageable) entity.DocumentIndexPage
	EvaluateById(ctx context.Context, viewer *entity.User, id uuid.UUID, pageable entity.Pageable) (*dto.EvaluateSmartFolderResponse, error)
}

type smartFolderService struct {
	uowFactory     unitofwork.RepositoryFactory
	indexRepo      contract.DocumentIndexRepository
	evalCache      contract.EvalCacheRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSmartFolderService(
	uowFactory unitofwork.RepositoryFactory,
	indexRepo contract.DocumentIndexRepository,
	evalCache contract.EvalCacheRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISmartFolderService {
	return &smartFolderService{
		uowFactory:     uowFactory,
		indexRepo:      indexRepo,
		evalCache:      evalCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (c *smartFolderService) Create(ctx context.Context, owner *entity.User, req *dto.CreateSmartFolderRequest) (*dto.CreateSmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	definition := req.Definition
	if strings.TrimSpace(definition) == "" {
		definition = "{}"
	}

	now := time.Now()
	folder := entity.SmartFolder{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Definition:  definition,
		Scope:       entity.ParseSmartFolderScope(req.Scope),
		OwnerId:     owner.Id,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.SmartFolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	c.evalCache.Flush(ctx)

	if c.eventPublisher != nil {
		evt := events.New(events.TypeSmartFolderCreated, map[string]interface{}{
			"folder_id": folder.Id,
			"name":      folder.Name,
			"user_id":   owner.Id,
		})
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish SMART_FOLDER_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateSmartFolderResponse{Id: folder.Id}, nil
}

func (c *smartFolderService) Show(ctx context.Context, viewer *entity.User, id uuid.UUID) (*dto.SmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, nil
	}
	ok, err := c.canView(ctx, uow, folder, viewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return toSmartFolderResponse(folder), nil
}

func (c *smartFolderService) List(ctx context.Context, viewer *entity.User, scope string) ([]*dto.SmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	parsed := entity.ParseSmartFolderScope(scope)
	if scope == "" || parsed == entity.SmartFolderScopePrivate {
		// No scope, or an explicit PRIVATE request: the caller's own folders.
		specs = append(specs, specification.OwnedBy{UserID: viewer.Id})
	} else {
		specs = append(specs, specification.ByScope{Scope: string(parsed)})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	folders, err := uow.SmartFolderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SmartFolderResponse, 0, len(folders))
	for _, folder := range folders {
		res = append(res, toSmartFolderResponse(folder))
	}
	return res, nil
}

func (c *smartFolderService) Update(ctx context.Context, viewer *entity.User, req *dto.UpdateSmartFolderRequest) (*dto.UpdateSmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, nil
	}
	if !c.isOwnerOrAdmin(folder, viewer) {
		return nil, nil
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.Description != nil {
		folder.Description = *req.Description
	}
	if req.Definition != nil {
		folder.Definition = *req.Definition
	}
	if req.Scope != nil {
		folder.Scope = entity.ParseSmartFolderScope(*req.Scope)
	}
	if req.IsActive != nil {
		folder.IsActive = *req.IsActive
	}
	folder.UpdatedAt = time.Now()

	if err := uow.SmartFolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	c.evalCache.Flush(ctx)

	return &dto.UpdateSmartFolderResponse{Id: folder.Id}, nil
}

// Delete deactivates the folder instead of removing the row, so the
// definition stays recoverable and evaluations go empty immediately.
func (c *smartFolderService) Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if folder == nil {
		return nil
	}
	if !c.isOwnerOrAdmin(folder, viewer) {
		return nil
	}

	folder.IsActive = false
	folder.UpdatedAt = time.Now()
	if err := uow.SmartFolderRepository().Update(ctx, folder); err != nil {
		return err
	}

	c.evalCache.Flush(ctx)
	return nil
}

func (c *smartFolderService) Share(ctx context.Context, viewer *entity.User, id uuid.UUID, scope string) (*dto.SmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, nil
	}
	if !c.isOwnerOrAdmin(folder, viewer) {
		return nil, nil
	}

	folder.Scope = entity.ParseSmartFolderScope(scope)
	folder.UpdatedAt = time.Now()
	if err := uow.SmartFolderRepository().Update(ctx, folder); err != nil {
		return nil, err
	}

	c.evalCache.Flush(ctx)
	return toSmartFolderResponse(folder), nil
}

// Evaluate resolves one page of documents visible to the viewer through
// the folder. Results (empty ones included) are memoized under a key
// that carries the folder's update stamp, so edits never serve stale
// pages.
func (c *smartFolderService) Evaluate(ctx context.Context, folder *entity.SmartFolder, viewer *entity.User, pageable entity.Pageable) entity.DocumentIndexPage {
	key := contract.EvalCacheKey{
		FolderId:         folder.Id,
		FolderUpdatedAt:  folder.UpdatedAt.Unix(),
		ViewerId:         viewer.Id,
		ViewerDepartment: viewer.Department,
		Page:             pageable.Page,
		Size:             pageable.Size,
	}
	if page, ok := c.evalCache.Get(ctx, key); ok {
		return page
	}

	page := c.evaluate(ctx, folder, viewer, pageable)
	c.evalCache.Put(ctx, key, page)
	return page
}

func (c *smartFolderService) evaluate(ctx context.Context, folder *entity.SmartFolder, viewer *entity.User, pageable entity.Pageable) entity.DocumentIndexPage {
	if !folder.IsActive {
		return entity.EmptyDocumentIndexPage(pageable)
	}
	if folder.Scope == entity.SmartFolderScopePrivate && folder.OwnerId != viewer.Id {
		return entity.EmptyDocumentIndexPage(pageable)
	}

	rule := folderrule.Parse(folder.Definition)

	var basePage entity.DocumentIndexPage
	var err error
	if strings.TrimSpace(rule.Query) != "" {
		basePage, err = c.indexRepo.SearchByText(ctx, rule.Query, pageable)
	} else {
		basePage, err = c.indexRepo.FindAll(ctx, pageable)
	}
	if err != nil {
		c.logger.Error("SmartFolderService", "Failed to evaluate smart folder", map[string]interface{}{
			"folder_id": folder.Id,
			"error":     err.Error(),
		})
		return entity.EmptyDocumentIndexPage(pageable)
	}

	filtered := make([]*entity.DocumentIndex, 0, len(basePage.Items))
	for _, doc := range basePage.Items {
		// Non-admins see only their own department. Hits without a
		// department (or viewers without one) pass through.
		if !viewer.IsAdmin() && doc.Department != "" && viewer.Department != "" &&
			doc.Department != viewer.Department {
			continue
		}
		if !rule.Matches(folderrule.Doc{
			Department:         doc.Department,
			DocumentType:       doc.DocumentType,
			UploadedByUsername: doc.UploadedByUsername,
			CreatedAt:          doc.CreatedAt,
			IsActive:           doc.IsActive,
		}) {
			continue
		}
		filtered = append(filtered, doc)
	}

	// Total stays the index's pre-filter count: page math remains
	// consistent with the backing query even when rows are screened out.
	return entity.DocumentIndexPage{
		Items: filtered,
		Page:  pageable.Page,
		Size:  pageable.Size,
		Total: basePage.Total,
	}
}

func (c *smartFolderService) EvaluateById(ctx context.Context, viewer *entity.User, id uuid.UUID, pageable entity.Pageable) (*dto.EvaluateSmartFolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, nil
	}
	ok, err := c.canView(ctx, uow, folder, viewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	page := c.Evaluate(ctx, folder, viewer, pageable)

	items := make([]*dto.SearchResultItem, 0, len(page.Items))
	for _, doc := range page.Items {
		items = append(items, indexToSearchResultItem(doc))
	}
	return &dto.EvaluateSmartFolderResponse{
		Page:  page.Page,
		Size:  page.Size,
		Total: page.Total,
		Items: items,
	}, nil
}

func (c *smartFolderService) canView(ctx context.Context, uow unitofwork.UnitOfWork, folder *entity.SmartFolder, viewer *entity.User) (bool, error) {
	switch folder.Scope {
	case entity.SmartFolderScopePrivate:
		return c.isOwnerOrAdmin(folder, viewer), nil
	case entity.SmartFolderScopeDepartment:
		if viewer.IsAdmin() {
			return true, nil
		}
		owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: folder.OwnerId})
		if err != nil {
			return false, err
		}
		if owner == nil || owner.Department == "" {
			return false, nil
		}
		return owner.Department == viewer.Department, nil
	default:
		return folder.IsActive, nil
	}
}

func (c *smartFolderService) isOwnerOrAdmin(folder *entity.SmartFolder, viewer *entity.User) bool {
	return folder.OwnerId == viewer.Id || viewer.IsAdmin()
}

func toSmartFolderResponse(folder *entity.SmartFolder) *dto.SmartFolderResponse {
	return &dto.SmartFolderResponse{
		Id:          folder.Id,
		Name:        folder.Name,
		Description: folder.Description,
		Definition:  folder.Definition,
		Scope:       string(folder.Scope),
		OwnerId:     folder.OwnerId,
		IsActive:    folder.IsActive,
		CreatedAt:   folder.CreatedAt,
		UpdatedAt:   folder.UpdatedAt,
	}
}

func indexToSearchResultItem(doc *entity.DocumentIndex) *dto.SearchResultItem {
	return &dto.SearchResultItem{
		Id:                 doc.Id,
		DocumentId:         doc.DocumentId,
		FileName:           doc.FileName,
		OriginalName:       doc.OriginalName,
		DocumentType:       doc.DocumentType,
		Department:         doc.Department,
		Tags:               doc.Tags,
		UploadedByUsername: doc.UploadedByUsername,
		CreatedAt:          doc.CreatedAt,
		IsActive:           doc.IsActive,
	}
}
