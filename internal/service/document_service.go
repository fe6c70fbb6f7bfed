// FILE: internal/service/document_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/pkg/events"
	pktNats "dms-backend/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, uploader *entity.User, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, viewer *entity.User, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context, viewer *entity.User, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Update(ctx context.Context, viewer *entity.User, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error)
	Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (c *documentService) Create(ctx context.Context, uploader *entity.User, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc := entity.Document{
		Id:                 uuid.New(),
		FileName:           req.FileName,
		OriginalName:       req.OriginalName,
		FilePath:           req.FilePath,
		MimeType:           req.MimeType,
		FileSize:           req.FileSize,
		DocumentType:       req.DocumentType,
		Department:         req.Department,
		Description:        req.Description,
		Tags:               req.Tags,
		ExtractedText:      req.ExtractedText,
		UploadedById:       uploader.Id,
		UploadedByUsername: uploader.Username,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if doc.Department == "" {
		doc.Department = uploader.Department
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := c.publishIndexMessage(ctx, doc.Id, false); err != nil {
		return nil, err
	}

	// Notify watchers, do not fail the upload if the bus is down.
	if c.eventPublisher != nil {
		evt := events.New(events.TypeDocumentUploaded, map[string]interface{}{
			"document_id": doc.Id,
			"file_name":   doc.FileName,
			"department":  doc.Department,
			"user_id":     uploader.Id,
		})
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish DOCUMENT_UPLOADED event: %v\n", err)
		}
	}

	return &dto.CreateDocumentResponse{Id: doc.Id}, nil
}

func (c *documentService) Show(ctx context.Context, viewer *entity.User, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if !c.canView(viewer, doc) {
		return nil, nil
	}

	return toDocumentResponse(doc), nil
}

func (c *documentService) List(ctx context.Context, viewer *entity.User, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if !viewer.IsAdmin() && viewer.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: viewer.Department})
	} else if req.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: req.Department})
	}
	if req.DocumentType != "" {
		specs = append(specs, specification.ByDocumentType{DocumentType: req.DocumentType})
	}

	total, err := uow.DocumentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	size := req.Size
	if size <= 0 {
		size = 20
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: size, Offset: req.Page * size},
	)

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDocumentResponse(doc))
	}

	return &dto.ListDocumentsResponse{
		Items: items,
		Page:  req.Page,
		Size:  size,
		Total: total,
	}, nil
}

func (c *documentService) Update(ctx context.Context, viewer *entity.User, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if !c.canModify(viewer, doc) {
		return nil, nil
	}

	now := time.Now()
	doc.FileName = req.FileName
	doc.DocumentType = req.DocumentType
	doc.Department = req.Department
	doc.Description = req.Description
	doc.Tags = req.Tags
	if req.ExtractedText != "" {
		doc.ExtractedText = req.ExtractedText
	}
	if req.IsActive != nil {
		doc.IsActive = *req.IsActive
	}
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	if err := c.publishIndexMessage(ctx, doc.Id, false); err != nil {
		return nil, err
	}

	return &dto.UpdateDocumentResponse{Id: doc.Id}, nil
}

func (c *documentService) Delete(ctx context.Context, viewer *entity.User, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	if !c.canModify(viewer, doc) {
		return nil
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		evt := events.New(events.TypeDocumentDeleted, map[string]interface{}{
			"document_id": doc.Id,
			"file_name":   doc.FileName,
			"department":  doc.Department,
			"user_id":     viewer.Id,
		})
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish DOCUMENT_DELETED event: %v\n", err)
		}
	}

	return c.publishIndexMessage(ctx, id, true)
}

func (c *documentService) publishIndexMessage(ctx context.Context, documentId uuid.UUID, deleted bool) error {
	payload := dto.PublishIndexDocumentMessage{
		DocumentId: documentId,
		Deleted:    deleted,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payloadJson)
}

func (c *documentService) canView(viewer *entity.User, doc *entity.Document) bool {
	if viewer.IsAdmin() || doc.UploadedById == viewer.Id {
		return true
	}
	return doc.Department == "" || viewer.Department == "" || doc.Department == viewer.Department
}

func (c *documentService) canModify(viewer *entity.User, doc *entity.Document) bool {
	return viewer.IsAdmin() || doc.UploadedById == viewer.Id
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:                 doc.Id,
		FileName:           doc.FileName,
		OriginalName:       doc.OriginalName,
		FilePath:           doc.FilePath,
		MimeType:           doc.MimeType,
		FileSize:           doc.FileSize,
		DocumentType:       doc.DocumentType,
		Department:         doc.Department,
		Description:        doc.Description,
		Tags:               doc.Tags,
		UploadedByUsername: doc.UploadedByUsername,
		IsActive:           doc.IsActive,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}
