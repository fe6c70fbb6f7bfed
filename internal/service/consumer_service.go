// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/repository/contract"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the indexing topic and mirrors document rows
// into the full-text index.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	indexRepo  contract.DocumentIndexRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	indexRepo contract.DocumentIndexRepository,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		indexRepo:  indexRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Deleted {
		if err := cs.indexRepo.DeleteByDocumentId(ctx, payload.DocumentId); err != nil {
			log.Printf("[ERROR] Failed to delete document %s from index: %v", payload.DocumentId, err)
			msg.Nack()
			return
		}
		msg.Ack()
		return
	}

	log.Printf("[INFO] Indexing document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		// Deleted between publish and consume. Drop the index copy too.
		if err := cs.indexRepo.DeleteByDocumentId(ctx, payload.DocumentId); err != nil {
			log.Printf("[ERROR] Failed to delete stale index entry %s: %v", payload.DocumentId, err)
		}
		msg.Ack()
		return
	}

	indexDoc := documentToIndex(doc)
	if err := cs.indexRepo.Save(ctx, indexDoc); err != nil {
		log.Printf("[ERROR] Failed to index document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func documentToIndex(doc *entity.Document) *entity.DocumentIndex {
	createdAt := doc.CreatedAt.Truncate(24 * time.Hour)
	isActive := doc.IsActive
	return &entity.DocumentIndex{
		Id:                 doc.Id.String(),
		DocumentId:         doc.Id,
		FileName:           doc.FileName,
		OriginalName:       doc.OriginalName,
		ExtractedText:      doc.ExtractedText,
		Description:        doc.Description,
		DocumentType:       doc.DocumentType,
		Tags:               doc.Tags,
		Department:         doc.Department,
		UploadedByUsername: doc.UploadedByUsername,
		CreatedAt:          &createdAt,
		IsActive:           &isActive,
	}
}
