// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/pkg/logger"
	"dms-backend/internal/pkg/mailer"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/pkg/events"
	pktNats "dms-backend/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

// notificationTarget selects who receives a notification type.
type notificationTarget string

const (
	targetSelf      notificationTarget = "SELF"
	targetAdmin     notificationTarget = "ADMIN"
	targetBroadcast notificationTarget = "BROADCAST"
)

type notificationConfig struct {
	Title    string
	Template string // {field} placeholders resolved from the event payload
	Target   notificationTarget
}

// notificationConfigs maps event type codes to delivery rules. Unknown
// event types are ignored.
var notificationConfigs = map[string]notificationConfig{
	events.TypeDocumentUploaded: {
		Title:    "New document",
		Template: "{file_name} was uploaded",
		Target:   targetBroadcast,
	},
	events.TypeDocumentDeleted: {
		Title:    "Document removed",
		Template: "{file_name} was removed",
		Target:   targetBroadcast,
	},
	events.TypeSmartFolderCreated: {
		Title:    "Smart folder created",
		Template: "Smart folder \"{name}\" is ready",
		Target:   targetSelf,
	},
	events.TypeUserRegistered: {
		Title:    "New user registered",
		Template: "{username} just registered",
		Target:   targetAdmin,
	},
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	email mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		email:      email,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix, strip it back to the code.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	config, ok := notificationConfigs[typeCode]
	if !ok {
		return nil
	}

	if config.Target == targetBroadcast {
		notif := s.buildNotification(nil, typeCode, config, event)

		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Error saving broadcast notification", map[string]interface{}{"error": err})
			return err
		}
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, recipient := range recipients {
		uid := recipient.Id
		notif := s.buildNotification(&uid, typeCode, config, event)

		if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", uid), map[string]interface{}{"error": err})
			continue
		}
		if s.delivery != nil {
			s.delivery.Send(uid, notif)
		}
		if s.email != nil && recipient.Email != "" {
			go func(email, title, message string) {
				if err := s.email.SendNotification(email, title, message); err != nil {
					s.logger.Warn("NotificationService", "Failed to send notification mail", map[string]interface{}{"error": err.Error()})
				}
			}(recipient.Email, notif.Title, notif.Message)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config notificationConfig, event events.Event) ([]*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch config.Target {
	case targetSelf:
		uidStr, ok := event.Payload()["user_id"].(string)
		if !ok {
			s.logger.Warn("NotificationService", fmt.Sprintf("Target SELF but no user_id in payload for %s", event.EventType()), nil)
			return nil, nil
		}
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			return nil, nil
		}
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: uid})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		return []*entity.User{user}, nil

	case targetAdmin:
		return uow.UserRepository().FindAll(ctx, specification.Filter("role", string(entity.UserRoleAdmin)))
	}

	return nil, nil
}

func (s *NotificationService) buildNotification(userID *uuid.UUID, typeCode string, config notificationConfig, event events.Event) entity.Notification {
	msg := config.Template
	for k, v := range event.Payload() {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	return entity.Notification{
		Id:        uuid.New(),
		UserId:    userID,
		Type:      typeCode,
		Title:     config.Title,
		Message:   msg,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

// ListForUser returns the user's notifications, broadcasts included.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().FindAll(ctx,
		specification.ForRecipient{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id)
}
