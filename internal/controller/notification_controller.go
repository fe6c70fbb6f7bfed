// FILE: internal/controller/notification_controller.go
package controller

import (
	"os"

	"dms-backend/internal/dto"
	"dms-backend/internal/pkg/serverutils"
	"dms-backend/internal/service"
	internalWS "dms-backend/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService *service.NotificationService
	hub                 *internalWS.Hub
}

func NewNotificationController(notificationService *service.NotificationService, hub *internalWS.Hub) INotificationController {
	return &notificationController{
		notificationService: notificationService,
		hub:                 hub,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notification/v1")
	// WebSocket handshakes authenticate via query token, not the header
	// middleware, because browsers cannot set headers on WS upgrades.
	h.Get("ws", c.ServeWs)
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Put(":id/read", c.MarkRead)
}

func (c *notificationController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Token missing user_id")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(c.hub, conn, userID)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(localString(ctx, "user_id"))

	notifications, err := c.notificationService.ListForUser(ctx.Context(), userId)
	if err != nil {
		return err
	}

	res := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		res = append(res, &dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.notificationService.MarkRead(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark notification read", nil))
}
