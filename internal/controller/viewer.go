// FILE: internal/controller/viewer.go
package controller

import (
	"dms-backend/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// viewerFromLocals rebuilds the requesting user from the JWT claims the
// middleware stored on the request. The claims carry everything the
// permission-scoped services need, so no user lookup is required here.
func viewerFromLocals(ctx *fiber.Ctx) *entity.User {
	userId, _ := uuid.Parse(localString(ctx, "user_id"))
	return &entity.User{
		Id:         userId,
		Role:       entity.UserRole(localString(ctx, "role")),
		Department: localString(ctx, "department"),
	}
}

func localString(ctx *fiber.Ctx, key string) string {
	if v, ok := ctx.Locals(key).(string); ok {
		return v
	}
	return ""
}
