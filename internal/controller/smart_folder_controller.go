// FILE: internal/controller/smart_folder_controller.go
package controller

import (
	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/pkg/serverutils"
	"dms-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISmartFolderController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
	Evaluate(ctx *fiber.Ctx) error
}

type smartFolderController struct {
	smartFolderService service.ISmartFolderService
}

func NewSmartFolderController(smartFolderService service.ISmartFolderService) ISmartFolderController {
	return &smartFolderController{
		smartFolderService: smartFolderService,
	}
}

func (c *smartFolderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/smart-folder/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	// A saved search definition is a folder definition, same shape.
	h.Post("from-search", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/share", c.Share)
	h.Get(":id/evaluate", c.Evaluate)
	h.Post(":id/evaluate", c.Evaluate)
}

func (c *smartFolderController) Create(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)

	var req dto.CreateSmartFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.smartFolderService.Create(ctx.Context(), viewer, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create smart folder", res))
}

func (c *smartFolderController) Show(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.smartFolderService.Show(ctx.Context(), viewer, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Smart folder not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show smart folder", res))
}

func (c *smartFolderController) List(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	scope := ctx.Query("scope")

	res, err := c.smartFolderService.List(ctx.Context(), viewer, scope)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list smart folders", res))
}

func (c *smartFolderController) Update(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateSmartFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.smartFolderService.Update(ctx.Context(), viewer, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Smart folder not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update smart folder", res))
}

func (c *smartFolderController) Delete(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.smartFolderService.Delete(ctx.Context(), viewer, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete smart folder", nil))
}

func (c *smartFolderController) Share(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var body struct {
		Scope string `json:"scope"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return err
	}

	res, err := c.smartFolderService.Share(ctx.Context(), viewer, id, body.Scope)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Smart folder not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success share smart folder", res))
}

func (c *smartFolderController) Evaluate(ctx *fiber.Ctx) error {
	viewer := viewerFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	pageable := entity.Pageable{
		Page: ctx.QueryInt("page", 0),
		Size: ctx.QueryInt("size", 20),
	}

	res, err := c.smartFolderService.EvaluateById(ctx.Context(), viewer, id, pageable)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Smart folder not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success evaluate smart folder", res))
}
