// FILE: internal/controller/search_controller.go
package controller

import (
	"strings"
	"time"

	"dms-backend/internal/dto"
	"dms-backend/internal/pkg/serverutils"
	"dms-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

const searchDateLayout = "2006-01-02"

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Search)
	h.Get("suggest", c.Suggest)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	req := dto.SearchRequest{
		Query:         ctx.Query("q"),
		DocumentTypes: splitCSV(ctx.Query("documentTypes")),
		Departments:   splitCSV(ctx.Query("departments")),
		Page:          ctx.QueryInt("page", 0),
		Size:          ctx.QueryInt("size", 20),
	}

	if v := ctx.Query("isActive"); v != "" {
		isActive := v == "true"
		req.IsActive = &isActive
	}
	if t := parseDate(ctx.Query("createdFrom")); t != nil {
		req.CreatedFrom = t
	}
	if t := parseDate(ctx.Query("createdTo")); t != nil {
		req.CreatedTo = t
	}

	res, err := c.searchService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}

func (c *searchController) Suggest(ctx *fiber.Ctx) error {
	prefix := ctx.Query("prefix")
	limit := ctx.QueryInt("limit", 10)

	res, err := c.searchService.Suggest(ctx.Context(), prefix, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success suggest", res))
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(searchDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}
