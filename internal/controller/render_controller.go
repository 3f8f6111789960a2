package controller

import (
	"github.com/Initsogar/gutenberg/internal/dto"
	"github.com/Initsogar/gutenberg/internal/pkg/serverutils"
	"github.com/Initsogar/gutenberg/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	RenderPattern(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
}

type renderController struct {
	renderService service.IRenderService
}

func NewRenderController(renderService service.IRenderService) IRenderController {
	return &renderController{
		renderService: renderService,
	}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/render/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("pattern/:id", c.RenderPattern)
	h.Post("preview", c.Preview)
}

func (c *renderController) RenderPattern(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pattern id")
	}

	// Overrides are on unless the editor asks for a locked render.
	overridesEnabled := ctx.QueryBool("overrides_enabled", true)

	res, err := c.renderService.RenderPattern(ctx.Context(), id, overridesEnabled)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render pattern", res))
}

func (c *renderController) Preview(ctx *fiber.Ctx) error {
	var req dto.PreviewRenderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.renderService.Preview(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render preview", res))
}
