package controller

import (
	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	CreateAdvice(ctx *fiber.Ctx) error
	GetAdvice(ctx *fiber.Ctx) error
}

type healthController struct {
	service service.IHealthService
	auth    fiber.Handler
}

func NewHealthController(service service.IHealthService, auth fiber.Handler) IHealthController {
	return &healthController{service: service, auth: auth}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Use(c.auth)
	h.Post("advice", c.CreateAdvice)
	h.Get("advice", c.GetAdvice)
}

func (c *healthController) CreateAdvice(ctx *fiber.Ctx) error {
	var req dto.HealthAdviceRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateAdvice(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build health advice", res))
}

func (c *healthController) GetAdvice(ctx *fiber.Ctx) error {
	var r dto.DateRange
	if err := ctx.QueryParser(&r); err != nil {
		return apperror.InvalidInput("invalid date range")
	}

	res, err := c.service.GetAdvice(ctx.UserContext(), serverutils.UserID(ctx), r)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get health advice", res))
}
