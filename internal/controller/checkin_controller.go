package controller

import (
	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICheckInController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type checkInController struct {
	service service.ICheckInService
	auth    fiber.Handler
}

func NewCheckInController(service service.ICheckInService, auth fiber.Handler) ICheckInController {
	return &checkInController{service: service, auth: auth}
}

func (c *checkInController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/checkin/v1")
	h.Use(c.auth)
	h.Post("", c.Create)
	h.Get("", c.List)
}

func (c *checkInController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCheckInRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success record check-in", res))
}

func (c *checkInController) List(ctx *fiber.Ctx) error {
	var req dto.ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidInput("limit and offset must be integers")
	}

	res, err := c.service.List(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get check-ins", res))
}
