package controller

import (
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	GetReport(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
	auth    fiber.Handler
}

func NewReportController(service service.IReportService, auth fiber.Handler) IReportController {
	return &reportController{service: service, auth: auth}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(c.auth)
	h.Get("report", c.GetReport)
}

func (c *reportController) GetReport(ctx *fiber.Ctx) error {
	res, err := c.service.GetReport(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate report", res))
}
