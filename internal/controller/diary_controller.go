package controller

import (
	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDiaryController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Eligibility(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	LatestAnalysis(ctx *fiber.Ctx) error
}

type diaryController struct {
	service service.IDiaryService
	auth    fiber.Handler
}

func NewDiaryController(service service.IDiaryService, auth fiber.Handler) IDiaryController {
	return &diaryController{service: service, auth: auth}
}

func (c *diaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/diary/v1")
	h.Use(c.auth)
	// analysis routes first so they are not captured by :id
	h.Get("analysis/eligibility", c.Eligibility)
	h.Get("analysis/latest", c.LatestAnalysis)
	h.Post("analysis", c.Analyze)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *diaryController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.CreateDiaryEntryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create diary entry", res))
}

func (c *diaryController) GetAll(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.InvalidInput("limit and offset must be integers")
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get diary entries", res))
}

func (c *diaryController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show diary entry", res))
}

func (c *diaryController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateDiaryEntryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update diary entry", res))
}

func (c *diaryController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete diary entry", nil))
}

func (c *diaryController) Eligibility(ctx *fiber.Ctx) error {
	res, err := c.service.Eligibility(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check analysis eligibility", res))
}

func (c *diaryController) Analyze(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)

	var req dto.AnalyzeDiaryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success analyze diary", res))
}

func (c *diaryController) LatestAnalysis(ctx *fiber.Ctx) error {
	res, err := c.service.LatestAnalysis(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest diary analysis", res))
}
