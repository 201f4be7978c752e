package serverutils

import (
	"errors"

	"mindcare-be/internal/pkg/apperror"
	"mindcare-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

type cooldownData struct {
	DaysRemaining int `json:"days_remaining"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperror.KindCooldown:
		return fiber.StatusTooManyRequests
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUpstreamFailure:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders errors returned by handlers as BaseResponse.
// Internal details of upstream and persistence failures are logged, not
// returned to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		appErr, ok := apperror.As(err)
		if !ok {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
		}

		status := StatusFor(appErr.Kind)
		switch appErr.Kind {
		case apperror.KindCooldown:
			return ctx.Status(status).JSON(BaseResponse[cooldownData]{
				Success: false,
				Code:    status,
				Message: appErr.Message,
				Data:    cooldownData{DaysRemaining: appErr.DaysRemaining},
			})
		case apperror.KindUpstreamFailure, apperror.KindPersistenceFailure:
			details := map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  string(appErr.Kind),
				"error": err.Error(),
			}
			if sc := trace.SpanContextFromContext(ctx.UserContext()); sc.HasTraceID() {
				details["trace_id"] = sc.TraceID().String()
			}
			log.Error("HTTP", appErr.Message, details)
		}
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}
}
