package helpers

import (
	"fmt"
	"math/rand"
	"time"

	"ticketing-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespCreated(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	appErr := errors.FromError(err)
	if appErr.Code == fiber.StatusInternalServerError {
		log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("internal error: %v", err))
	}
	return ctx.Status(appErr.Code).JSON(Response{
		Success: false,
		Message: appErr.Message,
		Data: fiber.Map{
			"retryable": appErr.Retryable,
		},
	})
}

// GenerateTicketRef produces a unique booking reference. The gateway
// transaction reference replaces it once a payment is initialized.
func GenerateTicketRef() string {
	return fmt.Sprintf("TICKET-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
