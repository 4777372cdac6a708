package handler

import (
	"context"
	"fmt"

	"ticketing-service/internal/module/booking/models/request"
	"ticketing-service/internal/module/booking/usecases"
	"ticketing-service/internal/pkg/errors"
	"ticketing-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const signatureHeader = "x-paystack-signature"

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *BookingHandler) ReserveTicket(ctx *fiber.Ctx) error {
	var req request.ReserveTicket
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.ReserveTicket(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error reserve ticket: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespCreated(ctx, h.Log, resp, "booking created, complete your payment before it expires")
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	var req request.CancelBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	if err := h.Usecase.CancelBooking(ctx.UserContext(), &req, userID, emailUser); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "booking cancelled successfully")
}

func (h *BookingHandler) CompleteFreeBooking(ctx *fiber.Ctx) error {
	var req request.CompleteFreeBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	if err := h.Usecase.CompleteFreeBooking(ctx.UserContext(), &req, userID, emailUser); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error complete free booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "free booking confirmed")
}

func (h *BookingHandler) InitializePayment(ctx *fiber.Ctx) error {
	var req request.InitializePayment
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.InitializePayment(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error initialize payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "payment initialized")
}

func (h *BookingHandler) VerifyPayment(ctx *fiber.Ctx) error {
	reference := ctx.Params("reference")
	if reference == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("payment reference is required"))
	}

	resp, err := h.Usecase.VerifyPayment(ctx.UserContext(), reference)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error verify payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "payment verified successfully")
}

// GatewayWebhook authenticates the caller by signature, not by token; the
// raw body must reach the usecase untouched for the HMAC to match.
func (h *BookingHandler) GatewayWebhook(ctx *fiber.Ctx) error {
	signature := ctx.Get(signatureHeader)

	resp, err := h.Usecase.HandleGatewayWebhook(ctx.UserContext(), signature, ctx.Body())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle webhook: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, resp.Message)
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) GetBookingByReference(ctx *fiber.Ctx) error {
	reference := ctx.Params("reference")
	if reference == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("booking reference is required"))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.GetBookingByReference(ctx.UserContext(), reference, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get booking by reference: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get booking")
}

func (h *BookingHandler) AvailableEvents(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.AvailableEvents(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list available events: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success list available events")
}

// ExpireReservation handles the per-booking asynq expiry task.
func (h *BookingHandler) ExpireReservation(ctx context.Context, t *asynq.Task) error {
	var req request.ExpireReservation
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal expiry payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate expiry payload: %v", err))
		return err
	}

	if err := h.Usecase.ExpireReservation(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error expire reservation: %v", err))
		return err
	}

	return nil
}

// SweepExpiredReservations handles the periodic sweep task.
func (h *BookingHandler) SweepExpiredReservations(ctx context.Context, t *asynq.Task) error {
	if err := h.Usecase.SweepExpiredReservations(ctx); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error sweep expired reservations: %v", err))
		return err
	}
	return nil
}

// ConsumeEventUpdate handles event_updated messages from the event service.
// Failures propagate so the router retries and eventually poisons.
func (h *BookingHandler) ConsumeEventUpdate(msg *message.Message) error {
	var req request.EventUpdate
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal event update: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error validate event update: %v", err))
		return err
	}

	if err := h.Usecase.ConsumeEventUpdate(msg.Context(), &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume event update: %v", err))
		return err
	}

	return nil
}
