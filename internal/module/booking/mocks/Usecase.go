package mocks

import (
	"context"

	"ticketing-service/internal/module/booking/models/request"
	"ticketing-service/internal/module/booking/models/response"

	"github.com/stretchr/testify/mock"
)

type Usecase struct {
	mock.Mock
}

func (_m *Usecase) ReserveTicket(ctx context.Context, payload *request.ReserveTicket, userID int64, emailUser string) (response.BookingCreated, error) {
	ret := _m.Called(ctx, payload, userID, emailUser)
	return ret.Get(0).(response.BookingCreated), ret.Error(1)
}

func (_m *Usecase) CancelBooking(ctx context.Context, payload *request.CancelBooking, userID int64, emailUser string) error {
	ret := _m.Called(ctx, payload, userID, emailUser)
	return ret.Error(0)
}

func (_m *Usecase) ExpireReservation(ctx context.Context, payload *request.ExpireReservation) error {
	ret := _m.Called(ctx, payload)
	return ret.Error(0)
}

func (_m *Usecase) SweepExpiredReservations(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *Usecase) InitializePayment(ctx context.Context, payload *request.InitializePayment, userID int64, emailUser string) (response.PaymentInit, error) {
	ret := _m.Called(ctx, payload, userID, emailUser)
	return ret.Get(0).(response.PaymentInit), ret.Error(1)
}

func (_m *Usecase) VerifyPayment(ctx context.Context, reference string) (response.PaymentStatus, error) {
	ret := _m.Called(ctx, reference)
	return ret.Get(0).(response.PaymentStatus), ret.Error(1)
}

func (_m *Usecase) HandleGatewayWebhook(ctx context.Context, signature string, payload []byte) (response.WebhookAck, error) {
	ret := _m.Called(ctx, signature, payload)
	return ret.Get(0).(response.WebhookAck), ret.Error(1)
}

func (_m *Usecase) CompleteFreeBooking(ctx context.Context, payload *request.CompleteFreeBooking, userID int64, emailUser string) error {
	ret := _m.Called(ctx, payload, userID, emailUser)
	return ret.Error(0)
}

func (_m *Usecase) ShowBookings(ctx context.Context, userID int64) ([]response.BookedTicket, error) {
	ret := _m.Called(ctx, userID)
	var bookings []response.BookedTicket
	if ret.Get(0) != nil {
		bookings = ret.Get(0).([]response.BookedTicket)
	}
	return bookings, ret.Error(1)
}

func (_m *Usecase) GetBookingByReference(ctx context.Context, reference string, userID int64) (response.BookedTicket, error) {
	ret := _m.Called(ctx, reference, userID)
	return ret.Get(0).(response.BookedTicket), ret.Error(1)
}

func (_m *Usecase) AvailableEvents(ctx context.Context) ([]response.AvailableEvent, error) {
	ret := _m.Called(ctx)
	var events []response.AvailableEvent
	if ret.Get(0) != nil {
		events = ret.Get(0).([]response.AvailableEvent)
	}
	return events, ret.Error(1)
}

func (_m *Usecase) ConsumeEventUpdate(ctx context.Context, payload *request.EventUpdate) error {
	ret := _m.Called(ctx, payload)
	return ret.Error(0)
}
