// Package mocks provides testify mocks for the booking interfaces.
package mocks

import (
	"context"
	"time"

	"ticketing-service/internal/module/booking/models/entity"
	"ticketing-service/internal/module/booking/models/response"

	"github.com/stretchr/testify/mock"
)

type Repositories struct {
	mock.Mock
}

func (_m *Repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(response.UserServiceValidate), ret.Error(1)
}

func (_m *Repositories) InitializeTransaction(ctx context.Context, email string, amountMinor int64, metadata response.GatewayMetadata) (response.GatewayInit, error) {
	ret := _m.Called(ctx, email, amountMinor, metadata)
	return ret.Get(0).(response.GatewayInit), ret.Error(1)
}

func (_m *Repositories) VerifyTransaction(ctx context.Context, reference string) (response.GatewayTransaction, []byte, error) {
	ret := _m.Called(ctx, reference)
	var raw []byte
	if ret.Get(1) != nil {
		raw = ret.Get(1).([]byte)
	}
	return ret.Get(0).(response.GatewayTransaction), raw, ret.Error(2)
}

func (_m *Repositories) GetCachedEvent(ctx context.Context, eventID int64) (entity.Event, error) {
	ret := _m.Called(ctx, eventID)
	return ret.Get(0).(entity.Event), ret.Error(1)
}

func (_m *Repositories) CacheEvent(ctx context.Context, event entity.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *Repositories) InvalidateEvent(ctx context.Context, eventID int64) error {
	ret := _m.Called(ctx, eventID)
	return ret.Error(0)
}

func (_m *Repositories) FindEventByID(ctx context.Context, eventID int64) (entity.Event, error) {
	ret := _m.Called(ctx, eventID)
	return ret.Get(0).(entity.Event), ret.Error(1)
}

func (_m *Repositories) FindAvailableEvents(ctx context.Context) ([]entity.Event, error) {
	ret := _m.Called(ctx)
	var events []entity.Event
	if ret.Get(0) != nil {
		events = ret.Get(0).([]entity.Event)
	}
	return events, ret.Error(1)
}

func (_m *Repositories) ReserveInventory(ctx context.Context, eventID int64, quantity int) error {
	ret := _m.Called(ctx, eventID, quantity)
	return ret.Error(0)
}

func (_m *Repositories) ReleaseInventory(ctx context.Context, eventID int64, quantity int) error {
	ret := _m.Called(ctx, eventID, quantity)
	return ret.Error(0)
}

func (_m *Repositories) InsertBooking(ctx context.Context, booking *entity.Booking) error {
	ret := _m.Called(ctx, booking)
	return ret.Error(0)
}

func (_m *Repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	ret := _m.Called(ctx, bookingID)
	return ret.Get(0).(entity.Booking), ret.Error(1)
}

func (_m *Repositories) FindBookingByTicketRef(ctx context.Context, ticketRef string) (entity.Booking, error) {
	ret := _m.Called(ctx, ticketRef)
	return ret.Get(0).(entity.Booking), ret.Error(1)
}

func (_m *Repositories) FindActiveBooking(ctx context.Context, attendeeID int64, eventID int64) (entity.Booking, error) {
	ret := _m.Called(ctx, attendeeID, eventID)
	return ret.Get(0).(entity.Booking), ret.Error(1)
}

func (_m *Repositories) FindBookingsByAttendee(ctx context.Context, attendeeID int64) ([]entity.Booking, error) {
	ret := _m.Called(ctx, attendeeID)
	var bookings []entity.Booking
	if ret.Get(0) != nil {
		bookings = ret.Get(0).([]entity.Booking)
	}
	return bookings, ret.Error(1)
}

func (_m *Repositories) FindExpiredReservations(ctx context.Context, now time.Time, limit int) ([]entity.Booking, error) {
	ret := _m.Called(ctx, now, limit)
	var bookings []entity.Booking
	if ret.Get(0) != nil {
		bookings = ret.Get(0).([]entity.Booking)
	}
	return bookings, ret.Error(1)
}

func (_m *Repositories) MarkBookingPaid(ctx context.Context, bookingID string, reference string, info entity.PaymentInfo, details []byte) (bool, error) {
	ret := _m.Called(ctx, bookingID, reference, info, details)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Repositories) MarkBookingCancelled(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error) {
	ret := _m.Called(ctx, bookingID, eventID, quantity)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Repositories) ExpireBooking(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error) {
	ret := _m.Called(ctx, bookingID, eventID, quantity)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Repositories) ClearPaymentDetails(ctx context.Context, bookingID string) (bool, error) {
	ret := _m.Called(ctx, bookingID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Repositories) UpdateTicketRef(ctx context.Context, bookingID string, ticketRef string) error {
	ret := _m.Called(ctx, bookingID, ticketRef)
	return ret.Error(0)
}

func (_m *Repositories) SetTaskScheduler(ctx context.Context, processAt time.Time, payload []byte) (string, error) {
	ret := _m.Called(ctx, processAt, payload)
	return ret.String(0), ret.Error(1)
}

func (_m *Repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	ret := _m.Called(ctx, taskID)
	return ret.Error(0)
}
