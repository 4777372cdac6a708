package usecases_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"database/sql"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"ticketing-service/config"
	"ticketing-service/internal/module/booking/mocks"
	"ticketing-service/internal/module/booking/models/entity"
	"ticketing-service/internal/module/booking/models/request"
	"ticketing-service/internal/module/booking/models/response"
	"ticketing-service/internal/module/booking/usecases"
	"ticketing-service/internal/pkg/errors"
	log_internal "ticketing-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	goredisclient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecretKey = "sk_test_secret"

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
	p        message.Publisher
)

type mockPublisher struct{}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	return nil
}

func NewMockPublisher() message.Publisher {
	return &mockPublisher{}
}

func setup() {
	repoMock = new(mocks.Repositories)
	p = NewMockPublisher()
	logger := log_internal.Setup()
	// redsync over an unreachable redis; sweep tests cover the lock-skip path
	locker := redsync.New(goredis.NewPool(goredisclient.NewClient(&goredisclient.Options{Addr: "127.0.0.1:1"})))
	cfgPaystack := &config.PaystackConfig{BaseURL: "https://api.paystack.co", SecretKey: testSecretKey}
	cfgBooking := &config.BookingConfig{ReservationTTL: 24 * time.Hour, SweepInterval: time.Hour, SweepBatchSize: 100}
	uc = usecases.New(repoMock, logger, p, locker, cfgPaystack, cfgBooking)
}

func teardown() {
	repoMock = nil
	uc = nil
}

func publishedEvent(price float64, available int) entity.Event {
	return entity.Event{
		ID:               1,
		OrganizerID:      9,
		Title:            "gopher conf",
		Date:             time.Now().Add(48 * time.Hour),
		Status:           entity.EventStatusPublished,
		TotalTickets:     10,
		AvailableTickets: available,
		Price:            price,
	}
}

func reservedBooking(id uuid.UUID, attendeeID int64, price float64) entity.Booking {
	booking := entity.Booking{
		ID:         id,
		AttendeeID: attendeeID,
		EventID:    1,
		Quantity:   2,
		TotalPrice: price,
		Status:     entity.BookingStatusReserved,
		TicketRef:  "TICKET-1-0001",
		CreatedAt:  time.Now(),
	}
	if price > 0 {
		booking.ExpiresAt = sql.NullTime{Time: time.Now().Add(24 * time.Hour), Valid: true}
		booking.ExpiryTaskID = sql.NullString{String: "task-1", Valid: true}
	}
	return booking
}

func TestReserveTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(50, 5)
		payload := request.ReserveTicket{EventID: 1, Quantity: 2}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(entity.Event{}, errors.NotFound("event not cached"))
		repoMock.On("FindEventByID", mock.Anything, int64(1)).Return(event, nil)
		repoMock.On("CacheEvent", mock.Anything, event).Return(nil)
		repoMock.On("FindActiveBooking", mock.Anything, int64(7), int64(1)).Return(entity.Booking{}, errors.NotFound("booking not found"))
		repoMock.On("ReserveInventory", mock.Anything, int64(1), 2).Return(nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)
		repoMock.On("SetTaskScheduler", mock.Anything, mock.Anything, mock.Anything).Return("task-1", nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

		resp, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		assert.Equal(t, float64(100), resp.TotalPrice)
		assert.Equal(t, entity.BookingStatusReserved, resp.Status)
		assert.NotEmpty(t, resp.ExpiresAt)
		assert.NotEmpty(t, resp.TicketRef)
	})

	t.Run("insufficient inventory leaves count untouched", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(50, 2)
		payload := request.ReserveTicket{EventID: 1, Quantity: 3}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(event, nil)
		repoMock.On("FindActiveBooking", mock.Anything, int64(7), int64(1)).Return(entity.Booking{}, errors.NotFound("booking not found"))
		repoMock.On("ReserveInventory", mock.Anything, int64(1), 3).Return(errors.Conflict("not enough tickets available"))

		_, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.IsConflict(err))
		repoMock.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
		repoMock.AssertNotCalled(t, "ReleaseInventory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate active booking rejected", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(50, 5)
		payload := request.ReserveTicket{EventID: 1, Quantity: 1}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(event, nil)
		repoMock.On("FindActiveBooking", mock.Anything, int64(7), int64(1)).Return(reservedBooking(uuid.New(), 7, 100), nil)

		_, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.IsConflict(err))
		repoMock.AssertNotCalled(t, "ReserveInventory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("past event not bookable", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(50, 5)
		event.Date = time.Now().Add(-time.Hour)
		payload := request.ReserveTicket{EventID: 1, Quantity: 1}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(event, nil)

		_, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.Error(t, err)
		assert.True(t, errors.HasCode(err, 400))
	})

	t.Run("free event booking has no expiry", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(0, 5)
		payload := request.ReserveTicket{EventID: 1, Quantity: 2}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(event, nil)
		repoMock.On("FindActiveBooking", mock.Anything, int64(7), int64(1)).Return(entity.Booking{}, errors.NotFound("booking not found"))
		repoMock.On("ReserveInventory", mock.Anything, int64(1), 2).Return(nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

		resp, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		assert.Equal(t, float64(0), resp.TotalPrice)
		assert.Empty(t, resp.ExpiresAt)
		repoMock.AssertNotCalled(t, "SetTaskScheduler", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("inventory released when insert fails", func(t *testing.T) {
		setup()
		defer teardown()

		event := publishedEvent(50, 5)
		payload := request.ReserveTicket{EventID: 1, Quantity: 2}

		repoMock.On("GetCachedEvent", mock.Anything, int64(1)).Return(event, nil)
		repoMock.On("FindActiveBooking", mock.Anything, int64(7), int64(1)).Return(entity.Booking{}, errors.NotFound("booking not found"))
		repoMock.On("ReserveInventory", mock.Anything, int64(1), 2).Return(nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)
		repoMock.On("SetTaskScheduler", mock.Anything, mock.Anything, mock.Anything).Return("task-1", nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(errors.Conflict("booking already exists for this event"))
		repoMock.On("ReleaseInventory", mock.Anything, int64(1), 2).Return(nil)
		repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

		_, err := uc.ReserveTicket(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.IsConflict(err))
		repoMock.AssertCalled(t, "ReleaseInventory", mock.Anything, int64(1), 2)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("reserved booking cancelled with its quantity in one call", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.CancelBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingCancelled", mock.Anything, id.String(), int64(1), 2).Return(true, nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)
		repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

		err := uc.CancelBooking(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		repoMock.AssertNumberOfCalls(t, "MarkBookingCancelled", 1)
	})

	t.Run("paid booking cancellation refunds inventory", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusPaid
		booking.ExpiresAt = sql.NullTime{}
		booking.ExpiryTaskID = sql.NullString{}
		payload := request.CancelBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingCancelled", mock.Anything, id.String(), int64(1), 2).Return(true, nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)

		err := uc.CancelBooking(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		repoMock.AssertCalled(t, "MarkBookingCancelled", mock.Anything, id.String(), int64(1), 2)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.CancelBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		err := uc.CancelBooking(ctx, &payload, 8, "other@test.com")

		assert.True(t, errors.HasCode(err, 403))
		repoMock.AssertNotCalled(t, "MarkBookingCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the cancel race is a conflict", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.CancelBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingCancelled", mock.Anything, id.String(), int64(1), 2).Return(false, nil)

		err := uc.CancelBooking(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.IsConflict(err))
		repoMock.AssertNotCalled(t, "InvalidateEvent", mock.Anything, mock.Anything)
	})
}

func TestExpireReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("expires reserved booking with its quantity in one call", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.ExpiresAt = sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}
		payload := request.ExpireReservation{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("ExpireBooking", mock.Anything, id.String(), int64(1), 2).Return(true, nil)
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)

		err := uc.ExpireReservation(ctx, &payload)

		assert.NoError(t, err)
		repoMock.AssertNumberOfCalls(t, "ExpireBooking", 1)
	})

	t.Run("no-op when another transition won", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusPaid
		payload := request.ExpireReservation{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("ExpireBooking", mock.Anything, id.String(), int64(1), 2).Return(false, nil)

		err := uc.ExpireReservation(ctx, &payload)

		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "InvalidateEvent", mock.Anything, mock.Anything)
	})

	t.Run("transient failure leaves the reservation for the retry", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.ExpiresAt = sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}
		payload := request.ExpireReservation{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		// transition and release roll back together, so the booking stays
		// reserved and the retried task can still return the quantity
		repoMock.On("ExpireBooking", mock.Anything, id.String(), int64(1), 2).
			Return(false, errors.InternalServerError("error expire booking")).Once()
		repoMock.On("ExpireBooking", mock.Anything, id.String(), int64(1), 2).
			Return(true, nil).Once()
		repoMock.On("InvalidateEvent", mock.Anything, int64(1)).Return(nil)

		err := uc.ExpireReservation(ctx, &payload)
		assert.Error(t, err)
		repoMock.AssertNotCalled(t, "InvalidateEvent", mock.Anything, mock.Anything)

		err = uc.ExpireReservation(ctx, &payload)
		assert.NoError(t, err)
		repoMock.AssertNumberOfCalls(t, "ExpireBooking", 2)
	})

	t.Run("missing booking is not an error", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.ExpireReservation{BookingID: uuid.NewString()}
		repoMock.On("FindBookingByID", mock.Anything, payload.BookingID).Return(entity.Booking{}, errors.NotFound("booking not found"))

		err := uc.ExpireReservation(ctx, &payload)
		assert.NoError(t, err)
	})
}

func TestSweepExpiredReservations(t *testing.T) {
	t.Run("skips when the sweep lock is unavailable", func(t *testing.T) {
		setup()
		defer teardown()

		err := uc.SweepExpiredReservations(context.Background())

		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "FindExpiredReservations", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteFreeBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("synthesizes zero-amount payment", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 0)
		payload := request.CompleteFreeBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingPaid", mock.Anything, id.String(), booking.TicketRef, mock.MatchedBy(func(info entity.PaymentInfo) bool {
			return info.Amount == 0 && info.Channel == entity.PaymentChannelFree && info.Reference != ""
		}), mock.Anything).Return(true, nil)

		err := uc.CompleteFreeBooking(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
	})

	t.Run("idempotent when already paid", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 0)
		booking.Status = entity.BookingStatusPaid
		payload := request.CompleteFreeBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		err := uc.CompleteFreeBooking(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		repoMock.AssertNotCalled(t, "MarkBookingPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects non-free booking", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.CompleteFreeBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		err := uc.CompleteFreeBooking(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.HasCode(err, 400))
	})

	t.Run("rejects cancelled booking", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 0)
		booking.Status = entity.BookingStatusCancelled
		payload := request.CompleteFreeBooking{BookingID: id.String()}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		err := uc.CompleteFreeBooking(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.IsConflict(err))
	})
}

func gatewayTransaction(bookingID string, status string) response.GatewayTransaction {
	return response.GatewayTransaction{
		Status:    status,
		Reference: "ref-123",
		Amount:    10000,
		Currency:  "NGN",
		PaidAt:    "2024-03-10T12:00:00Z",
		Channel:   "card",
		Authorization: response.GatewayAuthorization{
			Bank:     "test bank",
			CardType: "visa",
		},
		Customer: response.GatewayCustomer{
			Email: "test@test.com",
			Name:  "Test User",
		},
		Metadata: response.GatewayMetadata{
			EventID:   "1",
			BookingID: bookingID,
		},
	}
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success transitions booking to paid", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		txn := gatewayTransaction(id.String(), "success")

		repoMock.On("VerifyTransaction", mock.Anything, "ref-123").Return(txn, []byte(`{}`), nil)
		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingPaid", mock.Anything, id.String(), "ref-123", mock.MatchedBy(func(info entity.PaymentInfo) bool {
			return info.Amount == 100 && info.Currency == "NGN" && info.Reference == "ref-123"
		}), mock.Anything).Return(true, nil)
		repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

		resp, err := uc.VerifyPayment(ctx, "ref-123")

		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPaid, resp.Status)
	})

	t.Run("already paid is idempotent", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusPaid
		txn := gatewayTransaction(id.String(), "success")

		repoMock.On("VerifyTransaction", mock.Anything, "ref-123").Return(txn, []byte(`{}`), nil)
		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		resp, err := uc.VerifyPayment(ctx, "ref-123")

		assert.NoError(t, err)
		assert.Equal(t, entity.BookingStatusPaid, resp.Status)
		repoMock.AssertNotCalled(t, "MarkBookingPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed status clears payment details without touching inventory", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		txn := gatewayTransaction(id.String(), "failed")

		repoMock.On("VerifyTransaction", mock.Anything, "ref-123").Return(txn, []byte(`{}`), nil)
		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("ClearPaymentDetails", mock.Anything, id.String()).Return(true, nil)

		_, err := uc.VerifyPayment(ctx, "ref-123")

		assert.True(t, errors.HasCode(err, 400))
		repoMock.AssertNotCalled(t, "ReleaseInventory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unhandled gateway status is an internal error", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		txn := gatewayTransaction(id.String(), "abandoned")

		repoMock.On("VerifyTransaction", mock.Anything, "ref-123").Return(txn, []byte(`{}`), nil)
		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		_, err := uc.VerifyPayment(ctx, "ref-123")

		assert.True(t, errors.HasCode(err, 500))
	})
}

func signWebhook(payload []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecretKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookPayload(t *testing.T, event string, txn response.GatewayTransaction) []byte {
	data, err := json.Marshal(txn)
	assert.NoError(t, err)
	payload := []byte(fmt.Sprintf(`{"event":%q,"data":%s}`, event, data))
	return payload
}

func TestHandleGatewayWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid signature rejected before any booking read", func(t *testing.T) {
		setup()
		defer teardown()

		payload := webhookPayload(t, "charge.success", gatewayTransaction(uuid.NewString(), "success"))

		_, err := uc.HandleGatewayWebhook(ctx, "bad-signature", payload)

		assert.True(t, errors.HasCode(err, 401))
		repoMock.AssertNotCalled(t, "FindBookingByID", mock.Anything, mock.Anything)
	})

	t.Run("charge.success marks booking paid", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := webhookPayload(t, "charge.success", gatewayTransaction(id.String(), "success"))

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("MarkBookingPaid", mock.Anything, id.String(), "ref-123", mock.Anything, mock.Anything).Return(true, nil)
		repoMock.On("DeleteTaskScheduler", mock.Anything, "task-1").Return(nil)

		ack, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.NoError(t, err)
		assert.Equal(t, "payment recorded", ack.Message)
	})

	t.Run("replayed charge.success is acknowledged without mutation", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusPaid
		payload := webhookPayload(t, "charge.success", gatewayTransaction(id.String(), "success"))

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		ack, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.NoError(t, err)
		assert.Equal(t, "booking already paid", ack.Message)
		repoMock.AssertNotCalled(t, "MarkBookingPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("charge.success on cancelled booking conflicts", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusCancelled
		payload := webhookPayload(t, "charge.success", gatewayTransaction(id.String(), "success"))

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		_, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.True(t, errors.IsConflict(err))
	})

	t.Run("charge.failed reverts reserved booking", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := webhookPayload(t, "charge.failed", gatewayTransaction(id.String(), "failed"))

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("ClearPaymentDetails", mock.Anything, id.String()).Return(true, nil)

		ack, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.NoError(t, err)
		assert.Equal(t, "payment failure recorded", ack.Message)
		repoMock.AssertNotCalled(t, "ReleaseInventory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("charge.failed on paid booking short-circuits", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		booking.Status = entity.BookingStatusPaid
		payload := webhookPayload(t, "charge.failed", gatewayTransaction(id.String(), "failed"))

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		ack, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.NoError(t, err)
		assert.Equal(t, "booking already paid", ack.Message)
		repoMock.AssertNotCalled(t, "ClearPaymentDetails", mock.Anything, mock.Anything)
	})

	t.Run("unknown event type acknowledged without action", func(t *testing.T) {
		setup()
		defer teardown()

		payload := []byte(`{"event":"transfer.success","data":{}}`)

		ack, err := uc.HandleGatewayWebhook(ctx, signWebhook(payload), payload)

		assert.NoError(t, err)
		assert.Equal(t, "event ignored", ack.Message)
		repoMock.AssertNotCalled(t, "FindBookingByID", mock.Anything, mock.Anything)
	})
}

func TestInitializePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.InitializePayment{
			BookingID: id.String(),
			EventID:   1,
			Email:     "test@test.com",
			Amount:    100,
		}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)
		repoMock.On("InitializeTransaction", mock.Anything, "test@test.com", int64(10000), response.GatewayMetadata{
			EventID:   "1",
			BookingID: id.String(),
		}).Return(response.GatewayInit{AuthorizationURL: "https://pay.example/x", Reference: "ref-123"}, nil)
		repoMock.On("UpdateTicketRef", mock.Anything, id.String(), "ref-123").Return(nil)

		resp, err := uc.InitializePayment(ctx, &payload, 7, "test@test.com")

		assert.NoError(t, err)
		assert.Equal(t, "ref-123", resp.Reference)
		assert.Equal(t, "https://pay.example/x", resp.PaymentLink)
	})

	t.Run("amount mismatch rejected", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.InitializePayment{BookingID: id.String(), EventID: 1, Email: "test@test.com", Amount: 60}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		_, err := uc.InitializePayment(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.HasCode(err, 400))
		repoMock.AssertNotCalled(t, "InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("event mismatch rejected", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)
		payload := request.InitializePayment{BookingID: id.String(), EventID: 2, Email: "test@test.com", Amount: 100}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		_, err := uc.InitializePayment(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.HasCode(err, 400))
		repoMock.AssertNotCalled(t, "InitializeTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("free booking not payable on this route", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 0)
		payload := request.InitializePayment{BookingID: id.String(), EventID: 1, Email: "test@test.com", Amount: 1}

		repoMock.On("FindBookingByID", mock.Anything, id.String()).Return(booking, nil)

		_, err := uc.InitializePayment(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.HasCode(err, 400))
	})

	t.Run("email mismatch forbidden", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.InitializePayment{BookingID: uuid.NewString(), EventID: 1, Email: "other@test.com", Amount: 100}

		_, err := uc.InitializePayment(ctx, &payload, 7, "test@test.com")

		assert.True(t, errors.HasCode(err, 403))
		repoMock.AssertNotCalled(t, "FindBookingByID", mock.Anything, mock.Anything)
	})
}

func TestShowBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		id := uuid.New()
		booking := reservedBooking(id, 7, 100)

		repoMock.On("FindBookingsByAttendee", mock.Anything, int64(7)).Return([]entity.Booking{booking}, nil)

		resp, err := uc.ShowBookings(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, id.String(), resp[0].BookingID)
	})

	t.Run("no bookings is not found", func(t *testing.T) {
		setup()
		defer teardown()

		repoMock.On("FindBookingsByAttendee", mock.Anything, int64(7)).Return([]entity.Booking{}, nil)

		_, err := uc.ShowBookings(ctx, 7)

		assert.True(t, errors.IsNotFound(err))
	})
}

func TestConsumeEventUpdate(t *testing.T) {
	setup()
	defer teardown()

	repoMock.On("InvalidateEvent", mock.Anything, int64(42)).Return(nil)

	err := uc.ConsumeEventUpdate(context.Background(), &request.EventUpdate{EventID: 42})
	assert.NoError(t, err)
}
