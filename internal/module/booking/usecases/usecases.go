package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"ticketing-service/config"
	"ticketing-service/internal/module/booking/models/entity"
	"ticketing-service/internal/module/booking/models/request"
	"ticketing-service/internal/module/booking/models/response"
	"ticketing-service/internal/module/booking/repositories"
	"ticketing-service/internal/pkg/errors"
	"ticketing-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	topicNotification = "notification"

	gatewayStatusSuccess = "success"
	gatewayStatusFailed  = "failed"

	webhookChargeSuccess = "charge.success"
	webhookChargeFailed  = "charge.failed"

	sweepLockName = "booking:sweep_expired:lock"
)

const timeFormat = "2006-01-02 15:04:05"

type usecase struct {
	repo        repositories.Repositories
	log         *otelzap.Logger
	publisher   message.Publisher
	locker      *redsync.Redsync
	cfgPaystack *config.PaystackConfig
	cfgBooking  *config.BookingConfig
}

type Usecase interface {
	// reservation workflow
	ReserveTicket(ctx context.Context, payload *request.ReserveTicket, userID int64, emailUser string) (response.BookingCreated, error)
	CancelBooking(ctx context.Context, payload *request.CancelBooking, userID int64, emailUser string) error
	ExpireReservation(ctx context.Context, payload *request.ExpireReservation) error
	SweepExpiredReservations(ctx context.Context) error
	// payment reconciliation
	InitializePayment(ctx context.Context, payload *request.InitializePayment, userID int64, emailUser string) (response.PaymentInit, error)
	VerifyPayment(ctx context.Context, reference string) (response.PaymentStatus, error)
	HandleGatewayWebhook(ctx context.Context, signature string, payload []byte) (response.WebhookAck, error)
	CompleteFreeBooking(ctx context.Context, payload *request.CompleteFreeBooking, userID int64, emailUser string) error
	// reads
	ShowBookings(ctx context.Context, userID int64) ([]response.BookedTicket, error)
	GetBookingByReference(ctx context.Context, reference string, userID int64) (response.BookedTicket, error)
	AvailableEvents(ctx context.Context) ([]response.AvailableEvent, error)
	// message stream
	ConsumeEventUpdate(ctx context.Context, payload *request.EventUpdate) error
}

func New(
	repo repositories.Repositories,
	log *otelzap.Logger,
	publisher message.Publisher,
	locker *redsync.Redsync,
	cfgPaystack *config.PaystackConfig,
	cfgBooking *config.BookingConfig,
) Usecase {
	return &usecase{
		repo:        repo,
		log:         log,
		publisher:   publisher,
		locker:      locker,
		cfgPaystack: cfgPaystack,
		cfgBooking:  cfgBooking,
	}
}

// getEvent reads through the redis cache. Cache failures fall back to the
// database; the cache is an optimization, not a source of truth.
func (u *usecase) getEvent(ctx context.Context, eventID int64) (entity.Event, error) {
	event, err := u.repo.GetCachedEvent(ctx, eventID)
	if err == nil {
		return event, nil
	}

	event, err = u.repo.FindEventByID(ctx, eventID)
	if err != nil {
		return entity.Event{}, err
	}
	if err := u.repo.CacheEvent(ctx, event); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error cache event %d: %v", eventID, err))
	}
	return event, nil
}

func (u *usecase) publish(ctx context.Context, topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal %s message: %v", topic, err))
		return
	}
	if err := u.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		// notifications are fire and forget, the booking transition stands
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish %s message: %v", topic, err))
	}
}

// ReserveTicket implements Usecase.
func (u *usecase) ReserveTicket(ctx context.Context, payload *request.ReserveTicket, userID int64, emailUser string) (response.BookingCreated, error) {
	event, err := u.getEvent(ctx, payload.EventID)
	if err != nil {
		return response.BookingCreated{}, err
	}

	now := time.Now()
	if !event.Bookable(now) {
		return response.BookingCreated{}, errors.BadRequest("event is not open for booking")
	}

	_, err = u.repo.FindActiveBooking(ctx, userID, payload.EventID)
	if err == nil {
		return response.BookingCreated{}, errors.Conflict("booking already exists for this event")
	}
	if !errors.IsNotFound(err) {
		return response.BookingCreated{}, err
	}

	totalPrice := float64(payload.Quantity) * event.Price

	if err := u.repo.ReserveInventory(ctx, payload.EventID, payload.Quantity); err != nil {
		return response.BookingCreated{}, err
	}
	if err := u.repo.InvalidateEvent(ctx, payload.EventID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error invalidate event cache %d: %v", payload.EventID, err))
	}

	booking := entity.Booking{
		ID:         uuid.New(),
		AttendeeID: userID,
		EventID:    payload.EventID,
		Quantity:   payload.Quantity,
		TotalPrice: totalPrice,
		Status:     entity.BookingStatusReserved,
		TicketRef:  helpers.GenerateTicketRef(),
		CreatedAt:  now,
	}

	// Free bookings never expire; they are finalized via the free-completion
	// path instead of payment.
	if totalPrice > 0 {
		expiresAt := now.Add(u.cfgBooking.ReservationTTL)
		booking.ExpiresAt.Time = expiresAt
		booking.ExpiresAt.Valid = true

		taskPayload, _ := json.Marshal(request.ExpireReservation{BookingID: booking.ID.String()})
		taskID, err := u.repo.SetTaskScheduler(ctx, expiresAt, taskPayload)
		if err != nil {
			// the periodic sweep still catches this reservation
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error schedule expiry for booking %s: %v", booking.ID, err))
		} else {
			booking.ExpiryTaskID.String = taskID
			booking.ExpiryTaskID.Valid = true
		}
	}

	if err := u.repo.InsertBooking(ctx, &booking); err != nil {
		if relErr := u.repo.ReleaseInventory(ctx, payload.EventID, payload.Quantity); relErr != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error release inventory after failed insert: %v", relErr))
		}
		if booking.ExpiryTaskID.Valid {
			_ = u.repo.DeleteTaskScheduler(ctx, booking.ExpiryTaskID.String)
		}
		return response.BookingCreated{}, err
	}

	resp := response.BookingCreated{
		BookingID:  booking.ID.String(),
		TicketRef:  booking.TicketRef,
		EventID:    booking.EventID,
		Quantity:   booking.Quantity,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
	}
	if booking.ExpiresAt.Valid {
		resp.ExpiresAt = booking.ExpiresAt.Time.Format(timeFormat)
	}

	u.publish(ctx, topicNotification, request.NotificationInvoice{
		BookingID:      resp.BookingID,
		TicketRef:      resp.TicketRef,
		TotalPrice:     resp.TotalPrice,
		ExpiresAt:      resp.ExpiresAt,
		EmailRecipient: emailUser,
	})

	return resp, nil
}

// CancelBooking implements Usecase. Cancelling a paid booking refunds its
// quantity to inventory, same as a reserved one.
func (u *usecase) CancelBooking(ctx context.Context, payload *request.CancelBooking, userID int64, emailUser string) error {
	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return err
	}

	if booking.AttendeeID != userID {
		return errors.Forbidden("you are not authorized to cancel this booking")
	}

	// transition and inventory release commit in one transaction, so a
	// failure here leaves the booking cancellable and nothing leaked
	applied, err := u.repo.MarkBookingCancelled(ctx, payload.BookingID, booking.EventID, booking.Quantity)
	if err != nil {
		return err
	}
	if !applied {
		// a concurrent expiry or earlier cancel won; inventory was released
		// by whoever committed the transition
		return errors.Conflict("booking already cancelled")
	}

	if err := u.repo.InvalidateEvent(ctx, booking.EventID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error invalidate event cache %d: %v", booking.EventID, err))
	}

	if booking.ExpiryTaskID.Valid {
		if err := u.repo.DeleteTaskScheduler(ctx, booking.ExpiryTaskID.String); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error delete expiry task for booking %s: %v", payload.BookingID, err))
		}
	}

	u.publish(ctx, topicNotification, request.NotificationMessage{
		Message:        fmt.Sprintf("your booking %s has been cancelled", booking.TicketRef),
		EmailRecipient: emailUser,
	})

	return nil
}

// ExpireReservation implements Usecase. Runs from the per-booking task; the
// guarded transition makes it a no-op when payment or cancel won the race.
func (u *usecase) ExpireReservation(ctx context.Context, payload *request.ExpireReservation) error {
	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	applied, err := u.repo.ExpireBooking(ctx, payload.BookingID, booking.EventID, booking.Quantity)
	if err != nil {
		// the transition rolled back with the release; the booking is still
		// reserved and the next attempt releases the quantity
		return err
	}
	if !applied {
		return nil
	}

	if err := u.repo.InvalidateEvent(ctx, booking.EventID); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error invalidate event cache %d: %v", booking.EventID, err))
	}

	u.log.Ctx(ctx).Info(fmt.Sprintf("expired reservation %s, released %d tickets", payload.BookingID, booking.Quantity))
	return nil
}

// SweepExpiredReservations implements Usecase. The redsync mutex keeps
// multiple instances from sweeping at once; one booking's failure does not
// abort the sweep for the rest.
func (u *usecase) SweepExpiredReservations(ctx context.Context) error {
	mutex := u.locker.NewMutex(sweepLockName, redsync.WithExpiry(time.Minute))
	if err := mutex.TryLockContext(ctx); err != nil {
		u.log.Ctx(ctx).Info("expiry sweep already running elsewhere, skipping")
		return nil
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error unlock sweep mutex: %v", err))
		}
	}()

	expired, err := u.repo.FindExpiredReservations(ctx, time.Now(), u.cfgBooking.SweepBatchSize)
	if err != nil {
		return err
	}

	for _, booking := range expired {
		if err := u.ExpireReservation(ctx, &request.ExpireReservation{BookingID: booking.ID.String()}); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error expire booking %s during sweep: %v", booking.ID, err))
		}
	}

	return nil
}

// InitializePayment implements Usecase.
func (u *usecase) InitializePayment(ctx context.Context, payload *request.InitializePayment, userID int64, emailUser string) (response.PaymentInit, error) {
	if payload.Email != emailUser {
		return response.PaymentInit{}, errors.Forbidden("you are not authorized to make this payment")
	}

	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return response.PaymentInit{}, err
	}
	if booking.AttendeeID != userID {
		return response.PaymentInit{}, errors.Forbidden("you are not authorized to make this payment")
	}
	if booking.EventID != payload.EventID {
		return response.PaymentInit{}, errors.BadRequest("event does not match booking")
	}
	if booking.Status == entity.BookingStatusPaid {
		return response.PaymentInit{}, errors.Conflict("booking already paid")
	}
	if booking.Status == entity.BookingStatusCancelled {
		return response.PaymentInit{}, errors.Conflict("booking already cancelled")
	}
	if booking.TotalPrice == 0 {
		return response.PaymentInit{}, errors.BadRequest("payment for free bookings is not on this route")
	}
	if payload.Amount != booking.TotalPrice {
		return response.PaymentInit{}, errors.BadRequest("payment amount does not match booking total")
	}

	amountMinor := int64(math.Round(booking.TotalPrice * 100))
	metadata := response.GatewayMetadata{
		EventID:   strconv.FormatInt(booking.EventID, 10),
		BookingID: booking.ID.String(),
	}

	init, err := u.repo.InitializeTransaction(ctx, payload.Email, amountMinor, metadata)
	if err != nil {
		return response.PaymentInit{}, err
	}

	if err := u.repo.UpdateTicketRef(ctx, payload.BookingID, init.Reference); err != nil {
		return response.PaymentInit{}, err
	}

	return response.PaymentInit{
		Reference:   init.Reference,
		PaymentLink: init.AuthorizationURL,
	}, nil
}

// normalizePaymentInfo coerces a gateway transaction into the typed payment
// record. Missing required fields are rejected here rather than stored.
func normalizePaymentInfo(txn response.GatewayTransaction) (entity.PaymentInfo, error) {
	if txn.Reference == "" || txn.Currency == "" || txn.Amount <= 0 {
		return entity.PaymentInfo{}, errors.InternalServerError("gateway transaction missing required fields")
	}

	paidAt, err := time.Parse(time.RFC3339, txn.PaidAt)
	if err != nil {
		paidAt = time.Now().UTC()
	}

	return entity.PaymentInfo{
		Reference:     txn.Reference,
		Amount:        float64(txn.Amount) / 100, // minor units to major
		Currency:      txn.Currency,
		PaidAt:        paidAt,
		Channel:       txn.Channel,
		Bank:          txn.Authorization.Bank,
		CardType:      txn.Authorization.CardType,
		CustomerEmail: txn.Customer.Email,
		CustomerName:  txn.Customer.Name,
	}, nil
}

// markPaid applies the reserved->paid transition. Replay-idempotent: if the
// booking is already paid the call reports success without mutating.
func (u *usecase) markPaid(ctx context.Context, booking entity.Booking, txn response.GatewayTransaction, raw []byte, emailUser string) error {
	info, err := normalizePaymentInfo(txn)
	if err != nil {
		return err
	}

	applied, err := u.repo.MarkBookingPaid(ctx, booking.ID.String(), txn.Reference, info, raw)
	if err != nil {
		return err
	}
	if !applied {
		current, err := u.repo.FindBookingByID(ctx, booking.ID.String())
		if err != nil {
			return err
		}
		if current.Status == entity.BookingStatusPaid {
			return nil
		}
		return errors.Conflict("booking already cancelled")
	}

	if booking.ExpiryTaskID.Valid {
		if err := u.repo.DeleteTaskScheduler(ctx, booking.ExpiryTaskID.String); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error delete expiry task for booking %s: %v", booking.ID, err))
		}
	}

	recipient := emailUser
	if recipient == "" {
		recipient = info.CustomerEmail
	}
	u.publish(ctx, topicNotification, request.NotificationPayment{
		BookingID:      booking.ID.String(),
		Message:        "your payment has been confirmed",
		Channel:        info.Channel,
		EmailRecipient: recipient,
	})

	return nil
}

// VerifyPayment implements Usecase. Polling-side reconciliation: the caller
// supplies the gateway reference, the booking is located through the
// transaction metadata.
func (u *usecase) VerifyPayment(ctx context.Context, reference string) (response.PaymentStatus, error) {
	txn, raw, err := u.repo.VerifyTransaction(ctx, reference)
	if err != nil {
		return response.PaymentStatus{}, err
	}

	if txn.Metadata.BookingID == "" {
		return response.PaymentStatus{}, errors.InternalServerError("gateway transaction missing booking metadata")
	}

	booking, err := u.repo.FindBookingByID(ctx, txn.Metadata.BookingID)
	if err != nil {
		return response.PaymentStatus{}, err
	}

	switch txn.Status {
	case gatewayStatusSuccess:
		if booking.Status == entity.BookingStatusPaid {
			return response.PaymentStatus{BookingID: booking.ID.String(), Status: entity.BookingStatusPaid}, nil
		}
		if booking.Status == entity.BookingStatusCancelled {
			return response.PaymentStatus{}, errors.Conflict("booking already cancelled")
		}
		if err := u.markPaid(ctx, booking, txn, raw, ""); err != nil {
			return response.PaymentStatus{}, err
		}
		return response.PaymentStatus{BookingID: booking.ID.String(), Status: entity.BookingStatusPaid}, nil

	case gatewayStatusFailed:
		// the reservation window stands, inventory is untouched
		if !booking.Terminal() {
			if _, err := u.repo.ClearPaymentDetails(ctx, booking.ID.String()); err != nil {
				return response.PaymentStatus{}, err
			}
		}
		return response.PaymentStatus{}, errors.BadRequest("payment verification failed")

	default:
		return response.PaymentStatus{}, errors.InternalServerError(fmt.Sprintf("unhandled gateway transaction status %q", txn.Status))
	}
}

// HandleGatewayWebhook implements Usecase. The signature is checked against
// an HMAC-SHA512 of the raw payload before anything is read or mutated;
// hmac.Equal keeps the comparison constant time.
func (u *usecase) HandleGatewayWebhook(ctx context.Context, signature string, payload []byte) (response.WebhookAck, error) {
	mac := hmac.New(sha512.New, []byte(u.cfgPaystack.SecretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return response.WebhookAck{}, errors.InvalidSignature("invalid signature")
	}

	var webhook request.GatewayWebhook
	if err := json.Unmarshal(payload, &webhook); err != nil {
		return response.WebhookAck{}, errors.BadRequest("error parse webhook payload")
	}

	switch webhook.Event {
	case webhookChargeSuccess:
		var txn response.GatewayTransaction
		if err := json.Unmarshal(webhook.Data, &txn); err != nil {
			return response.WebhookAck{}, errors.BadRequest("error parse webhook transaction")
		}
		if txn.Metadata.BookingID == "" {
			return response.WebhookAck{}, errors.BadRequest("webhook transaction missing booking metadata")
		}

		booking, err := u.repo.FindBookingByID(ctx, txn.Metadata.BookingID)
		if err != nil {
			return response.WebhookAck{}, err
		}
		if booking.Status == entity.BookingStatusPaid {
			return response.WebhookAck{Message: "booking already paid"}, nil
		}
		if booking.Status == entity.BookingStatusCancelled {
			return response.WebhookAck{}, errors.Conflict("booking already cancelled")
		}
		if err := u.markPaid(ctx, booking, txn, webhook.Data, ""); err != nil {
			return response.WebhookAck{}, err
		}
		return response.WebhookAck{Message: "payment recorded"}, nil

	case webhookChargeFailed:
		var txn response.GatewayTransaction
		if err := json.Unmarshal(webhook.Data, &txn); err != nil {
			return response.WebhookAck{}, errors.BadRequest("error parse webhook transaction")
		}
		if txn.Metadata.BookingID == "" {
			return response.WebhookAck{}, errors.BadRequest("webhook transaction missing booking metadata")
		}

		booking, err := u.repo.FindBookingByID(ctx, txn.Metadata.BookingID)
		if err != nil {
			return response.WebhookAck{}, err
		}
		if booking.Terminal() {
			return response.WebhookAck{Message: fmt.Sprintf("booking already %s", booking.Status)}, nil
		}
		if _, err := u.repo.ClearPaymentDetails(ctx, booking.ID.String()); err != nil {
			return response.WebhookAck{}, err
		}
		return response.WebhookAck{Message: "payment failure recorded"}, nil

	default:
		// acknowledge unknown event types so the gateway stops retrying
		return response.WebhookAck{Message: "event ignored"}, nil
	}
}

// CompleteFreeBooking implements Usecase.
func (u *usecase) CompleteFreeBooking(ctx context.Context, payload *request.CompleteFreeBooking, userID int64, emailUser string) error {
	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return err
	}

	if booking.AttendeeID != userID {
		return errors.Forbidden("you are not authorized to complete this booking")
	}
	if booking.TotalPrice != 0 {
		return errors.BadRequest("booking is not free")
	}
	if booking.Status == entity.BookingStatusPaid {
		return nil
	}
	if booking.Status == entity.BookingStatusCancelled {
		return errors.Conflict("booking already cancelled")
	}

	info := entity.PaymentInfo{
		Reference:     fmt.Sprintf("FREE-%s", uuid.NewString()),
		Amount:        0,
		Currency:      "NGN",
		PaidAt:        time.Now().UTC(),
		Channel:       entity.PaymentChannelFree,
		CustomerEmail: emailUser,
	}

	applied, err := u.repo.MarkBookingPaid(ctx, payload.BookingID, booking.TicketRef, info, nil)
	if err != nil {
		return err
	}
	if !applied {
		current, err := u.repo.FindBookingByID(ctx, payload.BookingID)
		if err != nil {
			return err
		}
		if current.Status == entity.BookingStatusPaid {
			return nil
		}
		return errors.Conflict("booking already cancelled")
	}

	u.publish(ctx, topicNotification, request.NotificationPayment{
		BookingID:      payload.BookingID,
		Message:        "your free booking has been confirmed",
		Channel:        entity.PaymentChannelFree,
		EmailRecipient: emailUser,
	})

	return nil
}

func toBookedTicket(booking entity.Booking) response.BookedTicket {
	resp := response.BookedTicket{
		BookingID:  booking.ID.String(),
		EventID:    booking.EventID,
		TicketRef:  booking.TicketRef,
		Quantity:   booking.Quantity,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
	}
	if booking.ExpiresAt.Valid {
		resp.ExpiresAt = booking.ExpiresAt.Time.Format(timeFormat)
	}
	if booking.PaymentInfo.Valid {
		resp.PaidAt = booking.PaymentInfo.Info.PaidAt.Format(timeFormat)
		resp.Channel = booking.PaymentInfo.Info.Channel
	}
	return resp
}

// ShowBookings implements Usecase.
func (u *usecase) ShowBookings(ctx context.Context, userID int64) ([]response.BookedTicket, error) {
	bookings, err := u.repo.FindBookingsByAttendee(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, errors.NotFound("no bookings found")
	}

	resp := make([]response.BookedTicket, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookedTicket(booking))
	}
	return resp, nil
}

// GetBookingByReference implements Usecase. Visible to the attendee or the
// event organizer.
func (u *usecase) GetBookingByReference(ctx context.Context, reference string, userID int64) (response.BookedTicket, error) {
	booking, err := u.repo.FindBookingByTicketRef(ctx, reference)
	if err != nil {
		return response.BookedTicket{}, err
	}

	if booking.AttendeeID != userID {
		event, err := u.getEvent(ctx, booking.EventID)
		if err != nil {
			return response.BookedTicket{}, err
		}
		if event.OrganizerID != userID {
			return response.BookedTicket{}, errors.Forbidden("you are not authorized to view this booking")
		}
	}

	return toBookedTicket(booking), nil
}

// AvailableEvents implements Usecase.
func (u *usecase) AvailableEvents(ctx context.Context) ([]response.AvailableEvent, error) {
	events, err := u.repo.FindAvailableEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.NotFound("no available events found")
	}

	resp := make([]response.AvailableEvent, 0, len(events))
	for _, event := range events {
		if err := u.repo.CacheEvent(ctx, event); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error cache event %d: %v", event.ID, err))
		}
		resp = append(resp, response.AvailableEvent{
			ID:               event.ID,
			Title:            event.Title,
			Date:             event.Date.Format(timeFormat),
			Price:            event.Price,
			AvailableTickets: event.AvailableTickets,
		})
	}
	return resp, nil
}

// ConsumeEventUpdate implements Usecase. The event service publishes on any
// event mutation; the cached copy is dropped so the next read is fresh.
func (u *usecase) ConsumeEventUpdate(ctx context.Context, payload *request.EventUpdate) error {
	return u.repo.InvalidateEvent(ctx, payload.EventID)
}
