package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"ticketing-service/config"
	"ticketing-service/internal/module/booking/models/entity"
	"ticketing-service/internal/module/booking/models/response"
	"ticketing-service/internal/pkg/errors"
	"ticketing-service/internal/pkg/scheduler"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const eventCacheTTL = 5 * time.Minute

type repositories struct {
	db             *sqlx.DB
	log            *otelzap.Logger
	httpClient     *circuit.HTTPClient
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	cfgUserService *config.UserServiceConfig
	cfgPaystack    *config.PaystackConfig
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	InitializeTransaction(ctx context.Context, email string, amountMinor int64, metadata response.GatewayMetadata) (response.GatewayInit, error)
	VerifyTransaction(ctx context.Context, reference string) (response.GatewayTransaction, []byte, error)
	// redis
	GetCachedEvent(ctx context.Context, eventID int64) (entity.Event, error)
	CacheEvent(ctx context.Context, event entity.Event) error
	InvalidateEvent(ctx context.Context, eventID int64) error
	// db
	FindEventByID(ctx context.Context, eventID int64) (entity.Event, error)
	FindAvailableEvents(ctx context.Context) ([]entity.Event, error)
	ReserveInventory(ctx context.Context, eventID int64, quantity int) error
	ReleaseInventory(ctx context.Context, eventID int64, quantity int) error
	InsertBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	FindBookingByTicketRef(ctx context.Context, ticketRef string) (entity.Booking, error)
	FindActiveBooking(ctx context.Context, attendeeID, eventID int64) (entity.Booking, error)
	FindBookingsByAttendee(ctx context.Context, attendeeID int64) ([]entity.Booking, error)
	FindExpiredReservations(ctx context.Context, now time.Time, limit int) ([]entity.Booking, error)
	MarkBookingPaid(ctx context.Context, bookingID, reference string, info entity.PaymentInfo, details []byte) (bool, error)
	MarkBookingCancelled(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error)
	ExpireBooking(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error)
	ClearPaymentDetails(ctx context.Context, bookingID string) (bool, error)
	UpdateTicketRef(ctx context.Context, bookingID, ticketRef string) error
	// scheduler
	SetTaskScheduler(ctx context.Context, processAt time.Time, payload []byte) (string, error)
	DeleteTaskScheduler(ctx context.Context, taskID string) error
}

func New(
	db *sqlx.DB,
	log *otelzap.Logger,
	httpClient *circuit.HTTPClient,
	redisClient *redis.Client,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
	cfgUserService *config.UserServiceConfig,
	cfgPaystack *config.PaystackConfig,
) Repositories {
	return &repositories{
		db:             db,
		log:            log,
		httpClient:     httpClient,
		redisClient:    redisClient,
		asynqClient:    asynqClient,
		asynqInspector: asynqInspector,
		cfgUserService: cfgUserService,
		cfgPaystack:    cfgPaystack,
	}
}

// FindEventByID implements Repositories.
func (r *repositories) FindEventByID(ctx context.Context, eventID int64) (entity.Event, error) {
	query := `SELECT id, organizer_id, title, date, status, total_tickets, available_tickets, price, created_at
		FROM events WHERE id = $1`
	var event entity.Event
	err := r.db.GetContext(ctx, &event, query, eventID)
	if err == sql.ErrNoRows {
		return entity.Event{}, errors.NotFound("event not found")
	}
	if err != nil {
		return entity.Event{}, errors.InternalServerError("error find event by id")
	}
	return event, nil
}

// FindAvailableEvents implements Repositories.
func (r *repositories) FindAvailableEvents(ctx context.Context) ([]entity.Event, error) {
	query := `SELECT id, organizer_id, title, date, status, total_tickets, available_tickets, price, created_at
		FROM events
		WHERE status = $1 AND date > now() AND available_tickets > 0
		ORDER BY date ASC`
	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, query, entity.EventStatusPublished)
	if err != nil {
		return nil, errors.InternalServerError("error find available events")
	}
	return events, nil
}

// ReserveInventory implements Repositories. The check and the decrement are
// one conditional statement so concurrent reservations cannot oversell.
func (r *repositories) ReserveInventory(ctx context.Context, eventID int64, quantity int) error {
	query := `UPDATE events
		SET available_tickets = available_tickets - $2
		WHERE id = $1
			AND status = $3
			AND date > now()
			AND available_tickets >= $2`
	res, err := r.db.ExecContext(ctx, query, eventID, quantity, entity.EventStatusPublished)
	if err != nil {
		return errors.InternalServerError("error reserve inventory")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.InternalServerError("error reserve inventory")
	}
	if rows > 0 {
		return nil
	}

	// Nothing was decremented; re-read to report the precise reason.
	event, err := r.FindEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.Bookable(time.Now()) {
		return errors.BadRequest("event is not open for booking")
	}
	return errors.Conflict("not enough tickets available")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func releaseInventory(ctx context.Context, db execer, eventID int64, quantity int) error {
	query := `UPDATE events
		SET available_tickets = available_tickets + $2
		WHERE id = $1 AND available_tickets + $2 <= total_tickets`
	res, err := db.ExecContext(ctx, query, eventID, quantity)
	if err != nil {
		return errors.InternalServerError("error release inventory")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.InternalServerError("error release inventory")
	}
	if rows == 0 {
		return errors.Conflict("release would exceed event capacity")
	}
	return nil
}

// ReleaseInventory implements Repositories. The guard keeps the counter
// inside [0, total_tickets]; callers release a booking's quantity at most
// once.
func (r *repositories) ReleaseInventory(ctx context.Context, eventID int64, quantity int) error {
	return releaseInventory(ctx, r.db, eventID, quantity)
}

// InsertBooking implements Repositories. A partial unique index on
// (attendee_id, event_id) WHERE status != 'cancelled' backs the
// one-active-booking invariant; this maps its violation to a conflict so a
// racing duplicate reservation fails cleanly.
func (r *repositories) InsertBooking(ctx context.Context, booking *entity.Booking) error {
	query := `INSERT INTO bookings
		(id, attendee_id, event_id, quantity, total_price, status, ticket_ref, expires_at, expiry_task_id, created_at)
		VALUES (:id, :attendee_id, :event_id, :quantity, :total_price, :status, :ticket_ref, :expires_at, :expiry_task_id, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, booking)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return errors.Conflict("booking already exists for this event")
	}
	if err != nil {
		return errors.InternalServerError("error insert booking")
	}
	return nil
}

const bookingColumns = `id, attendee_id, event_id, quantity, total_price, status, ticket_ref,
	payment_details, payment_info, expires_at, expiry_task_id, created_at, updated_at, deleted_at`

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// FindBookingByTicketRef implements Repositories.
func (r *repositories) FindBookingByTicketRef(ctx context.Context, ticketRef string) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ticket_ref = $1 AND deleted_at IS NULL`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, ticketRef)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by ticket ref")
	}
	return booking, nil
}

// FindActiveBooking implements Repositories. Active means non-cancelled; at
// most one exists per attendee+event pair.
func (r *repositories) FindActiveBooking(ctx context.Context, attendeeID, eventID int64) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE attendee_id = $1 AND event_id = $2 AND status != $3 AND deleted_at IS NULL`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, attendeeID, eventID, entity.BookingStatusCancelled)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find active booking")
	}
	return booking, nil
}

// FindBookingsByAttendee implements Repositories.
func (r *repositories) FindBookingsByAttendee(ctx context.Context, attendeeID int64) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE attendee_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`
	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, query, attendeeID)
	if err != nil {
		return nil, errors.InternalServerError("error find bookings by attendee")
	}
	return bookings, nil
}

// FindExpiredReservations implements Repositories.
func (r *repositories) FindExpiredReservations(ctx context.Context, now time.Time, limit int) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = $1 AND expires_at IS NOT NULL AND expires_at <= $2 AND deleted_at IS NULL
		ORDER BY expires_at ASC
		LIMIT $3`
	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, query, entity.BookingStatusReserved, now, limit)
	if err != nil {
		return nil, errors.InternalServerError("error find expired reservations")
	}
	return bookings, nil
}

// MarkBookingPaid implements Repositories. The status precondition makes the
// reserved->paid transition race-safe and replay-idempotent: a second
// delivery finds zero rows and reports applied=false.
func (r *repositories) MarkBookingPaid(ctx context.Context, bookingID, reference string, info entity.PaymentInfo, details []byte) (bool, error) {
	query := `UPDATE bookings
		SET status = $2, ticket_ref = $3, payment_info = $4, payment_details = $5,
			expires_at = NULL, expiry_task_id = NULL, updated_at = now()
		WHERE id = $1 AND status = $6 AND deleted_at IS NULL`
	infoCol := entity.PaymentInfoNull{Info: info, Valid: true}
	res, err := r.db.ExecContext(ctx, query, bookingID, entity.BookingStatusPaid, reference, infoCol, details, entity.BookingStatusReserved)
	if err != nil {
		return false, errors.InternalServerError("error mark booking paid")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.InternalServerError("error mark booking paid")
	}
	return rows > 0, nil
}

// MarkBookingCancelled implements Repositories. Allowed from reserved or
// paid; cancelled is terminal. The status transition and the inventory
// release commit together: a failed release rolls the transition back, so
// the booking stays cancellable and a retry still returns the quantity.
func (r *repositories) MarkBookingCancelled(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error) {
	query := `UPDATE bookings
		SET status = $2, expires_at = NULL, expiry_task_id = NULL, updated_at = now()
		WHERE id = $1 AND status IN ($3, $4) AND deleted_at IS NULL`
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, errors.InternalServerError("error mark booking cancelled")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, bookingID, entity.BookingStatusCancelled,
		entity.BookingStatusReserved, entity.BookingStatusPaid)
	if err != nil {
		return false, errors.InternalServerError("error mark booking cancelled")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.InternalServerError("error mark booking cancelled")
	}
	if rows == 0 {
		return false, nil
	}

	if err := releaseInventory(ctx, tx, eventID, quantity); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, errors.InternalServerError("error mark booking cancelled")
	}
	return true, nil
}

// ExpireBooking implements Repositories. Only reserved bookings past their
// deadline transition; a booking paid or cancelled in the meantime is left
// alone, so the losing writer in the expiry race no-ops. Transition and
// release share one transaction, same as MarkBookingCancelled.
func (r *repositories) ExpireBooking(ctx context.Context, bookingID string, eventID int64, quantity int) (bool, error) {
	query := `UPDATE bookings
		SET status = $2, expires_at = NULL, expiry_task_id = NULL, updated_at = now()
		WHERE id = $1 AND status = $3
			AND expires_at IS NOT NULL AND expires_at <= now()
			AND deleted_at IS NULL`
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, errors.InternalServerError("error expire booking")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, bookingID, entity.BookingStatusCancelled, entity.BookingStatusReserved)
	if err != nil {
		return false, errors.InternalServerError("error expire booking")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.InternalServerError("error expire booking")
	}
	if rows == 0 {
		return false, nil
	}

	if err := releaseInventory(ctx, tx, eventID, quantity); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, errors.InternalServerError("error expire booking")
	}
	return true, nil
}

// ClearPaymentDetails implements Repositories. Used when the gateway reports
// a failed charge: the reservation stands, the stale payment payload goes.
func (r *repositories) ClearPaymentDetails(ctx context.Context, bookingID string) (bool, error) {
	query := `UPDATE bookings
		SET payment_details = NULL, payment_info = NULL, updated_at = now()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, bookingID, entity.BookingStatusReserved)
	if err != nil {
		return false, errors.InternalServerError("error clear payment details")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.InternalServerError("error clear payment details")
	}
	return rows > 0, nil
}

// UpdateTicketRef implements Repositories.
func (r *repositories) UpdateTicketRef(ctx context.Context, bookingID, ticketRef string) error {
	query := `UPDATE bookings SET ticket_ref = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, bookingID, ticketRef)
	if err != nil {
		return errors.InternalServerError("error update ticket ref")
	}
	return nil
}

func eventCacheKey(eventID int64) string {
	return fmt.Sprintf("event:%d", eventID)
}

// GetCachedEvent implements Repositories.
func (r *repositories) GetCachedEvent(ctx context.Context, eventID int64) (entity.Event, error) {
	data, err := r.redisClient.Get(ctx, eventCacheKey(eventID)).Bytes()
	if err == redis.Nil {
		return entity.Event{}, errors.NotFound("event not cached")
	}
	if err != nil {
		return entity.Event{}, errors.InternalServerError("error get cached event")
	}
	var event entity.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return entity.Event{}, errors.InternalServerError("error decode cached event")
	}
	return event, nil
}

// CacheEvent implements Repositories.
func (r *repositories) CacheEvent(ctx context.Context, event entity.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.InternalServerError("error encode event for cache")
	}
	if err := r.redisClient.Set(ctx, eventCacheKey(event.ID), data, eventCacheTTL).Err(); err != nil {
		return errors.InternalServerError("error cache event")
	}
	return nil
}

// InvalidateEvent implements Repositories.
func (r *repositories) InvalidateEvent(ctx context.Context, eventID int64) error {
	if err := r.redisClient.Del(ctx, eventCacheKey(eventID)).Err(); err != nil {
		return errors.InternalServerError("error invalidate event cache")
	}
	return nil
}

// SetTaskScheduler implements Repositories. Schedules the per-booking
// expiry task and returns its id so a payment or cancel can delete it.
func (r *repositories) SetTaskScheduler(ctx context.Context, processAt time.Time, payload []byte) (string, error) {
	task := asynq.NewTask(scheduler.TypeBookingExpire, payload)
	info, err := r.asynqClient.EnqueueContext(ctx, task, asynq.ProcessAt(processAt))
	if err != nil {
		return "", errors.InternalServerError("error schedule expiry task")
	}
	return info.ID, nil
}

// DeleteTaskScheduler implements Repositories. Best effort: a task already
// run or gone is not an error, the status precondition covers the race.
func (r *repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	err := r.asynqInspector.DeleteTask("default", taskID)
	if err != nil && err != asynq.ErrTaskNotFound {
		return errors.InternalServerError("error delete expiry task")
	}
	return nil
}

type gatewayEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction implements Repositories.
func (r *repositories) InitializeTransaction(ctx context.Context, email string, amountMinor int64, metadata response.GatewayMetadata) (response.GatewayInit, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":    email,
		"amount":   amountMinor,
		"metadata": metadata,
	})
	if err != nil {
		return response.GatewayInit{}, errors.InternalServerError("error encode initialize request")
	}

	url := fmt.Sprintf("%s/transaction/initialize", r.cfgPaystack.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return response.GatewayInit{}, errors.InternalServerError("error build initialize request")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfgPaystack.SecretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Ctx(ctx).Error(fmt.Sprintf("error call gateway initialize: %v", err))
		return response.GatewayInit{}, errors.UpstreamError("payment gateway unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Ctx(ctx).Error(fmt.Sprintf("gateway initialize returned status %d", resp.StatusCode))
		return response.GatewayInit{}, errors.UpstreamError("payment gateway rejected initialize")
	}

	var envelope gatewayEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return response.GatewayInit{}, errors.InternalServerError("error decode gateway response")
	}

	var init response.GatewayInit
	if err := json.Unmarshal(envelope.Data, &init); err != nil {
		return response.GatewayInit{}, errors.InternalServerError("error decode gateway response")
	}
	if init.Reference == "" || init.AuthorizationURL == "" {
		return response.GatewayInit{}, errors.InternalServerError("gateway response missing reference")
	}
	return init, nil
}

// VerifyTransaction implements Repositories. Returns both the typed
// transaction and the raw payload for storage on the booking.
func (r *repositories) VerifyTransaction(ctx context.Context, reference string) (response.GatewayTransaction, []byte, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", r.cfgPaystack.BaseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response.GatewayTransaction{}, nil, errors.InternalServerError("error build verify request")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfgPaystack.SecretKey))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Ctx(ctx).Error(fmt.Sprintf("error call gateway verify: %v", err))
		return response.GatewayTransaction{}, nil, errors.UpstreamError("payment gateway unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Ctx(ctx).Error(fmt.Sprintf("gateway verify returned status %d", resp.StatusCode))
		return response.GatewayTransaction{}, nil, errors.UpstreamError("payment gateway rejected verify")
	}

	var envelope gatewayEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return response.GatewayTransaction{}, nil, errors.InternalServerError("error decode gateway response")
	}

	var txn response.GatewayTransaction
	if err := json.Unmarshal(envelope.Data, &txn); err != nil {
		return response.GatewayTransaction{}, nil, errors.InternalServerError("error decode gateway transaction")
	}
	return txn, envelope.Data, nil
}

// ValidateToken implements Repositories.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	url := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", r.cfgUserService.Host, r.cfgUserService.Port, token)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return response.UserServiceValidate{}, errors.UpstreamError("user service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Ctx(ctx).Error(fmt.Sprintf("invalid token, user service returned %d", resp.StatusCode))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return response.UserServiceValidate{}, errors.InternalServerError("error decode token validation")
	}

	if !respData.IsValid {
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}
	return respData, nil
}
