package entity

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusEnded     = "ended"
)

const (
	BookingStatusReserved  = "reserved"
	BookingStatusPaid      = "paid"
	BookingStatusCancelled = "cancelled"
)

// PaymentChannelFree marks payment records synthesized for zero-price
// bookings that never touch the gateway.
const PaymentChannelFree = "free"

type Event struct {
	ID               int64     `db:"id"`
	OrganizerID      int64     `db:"organizer_id"`
	Title            string    `db:"title"`
	Date             time.Time `db:"date"`
	Status           string    `db:"status"`
	TotalTickets     int       `db:"total_tickets"`
	AvailableTickets int       `db:"available_tickets"`
	Price            float64   `db:"price"`
	CreatedAt        time.Time `db:"created_at"`
}

// Bookable reports whether new reservations may be taken against the event.
// The same conditions guard the inventory decrement at the storage layer;
// this is only used to produce a precise error before attempting it.
func (e *Event) Bookable(now time.Time) bool {
	return e.Status == EventStatusPublished && e.Date.After(now)
}

type Booking struct {
	ID             uuid.UUID       `db:"id"`
	AttendeeID     int64           `db:"attendee_id"`
	EventID        int64           `db:"event_id"`
	Quantity       int             `db:"quantity"`
	TotalPrice     float64         `db:"total_price"`
	Status         string          `db:"status"`
	TicketRef      string          `db:"ticket_ref"`
	PaymentDetails []byte          `db:"payment_details"` // raw gateway payload
	PaymentInfo    PaymentInfoNull `db:"payment_info"`
	ExpiresAt      sql.NullTime    `db:"expires_at"` // set only while reserved and total_price > 0
	ExpiryTaskID   sql.NullString  `db:"expiry_task_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      sql.NullTime    `db:"updated_at"`
	DeletedAt      sql.NullTime    `db:"deleted_at"`
}

// Terminal reports whether no further status transitions are permitted.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusPaid || b.Status == BookingStatusCancelled
}

// PaymentInfo is the normalized record built from a gateway transaction.
// Gateway payloads are coerced into it at the reconciliation boundary;
// nothing downstream reads the raw payload.
type PaymentInfo struct {
	Reference     string    `json:"reference"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paid_at"`
	Channel       string    `json:"channel"`
	Bank          string    `json:"bank"`
	CardType      string    `json:"card_type"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
}

// PaymentInfoNull wraps PaymentInfo for the nullable jsonb column.
type PaymentInfoNull struct {
	Info  PaymentInfo
	Valid bool
}

func (p *PaymentInfoNull) Scan(src interface{}) error {
	if src == nil {
		p.Valid = false
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payment_info type %T", src)
	}
	if err := json.Unmarshal(raw, &p.Info); err != nil {
		return err
	}
	p.Valid = true
	return nil
}

func (p PaymentInfoNull) Value() (driver.Value, error) {
	if !p.Valid {
		return nil, nil
	}
	return json.Marshal(p.Info)
}
