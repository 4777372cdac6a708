package request

import "github.com/goccy/go-json"

type ReserveTicket struct {
	EventID  int64 `json:"event_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

type CancelBooking struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type CompleteFreeBooking struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type InitializePayment struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	EventID   int64   `json:"event_id" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// ExpireReservation is the payload of the per-booking expiry task.
type ExpireReservation struct {
	BookingID string `json:"booking_id" validate:"required"`
}

// EventUpdate arrives on the message stream whenever the event service
// mutates an event; the cached copy must be dropped.
type EventUpdate struct {
	EventID int64 `json:"event_id" validate:"required"`
}

// GatewayWebhook is the envelope the payment gateway delivers. Data is kept
// raw until the event type is known.
type GatewayWebhook struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type NotificationMessage struct {
	Message        string `json:"message" validate:"required"`
	EmailRecipient string `json:"email_recipient" validate:"required"`
}

type NotificationInvoice struct {
	BookingID      string  `json:"booking_id" validate:"required"`
	TicketRef      string  `json:"ticket_ref" validate:"required"`
	TotalPrice     float64 `json:"total_price"`
	ExpiresAt      string  `json:"expires_at"`
	EmailRecipient string  `json:"email_recipient" validate:"required"`
}

type NotificationPayment struct {
	BookingID      string `json:"booking_id" validate:"required"`
	Message        string `json:"message" validate:"required"`
	Channel        string `json:"channel"`
	EmailRecipient string `json:"email_recipient" validate:"required"`
}
