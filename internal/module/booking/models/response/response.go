package response

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email_user"`
}

type BookingCreated struct {
	BookingID  string  `json:"booking_id"`
	TicketRef  string  `json:"ticket_ref"`
	EventID    int64   `json:"event_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	ExpiresAt  string  `json:"expires_at,omitempty"`
}

type BookedTicket struct {
	BookingID  string  `json:"booking_id"`
	EventID    int64   `json:"event_id"`
	TicketRef  string  `json:"ticket_ref"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	ExpiresAt  string  `json:"expires_at,omitempty"`
	PaidAt     string  `json:"paid_at,omitempty"`
	Channel    string  `json:"channel,omitempty"`
}

type AvailableEvent struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Date             string  `json:"date"`
	Price            float64 `json:"price"`
	AvailableTickets int     `json:"available_tickets"`
}

type PaymentInit struct {
	Reference   string `json:"reference"`
	PaymentLink string `json:"payment_link"`
}

type PaymentStatus struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type WebhookAck struct {
	Message string `json:"message"`
}

// Gateway DTOs. Fields are coerced into entity.PaymentInfo at the
// reconciliation boundary; missing required fields are rejected there.

type GatewayInit struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type GatewayAuthorization struct {
	Bank     string `json:"bank"`
	CardType string `json:"card_type"`
}

type GatewayCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type GatewayMetadata struct {
	EventID   string `json:"eventId"`
	BookingID string `json:"bookingId"`
}

type GatewayTransaction struct {
	Status        string               `json:"status"`
	Reference     string               `json:"reference"`
	Amount        int64                `json:"amount"` // minor units
	Currency      string               `json:"currency"`
	PaidAt        string               `json:"paid_at"`
	Channel       string               `json:"channel"`
	Authorization GatewayAuthorization `json:"authorization"`
	Customer      GatewayCustomer      `json:"customer"`
	Metadata      GatewayMetadata      `json:"metadata"`
}
