package router

import (
	"ticketing-service/internal/module/booking/handler"
	"ticketing-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *handler.BookingHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	api := app.Group("/api")

	v1 := api.Group("/v1")
	v1.Get("/events/available", handlerBooking.AvailableEvents)
	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowBookings)
	v1.Get("/bookings/reference/:reference", m.ValidateToken, handlerBooking.GetBookingByReference)
	v1.Post("/bookings", m.ValidateToken, handlerBooking.ReserveTicket)
	v1.Post("/bookings/cancel", m.ValidateToken, handlerBooking.CancelBooking)
	v1.Post("/bookings/free/complete", m.ValidateToken, handlerBooking.CompleteFreeBooking)
	v1.Post("/payments/initialize", m.ValidateToken, handlerBooking.InitializePayment)
	v1.Get("/payments/verify/:reference", m.ValidateToken, handlerBooking.VerifyPayment)
	// authenticated by HMAC signature, not by token
	v1.Post("/payments/webhook", handlerBooking.GatewayWebhook)

	return app
}
