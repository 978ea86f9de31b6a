package wire

import (
	"blinddate-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - seed a booking from a confirmed match
		r.Post("/", bookingHandler.CreateBooking)

		r.Route("/{id}", func(r chi.Router) {
			// GET /api/bookings/{id} - booking details
			r.Get("/", bookingHandler.GetBooking)

			// GET /api/bookings/{id}/partner-proposal - what the other side proposed
			r.Get("/partner-proposal", bookingHandler.GetPartnerProposal)

			// Negotiation steps
			r.Post("/propose-venue", bookingHandler.ProposeVenue)
			r.Post("/approve-venue", bookingHandler.ApproveVenue)
			r.Post("/reject-venue", bookingHandler.RejectVenue)
			r.Post("/propose-time", bookingHandler.ProposeTime)
			r.Post("/approve-time", bookingHandler.ApproveTime)
			r.Post("/reject-time", bookingHandler.RejectTime)

			// Lifecycle
			r.Post("/confirm", bookingHandler.ConfirmBooking)
			r.Post("/cancel", bookingHandler.CancelBooking)
			r.Post("/complete", bookingHandler.CompleteBooking)
		})
	})

	// GET /api/users/{userId}/bookings - all bookings a user takes part in
	r.Get("/api/users/{userId}/bookings", bookingHandler.GetUserBookings)
}
