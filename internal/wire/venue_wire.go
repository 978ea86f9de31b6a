package wire

import (
	"blinddate-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVenue(r chi.Router, venueHandler *adaptor.VenueHandler) {
	r.Route("/api/venues", func(r chi.Router) {
		// GET /api/venues - venue directory with optional city filter
		r.Get("/", venueHandler.GetVenues)

		r.Route("/{id}", func(r chi.Router) {
			// GET /api/venues/{id} - venue details
			r.Get("/", venueHandler.GetVenueByID)

			// GET /api/venues/{id}/available-times?date= - open slots
			r.Get("/available-times", venueHandler.GetAvailableTimes)

			// POST /api/venues/{id}/timeslots - bulk slot seeding
			r.Post("/timeslots", venueHandler.CreateTimeSlots)
		})
	})
}
