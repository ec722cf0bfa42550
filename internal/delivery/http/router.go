package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventsystem/internal/delivery/http/controllers"
	"eventsystem/internal/delivery/http/middleware"
	"eventsystem/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Public listing and detail routes need no token; mutations require a bearer
// token; /admin routes additionally require the admin role.
func NewRouter(
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	lookupController *controllers.LookupController,
	statsController *controllers.StatsController,
) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier)
	optional := middleware.OptionalAuth(verifier)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(h))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public catalog
	mux.HandleFunc("GET /events", eventController.ListPublicEvents)
	mux.Handle("GET /events/{eventID}", optional(http.HandlerFunc(eventController.GetEvent)))
	mux.HandleFunc("GET /venues", lookupController.ListVenues)
	mux.HandleFunc("GET /categories", lookupController.ListCategories)
	mux.HandleFunc("GET /tags", lookupController.ListTags)

	// Organizer
	mux.Handle("POST /events", authed(http.HandlerFunc(eventController.CreateEvent)))
	mux.Handle("PUT /events/{eventID}", authed(http.HandlerFunc(eventController.UpdateEvent)))
	mux.Handle("DELETE /events/{eventID}", authed(http.HandlerFunc(eventController.DeleteEvent)))
	mux.Handle("GET /organizer/events", authed(http.HandlerFunc(eventController.ListMyEvents)))

	// Attendee
	mux.Handle("POST /events/{eventID}/registrations", authed(http.HandlerFunc(registrationController.Register)))
	mux.Handle("DELETE /events/{eventID}/registrations", authed(http.HandlerFunc(registrationController.CancelRegistration)))
	mux.Handle("GET /me/registrations", authed(http.HandlerFunc(registrationController.ListMyRegistrations)))

	// Admin
	mux.Handle("GET /admin/dashboard", admin(statsController.Dashboard))
	mux.Handle("GET /admin/events/{eventID}/registrations", admin(registrationController.ListEventRegistrations))
	mux.Handle("POST /admin/registrations/{registrationID}/approve", admin(registrationController.ApproveRegistration))
	mux.Handle("POST /admin/venues", admin(lookupController.CreateVenue))
	mux.Handle("PUT /admin/venues/{venueID}", admin(lookupController.UpdateVenue))
	mux.Handle("DELETE /admin/venues/{venueID}", admin(lookupController.DeleteVenue))
	mux.Handle("POST /admin/categories", admin(lookupController.CreateCategory))
	mux.Handle("PUT /admin/categories/{categoryID}", admin(lookupController.UpdateCategory))
	mux.Handle("DELETE /admin/categories/{categoryID}", admin(lookupController.DeleteCategory))
	mux.Handle("POST /admin/tags", admin(lookupController.CreateTag))
	mux.Handle("PUT /admin/tags/{tagID}", admin(lookupController.UpdateTag))
	mux.Handle("DELETE /admin/tags/{tagID}", admin(lookupController.DeleteTag))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
