package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/handlers"
	"github.com/vollink/vollink-api/internal/models"
)

// RegisterRoutes sets up the API routes
func NewRouter(
	auth *handlers.AuthHandler,
	event *handlers.EventHandler,
	application *handlers.ApplicationHandler,
	notification *handlers.NotificationHandler,
	dashboard *handlers.DashboardHandler,
	volunteer *handlers.VolunteerHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/volunteers/signup", auth.VolunteerSignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/volunteers/login", auth.VolunteerLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/organizations/signup", auth.OrganizationSignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/organizations/login", auth.OrganizationLogin).Methods(http.MethodPost)

	// Everything below requires a valid token.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)

	asOrg := authz.RequireActor(models.ActorTypeOrganization)
	asVolunteer := authz.RequireActor(models.ActorTypeVolunteer)

	// Event browsing is open to any authenticated actor.
	api.HandleFunc("/events", event.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventID}", event.Get).Methods(http.MethodGet)

	// Organization surface
	api.Handle("/events", asOrg(http.HandlerFunc(event.Create))).Methods(http.MethodPost)
	api.Handle("/events/{eventID}/status", asOrg(http.HandlerFunc(event.SetStatus))).Methods(http.MethodPatch)
	api.Handle("/events/{eventID}/applications", asOrg(http.HandlerFunc(application.ListForEvent))).Methods(http.MethodGet)
	api.Handle("/applications/{applicationID}/decision", asOrg(http.HandlerFunc(application.Decide))).Methods(http.MethodPost)
	api.Handle("/organizations/me/events", asOrg(http.HandlerFunc(event.ListMine))).Methods(http.MethodGet)
	api.Handle("/organizations/me/applications/pending", asOrg(http.HandlerFunc(application.ListPending))).Methods(http.MethodGet)
	api.Handle("/organizations/me/dashboard", asOrg(http.HandlerFunc(dashboard.Summary))).Methods(http.MethodGet)

	// Volunteer surface
	api.Handle("/events/{eventID}/applications", asVolunteer(http.HandlerFunc(application.Apply))).Methods(http.MethodPost)
	api.Handle("/volunteers/me", asVolunteer(http.HandlerFunc(volunteer.Me))).Methods(http.MethodGet)
	api.Handle("/volunteers/me", asVolunteer(http.HandlerFunc(volunteer.UpdateProfile))).Methods(http.MethodPut)
	api.Handle("/volunteers/me/applications", asVolunteer(http.HandlerFunc(application.ListMine))).Methods(http.MethodGet)

	// Notifications serve both actor types.
	api.HandleFunc("/notifications", notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", notification.MarkRead).Methods(http.MethodPost)

	return router
}
