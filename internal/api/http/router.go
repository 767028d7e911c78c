package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(
	mw *Middleware,
	authHandler *AuthHandler,
	offeringHandler *OfferingHandler,
	propertyHandler *PropertyHandler,
	notificationHandler *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	// Authenticated endpoints
	authed := r.NewRoute().Subrouter()
	authed.Use(mw.Authenticate)
	authed.HandleFunc("/offerings", offeringHandler.ListOfferings).Methods(http.MethodGet)
	authed.HandleFunc("/offerings/{offeringId}", offeringHandler.GetOffering).Methods(http.MethodGet)
	authed.HandleFunc("/offerings/{offeringId}/backers", offeringHandler.AddBacker).Methods(http.MethodPost)
	authed.HandleFunc("/offerings/{offeringId}/backers/{backerId}", offeringHandler.UpdateBacker).Methods(http.MethodPut)
	authed.HandleFunc("/offerings/{offeringId}/backers/{backerId}", offeringHandler.RemoveBacker).Methods(http.MethodDelete)
	authed.HandleFunc("/properties", propertyHandler.ListProperties).Methods(http.MethodGet)
	authed.HandleFunc("/properties/{propertyId}", propertyHandler.GetProperty).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	// Admin endpoints
	admin := r.NewRoute().Subrouter()
	admin.Use(mw.Authenticate, mw.RequireAdmin)
	admin.HandleFunc("/offerings", offeringHandler.CreateOffering).Methods(http.MethodPost)
	admin.HandleFunc("/offerings/{offeringId}/close", offeringHandler.CloseOffering).Methods(http.MethodPost)
	admin.HandleFunc("/properties", propertyHandler.CreateProperty).Methods(http.MethodPost)

	return r
}
