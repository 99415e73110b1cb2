package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	conferenceController *controllers.ConferenceController,
	profileController *controllers.ProfileController,
	sessionController *controllers.SessionController,
	speakerController *controllers.SpeakerController,
	announcementController *controllers.AnnouncementController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.CreateConference))
	mux.HandleFunc("POST /conferences/query", conferenceController.QueryConferences)
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(conferenceController.ListAttending))
	mux.HandleFunc("GET /conferences/{key}", conferenceController.GetConference)
	mux.HandleFunc("PUT /conferences/{key}", auth(conferenceController.UpdateConference))

	// Registrations
	mux.HandleFunc("POST /conferences/{key}/registration", auth(conferenceController.Register))
	mux.HandleFunc("DELETE /conferences/{key}/registration", auth(conferenceController.Unregister))

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("POST /profile", auth(profileController.SaveProfile))

	// Sessions
	mux.HandleFunc("POST /sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /conferences/{key}/sessions", sessionController.ListConferenceSessions)
	mux.HandleFunc("GET /conferences/{key}/sessions/by-time", sessionController.ListSessionsByTime)
	mux.HandleFunc("POST /sessions/by-speaker", sessionController.ListSessionsBySpeaker)
	mux.HandleFunc("POST /sessions/of-types", sessionController.ListSessionsOfTypes)
	mux.HandleFunc("POST /sessions/by-time-excluding-types", sessionController.ListSessionsByTimeExcludingTypes)

	// Wishlist
	mux.HandleFunc("GET /sessions/wishlist", auth(sessionController.GetWishlist))
	mux.HandleFunc("POST /sessions/{key}/wishlist", auth(sessionController.AddToWishlist))
	mux.HandleFunc("DELETE /sessions/{key}/wishlist", auth(sessionController.RemoveFromWishlist))

	// Speakers
	mux.HandleFunc("POST /speakers", auth(speakerController.CreateSpeaker))
	mux.HandleFunc("POST /speakers/query", speakerController.QuerySpeakers)
	mux.HandleFunc("GET /speakers/featured", announcementController.GetFeaturedSpeaker)
	mux.HandleFunc("GET /speakers/{key}", speakerController.GetSpeaker)

	// Announcements
	mux.HandleFunc("GET /announcement", announcementController.GetAnnouncement)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
