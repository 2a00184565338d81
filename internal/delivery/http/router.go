package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confsite/internal/delivery/http/controllers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// Controllers bundles the route handlers the router wires up.
type Controllers struct {
	Content      *controllers.ContentController
	Schedule     *controllers.ScheduleController
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Proposal     *controllers.ProposalController
	Speaker      *controllers.SpeakerController
	Program      *controllers.ProgramController
	Registration *controllers.RegistrationController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, logger)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Content
	mux.HandleFunc("GET /{$}", c.Content.Index)
	mux.HandleFunc("GET /announcements", c.Content.ListAnnouncements)
	mux.HandleFunc("GET /announcements/{announcementID}", c.Content.GetAnnouncement)
	mux.HandleFunc("GET /sponsors", c.Content.ListSponsors)
	mux.HandleFunc("GET /sponsors/{slug}", c.Content.GetSponsor)
	mux.HandleFunc("GET /rooms/{roomID}", c.Content.GetRoom)
	mux.HandleFunc("GET /robots.txt", c.Content.Robots)

	// Schedule and programs
	mux.HandleFunc("GET /schedule", c.Schedule.GetSchedule)
	mux.HandleFunc("GET /programs", c.Program.List)
	mux.HandleFunc("GET /programs/{programID}", optionalAuth(c.Program.Get))
	mux.HandleFunc("PUT /programs/{programID}", requireAuth(c.Program.Update))

	// Speakers
	mux.HandleFunc("GET /speakers", c.Speaker.List)
	mux.HandleFunc("GET /speakers/{speakerID}", optionalAuth(c.Speaker.Get))
	mux.HandleFunc("PUT /speakers/{speakerID}", requireAuth(c.Speaker.Update))

	// Auth. The literal mailsent segment is more specific than the token
	// wildcard, so it wins regardless of registration order.
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/login/mailsent", c.Auth.MailSent)
	mux.HandleFunc("GET /auth/login/{token}", c.Auth.Redeem)
	mux.HandleFunc("POST /auth/logout", c.Auth.Logout)

	// Profile
	mux.HandleFunc("GET /profile", requireAuth(c.Profile.Get))
	mux.HandleFunc("GET /profile/edit", requireAuth(c.Profile.GetForEdit))
	mux.HandleFunc("PUT /profile", requireAuth(c.Profile.Update))
	mux.HandleFunc("POST /profile/photo", requireAuth(c.Profile.UploadPhoto))

	// Proposals
	mux.HandleFunc("POST /proposals", requireAuth(c.Proposal.Create))
	mux.HandleFunc("GET /proposals/me", requireAuth(c.Proposal.GetOwn))
	mux.HandleFunc("PUT /proposals/me", requireAuth(c.Proposal.UpdateOwn))

	// Registration
	mux.HandleFunc("POST /registration/payment", requireAuth(c.Registration.Payment))
	mux.HandleFunc("GET /registration", requireAuth(c.Registration.Status))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
