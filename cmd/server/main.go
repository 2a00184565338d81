package main

import (
	"database/sql"
	"log"
	nethttp "net/http"
	"time"

	_ "github.com/lib/pq"

	_ "confsite/docs" // swagger docs

	"confsite/config"
	"confsite/internal/adapters/auth"
	"confsite/internal/adapters/cache"
	"confsite/internal/adapters/email"
	"confsite/internal/adapters/images"
	"confsite/internal/adapters/payment"
	"confsite/internal/delivery/http"
	"confsite/internal/delivery/http/controllers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/repository/postgres"
	"confsite/internal/services"
)

const (
	serviceTimeout = 10 * time.Second
	uploadDir      = "uploads"
)

// @title Conference Site API
// @version 1.0
// @description Conference backend: schedule, speakers, sponsors, email-link login, proposals, and payment-gated registration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("database ping: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	tokenRepo := postgres.NewEmailTokenRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	programRepo := postgres.NewProgramRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	sponsorRepo := postgres.NewSponsorRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)
	bannerRepo := postgres.NewBannerRepository(db)
	proposalRepo := postgres.NewProposalRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	// Adapters
	tokenIssuer, tokenVerifier := auth.NewJWTCodec(cfg.JWTSecret)
	scheduleCache := cache.NewScheduleCache(cfg.RedisAddr, cfg.RedisPassword)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}
	renderer := email.NewTemplateRenderer()
	paymentProvider := payment.NewIamportClient(
		&nethttp.Client{Timeout: serviceTimeout},
		cfg.IamportAPIKey,
		cfg.IamportAPISecret,
	)
	imageValidator := images.NewValidator(images.Limits{
		MaxSizeMB: cfg.ImageMaxSizeMB,
		MinWidth:  cfg.ImageMinWidth,
		MinHeight: cfg.ImageMinHeight,
	}, uploadDir)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	authService := services.NewAuthService(
		userRepo, profileRepo, tokenRepo, emailService, tokenIssuer,
		time.Duration(cfg.JWTExpiryHours)*time.Hour,
		time.Duration(cfg.LoginTokenTTLMinutes)*time.Minute,
		cfg.BaseURL,
	)
	scheduleService := services.NewScheduleService(scheduleRepo, programRepo, scheduleCache, serviceTimeout)
	programService := services.NewProgramService(programRepo, scheduleCache)
	speakerService := services.NewSpeakerService(speakerRepo)
	contentService := services.NewContentService(announcementRepo, bannerRepo, sponsorRepo, scheduleRepo)
	profileService := services.NewProfileService(profileRepo, registrationRepo, proposalRepo)
	proposalService := services.NewProposalService(proposalRepo)
	registrationService := services.NewRegistrationService(registrationRepo, userRepo, paymentProvider, serviceTimeout)

	// Controllers
	mux := http.NewRouter(http.Controllers{
		Content:      controllers.NewContentController(logger, contentService),
		Schedule:     controllers.NewScheduleController(logger, scheduleService),
		Auth:         controllers.NewAuthController(logger, authService),
		Profile:      controllers.NewProfileController(logger, profileService, imageValidator),
		Proposal:     controllers.NewProposalController(logger, proposalService),
		Speaker:      controllers.NewSpeakerController(logger, speakerService),
		Program:      controllers.NewProgramController(logger, programService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
	}, tokenVerifier, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := nethttp.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
