package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"flicksclub/internal/config"
	"flicksclub/internal/database"
	"flicksclub/internal/handlers"
	"flicksclub/internal/repository"
	"flicksclub/internal/security"
	"flicksclub/internal/service"
	"flicksclub/internal/storage"
)

func main() {
	log.Println("Starting Flicks Club server...")

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := db.SeedProfanityList(); err != nil {
		log.Printf("Warning: failed to seed profanity list: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	flickRepo := repository.NewFlickRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	triviaRepo := repository.NewTriviaRepository(db)
	deckRepo := repository.NewDeckRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// File storage backend
	var store storage.Store
	var localStore *storage.LocalStore
	switch cfg.StorageBackend {
	case "s3":
		s3Store, err := storage.NewS3Store(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		store = s3Store
		log.Printf("Using S3 storage (bucket %s)", cfg.S3Bucket)
	default:
		localStore, err = storage.NewLocalStore(cfg.StoragePath, cfg.AppBaseURL, cfg.SessionSecret)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		store = localStore
		log.Printf("Using local storage at %s", cfg.StoragePath)
	}

	// Services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	flickService := service.NewFlickService(flickRepo, suggestionRepo)
	statsService := service.NewStatsService(flickRepo)
	triviaService := service.NewTriviaService(flickRepo, questionRepo, triviaRepo, db, nil)
	deckService := service.NewDeckService(deckRepo)
	projectService := service.NewProjectService(projectRepo)
	documentService := service.NewDocumentService(documentRepo, store, cfg.UploadMaxSize)

	// OAuth providers
	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
		"apple": {
			Name:  "apple",
			Label: "Apple",
			Config: &oauth2.Config{
				ClientID:     cfg.AppleClientID,
				ClientSecret: cfg.AppleClientSecret,
				Scopes:       []string{"email", "name"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://appleid.apple.com/auth/authorize",
					TokenURL: "https://appleid.apple.com/auth/token",
				},
			},
			AuthParams: map[string]string{"response_mode": "query"},
		},
	}

	// Middleware and handlers
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(20, time.Minute)
	mw := handlers.NewMiddleware(authService, csrf, limiter)

	authHandler := handlers.NewAuthHandler(authService, emailService, csrf, oauthProviders, cfg.OAuthRedirectBaseURL)
	flickHandler := handlers.NewFlickHandler(flickService)
	statsHandler := handlers.NewStatsHandler(statsService)
	triviaHandler := handlers.NewTriviaHandler(triviaService)
	adminHandler := handlers.NewAdminHandler(triviaService, emailService, userRepo)
	studyHandler := handlers.NewStudyHandler(deckService)
	flashcardHandler := handlers.NewFlashcardHandler(deckService, studyHandler)
	projectHandler := handlers.NewProjectHandler(projectService)
	documentHandler := handlers.NewDocumentHandler(documentService, localStore, cfg.UploadMaxSize)

	// Route wrappers: reads need a session, writes also need a CSRF token
	authed := mw.RequireAuth
	writes := func(h http.HandlerFunc) http.HandlerFunc { return mw.RequireAuth(mw.CSRFProtect(h)) }
	adminWrites := func(h http.HandlerFunc) http.HandlerFunc { return mw.RequireAdmin(mw.CSRFProtect(h)) }

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/register", mw.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", mw.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authed(authHandler.Logout))
	mux.HandleFunc("GET /api/me", authed(authHandler.Me))
	mux.HandleFunc("POST /api/password-reset", mw.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/password-reset/confirm", mw.RateLimit(authHandler.ConfirmPasswordReset))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Watch log
	mux.HandleFunc("GET /api/flicks", authed(flickHandler.List))
	mux.HandleFunc("POST /api/flicks", writes(flickHandler.Create))
	mux.HandleFunc("GET /api/flicks/{id}", authed(flickHandler.Get))
	mux.HandleFunc("PUT /api/flicks/{id}", writes(flickHandler.Update))
	mux.HandleFunc("DELETE /api/flicks/{id}", writes(flickHandler.Delete))

	// Suggestions
	mux.HandleFunc("GET /api/suggestions", authed(flickHandler.ListSuggestions))
	mux.HandleFunc("POST /api/suggestions", writes(flickHandler.CreateSuggestion))
	mux.HandleFunc("DELETE /api/suggestions/{id}", writes(flickHandler.DeleteSuggestion))
	mux.HandleFunc("POST /api/suggestions/{id}/watched", writes(flickHandler.MarkSuggestionWatched))

	// Stats
	mux.HandleFunc("GET /api/stats", authed(statsHandler.Get))

	// Trivia
	mux.HandleFunc("POST /api/trivia/start", writes(triviaHandler.Start))
	mux.HandleFunc("GET /api/trivia/question", authed(triviaHandler.Question))
	mux.HandleFunc("POST /api/trivia/answer", writes(triviaHandler.Answer))
	mux.HandleFunc("GET /api/trivia/history", authed(triviaHandler.History))
	mux.HandleFunc("GET /api/trivia/leaderboard", authed(triviaHandler.Leaderboard))
	mux.HandleFunc("POST /api/trivia/questions", writes(triviaHandler.SubmitQuestion))
	mux.HandleFunc("GET /api/trivia/questions/mine", authed(triviaHandler.MyQuestions))

	// Moderation
	mux.HandleFunc("GET /api/admin/questions/pending", mw.RequireAdmin(adminHandler.PendingQuestions))
	mux.HandleFunc("POST /api/admin/questions/{id}/approve", adminWrites(adminHandler.ApproveQuestion))
	mux.HandleFunc("POST /api/admin/questions/{id}/reject", adminWrites(adminHandler.RejectQuestion))
	mux.HandleFunc("GET /api/admin/users", mw.RequireAdmin(adminHandler.ListUsers))

	// Flashcard decks
	mux.HandleFunc("GET /api/decks", authed(flashcardHandler.ListDecks))
	mux.HandleFunc("POST /api/decks", writes(flashcardHandler.CreateDeck))
	mux.HandleFunc("GET /api/decks/{deckID}", authed(flashcardHandler.GetDeck))
	mux.HandleFunc("PUT /api/decks/{deckID}", writes(flashcardHandler.UpdateDeck))
	mux.HandleFunc("DELETE /api/decks/{deckID}", writes(flashcardHandler.DeleteDeck))
	mux.HandleFunc("POST /api/decks/{deckID}/cards", writes(flashcardHandler.CreateCard))
	mux.HandleFunc("PUT /api/decks/{deckID}/cards/{cardID}", writes(flashcardHandler.UpdateCard))
	mux.HandleFunc("DELETE /api/decks/{deckID}/cards/{cardID}", writes(flashcardHandler.DeleteCard))

	// Study sessions
	mux.HandleFunc("POST /api/decks/{deckID}/study/start", writes(studyHandler.Start))
	mux.HandleFunc("GET /api/study", authed(studyHandler.State))
	mux.HandleFunc("POST /api/study/next", writes(studyHandler.Next))
	mux.HandleFunc("POST /api/study/previous", writes(studyHandler.Previous))
	mux.HandleFunc("POST /api/study/flip", writes(studyHandler.Flip))
	mux.HandleFunc("POST /api/study/star", writes(studyHandler.Star))
	mux.HandleFunc("POST /api/study/restart", writes(studyHandler.Restart))
	mux.HandleFunc("POST /api/study/mark", writes(studyHandler.Mark))
	mux.HandleFunc("DELETE /api/study", writes(studyHandler.End))

	// Projects and time tracking
	mux.HandleFunc("GET /api/projects", authed(projectHandler.ListProjects))
	mux.HandleFunc("POST /api/projects", writes(projectHandler.CreateProject))
	mux.HandleFunc("PUT /api/projects/{id}", writes(projectHandler.UpdateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", writes(projectHandler.DeleteProject))
	mux.HandleFunc("GET /api/time-entries", authed(projectHandler.ListTimeEntries))
	mux.HandleFunc("POST /api/time-entries", writes(projectHandler.CreateTimeEntry))
	mux.HandleFunc("PUT /api/time-entries/{id}", writes(projectHandler.UpdateTimeEntry))
	mux.HandleFunc("DELETE /api/time-entries/{id}", writes(projectHandler.DeleteTimeEntry))

	// Documents
	mux.HandleFunc("GET /api/documents", authed(documentHandler.List))
	mux.HandleFunc("POST /api/documents", writes(documentHandler.Upload))
	mux.HandleFunc("GET /api/documents/{id}/url", authed(documentHandler.DownloadURL))
	mux.HandleFunc("DELETE /api/documents/{id}", writes(documentHandler.Delete))
	mux.HandleFunc("GET /files/{key}", documentHandler.ServeFile)

	// Static files
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticFilesPath)))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Periodic cleanup of expired sessions and reset tokens
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Session cleanup failed: %v", err)
			}
			if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
				log.Printf("Password reset token cleanup failed: %v", err)
			}
		}
	}()

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
