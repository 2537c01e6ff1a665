package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hausa-platform/cache"
	"hausa-platform/config"
	"hausa-platform/database"
	"hausa-platform/events"
	"hausa-platform/handlers"
	"hausa-platform/metrics"
	"hausa-platform/middleware"
	"hausa-platform/scheduler"
	"hausa-platform/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

type app struct {
	store    *database.Store
	svc      *services.Services
	sessions sessions.Store
	hub      *events.Hub
	metrics  *metrics.Metrics
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.DB().Close()

	catalog, err := database.DefaultCatalog()
	if err != nil {
		return err
	}
	if err := database.Seed(cmd.Context(), store, catalog); err != nil {
		return err
	}

	userCache, closeCache, err := newUserCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer closeCache()

	hub := events.NewHub()
	m := metrics.NewMetrics()
	svc := services.New(store, services.Options{
		Auth:      cfg.Auth,
		DailyGoal: cfg.Learning.DailyXPGoal,
		Cache:     userCache,
		Events:    hub,
		Metrics:   m,
	})

	cookieStore := sessions.NewCookieStore([]byte(cfg.Auth.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(cfg.Scheduler, svc.Streaks)
		if err := jobs.Start(); err != nil {
			return err
		}
		defer jobs.Stop()
	}

	r := newRouter(app{
		store:    store,
		svc:      svc,
		sessions: cookieStore,
		hub:      hub,
		metrics:  m,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Handler:      c.Handler(r),
		Addr:         cfg.Server.Addr,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
	}

	go func() {
		log.Printf("Sunucu başlatılıyor: %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Sunucu hatası: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Sunucu kapatılıyor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newUserCache REDIS_ADDR tanımlıysa Redis, değilse bellek içi önbellek döner.
func newUserCache(cfg config.RedisConfig) (cache.UserCache, func(), error) {
	if cfg.Addr == "" {
		return cache.NewMemory(cfg.UserTTL), func() {}, nil
	}
	rc, err := cache.NewRedis(cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Redis önbelleği kullanılıyor: %s", cfg.Addr)
	return rc, func() { rc.Close() }, nil
}

func newRouter(a app) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(a.metrics))

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", handlers.Health(a.store)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	optional := middleware.OptionalAuth(a.svc.Auth, a.sessions)

	// Public API endpoints
	api.HandleFunc("/auth/signup", handlers.Signup(a.svc.Auth)).Methods("POST")
	api.HandleFunc("/auth/signin", handlers.Signin(a.svc.Auth, a.sessions)).Methods("POST")
	api.HandleFunc("/auth/refresh", handlers.RefreshToken(a.svc.Auth)).Methods("POST")

	api.Handle("/lessons", optional(handlers.GetLessons(a.svc.Catalog, a.svc.Users))).Methods("GET")
	api.HandleFunc("/lessons/categories", handlers.GetCategories(a.svc.Catalog)).Methods("GET")
	api.HandleFunc("/lessons/{id}", handlers.GetLesson(a.svc.Catalog)).Methods("GET")
	api.HandleFunc("/achievements/{userId}", handlers.GetAchievements(a.svc.Achievements)).Methods("GET")
	api.HandleFunc("/leaderboard", handlers.GetLeaderboard(a.svc.Leaderboard)).Methods("GET")
	api.HandleFunc("/profile/{username}", handlers.GetPublicProfile(a.svc.Users)).Methods("GET")

	// Protected API endpoints
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(a.svc.Auth, a.sessions))

	protected.HandleFunc("/auth/signout", handlers.Signout(a.svc.Auth, a.sessions)).Methods("POST")
	protected.HandleFunc("/progress/update", handlers.UpdateProgress(a.svc.Ledger)).Methods("POST")
	protected.HandleFunc("/achievements/{id}/progress", handlers.RecordAchievementProgress(a.svc.Achievements)).Methods("POST")

	protected.HandleFunc("/user/profile", handlers.GetMyProfile(a.svc.Users)).Methods("GET")
	protected.HandleFunc("/user/progress", handlers.GetMyProgress(a.svc.Ledger)).Methods("GET")
	protected.HandleFunc("/user/password", handlers.ChangePassword(a.svc.Users)).Methods("PUT")
	protected.HandleFunc("/user/daily-goal", handlers.UpdateDailyGoal(a.svc.Users)).Methods("PUT")
	protected.HandleFunc("/dashboard", handlers.GetDashboard(a.svc.Dashboard)).Methods("GET")

	protected.HandleFunc("/snippets", handlers.GetSnippets(a.svc.Snippets)).Methods("GET")
	protected.HandleFunc("/snippets", handlers.CreateSnippet(a.svc.Snippets)).Methods("POST")
	protected.HandleFunc("/snippets/{id}", handlers.DeleteSnippet(a.svc.Snippets)).Methods("DELETE")

	// Alıştırma oturumları
	protected.HandleFunc("/practice", handlers.GetPractice(a.svc.Practice)).Methods("GET")
	protected.HandleFunc("/practice", handlers.StartPractice(a.svc.Practice)).Methods("POST")
	protected.HandleFunc("/practice/{id}/finish", handlers.FinishPractice(a.svc.Practice)).Methods("POST")

	// Ders notları
	protected.HandleFunc("/notes", handlers.GetNotes(a.svc.Notes)).Methods("GET")
	protected.HandleFunc("/notes", handlers.CreateNote(a.svc.Notes)).Methods("POST")
	protected.HandleFunc("/notes/{id}", handlers.UpdateNote(a.svc.Notes)).Methods("PUT")
	protected.HandleFunc("/notes/{id}", handlers.DeleteNote(a.svc.Notes)).Methods("DELETE")

	protected.HandleFunc("/sessions", handlers.GetSessions(a.svc.Auth)).Methods("GET")
	protected.HandleFunc("/sessions/terminate-all", handlers.TerminateAllSessions(a.svc.Auth)).Methods("POST")
	protected.HandleFunc("/sessions/{id}", handlers.TerminateSession(a.svc.Auth)).Methods("DELETE")

	// Seviye ve başarı olayları
	protected.HandleFunc("/ws/events", handlers.EventStream(a.hub))

	return r
}
