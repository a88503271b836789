package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sellmypostoffice/valuation-api/internal/config"
	"github.com/sellmypostoffice/valuation-api/internal/infra/auth"
	"github.com/sellmypostoffice/valuation-api/internal/infra/database"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/handlers"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/middleware"
	"github.com/sellmypostoffice/valuation-api/internal/infra/integration/maps"
	"github.com/sellmypostoffice/valuation-api/internal/infra/mail"
	"github.com/sellmypostoffice/valuation-api/internal/infra/notify"
	"github.com/sellmypostoffice/valuation-api/internal/infra/queue"
	"github.com/sellmypostoffice/valuation-api/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Running without the signing secret or admin credentials would
		// silently disable the admin gate.
		log.Fatalf("configuration: %v", err)
	}

	// Storage: Postgres when configured, in-memory otherwise.
	var kv database.KV
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()

		pg := database.NewPostgresKV(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("database schema: %v", err)
		}
		kv = pg
	} else {
		log.Println("DATABASE_URL not set, using in-memory storage")
		kv = database.NewMemoryKV()
	}

	valuationRepo := database.NewValuationRepository(kv)
	leadRepo := database.NewLeadRepository(kv)
	blogRepo := database.NewBlogPostRepository(kv)

	calcCfg := usecase.DefaultCalculatorConfig()
	calc := usecase.NewCalculator(calcCfg)

	// Report delivery: gomail over SMTP, enriched with Street View.
	mailSender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	mapsClient := maps.NewClient(cfg.GoogleMapsAPIKey)
	directDispatch := notify.NewDispatcher(mailSender, mapsClient, calcCfg, cfg.SiteBaseURL)

	// With RabbitMQ, report jobs go through the durable queue and a
	// consumer sends them. Without it, dispatch happens in-process.
	var dispatcher usecase.NotificationDispatcher = directDispatch
	var rabbitConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, using direct dispatch: %v", err)
		} else {
			defer rmq.Close()
			rabbitConn = rmq.Conn
			dispatcher = queue.NewProducer(rmq.Ch)

			worker := queue.NewWorker(rmq.Ch, valuationRepo, directDispatch)
			go worker.Start(queue.QueueName)
		}
	}

	intakeUC := usecase.NewIntakeUseCase(valuationRepo, calc, dispatcher)
	leadUC := usecase.NewCaptureLeadUseCase(leadRepo)
	adminUC := usecase.NewAdminUseCase(valuationRepo, leadRepo, dispatcher)
	blogUC := usecase.NewBlogUseCase(blogRepo)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.IsProduction())

	valuationHandler := handlers.NewValuationHandler(intakeUC, valuationRepo)
	leadHandler := handlers.NewLeadHandler(leadUC)
	authHandler := handlers.NewAuthHandler(tokens, cfg.AdminUser, cfg.AdminPassword)
	adminHandler := handlers.NewAdminHandler(adminUC)
	blogHandler := handlers.NewBlogHandler(blogUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.SMTPHost, cfg.GoogleMapsAPIKey != "")

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.SiteBaseURL, "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Post("/valuations", valuationHandler.HandleStart)
	r.Get("/valuations/{id}", valuationHandler.HandleGet)
	r.Patch("/valuations/{id}", valuationHandler.HandleComplete)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/blog-posts", blogHandler.HandleGet)
	r.Post("/admin/login", authHandler.HandleLogin)

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens))

		r.Get("/admin/me", authHandler.HandleMe)
		r.Post("/admin/logout", authHandler.HandleLogout)

		r.Get("/admin/valuations", adminHandler.HandleListValuations)
		r.Delete("/admin/valuations/{id}", adminHandler.HandleDeleteValuation)
		r.Post("/admin/valuations/{id}/resend", adminHandler.HandleResend)

		r.Get("/admin/leads", adminHandler.HandleListLeads)
		r.Delete("/admin/leads/{id}", adminHandler.HandleDeleteLead)

		r.Get("/admin/export", adminHandler.HandleExport)
		r.Get("/admin/stats", adminHandler.HandleStats)

		r.Post("/blog-posts", blogHandler.HandleCreate)
		r.Put("/blog-posts", blogHandler.HandleUpdate)
		r.Delete("/blog-posts", blogHandler.HandleDelete)
	})

	addr := ":" + cfg.Port
	log.Printf("valuation API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
