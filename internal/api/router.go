package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rutamundi/backoffice/internal/api/handler"
	"github.com/rutamundi/backoffice/internal/api/middleware"
	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/service"
	"github.com/rutamundi/backoffice/internal/core/session"
	"github.com/rutamundi/backoffice/internal/infrastructure/config"
	mongodb "github.com/rutamundi/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/rutamundi/backoffice/internal/infrastructure/db/redis"
	"github.com/rutamundi/backoffice/pkg/piicrypt"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	client *mongo.Client,
	db *mongo.Database,
	rdb *redis.Client,
	notifier ports.LeadNotifier,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Repositories ---
	advisorRepo := mongodb.NewAdvisorRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	relationshipRepo := mongodb.NewRelationshipRepository(client, db)
	documentRepo := mongodb.NewDocumentRepository(db)
	loyaltyRepo := mongodb.NewLoyaltyRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	leadDedup := redisdb.NewLeadDedup(rdb)

	piiKey, err := piicrypt.ParseKey(cfg.PIIEncryptionKey)
	if err != nil {
		// Document operations will fail individually; everything else
		// keeps working.
		log.Warn().Msg("PII encryption key missing or invalid, travel document storage disabled")
		piiKey = nil
	}

	// --- Services ---
	codec := session.NewCodec(cfg.AuthSecret)
	authService := service.NewAuthService(advisorRepo, codec, log)
	advisorService := service.NewAdvisorService(advisorRepo, log)
	clientService := service.NewClientService(clientRepo, relationshipRepo, loyaltyRepo, noteRepo, taskRepo, log)
	relationshipService := service.NewRelationshipService(relationshipRepo, clientRepo, log)
	documentService := service.NewDocumentService(documentRepo, piiKey, log)
	leadService := service.NewLeadService(clientRepo, noteRepo, leadDedup, notifier, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	advisorHandler := handler.NewAdvisorHandler(advisorService)
	clientHandler := handler.NewClientHandler(clientService)
	relationshipHandler := handler.NewRelationshipHandler(relationshipService)
	documentHandler := handler.NewDocumentHandler(documentService)
	leadHandler := handler.NewLeadHandler(leadService)

	// The gate only guards /admin paths; everything else passes through.
	e.Use(middleware.SessionGate(codec, advisorRepo))

	// --- Public routes ---
	e.POST("/api/contact", leadHandler.Submit)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Session routes ---
	e.POST("/admin/login", authHandler.Login)
	e.POST("/admin/logout", authHandler.Logout)

	// --- CRM routes (any authenticated advisor) ---
	admin := e.Group("/admin")
	admin.GET("/clients", clientHandler.List)
	admin.POST("/clients", clientHandler.Create)
	admin.GET("/clients/:id", clientHandler.Profile)
	admin.POST("/clients/:id/notes", clientHandler.AddNote)
	admin.POST("/clients/:id/tasks", clientHandler.AddTask)
	admin.PATCH("/tasks/:id", clientHandler.UpdateTaskStatus)
	admin.POST("/clients/:id/loyalty", clientHandler.AddLoyalty)
	admin.DELETE("/loyalty/:id", clientHandler.RemoveLoyalty)

	admin.GET("/clients/:id/relationships", relationshipHandler.List)
	admin.POST("/clients/:id/relationships", relationshipHandler.Add)
	admin.DELETE("/relationships/:id", relationshipHandler.Remove)

	admin.GET("/clients/:id/documents", documentHandler.List)
	admin.POST("/clients/:id/documents", documentHandler.Add)
	admin.DELETE("/documents/:id", documentHandler.Remove)

	// --- Staff management (DEVELOPER and MANAGEMENT only) ---
	users := e.Group("/admin/users", middleware.RequireRoles(
		string(domain.RoleDeveloper),
		string(domain.RoleManagement),
	))
	users.GET("", advisorHandler.List)
	users.POST("", advisorHandler.Create)
	users.PATCH("/:id", advisorHandler.Update)

	return e
}
