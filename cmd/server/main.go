package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	adoptionapp "github.com/shelterhq/backend/internal/application/adoption"
	animalapp "github.com/shelterhq/backend/internal/application/animal"
	annotationapp "github.com/shelterhq/backend/internal/application/annotation"
	auditapp "github.com/shelterhq/backend/internal/application/audit"
	identityapp "github.com/shelterhq/backend/internal/application/identity"
	medicalapp "github.com/shelterhq/backend/internal/application/medical"
	personapp "github.com/shelterhq/backend/internal/application/person"
	reportapp "github.com/shelterhq/backend/internal/application/report"
	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/infrastructure/auth"
	"github.com/shelterhq/backend/internal/infrastructure/config"
	"github.com/shelterhq/backend/internal/infrastructure/logger"
	"github.com/shelterhq/backend/internal/infrastructure/persistence"
	"github.com/shelterhq/backend/internal/infrastructure/telemetry"
	"github.com/shelterhq/backend/internal/interfaces/http/handler"
	"github.com/shelterhq/backend/internal/interfaces/http/middleware"
	"github.com/shelterhq/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Shelter Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the token blacklist used for logout and revocation
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	pingCancel()
	log.Info("Redis connected successfully")

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	animalRepo := persistence.NewGormAnimalRepository(db.DB)
	intakeRepo := persistence.NewGormIntakeRepository(db.DB)
	outcomeRepo := persistence.NewGormOutcomeRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	fosterRepo := persistence.NewGormFosterRepository(db.DB)
	adoptionRepo := persistence.NewGormAdoptionRepository(db.DB)
	personRepo := persistence.NewGormPersonRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	photoRepo := persistence.NewGormPhotoRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Audit recorder shared by all mutating services
	recorder := auditapp.NewRecorder(auditRepo)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	authService := identityapp.NewAuthService(uow, userRepo, orgRepo, membershipRepo, jwtService, blacklist, log)
	orgService := identityapp.NewOrganizationService(uow, orgRepo, membershipRepo, recorder)
	membershipService := identityapp.NewMembershipService(uow, membershipRepo, userRepo, recorder)

	// Shelter services
	animalService := animalapp.NewAnimalService(uow, animalRepo, intakeRepo, outcomeRepo, fosterRepo, recorder)
	taskService := medicalapp.NewTaskService(uow, taskRepo, recordRepo, animalRepo, recurrencePolicyFromConfig(cfg.Medical), recorder)
	applicationService := adoptionapp.NewApplicationService(uow, applicationRepo, animalRepo, personRepo, recorder)
	finalizationService := adoptionapp.NewFinalizationService(uow, applicationRepo, fosterRepo, adoptionRepo, animalRepo, outcomeRepo, recorder)
	personService := personapp.NewPersonService(uow, personRepo, recorder)
	annotationService := annotationapp.NewAnnotationService(uow, noteRepo, photoRepo, animalRepo, personRepo, applicationRepo, recorder)
	auditService := auditapp.NewAuditService(auditRepo)
	metricsService := reportapp.NewMetricsService(animalRepo, intakeRepo, outcomeRepo, taskRepo, applicationRepo, fosterRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	membershipHandler := handler.NewMembershipHandler(membershipService)
	animalHandler := handler.NewAnimalHandler(animalService)
	medicalHandler := handler.NewMedicalHandler(taskService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	finalizationHandler := handler.NewFinalizationHandler(finalizationService)
	personHandler := handler.NewPersonHandler(personService)
	annotationHandler := handler.NewAnnotationHandler(annotationService)
	reportHandler := handler.NewReportHandler(metricsService)
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation failures with JSON field names
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Role guards. Staff covers day-to-day shelter operations, admin covers
	// organization and membership management.
	staffOnly := middleware.RequireRole(identity.RoleStaff)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	// Identity domain (registration, sessions, organizations, memberships)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/switch-organization", authHandler.SwitchOrganization)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	orgRoutes := router.NewDomainGroup("organization", "/organizations")
	orgRoutes.POST("", orgHandler.Create)
	orgRoutes.GET("/current", orgHandler.Get)
	orgRoutes.PUT("/current", adminOnly, orgHandler.Update)
	orgRoutes.DELETE("/current", adminOnly, orgHandler.Delete)
	orgRoutes.GET("/:id", orgHandler.GetByID)
	orgRoutes.GET("/members", membershipHandler.List)
	orgRoutes.POST("/members", adminOnly, membershipHandler.Grant)
	orgRoutes.PUT("/members/:user_id/role", adminOnly, membershipHandler.ChangeRole)
	orgRoutes.DELETE("/members/:user_id", adminOnly, membershipHandler.Revoke)

	// Animal domain (intake, lifecycle, location, outcome)
	animalRoutes := router.NewDomainGroup("animal", "/animals")
	animalRoutes.POST("", staffOnly, animalHandler.Intake)
	animalRoutes.GET("", animalHandler.List)
	animalRoutes.GET("/:id", animalHandler.GetByID)
	animalRoutes.POST("/:id/status", staffOnly, animalHandler.ChangeStatus)
	animalRoutes.PUT("/:id/attributes", staffOnly, animalHandler.UpdateAttributes)
	animalRoutes.PUT("/:id/location", staffOnly, animalHandler.SetLocation)
	animalRoutes.GET("/:id/outcome", animalHandler.GetOutcome)
	animalRoutes.GET("/:id/medical/tasks", medicalHandler.ListAnimalTasks)
	animalRoutes.GET("/:id/medical/records", medicalHandler.ListRecords)
	animalRoutes.POST("/:id/medical/records", staffOnly, medicalHandler.AddRecord)
	animalRoutes.GET("/:id/adoption", finalizationHandler.GetAdoption)
	animalRoutes.GET("/:id/fosters", finalizationHandler.ListFosterHistory)

	// Medical domain (compliance tasks). Volunteers and fosters work tasks,
	// so transitions are open to any member; scheduling is staff work.
	medicalRoutes := router.NewDomainGroup("medical", "/medical")
	medicalRoutes.POST("/tasks", staffOnly, medicalHandler.CreateTask)
	medicalRoutes.GET("/tasks", medicalHandler.ListTasks)
	medicalRoutes.GET("/tasks/due", medicalHandler.ListDueTasks)
	medicalRoutes.POST("/tasks/complete-batch", staffOnly, medicalHandler.BatchCompleteTasks)
	medicalRoutes.GET("/tasks/:id", medicalHandler.GetTask)
	medicalRoutes.POST("/tasks/:id/start", medicalHandler.StartTask)
	medicalRoutes.POST("/tasks/:id/submit-review", medicalHandler.SubmitTaskForReview)
	medicalRoutes.POST("/tasks/:id/hold", medicalHandler.HoldTask)
	medicalRoutes.POST("/tasks/:id/resume", medicalHandler.ResumeTask)
	medicalRoutes.POST("/tasks/:id/complete", medicalHandler.CompleteTask)
	medicalRoutes.POST("/tasks/:id/cancel", staffOnly, medicalHandler.CancelTask)
	medicalRoutes.PUT("/tasks/:id/schedule", staffOnly, medicalHandler.RescheduleTask)
	medicalRoutes.PUT("/tasks/:id/assignee", staffOnly, medicalHandler.ReassignTask)

	// Adoption domain (application pipeline, finalization, fostering)
	applicationRoutes := router.NewDomainGroup("application", "/applications")
	applicationRoutes.POST("", applicationHandler.Submit)
	applicationRoutes.GET("", applicationHandler.List)
	applicationRoutes.GET("/:id", applicationHandler.GetByID)
	applicationRoutes.POST("/:id/review", staffOnly, applicationHandler.MoveToReview)
	applicationRoutes.POST("/:id/approve", staffOnly, applicationHandler.Approve)
	applicationRoutes.POST("/:id/deny", staffOnly, applicationHandler.Deny)
	applicationRoutes.POST("/:id/withdraw", applicationHandler.Withdraw)

	adoptionRoutes := router.NewDomainGroup("adoption", "/adoptions")
	adoptionRoutes.POST("", staffOnly, finalizationHandler.FinalizeAdoption)

	fosterRoutes := router.NewDomainGroup("foster", "/fosters")
	fosterRoutes.POST("", staffOnly, finalizationHandler.PlaceFoster)
	fosterRoutes.POST("/:id/complete", staffOnly, finalizationHandler.CompleteFoster)
	fosterRoutes.POST("/:id/fail", staffOnly, finalizationHandler.FailFoster)

	// Person domain (adopters, fosters, surrenderers)
	personRoutes := router.NewDomainGroup("person", "/people")
	personRoutes.POST("", staffOnly, personHandler.Create)
	personRoutes.GET("", personHandler.List)
	personRoutes.GET("/:id", personHandler.GetByID)
	personRoutes.PUT("/:id", staffOnly, personHandler.Update)

	// Annotation domain (notes and photos on animals, people, applications)
	noteRoutes := router.NewDomainGroup("note", "/notes")
	noteRoutes.POST("", annotationHandler.AddNote)
	noteRoutes.GET("", annotationHandler.ListNotes)
	noteRoutes.PUT("/:id", annotationHandler.EditNote)
	noteRoutes.DELETE("/:id", staffOnly, annotationHandler.DeleteNote)

	photoRoutes := router.NewDomainGroup("photo", "/photos")
	photoRoutes.POST("", annotationHandler.AddPhoto)
	photoRoutes.GET("", annotationHandler.ListPhotos)
	photoRoutes.DELETE("/:id", staffOnly, annotationHandler.DeletePhoto)

	// Report domain (shelter metrics)
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/dashboard", staffOnly, reportHandler.Dashboard)
	reportRoutes.GET("/species", staffOnly, reportHandler.SpeciesDistribution)
	reportRoutes.GET("/intake-trend", staffOnly, reportHandler.IntakeTrend)
	reportRoutes.GET("/pipeline", staffOnly, reportHandler.PipelineStages)
	reportRoutes.GET("/live-release-rate", staffOnly, reportHandler.LiveReleaseRate)
	reportRoutes.GET("/compliance-rate", staffOnly, reportHandler.ComplianceRate)

	// Audit domain (append-only change log)
	auditRoutes := router.NewDomainGroup("audit", "/audit")
	auditRoutes.GET("/entries", adminOnly, auditHandler.List)
	auditRoutes.GET("/entries/:entity_type/:entity_id", adminOnly, auditHandler.ListForEntity)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(orgRoutes).
		Register(animalRoutes).
		Register(medicalRoutes).
		Register(applicationRoutes).
		Register(adoptionRoutes).
		Register(fosterRoutes).
		Register(personRoutes).
		Register(noteRoutes).
		Register(photoRoutes).
		Register(reportRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// recurrencePolicyFromConfig builds the follow-up interval table from config.
// Surgery has no entry and schedules no follow-up.
func recurrencePolicyFromConfig(cfg config.MedicalConfig) medical.RecurrencePolicy {
	intervals := map[medical.TaskType]medical.RecurrenceInterval{
		medical.TaskTypeVaccine:   {Months: cfg.VaccineFollowUpMonths},
		medical.TaskTypeCheckup:   {Months: cfg.CheckupFollowUpMonths},
		medical.TaskTypeExam:      {Months: cfg.ExamFollowUpMonths},
		medical.TaskTypeTreatment: {Days: cfg.TreatmentFollowUpDays},
		medical.TaskTypeOther:     {Days: cfg.OtherFollowUpDays},
	}
	return medical.NewRecurrencePolicy(intervals)
}
