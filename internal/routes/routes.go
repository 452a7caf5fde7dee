package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	"github.com/brunohmachado/barbearia-api/internal/config"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/handlers"
	infraRepo "github.com/brunohmachado/barbearia-api/internal/infra/repository"
	"github.com/brunohmachado/barbearia-api/internal/middleware"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	ucAppointment "github.com/brunohmachado/barbearia-api/internal/usecase/appointment"
	ucAvailability "github.com/brunohmachado/barbearia-api/internal/usecase/availability"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	redisClient *redis.Client,
	notifSvc *notification.Service,
	log *zap.Logger,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentRepository(db)
	availabilityCache := cache.NewAvailabilityCache(redisClient, log)

	policy := domain.BookingPolicy{
		MinAdvanceHours: cfg.Booking.MinAdvanceHours,
		MaxDaysAhead:    cfg.Booking.MaxDaysAhead,
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createPublicUC := ucAppointment.NewCreatePublicAppointment(
		appointmentRepo,
		notifSvc,
		policy,
		log,
	)

	createAdminUC := ucAppointment.NewCreateAdminAppointment(
		appointmentRepo,
		notifSvc,
		log,
	)

	cancelClientUC := ucAppointment.NewCancelByClient(
		appointmentRepo,
		notifSvc,
		cfg.Booking.ClientCancelHours,
		log,
	)

	cancelAdminUC := ucAppointment.NewCancelByAdmin(
		appointmentRepo,
		notifSvc,
		log,
	)

	rescheduleUC := ucAppointment.NewReschedule(
		appointmentRepo,
		notifSvc,
		policy,
		cfg.Booking.ClientCancelHours,
		log,
	)

	updateUC := ucAppointment.NewUpdateAppointment(appointmentRepo, log)
	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo, log)
	queriesUC := ucAppointment.NewQueries(appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — AVAILABILITY
	// ======================================================
	slotsUC := ucAvailability.NewGetAvailableSlots(appointmentRepo, cfg.Booking)
	monthUC := ucAvailability.NewGetMonthAvailability(slotsUC, availabilityCache, cfg.Booking, log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, availabilityCache)
	timeBlockHandler := handlers.NewTimeBlockHandler(db, availabilityCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAdminUC,
		updateUC,
		updateStatusUC,
		cancelAdminUC,
		queriesUC,
		availabilityCache,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		createPublicUC,
		cancelClientUC,
		rescheduleUC,
		queriesUC,
		slotsUC,
		monthUC,
		availabilityCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	notificationHandler := handlers.NewNotificationHandler(notifSvc)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/availability/month", publicHandler.MonthAvailability)

			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:token", publicHandler.GetByToken)
			publicAPI.PATCH("/appointments/:token/cancel", publicHandler.CancelByToken)
			publicAPI.PATCH("/appointments/:token/reschedule", publicHandler.RescheduleByToken)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/bootstrap", authHandler.Bootstrap)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (admin)
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			secured.GET("/me", meHandler.Get)

			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.PATCH("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Deactivate)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Deactivate)

			secured.GET("/barbers/:barberId/working-hours", workingHoursHandler.Get)
			secured.PUT("/barbers/:barberId/working-hours", workingHoursHandler.Update)

			secured.GET("/time-blocks", timeBlockHandler.List)
			secured.POST("/time-blocks", timeBlockHandler.Create)
			secured.DELETE("/time-blocks/:id", timeBlockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.Calendar)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/appointments/:id/audit-logs", auditLogsHandler.ListByAppointment)
			secured.GET("/appointments/:id/notifications", notificationHandler.ListByAppointment)
			secured.POST("/notifications/:id/resend", notificationHandler.Resend)
		}
	}
}
