package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brunohmachado/barbearia-api/internal/config"
	dbpkg "github.com/brunohmachado/barbearia-api/internal/db"
	infraRepo "github.com/brunohmachado/barbearia-api/internal/infra/repository"
	"github.com/brunohmachado/barbearia-api/internal/logger"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	"github.com/brunohmachado/barbearia-api/internal/reminder"
	"github.com/brunohmachado/barbearia-api/internal/routes"
)

func main() {

	cfg := config.Load()

	logger.Init()
	defer logger.Sync()
	log := logger.Log

	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// SMTP configurado manda e-mail de verdade; sem SMTP, as
	// notificações vão para o log (dev).
	var provider notification.Provider
	if cfg.Notification.SMTPHost != "" {
		provider = notification.NewSMTPProvider(cfg.Notification)
	} else {
		provider = notification.NewLogProvider(log)
	}

	notifSvc := notification.NewService(db, provider, cfg.Notification, cfg.Business, log)

	// Lembretes 24h/2h rodam num worker asynq em background.
	appointmentRepo := infraRepo.NewAppointmentRepository(db)
	reminderWorker := reminder.NewWorker(appointmentRepo, notifSvc, cfg, log)
	go func() {
		if err := reminderWorker.Start(); err != nil {
			log.Error("reminder worker stopped", zap.Error(err))
		}
	}()
	defer reminderWorker.Shutdown()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisClient, notifSvc, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
