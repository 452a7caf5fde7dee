package db

import (
	"log"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/config"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.TimeBlock{},
		&models.Appointment{},
		&models.AppointmentAudit{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Última linha de defesa contra corrida de booking: a constraint de
	// exclusão rejeita dois agendamentos ativos sobrepostos do mesmo
	// barbeiro mesmo que ambos passem pela checagem de conflito.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            ) WHERE (status IN ('scheduled', 'confirmed'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
        END $$;
    `)

	return db
}
