package reminder

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/brunohmachado/barbearia-api/internal/config"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/notification"
)

const TypeReminderSweep = "reminder:sweep"

// Janela de ±15min em torno do alvo: combinada com a varredura a cada
// 15 minutos, cada agendamento cai em pelo menos uma varredura. O
// NotificationLog deduplica quando cai em duas.
const sweepWindow = 15 * time.Minute

// Worker varre periodicamente os agendamentos próximos e dispara os
// lembretes de 24h e 2h.
type Worker struct {
	repo   domain.Repository
	notif  *notification.Service
	cfg    *config.Config
	log    *zap.Logger
	server *asynq.Server
	sched  *asynq.Scheduler

	now func() time.Time
}

func NewWorker(
	repo domain.Repository,
	notif *notification.Service,
	cfg *config.Config,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:  repo,
		notif: notif,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Start sobe o scheduler (enfileira o sweep a cada 15 minutos) e o
// servidor asynq que o processa. Bloqueia; rode em goroutine.
func (w *Worker) Start() error {
	redisOpts := asynq.RedisClientOpt{
		Addr:     w.cfg.RedisAddr,
		Password: w.cfg.RedisPassword,
		DB:       w.cfg.RedisDB,
	}

	w.sched = asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: time.Local,
	})
	if _, err := w.sched.Register("@every 15m", asynq.NewTask(TypeReminderSweep, nil)); err != nil {
		return err
	}
	if err := w.sched.Start(); err != nil {
		return err
	}

	w.server = asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSweep, w.handleSweep)

	w.log.Info("reminder worker starting")
	return w.server.Run(mux)
}

func (w *Worker) Shutdown() {
	if w.sched != nil {
		w.sched.Shutdown()
	}
	if w.server != nil {
		w.server.Shutdown()
	}
}

func (w *Worker) handleSweep(ctx context.Context, _ *asynq.Task) error {
	now := w.now()

	if w.cfg.Notification.Reminder24h {
		w.sweep(ctx, now.Add(24*time.Hour), notification.TypeReminder24h)
	}
	if w.cfg.Notification.Reminder2h {
		w.sweep(ctx, now.Add(2*time.Hour), notification.TypeReminder2h)
	}
	return nil
}

// sweep dispara o lembrete para agendamentos ativos cujo início cai em
// [target-15min, target+15min). Falha de envio de um não interrompe os
// demais.
func (w *Worker) sweep(ctx context.Context, target time.Time, t notification.Type) {
	start := target.Add(-sweepWindow)
	end := target.Add(sweepWindow)

	appointments, err := w.repo.ListAppointmentsForReminder(ctx, start, end)
	if err != nil {
		w.log.Error("reminder sweep query failed",
			zap.String("type", string(t)),
			zap.Error(err),
		)
		return
	}

	for i := range appointments {
		ap := &appointments[i]

		sent, err := w.notif.HasSent(ctx, ap.ID, t)
		if err != nil {
			w.log.Error("reminder dedupe check failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}
		if sent {
			continue
		}

		w.notif.Notify(ctx, ap, t)
	}

	if len(appointments) > 0 {
		w.log.Info("reminder sweep done",
			zap.String("type", string(t)),
			zap.Int("candidates", len(appointments)),
		)
	}
}
