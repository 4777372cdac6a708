package scheduler

import (
	"context"
	"fmt"
	"net/http"

	"ticketing-service/config"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	// TypeBookingExpire is scheduled per reservation at its expiry deadline.
	TypeBookingExpire = "booking:expire"
	// TypeExpirySweep runs periodically and expires anything the per-booking
	// tasks missed.
	TypeExpirySweep = "booking:sweep_expired"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func redisConnOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisConnOpt(cfg))
}

func (s *Scheduler) InitInspector(cfg *config.RedisConfig) *asynq.Inspector {
	return asynq.NewInspector(redisConnOpt(cfg))
}

// StartHandler runs the asynq worker for the given task types.
func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFuncs []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	srv := asynq.NewServer(
		redisConnOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux.HandleFunc(taskType, handlerFuncs[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error start handler scheduler: %v", err))
	}
}

// StartPeriodicSweep registers the recurring expiry sweep.
func (s *Scheduler) StartPeriodicSweep(cfg *config.RedisConfig, bookingCfg *config.BookingConfig) {
	ctx := context.Background()
	scheduler := asynq.NewScheduler(redisConnOpt(cfg), nil)

	task := asynq.NewTask(TypeExpirySweep, nil)
	if _, err := scheduler.Register(fmt.Sprintf("@every %s", bookingCfg.SweepInterval), task); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error register sweep task: %v", err))
		return
	}

	if err := scheduler.Run(); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error start periodic scheduler: %v", err))
	}
}

// StartMonitoring serves the asynqmon dashboard on its own port.
func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig) {
	ctx := context.Background()
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisConnOpt(cfg),
	})

	http.Handle(h.RootPath()+"/", h)

	if err := http.ListenAndServe(":8090", nil); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error start monitoring scheduler: %v", err))
	}
}
