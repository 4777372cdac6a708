package main

import (
	"context"
	"log"

	"ticketing-service/config"
	"ticketing-service/internal/module/booking/handler"
	"ticketing-service/internal/module/booking/repositories"
	"ticketing-service/internal/module/booking/usecases"
	"ticketing-service/internal/pkg/database"
	"ticketing-service/internal/pkg/http"
	"ticketing-service/internal/pkg/httpclient"
	log_internal "ticketing-service/internal/pkg/log"
	"ticketing-service/internal/pkg/messagestream"
	"ticketing-service/internal/pkg/middleware"
	"ticketing-service/internal/pkg/redis"
	"ticketing-service/internal/pkg/scheduler"
	router "ticketing-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, sched := initService(cfg)

	for _, r := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(r)
	}

	go sched.run()

	http.StartHttpServer(app, cfg.HttpServer.Port)
}

type schedulerRuntime struct {
	scheduler *scheduler.Scheduler
	cfg       *config.Config
	handler   *handler.BookingHandler
}

func (s *schedulerRuntime) run() {
	go s.scheduler.StartMonitoring(&s.cfg.Redis)
	go s.scheduler.StartPeriodicSweep(&s.cfg.Redis, &s.cfg.Booking)
	s.scheduler.StartHandler(&s.cfg.Redis,
		[]string{scheduler.TypeBookingExpire, scheduler.TypeExpirySweep},
		[]func(ctx context.Context, t *asynq.Task) error{
			s.handler.ExpireReservation,
			s.handler.SweepExpiredReservations,
		},
	)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *schedulerRuntime) {
	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	locker := redis.SetupLocker(redisClient)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()

	// init message stream
	amqp := messagestream.NewAmqp(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create subscriber")
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create publisher")
	}

	// init scheduler
	sched := &scheduler.Scheduler{Log: logger}
	asynqClient := sched.InitClient(&cfg.Redis)
	asynqInspector := sched.InitInspector(&cfg.Redis)

	bookingRepo := repositories.New(db, logger, httpClient, redisClient, asynqClient, asynqInspector, &cfg.UserService, &cfg.Paystack)
	bookingUsecase := usecases.New(bookingRepo, logger, publisher, locker, &cfg.Paystack, &cfg.Booking)

	m := &middleware.Middleware{
		Log:  logger,
		Repo: bookingRepo,
	}

	bookingHandler := &handler.BookingHandler{
		Log:       logger,
		Validator: validator.New(),
		Usecase:   bookingUsecase,
	}

	var messageRouters []*message.Router

	eventUpdateRouter, err := messagestream.NewRouter(publisher, "event_updated_poisoned", "event_updated_handler", "event_updated", subscriber, bookingHandler.ConsumeEventUpdate)
	if err != nil {
		logger.Ctx(ctx).Error("failed to create event_updated router")
	}
	messageRouters = append(messageRouters, eventUpdateRouter)

	serverHttp := http.SetupHttpEngine()
	app := router.Initialize(serverHttp, bookingHandler, m)

	runtime := &schedulerRuntime{scheduler: sched, cfg: cfg, handler: bookingHandler}

	return app, messageRouters, runtime
}
