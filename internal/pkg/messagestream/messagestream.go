package messagestream

import (
	"fmt"
	"time"

	"ticketing-service/config"

	"github.com/ThreeDotsLabs/watermill"
	amqp "github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type MessageStream interface {
	NewSubscriber() (message.Subscriber, error)
	NewPublisher() (message.Publisher, error)
}

type amqpStream struct {
	cfg    *config.MessageStreamConfig
	logger watermill.LoggerAdapter
}

func NewAmqp(cfg *config.MessageStreamConfig) MessageStream {
	return &amqpStream{
		cfg:    cfg,
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *amqpStream) uri() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", a.cfg.User, a.cfg.Password, a.cfg.Host, a.cfg.Port)
}

func (a *amqpStream) NewSubscriber() (message.Subscriber, error) {
	return amqp.NewSubscriber(amqp.NewDurableQueueConfig(a.uri()), a.logger)
}

func (a *amqpStream) NewPublisher() (message.Publisher, error) {
	return amqp.NewPublisher(amqp.NewDurableQueueConfig(a.uri()), a.logger)
}

// NewRouter builds a router consuming a single topic. Messages whose handler
// keeps failing after retries are shunted to the poison topic instead of
// blocking the queue.
func NewRouter(
	publisher message.Publisher,
	poisonTopic string,
	handlerName string,
	topic string,
	subscriber message.Subscriber,
	handlerFunc func(msg *message.Message) error,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewStdLogger(false, false))
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: time.Second,
		}.Middleware,
		poisonQueue,
	)

	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
