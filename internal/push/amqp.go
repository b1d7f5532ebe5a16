package push

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPSource reads the order stream from a fanout exchange, for deployments
// that relay order events through RabbitMQ instead of exposing a websocket.
// Each subscription binds its own exclusive, auto-deleted queue.
type AMQPSource struct {
	url      string
	exchange string
	logger   *zap.Logger
}

func NewAMQPSource(url, exchange string, logger *zap.Logger) *AMQPSource {
	return &AMQPSource{url: url, exchange: exchange, logger: logger}
}

func (s *AMQPSource) Subscribe(ctx context.Context) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	deliveries, err := s.bind(ch)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	sub := &amqpSubscription{
		conn:   conn,
		ch:     ch,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		logger: s.logger,
	}
	go sub.readLoop(deliveries)

	s.logger.Info("push channel connected", zap.String("exchange", s.exchange))
	return sub, nil
}

func (s *AMQPSource) bind(ch *amqp.Channel) (<-chan amqp.Delivery, error) {
	if err := ch.ExchangeDeclare(s.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declaring exchange %s: %w", s.exchange, err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declaring queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", s.exchange, false, nil); err != nil {
		return nil, fmt.Errorf("binding queue to %s: %w", s.exchange, err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consuming %s: %w", q.Name, err)
	}
	return deliveries, nil
}

type amqpSubscription struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

func (s *amqpSubscription) Events() <-chan Event {
	return s.events
}

func (s *amqpSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.ch.Close()
		err = s.conn.Close()
	})
	return err
}

func (s *amqpSubscription) readLoop(deliveries <-chan amqp.Delivery) {
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case d, ok := <-deliveries:
			if !ok {
				select {
				case <-s.done:
				default:
					s.logger.Error("push channel closed by broker")
				}
				return
			}

			ev, err := Decode(d.Body)
			if err != nil {
				s.logger.Warn("ignoring malformed push payload", zap.Error(err), zap.Int("bytes", len(d.Body)))
				continue
			}

			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}
}
