package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/stakelabs-io/staking-ledger/internal/config"
	"github.com/stakelabs-io/staking-ledger/internal/staking"
)

// TransitionEventMessage is the wire schema of a published transition
// event. Amounts travel as decimal strings.
type TransitionEventMessage struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Account   string `json:"account"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// QueueManager owns the AMQP connection and the fanout exchange the
// transition events are published to.
type QueueManager struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	conn, err := amqp.Dial(amqpURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		//nolint:errcheck
		conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		//nolint:errcheck
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &QueueManager{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		timeout:  cfg.PublishTimeout,
		logger:   logger.With(zap.String("module", "queue")),
	}, nil
}

func (qm *QueueManager) PublishTransitionEvent(ctx context.Context, event staking.Event) error {
	message := TransitionEventMessage{
		EventID:   uuid.New().String(),
		Type:      event.Type.String(),
		Account:   event.Account,
		Amount:    event.Amount.String(),
		Timestamp: event.Timestamp,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal transition event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, qm.timeout)
	defer cancel()

	err = qm.channel.PublishWithContext(
		publishCtx,
		qm.exchange,
		event.Type.String(), // routing key, ignored by fanout but useful in traces
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    message.EventID,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	qm.logger.Debug("published transition event",
		zap.String("type", message.Type),
		zap.String("account", message.Account),
		zap.String("amount", message.Amount),
	)

	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all
// resources are properly released.
func (qm *QueueManager) Shutdown() {
	qm.logger.Info("shutting down queue manager")
	if err := qm.channel.Close(); err != nil {
		qm.logger.Error("failed to close queue channel", zap.Error(err))
	}
	if err := qm.conn.Close(); err != nil {
		qm.logger.Error("failed to close queue connection", zap.Error(err))
	}
}

func amqpURL(cfg *config.QueueConfig) string {
	if cfg.User == "" {
		return cfg.Url
	}
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, hostOf(cfg.Url))
}

// hostOf strips a scheme prefix so credentials can be spliced in
// regardless of whether the configured url carries one.
func hostOf(url string) string {
	for _, scheme := range []string{"amqp://", "amqps://"} {
		if len(url) > len(scheme) && url[:len(scheme)] == scheme {
			return url[len(scheme):]
		}
	}
	return url
}
