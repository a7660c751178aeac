package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const mailQueueKey = "mail:outbound"

// Dispatcher queues outbound messages in redis and delivers them from a
// background worker, so request handlers never block on SMTP.
type Dispatcher struct {
	client *redis.Client
	sender Sender
}

func NewDispatcher(cfg config.RedisConfig, sender Sender) (*Dispatcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Dispatcher{client: client, sender: sender}, nil
}

// Enqueue pushes a message onto the outbound queue. An error here means the
// message was never accepted; callers relying on delivery must roll back.
func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode mail message: %w", err)
	}

	if err := d.client.LPush(ctx, mailQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail message: %w", err)
	}

	return nil
}

// Run consumes the queue until ctx is canceled. Delivery failures are logged
// and the message is dropped; the enqueue side has already reported success.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Info("Mail dispatcher started")

	for {
		result, err := d.client.BRPop(ctx, 5*time.Second, mailQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				logger.Info("Mail dispatcher stopped")
				return
			}
			logger.Error("Failed to pop mail message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		if len(result) < 2 {
			continue
		}

		var msg Message
		if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
			logger.Error("Failed to decode mail message", zap.Error(err))
			continue
		}

		if err := d.sender.Send(msg); err != nil {
			logger.Error("Failed to deliver mail",
				zap.String("to", msg.To),
				zap.Error(err),
			)
			continue
		}

		logger.Info("Mail delivered", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	}
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
