package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/email"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/kafka"
	"go.uber.org/zap"
)

// Consumer keeps the customers replica in sync and sends order confirmation
// emails. Both topics share one consumer group; an error leaves the offset
// uncommitted so the message redelivers.
type Consumer struct {
	customerRepo repository.CustomerRepository
	emailSender  email.Sender
	logger       *zap.Logger
}

func NewConsumer(customerRepo repository.CustomerRepository, emailSender email.Sender, logger *zap.Logger) *Consumer {
	return &Consumer{
		customerRepo: customerRepo,
		emailSender:  emailSender,
		logger:       logger,
	}
}

func (c *Consumer) Start(ctx context.Context, brokers []string, groupID string) {
	consumerGroup := kafka.NewConsumerGroup(
		brokers,
		groupID,
		[]string{"customer_events", "order_events"},
		c.processMessage,
		c.logger,
	)

	consumerGroup.Run(ctx)
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	applog.Info(
		ctx,
		c.logger,
		"Processing message",
		zap.String("topic", msg.Topic),
	)

	type EventWrapper struct {
		Event   string          `json:"event"`
		Payload json.RawMessage `json:"payload"`
	}

	var wrapper EventWrapper
	if err := json.Unmarshal(msg.Value, &wrapper); err != nil {
		applog.Error(ctx, c.logger, "Error unmarshalling wrapper", zap.Error(err))
		return err
	}

	switch wrapper.Event {
	case "CustomerRegistered":
		var event domain.CustomerRegisteredEvent
		if err := json.Unmarshal(wrapper.Payload, &event); err != nil {
			applog.Error(ctx, c.logger, "Error parsing CustomerRegistered event", zap.Error(err))
			return nil
		}

		if err := c.customerRepo.SaveCustomerReplica(ctx, &event); err != nil {
			applog.Error(ctx, c.logger, "Error saving customer replica", zap.Error(err))
			return err
		}
	case "OrderCreated":
		var event domain.OrderCreatedEvent
		if err := json.Unmarshal(wrapper.Payload, &event); err != nil {
			applog.Error(ctx, c.logger, "Error parsing OrderCreated event", zap.Error(err))
			return nil
		}

		if event.Email == "" {
			applog.Warn(
				ctx,
				c.logger,
				"OrderCreated event without email, skipping confirmation",
				zap.Int64("order_id", event.OrderID),
			)
			return nil
		}

		if err := c.emailSender.SendOrderConfirmation(ctx, event.Email, event); err != nil {
			applog.Error(ctx, c.logger, "Error sending order confirmation", zap.Error(err))
			return err
		}
	default:
		applog.Warn(
			ctx,
			c.logger,
			"Ignored event type",
			zap.String("event", wrapper.Event),
		)
	}

	return nil
}
