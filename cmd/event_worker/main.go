package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/pkg/events"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-events", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if _, err := helpers.DeclareQueue(ch, cfg.RabbitMQEventsQueue); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			if err := handle(logger, msg.Type, msg.Body); err != nil {
				helpers.LogWarn(logger, "bad event", err, logrus.Fields{"type": msg.Type})
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("event worker started")
	select {
	case <-stop:
		logger.Info("event worker stopping")
	case <-done:
		logger.Warn("delivery channel closed")
	}
}

// handle decodes one event and writes it to the log. The AMQP type property,
// when present, must agree with the encoded type.
func handle(logger logrus.FieldLogger, msgType string, body []byte) error {
	e, err := events.Decode(body)
	if err != nil {
		return err
	}
	if msgType != "" && msgType != e.Type {
		return fmt.Errorf("event type mismatch: property %q, body %q", msgType, e.Type)
	}
	logger.WithFields(logrus.Fields{
		"event":       e.Type,
		"resource_id": e.ResourceID,
		"subject_id":  e.SubjectID,
		"occurred_at": e.OccurredAt,
		"data":        e.Data,
	}).Info("domain event")
	return nil
}
