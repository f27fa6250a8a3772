package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/pkg/events"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrNotFound)
	ErrOrderLocked        = fmt.Errorf("order can no longer be changed: %w", domain.ErrNotFound)
)

// EventPublisher is satisfied by *helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

const sideEffectTimeout = 3 * time.Second

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, e events.Event) {
	if pub == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := pub.PublishJSON(c, e.Type, e); err != nil && logger != nil {
		helpers.LogWarn(logger, "publish event failed", err, logrus.Fields{"event": e.Type, "resource_id": e.ResourceID})
	}
}

func configurationError(err error) error {
	if errors.Is(err, helpers.ErrMissingSecret) {
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return err
}
