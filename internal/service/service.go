package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// EventPublisher receives domain events after the owning transaction has
// committed. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Caller is the identity attached to a request. Anonymous callers have an
// empty Role and no UserID.
type Caller struct {
	UserID *uint
	Role   models.Role
	Name   string
}

func (c Caller) Anonymous() bool { return c.Role == "" }

func (c Caller) owns(userID *uint) bool {
	return c.UserID != nil && userID != nil && *c.UserID == *userID
}

const publishTimeout = 5 * time.Second

func publish(ctx context.Context, p EventPublisher, key any, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "type", event["type"], "error", err)
	}
}

func nowFunc(f func() time.Time) time.Time {
	if f != nil {
		return f().UTC()
	}
	return time.Now().UTC()
}
