package notifier

import (
	"context"

	"StopLossCowboy/internal/model"
)

// Notifier delivers a run summary somewhere a human will see it.
type Notifier interface {
	Notify(ctx context.Context, report *model.RunReport) error
}

// NoopNotifier is used when no channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) Notify(context.Context, *model.RunReport) error { return nil }
