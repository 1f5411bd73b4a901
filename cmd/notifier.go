package cmd

import (
	"context"
	"errors"

	"flight-booking/internal/usecase"
	"flight-booking/pkg/broker"

	"go.uber.org/zap"
)

// Notifier consumes booking events and mails customers until ctx is cancelled.
func Notifier(ctx context.Context, consumer *broker.Consumer, notifications usecase.NotificationService, logger *zap.Logger) error {
	logger.Info("Notifier started")

	err := consumer.Run(ctx, notifications.HandleMessage)
	if errors.Is(err, context.Canceled) {
		logger.Info("Notifier stopped")
		return nil
	}
	return err
}
