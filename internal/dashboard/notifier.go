package dashboard

import (
	"context"

	applog "focusflow/internal/log"
)

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a user-facing message emitted by the services, e.g.
// "expenses could not be refreshed" after a partial load failure.
type Notification struct {
	Level   NotificationLevel
	Title   string
	Message string
}

// Notifier receives user-facing notifications. Implementations must not
// block; services call Notify inline on their own goroutines.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the structured log. It is the
// default sink when no UI channel is attached.
type LogNotifier struct {
	logger *applog.Logger
}

func NewLogNotifier(logger *applog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent(applog.ComponentDashboard)}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	switch notification.Level {
	case LevelError:
		n.logger.ErrorContext(ctx, notification.Title, "detail", notification.Message)
	case LevelSuccess:
		n.logger.InfoContext(ctx, notification.Title, "detail", notification.Message)
	default:
		n.logger.InfoContext(ctx, notification.Title, "detail", notification.Message)
	}
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}
