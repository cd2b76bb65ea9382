package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"command-logger/internal/domain/model"
	"command-logger/internal/domain/ports"
)

const (
	notificationTitle       = "Command Triggered"
	notificationDescription = "A command or trigger was used in the server."
	notificationColor       = 0x2F3136
	footerSuffix            = " • logged"

	// Discord rejects embeds whose field values exceed 1024 characters or names exceed 256.
	maxFieldValue = 1024
	maxFieldName  = 256
	ellipsis      = "…"
)

// CommandLog turns command events into notifications and hands them to a notifier.
type CommandLog struct {
	notifier    ports.Notifier
	logger      ports.Logger
	displayName string
	now         func() time.Time
}

// CommandLogConfig controls how notifications are rendered.
type CommandLogConfig struct {
	DisplayName string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewCommandLog constructs a CommandLog use case.
func NewCommandLog(notifier ports.Notifier, logger ports.Logger, cfg CommandLogConfig) *CommandLog {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &CommandLog{
		notifier:    notifier,
		logger:      logger,
		displayName: cfg.DisplayName,
		now:         now,
	}
}

// Notify formats the event and delivers it. Delivery failures are returned unchanged
// so callers can inspect *model.DeliveryError.
func (c *CommandLog) Notify(ctx context.Context, event model.CommandEvent) error {
	start := time.Now()
	notification := BuildNotification(event, c.displayName, c.now())

	if err := c.notifier.Send(ctx, notification); err != nil {
		c.logger.Error(ctx, "failed to deliver command notification",
			"command", event.Command,
			"error", err,
		)
		return err
	}

	c.logger.Info(ctx, "command notification delivered",
		"command", event.Command,
		"extra_fields", len(event.Extra),
		"duration", time.Since(start),
	)
	return nil
}

// BuildNotification renders event as the rich message posted to the log channel.
func BuildNotification(event model.CommandEvent, displayName string, now time.Time) model.Notification {
	fields := make([]model.NotificationField, 0, 4+len(event.Extra))
	fields = append(fields,
		newField("Command / Trigger", fmt.Sprintf("`%s`", event.Command), true),
		newField("Who triggered it", fmt.Sprintf("%s (`%s`)", event.Username, event.UserID), true),
		newField("Bot used", event.BotName, true),
		newField("What it did", event.Description, false),
	)

	for _, extra := range event.Extra {
		fields = append(fields, newField(extra.Key, extra.Value, false))
	}

	return model.Notification{
		Title:       notificationTitle,
		Description: notificationDescription,
		Timestamp:   now.UTC(),
		Color:       notificationColor,
		Author:      event.BotName,
		Fields:      fields,
		Footer:      displayName + footerSuffix,
	}
}

func newField(name, value string, inline bool) model.NotificationField {
	return model.NotificationField{
		Name:   truncate(name, maxFieldName),
		Value:  truncate(value, maxFieldValue),
		Inline: inline,
	}
}

// truncate keeps at most limit characters, replacing the tail with an ellipsis
// so the result is limit-4+1 characters long.
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit-4]) + ellipsis
}
