package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"command-logger/internal/adapter/logging"
	"command-logger/internal/domain/model"
)

type recordingNotifier struct {
	sent []model.Notification
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, n model.Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

var fixedNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

func banEvent() model.CommandEvent {
	return model.CommandEvent{
		Command:     "ban",
		Username:    "alice",
		UserID:      "42",
		Description: "banned for spam",
		BotName:     "ModBot",
	}
}

func TestBuildNotification_FixedFields(t *testing.T) {
	n := BuildNotification(banEvent(), "CommandLoggerBot", fixedNow)

	assert.Equal(t, "Command Triggered", n.Title)
	assert.Equal(t, "A command or trigger was used in the server.", n.Description)
	assert.Equal(t, 0x2F3136, n.Color)
	assert.Equal(t, "ModBot", n.Author)
	assert.Equal(t, "CommandLoggerBot • logged", n.Footer)
	assert.Equal(t, time.UTC, n.Timestamp.Location())
	assert.True(t, n.Timestamp.Equal(fixedNow))

	require.Len(t, n.Fields, 4)
	assert.Equal(t, model.NotificationField{Name: "Command / Trigger", Value: "`ban`", Inline: true}, n.Fields[0])
	assert.Equal(t, model.NotificationField{Name: "Who triggered it", Value: "alice (`42`)", Inline: true}, n.Fields[1])
	assert.Equal(t, model.NotificationField{Name: "Bot used", Value: "ModBot", Inline: true}, n.Fields[2])
	assert.Equal(t, model.NotificationField{Name: "What it did", Value: "banned for spam", Inline: false}, n.Fields[3])
}

func TestBuildNotification_ExtraFieldsKeepOrder(t *testing.T) {
	event := banEvent()
	event.Extra = []model.ExtraField{
		{Key: "zeta", Value: "1"},
		{Key: "alpha", Value: "true"},
		{Key: "mid", Value: `{"a":1}`},
	}

	n := BuildNotification(event, "Bot", fixedNow)

	require.Len(t, n.Fields, 7)
	names := make([]string, 0, 3)
	for _, f := range n.Fields[4:] {
		names = append(names, f.Name)
		assert.False(t, f.Inline)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	assert.Equal(t, `{"a":1}`, n.Fields[6].Value)
}

func TestBuildNotification_TruncatesLongValues(t *testing.T) {
	event := banEvent()
	event.Extra = []model.ExtraField{{Key: "log", Value: strings.Repeat("x", 2000)}}
	event.Description = strings.Repeat("é", 1025)

	n := BuildNotification(event, "Bot", fixedNow)

	extra := n.Fields[4].Value
	assert.Equal(t, 1021, utf8.RuneCountInString(extra))
	assert.Equal(t, strings.Repeat("x", 1020)+"…", extra)

	desc := n.Fields[3].Value
	assert.Equal(t, 1021, utf8.RuneCountInString(desc))
	assert.True(t, strings.HasSuffix(desc, "…"))
}

func TestBuildNotification_BoundaryLengthUntouched(t *testing.T) {
	event := banEvent()
	exact := strings.Repeat("y", 1024)
	event.Extra = []model.ExtraField{{Key: "exact", Value: exact}}

	n := BuildNotification(event, "Bot", fixedNow)
	assert.Equal(t, exact, n.Fields[4].Value)
}

func TestBuildNotification_TruncatesLongNames(t *testing.T) {
	event := banEvent()
	event.Extra = []model.ExtraField{{Key: strings.Repeat("k", 300), Value: "v"}}

	n := BuildNotification(event, "Bot", fixedNow)
	assert.Equal(t, 253, utf8.RuneCountInString(n.Fields[4].Name))
}

func TestCommandLog_NotifySendsBuiltNotification(t *testing.T) {
	notifier := &recordingNotifier{}
	uc := NewCommandLog(notifier, logging.New(nil), CommandLogConfig{
		DisplayName: "Auditor",
		Now:         func() time.Time { return fixedNow },
	})

	require.NoError(t, uc.Notify(context.Background(), banEvent()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Auditor • logged", notifier.sent[0].Footer)
	assert.True(t, notifier.sent[0].Timestamp.Equal(fixedNow))
}

func TestCommandLog_NotifyReturnsDeliveryError(t *testing.T) {
	deliveryErr := &model.DeliveryError{StatusCode: 500, Body: `{"message":"boom"}`}
	notifier := &recordingNotifier{err: deliveryErr}
	uc := NewCommandLog(notifier, logging.New(nil), CommandLogConfig{DisplayName: "Bot"})

	err := uc.Notify(context.Background(), banEvent())

	var got *model.DeliveryError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 500, got.StatusCode)
	assert.Len(t, notifier.sent, 1)
}
