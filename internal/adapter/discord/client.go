package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"command-logger/internal/domain/model"
	"command-logger/internal/domain/ports"
)

const (
	userAgent         = "DiscordBot (https://github.com/command-logger, 1.0)"
	defaultRetryAfter = time.Second
	maxResponseBody   = 64 << 10
)

// Options configures a channel Client.
type Options struct {
	APIBase      string
	Token        string
	ChannelID    string
	Timeout      time.Duration
	MaxRetryWait time.Duration
}

// Client posts notifications to a Discord channel through the bot REST API.
type Client struct {
	endpoint      string
	authorization string
	maxRetryWait  time.Duration
	httpClient    *http.Client
	logger        ports.Logger
	metrics       ports.Metrics
}

var _ ports.Notifier = (*Client)(nil)

// messagePayload is the body of POST /channels/{id}/messages.
type messagePayload struct {
	Embeds []*discordgo.MessageEmbed `json:"embeds"`
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// NewClient creates a Discord channel client. metrics may be nil.
func NewClient(opts Options, logger ports.Logger, metrics ports.Metrics) *Client {
	return &Client{
		endpoint:      channelMessagesURL(opts.APIBase, opts.ChannelID),
		authorization: "Bot " + opts.Token,
		maxRetryWait:  opts.MaxRetryWait,
		httpClient:    &http.Client{Timeout: opts.Timeout},
		logger:        logger,
		metrics:       metrics,
	}
}

// Send posts the notification as a single embed. A 429 response is retried once after
// the advertised delay; every other failure is returned as *model.DeliveryError.
func (c *Client) Send(ctx context.Context, notification model.Notification) error {
	body, err := json.Marshal(messagePayload{
		Embeds: []*discordgo.MessageEmbed{toEmbed(notification)},
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return &model.DeliveryError{Err: err}
	}

	if resp.status == http.StatusTooManyRequests {
		wait := c.retryDelay(resp)
		if c.metrics != nil {
			c.metrics.DeliveryRateLimited()
		}
		c.logger.Warn(ctx, "discord rate limited, retrying once", "retry_after", wait.String())

		if err := sleep(ctx, wait); err != nil {
			return &model.DeliveryError{
				StatusCode: resp.status,
				Body:       string(resp.body),
				Err:        fmt.Errorf("wait for rate limit: %w", err),
			}
		}

		resp, err = c.post(ctx, body)
		if err != nil {
			return &model.DeliveryError{Err: fmt.Errorf("retry: %w", err)}
		}
	}

	if resp.status < 200 || resp.status >= 300 {
		return &model.DeliveryError{
			StatusCode: resp.status,
			Body:       strings.TrimSpace(string(resp.body)),
		}
	}

	c.logger.Debug(ctx, "notification sent to discord", "status", resp.status)
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordAttempt(0)
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	c.recordAttempt(resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *Client) recordAttempt(status int) {
	if c.metrics != nil {
		c.metrics.DeliveryAttempted(status)
	}
}

// retryDelay reads retry_after (milliseconds) from the body, then the Retry-After
// header (seconds), and caps the result at maxRetryWait.
func (c *Client) retryDelay(resp *response) time.Duration {
	wait := defaultRetryAfter

	var payload struct {
		RetryAfter *float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(resp.body, &payload); err == nil && payload.RetryAfter != nil && *payload.RetryAfter >= 0 {
		wait = time.Duration(*payload.RetryAfter * float64(time.Millisecond))
	} else if header := resp.header.Get("Retry-After"); header != "" {
		if secs, err := strconv.ParseFloat(header, 64); err == nil && secs >= 0 {
			wait = time.Duration(secs * float64(time.Second))
		}
	}

	if c.maxRetryWait > 0 && wait > c.maxRetryWait {
		wait = c.maxRetryWait
	}
	return wait
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func toEmbed(n model.Notification) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	embed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       n.Title,
		Description: n.Description,
		Color:       n.Color,
		Fields:      fields,
	}
	if !n.Timestamp.IsZero() {
		embed.Timestamp = n.Timestamp.UTC().Format(time.RFC3339)
	}
	if n.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: n.Author}
	}
	if n.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: n.Footer}
	}
	return embed
}

func channelMessagesURL(base, channelID string) string {
	return strings.TrimRight(base, "/") + "/channels/" + url.PathEscape(channelID) + "/messages"
}
