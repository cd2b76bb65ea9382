package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"command-logger/internal/domain/model"
	"command-logger/internal/domain/ports"
)

const healthMessage = "Bot command logger is running."

// CommandNotifier delivers one command event.
type CommandNotifier interface {
	Notify(ctx context.Context, event model.CommandEvent) error
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler serves the health probe and the notify endpoint.
type Handler struct {
	notifier     CommandNotifier
	logger       ports.Logger
	maxBodyBytes int64
}

// NewHandler creates a Handler.
func NewHandler(notifier CommandNotifier, logger ports.Logger, cfg Config) *Handler {
	return &Handler{
		notifier:     notifier,
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Health answers liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, healthMessage)
}

// Notify validates the body, then formats and delivers the event.
func (h *Handler) Notify(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := h.readBody(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Details: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrInvalidJSON.Error(), Details: err.Error()})
		return
	}

	event, err := DecodeCommandEvent(body)
	switch {
	case errors.Is(err, ErrMissingCommand):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrMissingCommand.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrInvalidJSON.Error(), Details: err.Error()})
		return
	}

	if err := h.notifier.Notify(ctx, event); err != nil {
		var deliveryErr *model.DeliveryError
		if errors.As(err, &deliveryErr) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "failed to send to Discord",
				Details: deliveryErr.Detail(),
			})
			return
		}
		h.logger.Error(ctx, "unexpected notify failure", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "unexpected error", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) readBody(c *gin.Context) ([]byte, error) {
	reader := c.Request.Body
	if h.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(c.Writer, reader, h.maxBodyBytes)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
