package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/waypointhq/waypoint/internal/message"
	"github.com/waypointhq/waypoint/internal/share"
)

// ShareHandler resolves share links to one card of a stored message.
type ShareHandler struct {
	messages    message.Service
	absolutizer *share.Absolutizer
	logger      *slog.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(log *slog.Logger, messages message.Service, absolutizer *share.Absolutizer) *ShareHandler {
	return &ShareHandler{
		messages:    messages,
		absolutizer: absolutizer,
		logger:      log.With(slog.String("handler", "share")),
	}
}

// Register registers share routes.
func (h *ShareHandler) Register(e *echo.Echo) {
	e.GET("/share/:message_id/:index", h.Redirect)
	e.GET("/share/:message_id/:index/preview", h.Preview)
}

// Redirect sends the visitor to the selected card's action URL.
func (h *ShareHandler) Redirect(c echo.Context) error {
	target, err := h.resolveTarget(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.absolutizer.Absolutize(target.TargetURL))
}

// Preview returns link-preview metadata for the selected card.
func (h *ShareHandler) Preview(c echo.Context) error {
	target, err := h.resolveTarget(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.absolutizer.Preview(target))
}

func (h *ShareHandler) resolveTarget(c echo.Context) (share.Target, error) {
	id := strings.TrimSpace(c.Param("message_id"))
	if id == "" {
		return share.Target{}, echo.NewHTTPError(http.StatusBadRequest, "message id is required")
	}
	msg, err := h.messages.Get(c.Request().Context(), id)
	if errors.Is(err, message.ErrMessageNotFound) {
		return share.Target{}, echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	if err != nil {
		h.logger.Error("get message failed", slog.String("message_id", id), slog.Any("error", err))
		return share.Target{}, echo.NewHTTPError(http.StatusInternalServerError, "get message failed")
	}

	// Non-numeric index degrades to the first card rather than 404.
	index, err := strconv.Atoi(strings.TrimSpace(c.Param("index")))
	if err != nil {
		index = 1
	}
	target, err := share.Resolve(msg.Content, index)
	if errors.Is(err, share.ErrNoShareTarget) {
		return share.Target{}, echo.NewHTTPError(http.StatusNotFound, "no shareable target")
	}
	if err != nil {
		return share.Target{}, echo.NewHTTPError(http.StatusInternalServerError, "resolve share target failed")
	}
	return target, nil
}
