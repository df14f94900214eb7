package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/waypointhq/waypoint/internal/enrich"
	"github.com/waypointhq/waypoint/internal/message"
)

// ReplyHandler turns raw model replies into stored canonical messages.
type ReplyHandler struct {
	enricher *enrich.Service
	messages message.Service
	logger   *slog.Logger
}

// NewReplyHandler creates a ReplyHandler.
func NewReplyHandler(log *slog.Logger, enricher *enrich.Service, messages message.Service) *ReplyHandler {
	return &ReplyHandler{
		enricher: enricher,
		messages: messages,
		logger:   log.With(slog.String("handler", "reply")),
	}
}

// Register registers message routes.
func (h *ReplyHandler) Register(e *echo.Echo) {
	e.POST("/messages", h.CreateMessage)
	e.GET("/messages/:message_id", h.GetMessage)
}

type createMessageRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// CreateMessage enriches a raw model reply and persists the result.
func (h *ReplyHandler) CreateMessage(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	enriched := h.enricher.Enrich(c.Request().Context(), req.Reply)
	content, err := json.Marshal(enriched)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "encode message content")
	}
	stored, err := h.messages.Persist(c.Request().Context(), message.PersistInput{
		Role:    message.RoleAssistant,
		Content: content,
	})
	if err != nil {
		h.logger.Error("persist message failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "persist message failed")
	}
	return c.JSON(http.StatusCreated, stored)
}

// GetMessage returns a stored message by ID.
func (h *ReplyHandler) GetMessage(c echo.Context) error {
	id := strings.TrimSpace(c.Param("message_id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message id is required")
	}
	msg, err := h.messages.Get(c.Request().Context(), id)
	if errors.Is(err, message.ErrMessageNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "message not found")
	}
	if err != nil {
		h.logger.Error("get message failed", slog.String("message_id", id), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "get message failed")
	}
	return c.JSON(http.StatusOK, msg)
}
