package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/direct-chat/internal/middleware"
	"github.com/iliyamo/direct-chat/internal/model"
	"github.com/iliyamo/direct-chat/internal/queue"
	"github.com/iliyamo/direct-chat/internal/repository"
	queue_publisher "github.com/iliyamo/direct-chat/internal/service"
	"github.com/iliyamo/direct-chat/internal/storage"
)

// MessageHandler bundles dependencies for the messaging endpoints. All of
// them sit behind the auth gate: the caller identity is always taken from
// the request context, so every query is scoped to a conversation the
// caller participates in by construction.
type MessageHandler struct {
	Users    *repository.UserRepo
	Messages *repository.MessageRepo
	Media    storage.Uploader
}

func NewMessageHandler(u *repository.UserRepo, m *repository.MessageRepo, media storage.Uploader) *MessageHandler {
	return &MessageHandler{Users: u, Messages: m, Media: media}
}

// ----- DTOs -----

type sendReq struct {
	Text  string `json:"text"`
	Image string `json:"image"` // base64 data URI
}

type messagePart struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"senderId"`
	ReceiverID uint64    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMessagePart(m model.Message) messagePart {
	return messagePart{ID: m.ID, SenderID: m.SenderID, ReceiverID: m.ReceiverID, Text: m.Text, Image: m.Image, CreatedAt: m.CreatedAt}
}

// Sidebar returns every other known user for the chat sidebar, in
// creation order.
func (h *MessageHandler) Sidebar(c echo.Context) error {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListOthers(ctx, cu.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, out)
}

// History returns the full ordered message history between the caller
// and the user named in the path, oldest first.
func (h *MessageHandler) History(c echo.Context) error {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	otherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || otherID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.History(ctx, cu.ID, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]messagePart, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessagePart(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Send persists a new message to the user named in the path. The body
// must carry text, an image, or both; an image is uploaded to media
// storage first so only the durable URL is stored. After the insert a
// message.sent event is published fire-and-forget.
func (h *MessageHandler) Send(c echo.Context) error {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	receiverID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || receiverID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if receiverID == cu.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	var req sendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" && req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text or image is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	imageURL := ""
	if req.Image != "" {
		imageURL, err = h.Media.Upload(ctx, "messages", req.Image)
		if err != nil {
			if errors.Is(err, storage.ErrBadImage) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
		}
	}

	msg, err := h.Messages.Insert(ctx, cu.ID, receiverID, req.Text, imageURL)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "text or image is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}

	// Publish off the request path; a broker outage must not fail the send.
	go func(ev queue.MessageSentEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishMessageSent(ctx, ev)
	}(queue.MessageSentEvent{
		MessageID:  msg.ID,
		SenderID:   cu.ID,
		SenderName: cu.FullName,
		ReceiverID: receiverID,
		HasText:    msg.Text != "",
		Image:      msg.Image,
		SentAt:     msg.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toMessagePart(msg))
}
