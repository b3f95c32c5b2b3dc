// README: Chat handlers: session start, follow-up questions, history.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/modules/chat"
)

const chatTimeout = 90 * time.Second

type ChatHandler struct {
	chats *chat.Service
}

func NewChatHandler(chats *chat.Service) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type chatStartReq struct {
	Itinerary string `json:"itinerary"`
	Message   string `json:"message"`
}

type chatContinueReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatAnswerResp struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// Start handles POST /api/chat/start.
func (h *ChatHandler) Start(c *gin.Context) {
	var req chatStartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Itinerary) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "itinerary and message are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	id, answer, err := h.chats.Start(ctx, req.Itinerary, req.Message)
	if err != nil {
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, chatAnswerResp{SessionID: id, Answer: answer})
}

// Continue handles POST /api/chat/continue.
func (h *ChatHandler) Continue(c *gin.Context) {
	var req chatContinueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID == "" || strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "session_id and message are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	answer, err := h.chats.Continue(ctx, req.SessionID, req.Message)
	if err != nil {
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, chatAnswerResp{SessionID: req.SessionID, Answer: answer})
}

// History handles GET /api/chat/:session_id/history.
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	messages, err := h.chats.History(ctx, sessionID)
	if err != nil {
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"session_id": sessionID, "messages": messages})
}
