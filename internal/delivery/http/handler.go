package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/natmag/chat-backend/internal/domain"
	"github.com/natmag/chat-backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chatService *usecase.ChatService
}

// NewHandler creates a new HTTP handler
func NewHandler(chatService *usecase.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "natmag-chat-backend",
		"version": "1.0.0",
	})
}

// chatRequest is the inbound body of one chat turn
type chatRequest struct {
	Messages []domain.ConversationMessage `json:"messages"`
}

// Chat handles one conversation turn. The route is registered for every
// method so non-POST requests get a 405 with an explicit Allow header.
func (h *Handler) Chat(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Only POST allowed"})
		return
	}

	// Validate the body before the wiring check so a malformed request is
	// always a 400, even on a half-configured server
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'messages' should be an array"})
		return
	}

	if h.chatService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat service not available"})
		return
	}

	reply, err := h.chatService.HandleTurn(c.Request.Context(), req.Messages)
	if err != nil {
		status, message := errorResponse(err)
		log.Printf("[HTTP] chat turn failed (status %d): %v", status, err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// errorResponse maps a turn failure to the status and message surfaced to
// the caller. Provider errors keep the provider's status; everything else
// is a plain 500.
func errorResponse(err error) (int, string) {
	var modelErr *domain.ModelError
	if errors.As(err, &modelErr) {
		status := modelErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, modelErr.Message
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, err.Error()
}
