package api

import (
	"errors"
	"fmt"
	"net/http"
	"runcoach/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler forwards messages to the AI coach.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Chat godoc
// @Summary Send a message to the AI coach
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body ChatRequest true "User message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} gin.H "Missing message"
// @Failure 500 {object} gin.H "Coach unavailable"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid authentication context")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "The coach is unavailable right now")
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}
