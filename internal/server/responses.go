package server

import (
	"log"
	"net/http"

	"activity-game/internal/game"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse struct {
	Success   bool   `json:"success"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ApiResponse{Success: true, Data: data, Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: message})
}

// respondError translates a domain error to its stable code and status.
// Anything unclassified is a consistency breach or an infrastructure
// failure; it is logged and surfaced without internal detail.
func respondError(c *gin.Context, err error) {
	if appErr, ok := game.AsAppError(err); ok {
		c.JSON(appErr.Status, ApiResponse{
			Success:   false,
			ErrorCode: int(appErr.Code),
			Message:   appErr.Message,
		})
		return
	}
	log.Printf("unexpected error path=%s err=%v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ApiResponse{
		Success: false,
		Message: "internal server error",
	})
}
