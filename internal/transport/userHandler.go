package transport

import (
	"net/http"

	"github.com/KadakWNL/crowd-connect/internal/service"
	"github.com/KadakWNL/crowd-connect/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       service.UserService
	attendanceService service.AttendanceService
}

func NewUserHandler(userService service.UserService, attendanceService service.AttendanceService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		attendanceService: attendanceService,
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ToggleHost(c *gin.Context) {
	user, err := h.userService.ToggleHost(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "You are now a host"
	if !user.IsHost {
		message = "You are now not a host"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    user,
	})
}

func (h *UserHandler) GetAttending(c *gin.Context) {
	events, err := h.attendanceService.GetAttendingEvents(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}
