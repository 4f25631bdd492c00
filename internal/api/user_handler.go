package api

import (
	"errors"
	"fmt"
	"net/http"
	"runcoach/internal/domain"
	"runcoach/internal/repository"
	"runcoach/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile, statistics and activity endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type RecordSessionRequest struct {
	Date           string  `json:"date" binding:"required"` // YYYY-MM-DD
	Distance       float64 `json:"distance" binding:"required,gt=0"`
	Duration       float64 `json:"duration" binding:"required,gt=0"`
	CaloriesBurned int     `json:"caloriesBurned"`
	HeartRate      struct {
		Min     int `json:"min"`
		Max     int `json:"max"`
		Average int `json:"average"`
	} `json:"heartRate"`
}

// --- Handler Methods ---

// GetUserInfo godoc
// @Summary Get the authenticated user's profile and statistics
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.UserInfo
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User not found"
// @Router /user-info [get]
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid authentication context")
		return
	}

	info, err := h.userService.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load user info")
		}
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetUserActivity godoc
// @Summary List running sessions within an ISO week range
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param startWeek query string true "ISO week, e.g. 2025-W20"
// @Param endWeek query string true "ISO week, e.g. 2025-W32"
// @Success 200 {array} domain.RunningSession
// @Failure 400 {object} gin.H "Invalid week range"
// @Router /user-activity [get]
func (h *UserHandler) GetUserActivity(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid authentication context")
		return
	}

	startWeek := c.Query("startWeek")
	endWeek := c.Query("endWeek")
	if startWeek == "" || endWeek == "" {
		abortWithError(c, http.StatusBadRequest, "startWeek and endWeek are required")
		return
	}

	sessions, err := h.userService.GetActivity(c.Request.Context(), userID, startWeek, endWeek)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWeekRange) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load activity")
		}
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RecordActivity godoc
// @Summary Record a running session
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body RecordSessionRequest true "Session details"
// @Success 201 {object} gin.H
// @Failure 400 {object} gin.H "Invalid input"
// @Router /user-activity [post]
func (h *UserHandler) RecordActivity(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid authentication context")
		return
	}

	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	session := &domain.RunningSession{
		UserID:         userID,
		Date:           date,
		DistanceKm:     req.Distance,
		DurationMin:    req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		HeartRate: domain.HeartRate{
			Min:     req.HeartRate.Min,
			Max:     req.HeartRate.Max,
			Average: req.HeartRate.Average,
		},
	}

	if err := h.userService.RecordSession(c.Request.Context(), session); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not record session")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": session.ID.Hex()})
}

// UploadProfilePicture godoc
// @Summary Upload the user's profile picture
// @Tags User
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param picture formData file true "Image file"
// @Success 200 {object} gin.H
// @Failure 400 {object} gin.H "Missing file"
// @Router /profile/picture [post]
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid authentication context")
		return
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "picture file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.userService.UploadProfilePicture(c.Request.Context(), userID, contentType, file); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not store profile picture")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "uploaded"})
}
