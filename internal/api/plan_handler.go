package api

import (
	"errors"
	"fmt"
	"net/http"
	"runcoach/internal/plan"
	"runcoach/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves training plan generation and calendar export.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Level         string   `json:"level" binding:"required"`
	Goal          string   `json:"goal" binding:"required"`
	AvailableDays []string `json:"availableDays" binding:"required,min=1"`
	Age           *int     `json:"age" binding:"required"`
	Weight        *int     `json:"weight" binding:"required"`
	StartDate     string   `json:"startDate" binding:"required"`
}

type GeneratePlanResponse struct {
	Plan  *plan.Plan           `json:"plan"`
	Weeks []plan.FlattenedWeek `json:"weeks"`
}

type DownloadICSRequest struct {
	TrainingPlan []plan.FlattenedWeek `json:"trainingPlan" binding:"required,min=1"`
	StartDate    string               `json:"startDate" binding:"required"`
	Timezone     string               `json:"timezone" binding:"required"`
}

// --- Handler Methods ---

// Generate godoc
// @Summary Generate an AI training plan
// @Description Builds the coaching prompt, calls the model once and returns the normalized plan.
// @Tags TrainingPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GeneratePlanRequest true "Plan parameters"
// @Success 200 {object} GeneratePlanResponse
// @Failure 400 {object} gin.H "Missing required fields"
// @Failure 502 {object} gin.H "Invalid AI response"
// @Failure 500 {object} gin.H "Generation failed"
// @Router /training-plan/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	generated, err := h.planService.Generate(c.Request.Context(), service.GeneratePlanInput{
		Level:         req.Level,
		Goal:          req.Goal,
		AvailableDays: req.AvailableDays,
		Age:           req.Age,
		Weight:        req.Weight,
		StartDate:     req.StartDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPlanFields), errors.Is(err, service.ErrBadStartDate):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, plan.ErrInvalidPlanJSON):
			abortWithError(c, http.StatusBadGateway, "The AI returned an invalid plan, please retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Plan generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, GeneratePlanResponse{
		Plan:  generated.Plan,
		Weeks: generated.Weeks,
	})
}

// DownloadICS godoc
// @Summary Export a training plan as an iCalendar file
// @Tags TrainingPlan
// @Accept json
// @Produce text/calendar
// @Security BearerAuth
// @Param request body DownloadICSRequest true "Flattened plan, start date and timezone"
// @Success 200 {string} string "ICS payload"
// @Failure 400 {object} gin.H "Missing trainingPlan, startDate or timezone"
// @Failure 500 {object} gin.H "Could not generate calendar"
// @Router /training-plan/download-ics [post]
func (h *PlanHandler) DownloadICS(c *gin.Context) {
	var req DownloadICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing trainingPlan, startDate or timezone")
		return
	}

	payload, err := h.planService.ExportICS(req.TrainingPlan, req.StartDate, req.Timezone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadStartDate), errors.Is(err, service.ErrUnknownTimezone):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not generate calendar")
		}
		return
	}

	filename := fmt.Sprintf("planning-%s.ics", time.Now().UTC().Format(time.RFC3339))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(payload))
}
