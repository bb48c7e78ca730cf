package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/models"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	codeConfiguration = "configuration_error"

	errRecommend     = "failed to compute recommendation"
	errConfiguration = "dose table is misconfigured; contact the system administrator"
	errBodyTooLarge  = "request body too large"
	errBodyRead      = "failed to read request body"
	errCanceled      = "request canceled"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, body models.ErrorResponse, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", requestIDFrom(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, body)
}

// recommendError maps an Advisor error onto an HTTP status and response body.
// The same mapping is used for WebSocket error envelopes.
func recommendError(err error) (int, models.ErrorResponse) {
	var (
		vErr   *engine.ValidationError
		cfgErr *engine.ConfigurationError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, models.ErrorResponse{Error: vErr.Error(), Field: vErr.Field}
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, models.ErrorResponse{Error: errConfiguration, Code: codeConfiguration}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, models.ErrorResponse{Error: errCanceled}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{Error: errRecommend}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Recommend insulin dose
// @Description  Selects the IV or Basal Bolus protocol, moves the level by one step at most, and looks up the dose for the latest GRBS reading. GRBS may be sent as an array or as flat GRBS1..GRBS5 fields (GRBS1 is the most recent).
// @Tags         recommend
// @Accept       json
// @Produce      json
// @Param        X-Request-ID  header  string            false  "Correlation id echoed in the response"
// @Param        body          body    models.RecommendRequest  true  "Patient readings"
// @Success      200   {object}  models.Recommendation
// @Failure      400   {object}  models.ErrorResponse
// @Failure      413   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /api/v1/recommend [post]
func (h *Handler) recommend(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: errBodyTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errBodyRead})
		return
	}

	rec, err := h.services.Advisor.Recommend(c.Request.Context(), payload, requestIDFrom(c))
	if err != nil {
		code, body := recommendError(err)
		if code == http.StatusBadRequest {
			if h.log != nil {
				h.log.Infow("recommend_rejected", "request_id", requestIDFrom(c), "field", body.Field, "err", err)
			}
			c.JSON(code, body)
			return
		}
		h.logAndJSONError(c, code, body, "recommend_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DoseTableResponse is the body of GET /api/v1/dose-table.
type DoseTableResponse struct {
	MinLevel int                   `json:"min_level" example:"1"`
	MaxLevel int                   `json:"max_level" example:"7"`
	Count    int                   `json:"count" example:"14"`
	Rows     []models.DoseTableRow `json:"rows"`
}

// @Summary      Dose table
// @Description  Returns the dose table currently in effect, ordered by algorithm and level.
// @Tags         recommend
// @Produce      json
// @Success      200  {object}  DoseTableResponse
// @Router       /api/v1/dose-table [get]
func (h *Handler) getDoseTable(c *gin.Context) {
	rows := h.services.DoseTable.Rows()
	bounds := h.services.DoseTable.Bounds()
	c.JSON(http.StatusOK, DoseTableResponse{
		MinLevel: bounds.Min,
		MaxLevel: bounds.Max,
		Count:    len(rows),
		Rows:     rows,
	})
}
