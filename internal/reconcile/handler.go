package reconcile

import (
	"errors"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	httperr "github.com/aevon-lab/affinity/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// MaxBodyBytes bounds the request body of HistoryHandler.
var MaxBodyBytes int64 = 32 << 20

// HistoryHandler handles POST /v1/groups/:group_id/history.
func (s *Service) HistoryHandler(c *gin.Context) {
	groupID := c.Param("group_id")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var pool v1.HistoryPool
	if err := c.ShouldBindJSON(&pool); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
				ErrorType: httperr.HttpPayloadTooLargeError,
				Message:   "Request body exceeds maximum allowed size",
				Details:   map[string]interface{}{"max_bytes": tooLarge.Limit},
			})
			return
		}
		slog.Warn("[Reconcile] Invalid history pool body", "group_id", groupID, "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
		})
		return
	}

	summary, err := s.Reconcile(c.Request.Context(), groupID, pool)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, summary)
	case errors.Is(err, ErrPoolTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpPayloadTooLargeError,
			Message:   err.Error(),
			Details:   map[string]interface{}{"max_pool_size": s.maxPoolSize},
		})
	case errors.Is(err, ErrInvalidGroup):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   err.Error(),
		})
	default:
		slog.Error("[Reconcile] Reconciliation failed", "group_id", groupID, "run_id", summary.RunID, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to reconcile history",
			Details:   map[string]interface{}{"run_id": summary.RunID},
		})
	}
}
