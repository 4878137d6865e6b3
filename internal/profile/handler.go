package profile

import (
	"errors"
	"net/http"
	"strconv"

	httperr "github.com/aevon-lab/affinity/internal/core/errors"
	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/gin-gonic/gin"
)

type memberURI struct {
	GroupID string `uri:"group_id" binding:"required"`
	UserID  string `uri:"user_id" binding:"required"`
}

// RegisterRoutes registers the read routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/profile/:group_id/:user_id", s.HandleProfile)
	r.GET("/v1/daily/:group_id/:user_id", s.HandleDaily)
}

// HandleProfile handles GET /v1/profile/:group_id/:user_id
func (s *Service) HandleProfile(c *gin.Context) {
	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	p, err := s.Profile(c.Request.Context(), uri.GroupID, uri.UserID)
	if err != nil {
		var cooldown *CooldownError
		switch {
		case errors.As(err, &cooldown):
			retry := cooldown.RetryAfterSeconds()
			c.Header("Retry-After", strconv.Itoa(retry))
			c.JSON(http.StatusTooManyRequests, httperr.ErrorResponse{
				ErrorType: httperr.HttpCooldownError,
				Message:   "Profile was queried too recently",
				Details:   gin.H{"retry_after": retry},
			})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "No activity recorded today",
			})
		case errors.Is(err, ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
				ErrorType: httperr.HttpInsufficientData,
				Message:   "Not enough messages today to build a profile",
				Details:   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to build profile",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// HandleDaily handles GET /v1/daily/:group_id/:user_id
func (s *Service) HandleDaily(c *gin.Context) {
	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	rec, err := s.Today(c.Request.Context(), uri.GroupID, uri.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "No activity recorded today",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to load daily record",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rec)
}
