package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	httperr "github.com/aevon-lab/affinity/internal/core/errors"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to persist event"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// MessageHandler handles POST /v1/messages.
func (s *Service) MessageHandler(c *gin.Context) {
	var msg v1.Message
	if err := s.parseBody(c, &msg); err != nil {
		writeError(c, err)
		return
	}

	result, err := s.Ingest(c.Request.Context(), &msg)
	if err != nil {
		writeError(c, toIngestionError(err, msg.ID))
		return
	}

	if result == ResultDuplicate {
		c.JSON(http.StatusOK, gin.H{"status": result.String(), "message_id": msg.ID})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": result.String(), "message_id": msg.ID})
}

// NoticeHandler handles POST /v1/notices.
func (s *Service) NoticeHandler(c *gin.Context) {
	var notice v1.Notice
	if err := s.parseBody(c, &notice); err != nil {
		writeError(c, err)
		return
	}

	if err := s.HandleNotice(c.Request.Context(), &notice); err != nil {
		writeError(c, toIngestionError(err, notice.MessageID))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// parseBody reads at most maxBodySizeBytes and decodes the JSON body into dst.
func (s *Service) parseBody(c *gin.Context, dst interface{}) *ingestionError {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dst); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return nil
}

func toIngestionError(err error, id string) *ingestionError {
	if errors.Is(err, ErrInvalidEvent) {
		slog.Warn("[Ingestion] Envelope validation failed", "error", err, "id", id)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    err.Error(),
		}
	}

	slog.Error("[Ingestion] Failed to persist event", "error", err, "id", id)
	return &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
