package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aevon-lab/affinity/internal/collect"
	httperr "github.com/aevon-lab/affinity/internal/core/errors"
	"github.com/aevon-lab/affinity/internal/core/storage"
	storagemocks "github.com/aevon-lab/affinity/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sentAt = time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)

func newTestRouter(store storage.CounterStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(store, collect.NewSequenceCache(), Options{Location: time.UTC, MaxBodySizeMB: 1})
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

const validMessage = `{
	"message_id": "m-1",
	"group_id": "g1",
	"sender_id": "u1",
	"segments": [{"type": "text", "data": {"text": "hello"}}],
	"sent_at": "2026-02-08T10:00:00Z"
}`

func TestMessageHandler_Accepted(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().LookupOwner(mock.Anything, "m-1").Return(storage.MessageOwner{}, storage.ErrNotFound).Once()
	mockStore.EXPECT().
		IngestMessage(mock.Anything, mock.MatchedBy(func(o storage.MessageOwner) bool {
			return o.MessageID == "m-1" && o.UserID == "u1" && o.SentAt.Equal(sentAt)
		}), mock.MatchedBy(func(d map[storage.Key]storage.Delta) bool {
			got := d[storage.Key{Day: "2026-02-08", GroupID: "g1", UserID: "u1"}]
			return len(d) == 1 && got == storage.Delta{MessagesSent: 1, TextLength: 5, Topics: 1}
		})).
		Return(nil).
		Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", validMessage)

	require.Equal(t, http.StatusAccepted, resp.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "accepted", result["status"])
}

func TestMessageHandler_DuplicateInIndex(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().LookupOwner(mock.Anything, "m-1").
		Return(storage.MessageOwner{MessageID: "m-1", GroupID: "g1", UserID: "u1"}, nil).
		Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", validMessage)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"duplicate"`)
}

func TestMessageHandler_LostInsertRaceIsDuplicate(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().LookupOwner(mock.Anything, "m-1").Return(storage.MessageOwner{}, storage.ErrNotFound).Once()
	mockStore.EXPECT().IngestMessage(mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrDuplicate).Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", validMessage)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"status":"duplicate"`)
}

func TestMessageHandler_ValidationFailure(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", `{"message_id": "m-1", "group_id": "g1"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpValidationError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "sender_id is required")
}

func TestMessageHandler_InvalidJSON(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", `{"message_id": `)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestMessageHandler_StorageError(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().LookupOwner(mock.Anything, "m-1").Return(storage.MessageOwner{}, storage.ErrNotFound).Once()
	mockStore.EXPECT().IngestMessage(mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("database connection failed")).
		Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", validMessage)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
	require.NotContains(t, errResp.Message, "database connection failed")
}

func TestMessageHandler_BodySizeLimit(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)

	large := bytes.Repeat([]byte("a"), 1024*1024+10)
	body := `{"message_id": "m-1", "group_id": "g1", "sender_id": "u1", "text": "` + string(large) + `"}`

	resp := postJSON(newTestRouter(mockStore), "/v1/messages", body)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	require.Contains(t, resp.Body.String(), httperr.HttpPayloadTooLargeError)
}

func TestNoticeHandler_Poke(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().
		ApplyDeltas(mock.Anything, mock.MatchedBy(func(d map[storage.Key]storage.Delta) bool {
			actor := d[storage.Key{Day: "2026-02-08", GroupID: "g1", UserID: "u1"}]
			target := d[storage.Key{Day: "2026-02-08", GroupID: "g1", UserID: "u2"}]
			return actor.PokesSent == 1 && target.PokesReceived == 1
		})).
		Return(nil).
		Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/notices",
		`{"kind": "poke", "group_id": "g1", "actor_id": "u1", "target_id": "u2", "occurred_at": "2026-02-08T10:00:00Z"}`)

	require.Equal(t, http.StatusAccepted, resp.Code)
}

func TestNoticeHandler_UnresolvedReactionIsNoop(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)
	mockStore.EXPECT().LookupOwner(mock.Anything, "gone").Return(storage.MessageOwner{}, storage.ErrNotFound).Once()

	resp := postJSON(newTestRouter(mockStore), "/v1/notices",
		`{"kind": "reaction", "group_id": "g1", "actor_id": "u1", "message_id": "gone"}`)

	require.Equal(t, http.StatusAccepted, resp.Code)
}

func TestNoticeHandler_UnknownKind(t *testing.T) {
	mockStore := storagemocks.NewCounterStore(t)

	resp := postJSON(newTestRouter(mockStore), "/v1/notices", `{"kind": "wave", "group_id": "g1", "actor_id": "u1"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}
