package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLoggerGeneratesID(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry["requestID"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRequestLoggerKeepsClientID(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func serveError(err error) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIErrorPersistence(t *testing.T) {
	err := apperrors.NewPersistenceError("insert student", errors.New("dup")).WithCode("23505")
	w := serveError(err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeDatabaseError, resp.Error.Code)
	assert.Equal(t, dto.ErrorSeverityCritical, resp.Error.Severity)
	assert.Equal(t, map[string]interface{}{"sqlstate": "23505"}, resp.Error.Details)
}

func TestHandleAPIErrorBadRequest(t *testing.T) {
	w := serveError(apperrors.NewBadRequestError("Invalid student ID").WithField("id").WithDetails("Student ID must be a valid number"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "Invalid student ID", resp.Error.Message)
	assert.Equal(t, "id", resp.Error.Field)
	assert.Equal(t, "Student ID must be a valid number", resp.Error.Details)
}

func TestHandleAPIErrorBareBadRequest(t *testing.T) {
	w := serveError(apperrors.NewBadRequestError("Invalid student data"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Empty(t, resp.Error.Field)
	assert.Nil(t, resp.Error.Details)
}

func TestHandleAPIErrorUnknown(t *testing.T) {
	w := serveError(errors.New("something odd"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Error.Code)
}
