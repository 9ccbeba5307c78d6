package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
)

const testBotToken = "123456:test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

// signInitData builds init data the way Telegram signs it.
func signInitData(t *testing.T, userID int64) string {
	t.Helper()
	user, err := json.Marshal(map[string]any{"id": userID, "first_name": "Op", "username": "op"})
	require.NoError(t, err)
	params := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"query_id":  "AAH",
		"user":      string(user),
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

func adminRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()))
	r.Use(TelegramInitData(testBotToken, time.Hour, zerolog.Nop()), RequireAdmin(func(id int64) bool { return id == 42 }))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body struct {
		Success   bool   `json:"success"`
		RequestID string `json:"request_id"`
		Error     struct {
			Code    apperrors.ErrorCode `json:"code"`
			Message string              `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return ErrorResponse{
		Success:   body.Success,
		RequestID: body.RequestID,
		Error:     &apperrors.AppError{Code: body.Error.Code, Message: body.Error.Message},
	}
}

func TestAdminAccess(t *testing.T) {
	r := adminRouter()

	tests := []struct {
		name     string
		initData string
		status   int
		code     apperrors.ErrorCode
	}{
		{"missing", "", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"forged", "user=%7B%22id%22%3A42%7D&auth_date=1&hash=deadbeef", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"not admin", signInitData(t, 7), http.StatusForbidden, apperrors.ErrCodeForbidden},
		{"admin", signInitData(t, 42), http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.initData != "" {
				req.Header.Set("init_data", tt.initData)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				resp := decodeError(t, w)
				assert.False(t, resp.Success)
				assert.Equal(t, tt.code, resp.Error.Code)
			}
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Body.String())
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestAbortMapsCodes(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.NewValidationError("f", "bad"), http.StatusBadRequest},
		{apperrors.NewNotFoundError("account", "1"), http.StatusNotFound},
		{apperrors.NewAnswerMissingError("Acme", "Q?"), http.StatusUnprocessableEntity},
		{apperrors.NewRemoteRejectedError("claim", 400, "nope"), http.StatusBadGateway},
		{apperrors.NewAuthUnavailableError("1", errors.New("401")), http.StatusBadGateway},
		{apperrors.NewTransportError("list communities", errors.New("reset")), http.StatusBadGateway},
		{apperrors.New(apperrors.ErrCodeBadRequest, "Invalid request body"), http.StatusBadRequest},
		{apperrors.NewForbiddenError("not an operator"), http.StatusForbidden},
		{apperrors.NewStorageError("read", errors.New("down")), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) { Abort(c, tt.err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		resp := decodeError(t, w)
		assert.NotEqual(t, "unknown", resp.RequestID)
	}
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()))
	r.GET("/", func(*gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.ErrCodeInternal, decodeError(t, w).Error.Code)
}
