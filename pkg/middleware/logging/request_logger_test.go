package loggingmw

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_demo/internal/logging"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var last []byte
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		last = append([]byte(nil), sc.Bytes()...)
	}
	require.NotEmpty(t, last)
	var m map[string]any
	require.NoError(t, json.Unmarshal(last, &m))
	return m
}

func TestRequestLogger_RendersErrorAndLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter("info", &buf)))
	e.GET("/missing", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside handler")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())

	line := lastLine(t, &buf)
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "rid-1", line["request_id"])
	assert.Contains(t, buf.String(), "inside handler")
}

func TestRequestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter("info", &buf)))
	e.GET("/ok", func(c echo.Context) error {
		c.Set("user_id", uint(7))
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	line := lastLine(t, &buf)
	assert.Equal(t, "INFO", line["level"])
	assert.EqualValues(t, 7, line["user_id"])
	assert.Equal(t, "/ok", line["path"])
}
