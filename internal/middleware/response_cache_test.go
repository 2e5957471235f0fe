package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newCachedEcho(rc *ResponseCache, calls *int) *echo.Echo {
	e := echo.New()
	e.GET("/products", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusOK, map[string]int{"calls": *calls})
	}, rc.Middleware())
	e.GET("/missing", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}, rc.Middleware())
	e.POST("/products", func(c echo.Context) error {
		*calls++
		return c.NoContent(http.StatusCreated)
	}, rc.Middleware())
	return e
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCache_SecondGetServedFromCache(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewResponseCache(time.Minute), &calls)

	first := doGet(e, "/products")
	second := doGet(e, "/products")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	//2回目はハンドラまで届かない
	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestResponseCache_QueryStringIsPartOfKey(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewResponseCache(time.Minute), &calls)

	doGet(e, "/products?page=1")
	doGet(e, "/products?page=2")

	assert.Equal(t, 2, calls)
}

func TestResponseCache_NonGetBypassed(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewResponseCache(time.Minute), &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCache_ErrorResponsesNotCached(t *testing.T) {
	calls := 0
	e := newCachedEcho(NewResponseCache(time.Minute), &calls)

	doGet(e, "/missing")
	doGet(e, "/missing")

	assert.Equal(t, 2, calls)
}

func TestResponseCache_FlushInvalidates(t *testing.T) {
	calls := 0
	rc := NewResponseCache(time.Minute)
	e := newCachedEcho(rc, &calls)

	doGet(e, "/products")
	rc.Flush()
	doGet(e, "/products")

	assert.Equal(t, 2, calls)
}
