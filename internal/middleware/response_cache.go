package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

// 公開GETのレスポンスをTTL付きでプロセス内にキャッシュする。
// 書き込み系エンドポイントにはかけないこと
type ResponseCache struct {
	store *gocache.Cache
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// 2xx以外はキャッシュしない
func (rc *ResponseCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := c.Request().URL.RequestURI()

			if v, ok := rc.store.Get(key); ok {
				cached := v.(cachedResponse)
				return c.Blob(cached.Status, cached.ContentType, cached.Body)
			}

			//レスポンスを横取りして記録する
			rec := &recordingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if rec.status >= 200 && rec.status < 300 {
				rc.store.SetDefault(key, cachedResponse{
					Status:      rec.status,
					ContentType: rec.Header().Get(echo.HeaderContentType),
					Body:        rec.buf.Bytes(),
				})
			}
			return nil
		}
	}
}

// 書き込み後に呼んで古い一覧を消す
func (rc *ResponseCache) Flush() {
	rc.store.Flush()
}

type recordingWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
