package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comprae/marketplace/internal/server/http/dto"
)

// MaxBodyBytes caps request bodies after decompression.
const MaxBodyBytes = 1 << 20

type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.raw.Close()
}

// DecompressRequest inflates gzip encoded bodies and limits every body to MaxBodyBytes.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorBody{
					Error: dto.ErrorDetail{Kind: "bad_request", Message: "malformed gzip body"},
				})
				return
			}
			c.Request.Body = gzipBody{Reader: reader, raw: c.Request.Body}
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		c.Next()
	}
}
