package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest transparently unwraps gzip encoded request bodies.
// Webhook senders and SDK clients may compress large payloads.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gzipEncoded(c) {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}

func gzipEncoded(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Encoding"), "gzip")
}
