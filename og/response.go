package og

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MIME types served by the preview endpoint.
const (
	MIMEJPEG = "image/jpeg"
	MIMESVG  = "image/svg+xml"
)

// Cache-Control policies. Versioned requests carry a content hash in the URL
// and can be cached forever; everything else revalidates in the background.
const (
	CacheImmutable  = "public, max-age=31536000, immutable"
	CacheRevalidate = "public, max-age=3600, stale-while-revalidate=86400"
)

// IsVector reports whether body looks like vector markup rather than a
// compressed raster, by checking for an XML or SVG signature in the leading
// bytes.
func IsVector(body []byte) bool {
	head := bytes.TrimLeft(body, " \t\r\n")
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<svg"))
}

// ContentType sniffs the media type of rendered image bytes.
func ContentType(body []byte) string {
	if IsVector(body) {
		return MIMESVG
	}
	return MIMEJPEG
}

// CachePolicy returns the Cache-Control value for a render response.
func CachePolicy(versioned bool) string {
	if versioned {
		return CacheImmutable
	}
	return CacheRevalidate
}

// WriteResponse writes rendered image bytes with sniffed content type, the
// applicable cache policy, CORS, and content length.
func WriteResponse(c echo.Context, body []byte, versioned bool) error {
	return WriteResponseAs(c, body, ContentType(body), versioned)
}

// WriteResponseAs is WriteResponse with a pre-sniffed content type, used when
// serving bytes out of the render cache.
func WriteResponseAs(c echo.Context, body []byte, contentType string, versioned bool) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, contentType)
	h.Set("Cache-Control", CachePolicy(versioned))
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
	c.Response().WriteHeader(http.StatusOK)
	_, err := c.Response().Write(body)
	return err
}
