package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

var staticContentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// StaticHandler serves the demo UI pages for any path the API does not claim.
type StaticHandler struct {
	Root string
}

func (h *StaticHandler) Serve(c echo.Context) error {
	name := c.Request().URL.Path
	if name == "/" {
		name = "/index.html"
	}

	// Clean the rooted path first so ".." cannot escape the static root.
	path := filepath.Join(h.Root, filepath.FromSlash(filepath.Clean("/"+name)))
	data, err := os.ReadFile(path)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse("File not found"))
	}

	contentType, ok := staticContentTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		contentType = "text/plain"
	}
	return c.Blob(http.StatusOK, contentType, data)
}
