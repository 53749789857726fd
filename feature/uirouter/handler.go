package uirouter

import (
	"errors"
	"io/fs"
	"strings"

	"cellular/core/logger"
	"cellular/core/resource"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Root is the resource directory the UI is served from.
const Root = "ui"

// Handler serves UI resources.
type Handler struct {
	resolver resource.Resolver
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(resolver resource.Resolver, logger *zap.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// RegisterRoutes registers the UI routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	// Non-strict routing sends both /ui and /ui/ here
	app.Get("/ui", func(c *fiber.Ctx) error {
		if c.Path() == "/ui" {
			return c.Redirect("/ui/", fiber.StatusMovedPermanently)
		}
		return h.HandleAsset(c)
	})
	app.Get("/ui/*", h.HandleAsset)
}

// ResourceName maps a request path below /ui/ to a resource name.
func ResourceName(path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index.html"
	}
	return Root + "/" + path
}

// HandleAsset streams a UI resource.
// @Summary UI Asset
// @Description Serves a file of the plane UI from the resource search path. /ui/ serves ui/index.html.
// @Tags ui
// @Produce html
// @Param path path string true "Asset path"
// @Success 200 {file} file "Asset"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ui/{path} [get]
func (h *Handler) HandleAsset(c *fiber.Ctx) error {
	name := ResourceName(c.Params("*"))

	stream, err := h.resolver.Open(c.Context(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not Found", "resource": name})
		}
		logger.WithRayID(h.logger, c).Error("Failed to open UI resource", zap.String("resource", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open resource"})
	}

	// The response owns the stream and closes it once the body is written.
	c.Set(fiber.HeaderContentType, resource.ContentType(name))
	return c.SendStream(stream)
}
