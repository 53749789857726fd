package plane

import (
	"errors"

	"cellular/core/jsonvalue"
	"cellular/core/logger"
	"cellular/core/recon"
	"cellular/core/resource"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the plane.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the plane routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/plane")
	group.Get("/", h.HandleInfo)
	group.Get("/resources/*", h.HandleResource)
}

// HandleInfo describes the plane.
// @Summary Plane Info
// @Description Returns the plane name, the resource it was configured from and the resources exposed for inspection.
// @Tags plane
// @Produce json
// @Success 200 {object} map[string]interface{} "Plane"
// @Router /plane [get]
func (h *Handler) HandleInfo(c *fiber.Ctx) error {
	s := h.service.Settings()
	return c.JSON(fiber.Map{
		"name":      s.Name,
		"source":    s.Source,
		"ui":        fiber.Map{"enabled": s.UIEnabled},
		"resources": s.Resources,
	})
}

// HandleResource loads a resource and returns its decoded value.
// @Summary Inspect Resource
// @Description Loads a resource (by alias or name) through the resource search path and returns the decoded value as JSON, or as Recon with ?as=recon.
// @Tags plane
// @Produce json
// @Param name path string true "Resource alias or name"
// @Param format query string false "Decoding format (json or recon); inferred from the extension when omitted"
// @Param as query string false "Output notation (json or recon)"
// @Success 200 {object} interface{} "Decoded value"
// @Failure 400 {object} map[string]string "Unknown format"
// @Failure 404 {object} map[string]string "Resource not found"
// @Failure 422 {object} map[string]string "Resource could not be decoded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /plane/resources/{name} [get]
func (h *Handler) HandleResource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("*")

	v, ok, err := h.service.Inspect(c.Context(), name, c.Query("format"))
	if err != nil {
		var decodeErr *resource.DecodeError
		switch {
		case errors.Is(err, ErrUnknownFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &decodeErr):
			l.Warn("Resource could not be decoded", zap.String("resource", name), zap.Error(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Resource inspection failed", zap.String("resource", name), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found", "resource": name})
	}

	if c.Query("as") == "recon" {
		c.Set(fiber.HeaderContentType, "text/x-recon; charset=utf-8")
		return c.SendString(recon.Format(v))
	}

	body, err := jsonvalue.Encode(v)
	if err != nil {
		l.Error("Resource could not be encoded", zap.String("resource", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
