package suggestions

import (
	"errors"

	"item-catalog/core/logger"
	"item-catalog/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for suggestions.
type Handler struct {
	service *Service
	server  server.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, serverCfg server.Config) *Handler {
	return &Handler{service: service, server: serverCfg}
}

// RegisterRoutes registers the suggestion routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/suggestions")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Post("/:id/status", h.HandleStatus)
}

// HandleCreate stores a suggestion.
// @Summary Suggest Correction
// @Description Stores a pending correction for a catalog record. The reason, if any, is appended to the note.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param body body CreateRequest true "Suggestion"
// @Success 201 {object} Suggestion "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /suggestions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload"})
	}

	sug, err := h.service.Create(c.Context(), req)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(sug)
	case errors.Is(err, ErrInvalidSuggestion):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Failed to save suggestion", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save suggestion"})
	}
}

// HandleList lists suggestions.
// @Summary List Suggestions
// @Description Lists the suggestions of one record, or every pending suggestion when itemId is omitted.
// @Tags suggestions
// @Produce json
// @Param itemId query string false "Item id"
// @Success 200 {object} map[string]interface{} "Suggestions"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /suggestions [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.ListForItem(c.Context(), c.Query("itemId"))
	if err != nil {
		l.Error("Failed to list suggestions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"suggestions": list, "count": len(list)})
}

// HandleStatus moderates a suggestion.
// @Summary Moderate Suggestion
// @Description Sets a suggestion to pending, approved or rejected. Requires the admin bearer token.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param id path string true "Suggestion id"
// @Param body body object true "{\"status\": \"approved\"}"
// @Success 200 {object} Suggestion "Suggestion"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /suggestions/{id}/status [post]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.server.IsAdmin(c.Get(fiber.HeaderAuthorization)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var body struct {
		Status Status `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload"})
	}

	sug, err := h.service.SetStatus(c.Context(), c.Params("id"), body.Status)
	switch {
	case err == nil:
		return c.JSON(sug)
	case errors.Is(err, ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Failed to moderate suggestion", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
