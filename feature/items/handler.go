package items

import (
	"context"
	"errors"
	"strings"

	"item-catalog/core/logger"
	"item-catalog/core/server"
	"item-catalog/core/utils"
	"item-catalog/feature/items/ledger"
	"item-catalog/feature/items/models"
	"item-catalog/feature/items/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
	server  server.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, serverCfg server.Config) *Handler {
	return &Handler{service: service, server: serverCfg}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleIngest)
	group.Delete("/", h.HandleDelete)
	group.Post("/preview", h.HandlePreview)
	group.Post("/confirm", h.HandleConfirm)
	group.Post("/invalidate", h.HandleInvalidate)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/review", h.HandleReview)

	app.Get("/contributors/:name", h.HandleContributor)
}

// ingestBody is the payload of POST /items and POST /items/confirm.
type ingestBody struct {
	Raw         string              `json:"raw"`
	Items       []ItemInput         `json:"items"`
	Item        *ItemInput          `json:"item"`
	Overrides   map[string]Override `json:"overrides"`
	SubmittedBy string              `json:"submittedBy"`
	UserID      string              `json:"userId"`
	Confirmed   bool                `json:"confirmed"`
	DryRun      bool                `json:"dryRun"`
	Decision    Decision            `json:"decision"`
	ItemInput
}

func (h *Handler) ingestRequest(c *fiber.Ctx, body ingestBody) IngestRequest {
	req := IngestRequest{
		Raw:       strings.TrimSpace(body.Raw),
		Overrides: body.Overrides,
		Submitter: ledger.Submitter{
			Name:   strings.TrimSpace(body.SubmittedBy),
			UserID: strings.TrimSpace(body.UserID),
			Origin: h.service.HashOrigin(c.IP()),
		},
		Confirmed: body.Confirmed,
		DryRun:    body.DryRun,
	}

	inputs := body.Items
	switch {
	case len(inputs) > 0:
	case body.Item != nil:
		inputs = []ItemInput{*body.Item}
	case req.Raw == "" && (body.ItemInput.Name != "" || body.ItemInput.Type != ""):
		inputs = []ItemInput{body.ItemInput}
	}
	for _, in := range inputs {
		req.Observations = append(req.Observations, in.Observation())
	}
	return req
}

// HandleIngest ingests a raw dump or pre-parsed items.
// @Summary Ingest Items
// @Description Parses a raw identify dump (or takes pre-parsed items), resolves every observation against the catalog and writes the accepted ones. A batch with a possible duplicate is held and returned with status 409 until confirmed.
// @Tags items
// @Accept json
// @Produce json
// @Param body body ingestBody true "Dump text or items"
// @Success 200 {object} Report "Ingest report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} Report "Held for confirmation"
// @Failure 503 {object} map[string]string "Transient write conflict"
// @Router /items [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body ingestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload"})
	}

	report, err := h.service.Ingest(c.Context(), h.ingestRequest(c, body))
	return h.respondReport(c, l, report, err)
}

// HandleConfirm resolves a held batch.
// @Summary Confirm Held Ingest
// @Description Resolves a batch held for confirmation. "proceed" merges possible duplicates, "cancel" writes nothing.
// @Tags items
// @Accept json
// @Produce json
// @Param body body ingestBody true "Held items plus decision"
// @Success 200 {object} Report "Ingest report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Transient write conflict"
// @Router /items/confirm [post]
func (h *Handler) HandleConfirm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body ingestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload"})
	}

	report, err := h.service.Confirm(c.Context(), ConfirmRequest{
		IngestRequest: h.ingestRequest(c, body),
		Decision:      body.Decision,
	})
	return h.respondReport(c, l, report, err)
}

func (h *Handler) respondReport(c *fiber.Ctx, l *zap.Logger, report *Report, err error) error {
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyRequest), errors.Is(err, ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrTransientConflict):
		l.Warn("Ingest lost a write race twice", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "report": report})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.Warn("Ingest aborted", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "report": report})
	default:
		l.Error("Ingest failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "report": report})
	}

	if report.Held {
		return c.Status(fiber.StatusConflict).JSON(report)
	}
	return c.JSON(report)
}

// HandlePreview parses a dump without writing.
// @Summary Preview Dump
// @Description Parses a raw identify dump and returns the observations, with a likely worn slot for each, without touching the catalog.
// @Tags items
// @Accept json
// @Produce json
// @Param body body object true "{\"raw\": \"...\"}"
// @Success 200 {array} models.Observation "Observations"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /items/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	var body struct {
		Raw string `json:"raw"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Raw) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "raw is required"})
	}

	observations := h.service.Preview(body.Raw)
	slots := make([]string, len(observations))
	for i, obs := range observations {
		slots[i], _ = models.GuessSlot(obs.Name, obs.Keywords, obs.Worn)
	}
	return c.JSON(fiber.Map{"items": observations, "slots": slots, "count": len(observations)})
}

// HandleInvalidate drops the cached list pages.
// @Summary Invalidate List Cache
// @Description Operator action. Requires the admin bearer token. The next list request reads the catalog.
// @Tags items
// @Produce json
// @Success 200 {object} map[string]interface{} "Cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /items/invalidate [post]
func (h *Handler) HandleInvalidate(c *fiber.Ctx) error {
	if !h.server.IsAdmin(c.Get(fiber.HeaderAuthorization)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	h.service.Invalidate()
	return c.JSON(fiber.Map{"cleared": true, "message": "Cache invalidated manually"})
}

// HandleList lists catalog records.
// @Summary List Items
// @Description Lists catalog records with provenance. Responses are cached until the next write.
// @Tags items
// @Produce json
// @Param q query string false "Name or keyword substring"
// @Param type query string false "Item type"
// @Param flagged query string false "Review flag (1/true/yes/on, 0/false/no/off)"
// @Param id query string false "Item id"
// @Param userId query string false "Submitting user id"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{} "Items"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := store.ListFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Type:   strings.TrimSpace(c.Query("type")),
		ID:     strings.TrimSpace(c.Query("id")),
		UserID: strings.TrimSpace(c.Query("userId")),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if flagged, ok := utils.ParseBool(c.Query("flagged")); ok {
		filter.Flagged = &flagged
	}

	items, hit, err := h.service.List(c.Context(), filter)
	if err != nil {
		l.Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	if hit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// HandleGet returns one catalog record.
// @Summary Get Item
// @Description Returns a catalog record with its contributors and submission count.
// @Tags items
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} models.Item "Item"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /items/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	item, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}
	if err != nil {
		l.Error("Failed to get item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// HandleReview flags a record for review or marks it as a duplicate.
// @Summary Review Item
// @Description Sets the review flag and the duplicate reference of a record.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param body body ReviewRequest true "Review"
// @Success 200 {object} models.Item "Item"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /items/{id}/review [post]
func (h *Handler) HandleReview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request payload"})
	}

	item, err := h.service.Review(c.Context(), c.Params("id"), req)
	switch {
	case err == nil:
		return c.JSON(item)
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, ErrInvalidReview):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrTransientConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Failed to review item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// HandleDelete removes one record (?id=) or every record (?all=true).
// @Summary Delete Items
// @Description Operator action. Requires the admin bearer token.
// @Tags items
// @Produce json
// @Param id query string false "Item id"
// @Param all query string false "Wipe the catalog"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /items [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.server.IsAdmin(c.Get(fiber.HeaderAuthorization)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if id := strings.TrimSpace(c.Query("id")); id != "" {
		err := h.service.Delete(c.Context(), id)
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		if err != nil {
			l.Error("Failed to delete item", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"deleted": true, "id": id})
	}

	if all, ok := utils.ParseBool(c.Query("all")); ok && all {
		n, err := h.service.DeleteAll(c.Context())
		if err != nil {
			l.Error("Failed to wipe catalog", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"deleted": true, "all": true, "count": n})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required to delete an item (or set all=true to wipe)"})
}

// HandleContributor returns a submitter's stats.
// @Summary Get Contributor
// @Description Returns how many accepted submissions a contributor made and which items they touched.
// @Tags items
// @Produce json
// @Param name path string true "Contributor name"
// @Success 200 {object} ledger.Contributor "Contributor"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /contributors/{name} [get]
func (h *Handler) HandleContributor(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	contributor, err := h.service.Contributor(c.Context(), c.Params("name"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contributor not found"})
	}
	if err != nil {
		l.Error("Failed to get contributor", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(contributor)
}
