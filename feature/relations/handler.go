package relations

import (
	"errors"
	"strconv"
	"strings"

	"content-relations/core/logger"
	"content-relations/core/notification"
	"content-relations/core/reconcile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for relations.
type Handler struct {
	service  *Service
	exporter *Exporter
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, exporter *Exporter) *Handler {
	return &Handler{service: service, exporter: exporter, validate: validator.New()}
}

// RegisterRoutes registers the relations routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/relations")
	group.Get("/exports", h.HandleListExports)
	group.Post("/exports", h.HandleExport)
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/:parentId", h.HandleGetRelations)
}

// ReconcileResponse summarizes a reconciliation request.
type ReconcileResponse struct {
	Entities int                `json:"entities"`
	Inserted int                `json:"inserted"`
	Deleted  int                `json:"deleted"`
	Results  []reconcile.Result `json:"results"`
}

// ExportRequest selects the parents to export.
type ExportRequest struct {
	ParentIDs []int `json:"parent_ids" validate:"required,min=1,dive,gt=0"`
}

// HandleGetRelations returns the relations of a parent.
// @Summary Get Relations
// @Description List the relations of a parent node, optionally filtered by relation type aliases.
// @Tags relations
// @Produce json
// @Param parentId path int true "Parent node id"
// @Param types query string false "Comma separated relation type aliases (e.g. 'umbMedia,umbDocument')"
// @Success 200 {array} store.RelationView "Relations"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /relations/{parentId} [get]
func (h *Handler) HandleGetRelations(c *fiber.Ctx) error {
	parentID, err := strconv.Atoi(c.Params("parentId"))
	if err != nil || parentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "parentId must be a positive integer"})
	}

	var aliases []string
	for _, a := range strings.Split(c.Query("types"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}

	views, err := h.service.GetRelations(c.Context(), parentID, aliases)
	if err != nil {
		return h.fail(c, "Relation lookup failed", err)
	}
	return c.JSON(views)
}

// HandleReconcile reconciles the entities of a notification.
// @Summary Reconcile Relations
// @Description Reconcile the automatic relations of saved or published entities in one transaction.
// @Tags relations
// @Accept json
// @Produce json
// @Param notification body notification.Notification true "Notification"
// @Success 200 {object} ReconcileResponse "Reconciliation summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /relations/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	var n notification.Notification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results, err := h.service.Reconcile(c.Context(), n)
	if err != nil {
		return h.fail(c, "Reconciliation failed", err)
	}

	resp := ReconcileResponse{Entities: len(results), Results: results}
	for _, r := range results {
		resp.Inserted += r.Inserted
		resp.Deleted += r.Deleted
	}
	return c.JSON(resp)
}

// HandleExport writes a relation snapshot of the given parents to storage.
// @Summary Export Relations
// @Description Write the relations of the given parents to the export bucket.
// @Tags relations
// @Accept json
// @Produce json
// @Param request body ExportRequest true "Parents to export"
// @Success 201 {object} map[string]string "Export key"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /relations/exports [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	key, err := h.exporter.Export(c.Context(), req.ParentIDs)
	if err != nil {
		return h.fail(c, "Export failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

// HandleListExports lists the stored exports.
// @Summary List Exports
// @Description List the relation exports stored in the bucket, newest first.
// @Tags relations
// @Produce json
// @Success 200 {array} string "Export keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /relations/exports [get]
func (h *Handler) HandleListExports(c *fiber.Ctx) error {
	keys, err := h.exporter.List(c.Context())
	if err != nil {
		return h.fail(c, "Export listing failed", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(keys)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	status := fiber.StatusInternalServerError
	if errors.Is(err, ErrNoDatabase) {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
