package recon

import (
	"errors"

	"termsheet-reconciler/core/logger"
	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/feature/booking"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/", h.HandleReconcile)
	group.Post("/db", h.HandleReconcileDB)
	group.Get("/fields", h.HandleFields)
}

// reconcileRequest is the payload for a payload-supplied reconciliation.
type reconcileRequest struct {
	TermSheet      *reconcile.TermSheet `json:"term_sheet"`
	BookingRecords []map[string]any     `json:"booking_records"`
}

// dbReconcileRequest is the payload for a database-backed reconciliation.
type dbReconcileRequest struct {
	TermSheet *reconcile.TermSheet `json:"term_sheet"`
}

// HandleReconcile reconciles a term sheet against booking records supplied
// in the request body.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req reconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.TermSheet == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "term_sheet is required"})
	}
	if len(req.BookingRecords) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "booking_records is required"})
	}

	records := booking.FromMaps(req.BookingRecords)
	l.Info("Running reconciliation",
		zap.Int("records", len(records)),
	)

	results := h.service.Reconcile(req.TermSheet, records)
	return c.JSON(fiber.Map{"results": results})
}

// HandleReconcileDB reconciles a term sheet against the booking database.
func (h *Handler) HandleReconcileDB(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req dbReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.TermSheet == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "term_sheet is required"})
	}

	results, err := h.service.ReconcileAgainstDB(req.TermSheet)
	if err != nil {
		if errors.Is(err, ErrNoDatabase) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Database reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"results": results})
}

// HandleFields returns the configured canonical fields, their comparator
// kinds and accepted booking attribute names.
func (h *Handler) HandleFields(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"fields": h.service.Fields()})
}
