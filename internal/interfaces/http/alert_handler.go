package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/application/alerts"
	"github.com/jhoicas/medstock-api/internal/application/dto"
)

// AlertHandler maneja el tablero de alertas (protegido).
type AlertHandler struct {
	uc  *alerts.AlertUseCase
	log zerolog.Logger
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertUseCase, log zerolog.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar alertas de inventario
// @Description  Deriva las alertas de vencimiento y stock bajo sobre el inventario actual.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "all | active | acknowledged"
// @Param        type      query  string  false  "expired | expiring | low_stock"
// @Param        priority  query  string  false  "critical | high | medium"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var filter dto.AlertFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Contadores de alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertSummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/alerts/summary [get]
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Acknowledge godoc
// @Summary      Reconocer alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta (expired-12, low-stock-4, ...)"
// @Success      200  {object}  dto.AcknowledgeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Acknowledge(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.AcknowledgeResponse{AlertID: id, Acknowledged: true})
}

// Unacknowledge godoc
// @Summary      Quitar reconocimiento
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AcknowledgeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [delete]
func (h *AlertHandler) Unacknowledge(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Unacknowledge(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.AcknowledgeResponse{AlertID: id, Acknowledged: false})
}

// Acknowledgments godoc
// @Summary      Historial de reconocimientos
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Acknowledgment
// @Router       /api/alerts/acknowledgments [get]
func (h *AlertHandler) Acknowledgments(c *fiber.Ctx) error {
	list, err := h.uc.Acknowledgments(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// Export godoc
// @Summary      Exportar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format    query  string  false  "xlsx (por defecto) | pdf"
// @Param        status    query  string  false  "all | active | acknowledged"
// @Param        type      query  string  false  "expired | expiring | low_stock"
// @Param        priority  query  string  false  "critical | high | medium"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/export [get]
func (h *AlertHandler) Export(c *fiber.Ctx) error {
	var filter dto.AlertFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Export(c.UserContext(), c.Query("format", "xlsx"), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Send(out.Body)
}

// InvalidateCollections godoc
// @Summary      Invalidar caché de colecciones
// @Description  Tras una escritura en el inventario, descarta las colecciones indicadas (todas si se omite).
// @Tags         collections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvalidateCollectionsRequest  false  "Colecciones"
// @Success      200  {object}  map[string][]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/collections/invalidate [post]
func (h *AlertHandler) InvalidateCollections(c *fiber.Ctx) error {
	var in dto.InvalidateCollectionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	names, err := h.uc.InvalidateCollections(c.UserContext(), in.Collections)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"invalidated": names})
}
