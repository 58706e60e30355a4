package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// NotificationHandler maneja la bandeja de notificaciones de correo.
type NotificationHandler struct {
	uc         *notification.UseCase
	dispatcher *notification.Dispatcher
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase, dispatcher *notification.Dispatcher) *NotificationHandler {
	return &NotificationHandler{uc: uc, dispatcher: dispatcher}
}

// Send godoc
// @Summary      Enviar una notificación manual (admin)
// @Description  Envía el correo por SMTP y registra la fila solo si el
// @Description  transporte acepta.
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendNotificationRequest  true  "org_id, location_id, subject, message, sent_to"
// @Success      201   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var in dto.SendNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.OrgID == "" || in.Subject == "" || in.Message == "" || in.SentTo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "org_id, subject, message y sent_to son requeridos"})
	}
	n, err := h.dispatcher.Dispatch(c.Context(), notification.Message{
		OrgID:      in.OrgID,
		LocationID: in.LocationID,
		ProductID:  in.ProductID,
		Subject:    in.Subject,
		Body:       in.Message,
		SentTo:     in.SentTo,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toNotificationResponse(n))
}

// List godoc
// @Summary      Listar notificaciones
// @Description  org_id o location_id filtran; sin filtros devuelve todas (admin).
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        org_id       query  string  false  "Filtrar por organización"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        days         query  int     false  "Solo los últimos N días"
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	if locationID := c.Query("location_id"); locationID != "" {
		rows, err := h.uc.ListByLocation(c.Context(), locationID)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(rowsToResponses(rows))
	}
	if orgID := c.Query("org_id"); orgID != "" {
		rows, err := h.uc.ListByOrg(c.Context(), orgID)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(rowsToResponses(rows))
	}
	if days := c.QueryInt("days", 0); days > 0 {
		list, err := h.uc.ListRecent(c.Context(), days)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(listToResponses(list))
	}
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(listToResponses(list))
}

// ListMine godoc
// @Summary      Notificaciones enviadas al usuario autenticado
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications/mine [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListByRecipient(c.Context(), GetEmail(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(listToResponses(list))
}

// UnreadCount godoc
// @Summary      Cantidad de notificaciones sin leer del usuario
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.uc.CountUnread(c.Context(), GetEmail(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.UnreadCountResponse{Count: count})
}

// GetByID godoc
// @Summary      Obtener una notificación
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [get]
func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	n, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if !canAccessNotification(c, n) {
		// No revelamos si la notificación existe.
		return errorJSON(c, domain.ErrNotFound)
	}
	return c.JSON(toNotificationResponse(n))
}

// MarkRead godoc
// @Summary      Marcar una notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la notificación"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if !canAccessNotification(c, n) {
		return errorJSON(c, domain.ErrNotFound)
	}
	if err := h.uc.MarkRead(c.Context(), n.ID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "notificación marcada como leída"})
}

// MarkAllRead godoc
// @Summary      Marcar todas las notificaciones del usuario como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.Context(), GetEmail(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "notificaciones marcadas como leídas"})
}

// Delete godoc
// @Summary      Eliminar una notificación
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la notificación"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "notificación eliminada"})
}

// canAccessNotification decide si el usuario autenticado puede operar sobre
// la notificación: admin siempre; el resto solo si fue enviada a su correo o
// pertenece a su organización.
func canAccessNotification(c *fiber.Ctx, n *entity.Notification) bool {
	if GetRole(c) == entity.RoleAdmin {
		return true
	}
	if n.SentTo != "" && n.SentTo == GetEmail(c) {
		return true
	}
	return n.OrgID != "" && n.OrgID == GetOrgID(c)
}

// ── mappers ───────────────────────────────────────────────────────────────────

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:         n.ID,
		OrgID:      n.OrgID,
		LocationID: n.LocationID,
		ProductID:  n.ProductID,
		Subject:    n.Subject,
		Message:    n.Message,
		SentTo:     n.SentTo,
		SentDate:   n.SentDate,
		ReadFlag:   n.ReadFlag,
	}
}

func rowsToResponses(rows []repository.NotificationRow) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(rows))
	for _, r := range rows {
		resp := toNotificationResponse(&r.Notification)
		resp.ContainerType = r.ContainerType
		resp.LocationName = r.LocationName
		out = append(out, *resp)
	}
	return out
}

func listToResponses(list []*entity.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNotificationResponse(n))
	}
	return out
}
