package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tempo-api/internal/application/dto"
	"github.com/jhoicas/Tempo-api/internal/application/timetracking"
)

// TimerHandler maneja el temporizador y el libro de tiempos (protegido).
type TimerHandler struct {
	uc *timetracking.UseCase
}

// NewTimerHandler construye el handler.
func NewTimerHandler(uc *timetracking.UseCase) *TimerHandler {
	return &TimerHandler{uc: uc}
}

// Start arranca el temporizador sobre una tarea.
// POST /api/timer/start
func (h *TimerHandler) Start(c *fiber.Ctx) error {
	var in dto.StartTimerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.Start(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Stop detiene el temporizador en curso.
// POST /api/timer/stop
func (h *TimerHandler) Stop(c *fiber.Ctx) error {
	entry, err := h.uc.Stop(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

// Current devuelve el temporizador en curso (con tiempo transcurrido
// derivado) o 204 si no hay ninguno.
// GET /api/timer/current
func (h *TimerHandler) Current(c *fiber.Ctx) error {
	entry, err := h.uc.Current(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	if entry == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(entry)
}

// CreateEntry crea una entrada manual (inicio y fin juntos).
// POST /api/entries
func (h *TimerHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateManual(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListEntries lista entradas del usuario; ?from=&to= opcionales (2006-01-02).
// GET /api/entries
func (h *TimerHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.uc.List(c.Context(), GetUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// UpdateEntry edita una entrada terminada y no aprobada.
// PUT /api/entries/:id
func (h *TimerHandler) UpdateEntry(c *fiber.Ctx) error {
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

// DeleteEntry borra lógicamente una entrada.
// DELETE /api/entries/:id
func (h *TimerHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveEntry marca una entrada como aprobada (lista para facturar).
// POST /api/entries/:id/approve
func (h *TimerHandler) ApproveEntry(c *fiber.Ctx) error {
	entry, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}
