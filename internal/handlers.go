package internal

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pharmamed/orders/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handlers struct {
	Service IService
	logger  *zap.SugaredLogger
}

func NewHandlers(Service IService, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{Service: Service, logger: logger}
}

func (h *Handlers) GetOrders(c *fiber.Ctx) error {
	selection := c.Query("date", SelectionAll)

	orders, summary, err := h.Service.GetOrders(c.Context(), selection)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		h.logger.Errorf("Error on get orders request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on get orders request"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"orders": orders, "summary": summary})
}

func (h *Handlers) GetDates(c *fiber.Ctx) error {
	buckets, err := h.Service.GetBuckets(c.Context())
	if err != nil {
		h.logger.Errorf("Error on get dates request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on get dates request"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"dates": buckets})
}

func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var i model.OrderInput

	if err := c.BodyParser(&i); err != nil {
		h.logger.Errorf("Error on create order request: %s", err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	order, err := h.Service.CreateOrder(c.Context(), i)
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrUnknownUrgency) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		h.logger.Errorf("Error on create order request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on create order request"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handlers) SetOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	order, err := h.Service.SetOrderStatus(c.Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, ErrUnknownStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		h.logger.Errorf("Error on update status request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on update status request"})
	}

	return c.Status(fiber.StatusOK).JSON(order)
}

func (h *Handlers) DeleteOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err = c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	err = h.Service.DeleteOrder(c.Context(), id, body.Code)
	if err != nil {
		if errors.Is(err, ErrWrongDeleteCode) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		h.logger.Errorf("Error on delete order request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on delete order request"})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) ExportOrders(c *fiber.Ctx) error {
	selection := c.Query("date", SelectionAll)

	export, err := h.Service.ExportOrders(c.Context(), selection)
	if err != nil {
		if errors.Is(err, ErrEmptyExport) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		h.logger.Errorf("Error on export request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on export request"})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	c.Set("X-Export-Id", export.ID)
	return c.Status(fiber.StatusOK).Send(export.Content)
}
