package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.Create(&req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction created", "data": transaction})
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req service.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.Update(id, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": result.Message, "data": result.Transaction})
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.Delete(id, getActor(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

func (h *TransactionHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetOne(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transaction)
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		Date:          c.Query("date"),
		Cashier:       c.Query("cashier"),
		PaymentMethod: c.Query("payment_method"),
		Status:        model.TransactionStatus(c.Query("status")),
	}

	var sorting *repository.TransactionSorting
	if field := c.Query("sort"); field != "" {
		sorting = &repository.TransactionSorting{
			Field:     field,
			Direction: c.Query("direction", "asc"),
		}
	}

	transactions, total, err := h.service.List(filter, sorting, pageQuery(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"data": transactions, "total": total})
}
