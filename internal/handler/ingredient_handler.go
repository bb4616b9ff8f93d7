package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IngredientHandler struct {
	service service.IngredientService
}

func NewIngredientHandler(s service.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: s}
}

func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var ingredient model.Ingredient
	if err := c.BodyParser(&ingredient); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&ingredient); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Ingredient created", "data": ingredient})
}

func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ingredient ID"})
	}

	var ingredient model.Ingredient
	if err := c.BodyParser(&ingredient); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &ingredient)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Ingredient updated", "data": updated})
}

func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ingredient ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Ingredient deleted"})
}

func (h *IngredientHandler) GetAll(c *fiber.Ctx) error {
	ingredients, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(ingredients)
}

func (h *IngredientHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ingredient ID"})
	}

	ingredient, err := h.service.GetOne(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ingredient)
}
