package handler

import (
	"strconv"

	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(s service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: s}
}

// boolQuery reads an optional boolean query param, nil when absent or bad.
func boolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func pageQuery(c *fiber.Ctx) *repository.Pagination {
	limit := c.QueryInt("limit", 0)
	if limit <= 0 {
		return nil
	}
	return &repository.Pagination{
		Page:  c.QueryInt("page", 0),
		Limit: limit,
	}
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	recipe, err := h.service.Create(&req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Recipe created", "data": recipe})
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid recipe ID"})
	}

	var req service.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	recipe, err := h.service.Update(id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Recipe updated", "data": recipe})
}

func (h *RecipeHandler) TogglePublish(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid recipe ID"})
	}

	recipe, err := h.service.TogglePublish(id)
	if err != nil {
		return fail(c, err)
	}

	message := "Recipe unpublished"
	if recipe.IsPublished {
		message = "Recipe published"
	}
	return c.JSON(fiber.Map{"message": message, "data": recipe})
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid recipe ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Recipe deleted"})
}

func (h *RecipeHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid recipe ID"})
	}

	recipe, err := h.service.GetOne(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) List(c *fiber.Ctx) error {
	filter := repository.RecipeFilter{
		Name:       c.Query("name"),
		Published:  boolQuery(c, "is_published"),
		Discounted: boolQuery(c, "is_discount"),
		BestSeller: boolQuery(c, "is_best_seller"),
	}

	var sorting *repository.RecipeSorting
	if field := c.Query("sort"); field != "" {
		sorting = &repository.RecipeSorting{
			Field:     field,
			Direction: c.Query("direction", "asc"),
		}
	}

	recipes, total, err := h.service.List(filter, sorting, pageQuery(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"data": recipes, "total": total})
}
