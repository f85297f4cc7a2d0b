package inventory

import (
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateItemRequest struct {
	Name              string   `json:"name"`
	SKU               string   `json:"sku"`
	Category          string   `json:"category"`
	Price             float64  `json:"price"`
	Stock             float64  `json:"stock"`
	Unit              string   `json:"unit"`
	Supplier          string   `json:"supplier"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	SKU               *string  `json:"sku"`
	Category          *string  `json:"category"`
	Price             *float64 `json:"price"`
	Stock             *float64 `json:"stock"`
	Unit              *string  `json:"unit"`
	Supplier          *string  `json:"supplier"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

type ItemResponse struct {
	models.InventoryItem
	LowStock bool `json:"low_stock"`
}

func toItemResponse(item models.InventoryItem) ItemResponse {
	return ItemResponse{
		InventoryItem: item,
		LowStock:      item.Stock < item.LowStockThreshold,
	}
}

// GET /api/inventory
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.InventoryItem
		if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching products")
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toItemResponse(item))
		}

		return c.JSON(resp)
	}
}

// GET /api/inventory/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.InventoryItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(toItemResponse(item))
	}
}

// POST /api/inventory
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == "" || body.Category == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and category are required")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
		}

		if body.SKU != "" {
			var count int64
			database.DB.Model(&models.InventoryItem{}).Where("sku = ?", body.SKU).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "SKU already exists")
			}
		}

		item := models.InventoryItem{
			Name:              body.Name,
			SKU:               body.SKU,
			Category:          body.Category,
			Price:             body.Price,
			Stock:             body.Stock,
			Unit:              body.Unit,
			Supplier:          body.Supplier,
			LowStockThreshold: 5,
		}
		if item.Unit == "" {
			item.Unit = "pcs"
		}
		if item.Supplier == "" {
			item.Supplier = "Unknown"
		}
		if body.LowStockThreshold != nil {
			item.LowStockThreshold = *body.LowStockThreshold
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error creating product")
		}

		return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
	}
}

// PUT /api/inventory/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.InventoryItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.SKU != nil {
			item.SKU = *body.SKU
		}
		if body.Category != nil {
			item.Category = *body.Category
		}
		if body.Price != nil {
			item.Price = *body.Price
		}
		if body.Stock != nil {
			item.Stock = *body.Stock
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.Supplier != nil {
			item.Supplier = *body.Supplier
		}
		if body.LowStockThreshold != nil {
			item.LowStockThreshold = *body.LowStockThreshold
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error updating product")
		}

		return c.JSON(toItemResponse(item))
	}
}

// DELETE /api/inventory/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.InventoryItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if err := database.DB.Delete(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error deleting product")
		}

		return c.JSON(fiber.Map{
			"message": "Product deleted",
		})
	}
}
