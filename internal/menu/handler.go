package menu

import (
	"net/url"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VariantInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateMenuItemRequest struct {
	Category models.MenuCategory   `json:"category"`
	Name     string                `json:"name"`
	Price    float64               `json:"price"`
	Variants []VariantInput        `json:"variants"`
	Status   models.MenuItemStatus `json:"status"`
}

type UpdateMenuItemRequest struct {
	Category *models.MenuCategory   `json:"category"`
	Name     *string                `json:"name"`
	Price    *float64               `json:"price"`
	Variants []VariantInput         `json:"variants"`
	Status   *models.MenuItemStatus `json:"status"`
}

// GET /api/menu/:category
func ListByCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Category names carry spaces ("Main Course"), so the path
		// segment arrives percent-encoded.
		raw, err := url.PathUnescape(c.Params("category"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown menu category")
		}
		category := models.MenuCategory(raw)
		if !models.ValidMenuCategory(category) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown menu category")
		}

		var items []models.MenuItem
		err = database.DB.
			Preload("Variants").
			Where("category = ?", category).
			Order("name ASC").
			Find(&items).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching menu items")
		}

		return c.JSON(items)
	}
}

// POST /api/menu
func CreateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if !models.ValidMenuCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown menu category")
		}

		status := body.Status
		if status == "" {
			status = models.MenuItemAvailable
		}

		variants := make([]models.MenuItemVariant, 0, len(body.Variants))
		for _, v := range body.Variants {
			variants = append(variants, models.MenuItemVariant{Name: v.Name, Price: v.Price})
		}

		item := models.MenuItem{
			Category: body.Category,
			Name:     body.Name,
			Price:    body.Price,
			Variants: variants,
			Status:   status,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error creating menu item")
		}

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/menu/:id
func UpdateMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		var body UpdateMenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Category != nil {
			if !models.ValidMenuCategory(*body.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown menu category")
			}
			item.Category = *body.Category
		}
		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.Price != nil {
			item.Price = *body.Price
		}
		if body.Status != nil {
			item.Status = *body.Status
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.Variants != nil {
				if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemVariant{}).Error; err != nil {
					return err
				}
				if len(body.Variants) > 0 {
					variants := make([]models.MenuItemVariant, 0, len(body.Variants))
					for _, v := range body.Variants {
						variants = append(variants, models.MenuItemVariant{
							MenuItemID: item.ID,
							Name:       v.Name,
							Price:      v.Price,
						})
					}
					if err := tx.Create(&variants).Error; err != nil {
						return err
					}
				}
			}
			return tx.Save(&item).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error updating menu item")
		}

		database.DB.Preload("Variants").First(&item, item.ID)

		return c.JSON(item)
	}
}

// DELETE /api/menu/:id
func DeleteMenuItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemVariant{}).Error; err != nil {
				return err
			}
			return tx.Delete(&item).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error deleting menu item")
		}

		return c.JSON(fiber.Map{
			"message": "Deleted",
		})
	}
}
