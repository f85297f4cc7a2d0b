package ordertable

import (
	"strconv"
	"strings"
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	TableID *uint            `json:"table_id"` // nil for takeaway
	Items   []OrderItemInput `json:"items"`
	Amount  float64          `json:"amount"`
}

type UpdateOrderRequest struct {
	Status *models.OrderStatus `json:"status"`
	Items  []OrderItemInput    `json:"items"`
	Amount *float64            `json:"amount"`
}

// NewOrderID mints the human-readable identifier printed on receipts,
// e.g. "ORD-9F21A4C3".
func NewOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}

// POST /api/order-table/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "items must not be empty")
		}
		for _, it := range body.Items {
			if it.Name == "" || it.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "every item needs a name and a positive quantity")
			}
		}

		items := make([]models.OrderItem, 0, len(body.Items))
		for _, it := range body.Items {
			items = append(items, models.OrderItem{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}

		order := models.Order{
			OrderID: NewOrderID(),
			TableID: body.TableID,
			Items:   items,
			Amount:  body.Amount,
			Status:  models.OrderStatusPending,
		}

		// Order insert and table occupation commit together, so a failed
		// table update can no longer leave an orphaned order behind.
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.TableID != nil {
				var table models.Table
				if err := tx.First(&table, "id = ?", *body.TableID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, "Table not found")
				}

				if err := tx.Create(&order).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Error creating order")
				}

				now := time.Now()
				updates := map[string]any{
					"active_order_id": order.ID,
					"status":          models.TableStatusOccupied,
					"occupied_at":     now,
				}
				if err := tx.Model(&table).Updates(updates).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Error occupying table")
				}
				return nil
			}

			if err := tx.Create(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Error creating order")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Order created",
			"order":   order,
		})
	}
}

// GET /api/order-table/orders
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Items").Preload("Table")

		if tableID := c.Query("tableId"); tableID != "" {
			id, err := strconv.ParseUint(tableID, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid table ID")
			}
			query = query.Where("table_id = ?", id)
		}

		var orders []models.Order
		if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching orders")
		}

		return c.JSON(fiber.Map{
			"message": "Orders fetched",
			"orders":  orders,
		})
	}
}

// PUT /api/order-table/orders/:id
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		var body UpdateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.Status != nil {
				order.Status = *body.Status
			}
			if body.Amount != nil {
				order.Amount = *body.Amount
			}
			if body.Items != nil {
				for _, it := range body.Items {
					if it.Name == "" || it.Quantity <= 0 {
						return fiber.NewError(fiber.StatusBadRequest, "every item needs a name and a positive quantity")
					}
				}
				// Replace the line items wholesale
				if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Error updating order")
				}
				if len(body.Items) > 0 {
					items := make([]models.OrderItem, 0, len(body.Items))
					for _, it := range body.Items {
						items = append(items, models.OrderItem{
							OrderRef: order.ID,
							Name:     it.Name,
							Quantity: it.Quantity,
							Price:    it.Price,
						})
					}
					if err := tx.Create(&items).Error; err != nil {
						return fiber.NewError(fiber.StatusInternalServerError, "Error updating order")
					}
				}
			}

			if err := tx.Save(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Error updating order")
			}
			return nil
		})
		if err != nil {
			return err
		}

		database.DB.Preload("Items").Preload("Table").First(&order, order.ID)

		return c.JSON(fiber.Map{
			"message": "Order updated",
			"order":   order,
		})
	}
}

// DELETE /api/order-table/orders/:id
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		// Release the table and delete the order in one unit. KOTs derived
		// from the order stay untouched.
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if order.TableID != nil {
				updates := map[string]any{
					"active_order_id": nil,
					"status":          models.TableStatusDirty, // needs cleaning before reuse
					"occupied_at":     nil,
				}
				if err := tx.Model(&models.Table{}).
					Where("id = ?", *order.TableID).
					Updates(updates).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Error releasing table")
				}
			}

			if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Error deleting order")
			}
			if err := tx.Delete(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Error deleting order")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message": "Order deleted",
		})
	}
}
