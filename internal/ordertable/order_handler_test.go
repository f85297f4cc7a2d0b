package ordertable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pos-backend/internal/database"
	"pos-backend/internal/kot"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	database.DB = db
	return db
}

func newOrderTableApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		},
	})

	app.Post("/api/order-table/tables", CreateTableHandler())
	app.Get("/api/order-table/tables", ListTablesHandler())
	app.Put("/api/order-table/tables/:id", UpdateTableHandler())
	app.Delete("/api/order-table/tables/:id", DeleteTableHandler())

	app.Post("/api/order-table/orders", CreateOrderHandler())
	app.Get("/api/order-table/orders", ListOrdersHandler())
	app.Put("/api/order-table/orders/:id", UpdateOrderHandler())
	app.Delete("/api/order-table/orders/:id", DeleteOrderHandler())

	app.Get("/api/order-table/billing/:tableId", TableBillingHandler())

	app.Post("/api/kot/create", kot.CreateKOTHandler())
	app.Put("/api/kot/accept/:kotId", kot.AdvanceKOTHandler(models.KOTStatusAccepted, "KOT Accepted"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func seedTable(t *testing.T, db *gorm.DB, number int) models.Table {
	t.Helper()

	table := models.Table{
		TableNumber:   number,
		Seats:         4,
		Status:        models.TableStatusFree,
		BillingStatus: models.BillingStatusNone,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

func soupOrderBody(tableID *uint) CreateOrderRequest {
	return CreateOrderRequest{
		TableID: tableID,
		Items:   []OrderItemInput{{Name: "Soup", Quantity: 1, Price: 100}},
		Amount:  100,
	}
}

func decodeOrder(t *testing.T, raw []byte) models.Order {
	t.Helper()

	var out struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal order: %v", err)
	}
	return out.Order
}

func TestNewOrderIDFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewOrderID()
		if !strings.HasPrefix(id, "ORD-") || len(id) != 12 {
			t.Fatalf("order id %q does not match ORD-XXXXXXXX", id)
		}
		if id != strings.ToUpper(id) {
			t.Fatalf("order id %q is not uppercase", id)
		}
		if seen[id] {
			t.Fatalf("order id %q repeated", id)
		}
		seen[id] = true
	}
}

func TestCreateOrderOccupiesTable(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	table := seedTable(t, db, 5)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&table.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}
	order := decodeOrder(t, raw)

	var stored models.Table
	if err := db.First(&stored, table.ID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if stored.Status != models.TableStatusOccupied {
		t.Errorf("table status = %s, want occupied", stored.Status)
	}
	if stored.ActiveOrderID == nil || *stored.ActiveOrderID != order.ID {
		t.Errorf("active_order_id = %v, want %d", stored.ActiveOrderID, order.ID)
	}
	if stored.OccupiedAt == nil {
		t.Error("occupied_at not set")
	}
}

func TestCreateTakeawayOrderLeavesTablesAlone(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	table := seedTable(t, db, 5)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var stored models.Table
	if err := db.First(&stored, table.ID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if stored.Status != models.TableStatusFree || stored.ActiveOrderID != nil {
		t.Errorf("takeaway order touched the table: status = %s, active = %v", stored.Status, stored.ActiveOrderID)
	}
}

func TestCreateOrderTableMissing(t *testing.T) {
	setupTestDB(t)
	app := newOrderTableApp()

	missing := uint(9999)
	resp, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&missing))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s, want 404", resp.StatusCode, raw)
	}

	// The transaction must have rolled the order back too
	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("orphaned orders after failed table bind: %d", count)
	}
}

func TestCreateOrderRequiresItems(t *testing.T) {
	setupTestDB(t)
	app := newOrderTableApp()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", CreateOrderRequest{Amount: 100})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s, want 400", resp.StatusCode, raw)
	}
}

func TestListOrdersFilterByTable(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	table := seedTable(t, db, 1)
	other := seedTable(t, db, 2)

	doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&table.ID))
	doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&other.ID))

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/order-table/orders?tableId=%d", table.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(out.Orders))
	}
	if out.Orders[0].TableID == nil || *out.Orders[0].TableID != table.ID {
		t.Errorf("filtered order table_id = %v, want %d", out.Orders[0].TableID, table.ID)
	}
}

func TestListOrdersMalformedTableID(t *testing.T) {
	setupTestDB(t)
	app := newOrderTableApp()

	resp, raw := doJSON(t, app, http.MethodGet, "/api/order-table/orders?tableId=not-a-number", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s, want 400", resp.StatusCode, raw)
	}
}

func TestDeleteOrderReleasesTable(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	table := seedTable(t, db, 5)

	_, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&table.ID))
	order := decodeOrder(t, raw)

	resp, raw := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/order-table/orders/%d", order.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var stored models.Table
	if err := db.First(&stored, table.ID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if stored.Status != models.TableStatusDirty {
		t.Errorf("table status = %s, want dirty", stored.Status)
	}
	if stored.ActiveOrderID != nil {
		t.Errorf("active_order_id = %v, want null", stored.ActiveOrderID)
	}

	var count int64
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	if count != 0 {
		t.Error("order row still present after delete")
	}
	db.Model(&models.OrderItem{}).Where("order_ref = ?", order.ID).Count(&count)
	if count != 0 {
		t.Error("order items still present after delete")
	}
}

func TestDeleteOrderMissing(t *testing.T) {
	setupTestDB(t)
	app := newOrderTableApp()

	resp, raw := doJSON(t, app, http.MethodDelete, "/api/order-table/orders/9999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s, want 404", resp.StatusCode, raw)
	}
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	_, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(nil))
	order := decodeOrder(t, raw)

	newStatus := models.OrderStatusBilling
	newAmount := 250.0
	resp, raw := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/order-table/orders/%d", order.ID), UpdateOrderRequest{
		Status: &newStatus,
		Amount: &newAmount,
		Items:  []OrderItemInput{{Name: "Biryani", Quantity: 1, Price: 250}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}
	updated := decodeOrder(t, raw)

	if updated.Status != models.OrderStatusBilling {
		t.Errorf("status = %s, want Billing", updated.Status)
	}
	if updated.Amount != 250 {
		t.Errorf("amount = %v, want 250", updated.Amount)
	}
	if len(updated.Items) != 1 || updated.Items[0].Name != "Biryani" {
		t.Errorf("items = %+v, want single Biryani line", updated.Items)
	}

	var count int64
	db.Model(&models.OrderItem{}).Where("order_ref = ?", order.ID).Count(&count)
	if count != 1 {
		t.Errorf("stored items = %d, want 1", count)
	}
}

func TestBillingSnapshot(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	table := seedTable(t, db, 7)
	_, raw := doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&table.ID))
	order := decodeOrder(t, raw)

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/order-table/billing/%d", table.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, raw)
	}

	var out struct {
		TableNumber  int                `json:"table_number"`
		Status       models.TableStatus `json:"status"`
		CurrentOrder *models.Order      `json:"current_order"`
		OccupiedAt   *string            `json:"occupied_at"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.TableNumber != 7 {
		t.Errorf("table_number = %d, want 7", out.TableNumber)
	}
	if out.Status != models.TableStatusOccupied {
		t.Errorf("status = %s, want occupied", out.Status)
	}
	if out.CurrentOrder == nil || out.CurrentOrder.ID != order.ID {
		t.Errorf("current_order = %+v, want order %d", out.CurrentOrder, order.ID)
	}
	if out.OccupiedAt == nil {
		t.Error("occupied_at missing from billing snapshot")
	}
}

func TestBillingSnapshotTableMissing(t *testing.T) {
	setupTestDB(t)
	app := newOrderTableApp()

	resp, raw := doJSON(t, app, http.MethodGet, "/api/order-table/billing/9999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s, want 404", resp.StatusCode, raw)
	}
}

// The full floor workflow: seat guests, cook, clear the table. Deleting the
// order must free the table but leave the kitchen ticket in place.
func TestEndToEndTableOrderKOTFlow(t *testing.T) {
	db := setupTestDB(t)
	app := newOrderTableApp()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/order-table/tables", CreateTableRequest{TableNumber: 5, Seats: 4, Status: models.TableStatusFree})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create table: status = %d, body = %s", resp.StatusCode, raw)
	}
	var tableOut struct {
		Table models.Table `json:"table"`
	}
	if err := json.Unmarshal(raw, &tableOut); err != nil {
		t.Fatalf("unmarshal table: %v", err)
	}
	tableID := tableOut.Table.ID

	resp, raw = doJSON(t, app, http.MethodPost, "/api/order-table/orders", soupOrderBody(&tableID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: status = %d, body = %s", resp.StatusCode, raw)
	}
	order := decodeOrder(t, raw)

	var table models.Table
	if err := db.First(&table, tableID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if table.Status != models.TableStatusOccupied || table.ActiveOrderID == nil || *table.ActiveOrderID != order.ID {
		t.Fatalf("table not occupied by order: status = %s, active = %v", table.Status, table.ActiveOrderID)
	}

	resp, raw = doJSON(t, app, http.MethodPost, "/api/kot/create", kot.CreateKOTRequest{OrderID: order.ID})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create kot: status = %d, body = %s", resp.StatusCode, raw)
	}
	var kotOut struct {
		KOT models.KOT `json:"kot"`
	}
	if err := json.Unmarshal(raw, &kotOut); err != nil {
		t.Fatalf("unmarshal kot: %v", err)
	}
	if kotOut.KOT.Status != models.KOTStatusPending {
		t.Errorf("kot status = %s, want pending", kotOut.KOT.Status)
	}
	if len(kotOut.KOT.Items) != 1 || kotOut.KOT.Items[0].Name != "Soup" || kotOut.KOT.Items[0].Quantity != 1 {
		t.Errorf("kot items = %+v, want Soup x1", kotOut.KOT.Items)
	}

	resp, raw = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/kot/accept/%d", kotOut.KOT.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept kot: status = %d, body = %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/order-table/orders/%d", order.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete order: status = %d, body = %s", resp.StatusCode, raw)
	}

	if err := db.First(&table, tableID).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if table.Status != models.TableStatusDirty {
		t.Errorf("table status = %s, want dirty", table.Status)
	}
	if table.ActiveOrderID != nil {
		t.Errorf("active_order_id = %v, want null", table.ActiveOrderID)
	}

	// No cascade: the ticket survives its order
	var ticket models.KOT
	if err := db.First(&ticket, kotOut.KOT.ID).Error; err != nil {
		t.Fatalf("kot deleted with order: %v", err)
	}
	if ticket.Status != models.KOTStatusAccepted || ticket.AcceptedAt == nil {
		t.Errorf("kot state changed by order delete: %s", ticket.Status)
	}
}
