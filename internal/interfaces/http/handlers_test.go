package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-tracker/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventory-tracker-test"
)

type stubPDF struct{}

func (stubPDF) GeneratePurchaseOrderPDF(_ context.Context, po *entity.PurchaseOrder, _ *entity.Supplier, _ []purchasing.PurchaseOrderLineForPDF) ([]byte, error) {
	return []byte("%PDF-" + po.PONumber), nil
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Items(), store.Movements(), nil)
	deps := apphttp.RouterDeps{
		ItemUC:        usecase.NewItemUseCase(store, store.Items(), ledger),
		Ledger:        ledger,
		Replenishment: inventory.NewReplenishmentUseCase(store.Levels()),
		SupplierUC:    purchasing.NewSupplierUseCase(store.Suppliers()),
		PurchaseOrderUC: purchasing.NewPurchaseOrderUseCase(
			store, store.PurchaseOrders(), store.Suppliers(), store.Items(), ledger, nil,
		),
		PurchaseOrderPDF: purchasing.NewPDFUseCase(store.PurchaseOrders(), store.Suppliers(), store.Items(), stubPDF{}),
		DashboardUC:      appanalytics.NewDashboardUseCase(store.Levels(), "USD"),
		JWTSecret:        testJWTSecret,
		RequestTimeout:   5 * time.Second,
		ServiceName:      "inventory-tracker",
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

// do lanza la petición con body JSON opcional y decodifica la respuesta en out (si no es nil).
func do(t *testing.T, app *fiber.App, method, path string, body any, authHeader string, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createItem(t *testing.T, app *fiber.App, name string, qty int) dto.ItemResponse {
	t.Helper()
	var item dto.ItemResponse
	resp := do(t, app, http.MethodPost, "/api/items", fiber.Map{
		"name": name, "quantity": qty, "reorder_level": 5, "price": "10", "cost_price": "6",
	}, "", &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	var body map[string]string
	resp := do(t, app, http.MethodGet, "/health", nil, "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAdjust_VentaYErrores(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, "Tornillo", 10)
	path := "/api/items/" + item.ID + "/adjust"

	var mov dto.StockMovementResponse
	resp := do(t, app, http.MethodPost, path, fiber.Map{"delta": -7, "movement_type": "sold"}, "", &mov)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 10, mov.QuantityBefore)
	assert.Equal(t, 3, mov.QuantityAfter)

	var apiErr dto.ErrorResponse
	resp = do(t, app, http.MethodPost, path, fiber.Map{"delta": -5, "movement_type": "sold"}, "", &apiErr)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)

	resp = do(t, app, http.MethodPost, path, fiber.Map{"delta": 0, "movement_type": "adjusted"}, "", &apiErr)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ZERO_DELTA", apiErr.Code)

	resp = do(t, app, http.MethodPost, path, fiber.Map{"delta": 1, "movement_type": "stolen"}, "", &apiErr)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	var got dto.ItemResponse
	do(t, app, http.MethodGet, "/api/items/"+item.ID, nil, "", &got)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.LowStock)

	var list dto.MovementListResponse
	resp = do(t, app, http.MethodGet, "/api/items/"+item.ID+"/movements", nil, "", &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "sold", list.Items[0].MovementType, "más reciente primero")
	assert.Equal(t, "adjusted", list.Items[1].MovementType)
}

func TestItem_NoEncontrado(t *testing.T) {
	app := buildTestApp(t)
	var apiErr dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/items/nope/adjust", fiber.Map{"delta": 1, "movement_type": "received"}, "", &apiErr)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestItem_BajaOcultaElArticulo(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, "Tuerca", 2)

	resp := do(t, app, http.MethodDelete, "/api/items/"+item.ID, nil, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/items/"+item.ID, nil, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// el historial sigue disponible
	var list dto.MovementListResponse
	resp = do(t, app, http.MethodGet, "/api/items/"+item.ID+"/movements", nil, "", &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Items, 1)
}

func TestItem_EditarCantidadRegistraAjuste(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, "Bisagra", 10)

	var got dto.ItemResponse
	resp := do(t, app, http.MethodPut, "/api/items/"+item.ID,
		fiber.Map{"quantity": 7, "movement_reason": "conteo físico"}, "", &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, got.Quantity)

	var list dto.MovementListResponse
	resp = do(t, app, http.MethodGet, "/api/items/"+item.ID+"/movements", nil, "", &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Items, 2)
	assert.Equal(t, -3, list.Items[0].QuantityChange)
	assert.Equal(t, "adjusted", list.Items[0].MovementType)
}

func TestItem_ProveedorInexistente(t *testing.T) {
	app := buildTestApp(t)
	var apiErr dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/items", fiber.Map{"name": "Cable", "supplier_id": "no-existe"}, "", &apiErr)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestItem_ListaRecortaLimit(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Tornillo", 1)

	var list dto.ItemListResponse
	resp := do(t, app, http.MethodGet, "/api/items?limit=100000000", nil, "", &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.MaxPageLimit, list.Page.Limit)
	assert.Len(t, list.Items, 1)
}

func TestActor_TokenDefineCreatedBy(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, "Arandela", 1)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, 5)
	require.NoError(t, err)

	var mov dto.StockMovementResponse
	resp := do(t, app, http.MethodPost, "/api/items/"+item.ID+"/adjust",
		fiber.Map{"delta": 4, "movement_type": "received"}, "Bearer "+tok, &mov)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, mov.CreatedBy)
	assert.Equal(t, testUserID, *mov.CreatedBy)

	var apiErr dto.ErrorResponse
	resp = do(t, app, http.MethodPost, "/api/items/"+item.ID+"/adjust",
		fiber.Map{"delta": 4, "movement_type": "received"}, "Bearer token.invalido.aqui", &apiErr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", apiErr.Code)
}

func TestPurchaseOrder_RecibirUnaSolaVez(t *testing.T) {
	app := buildTestApp(t)
	item := createItem(t, app, "Cable", 0)

	var sup dto.SupplierResponse
	resp := do(t, app, http.MethodPost, "/api/suppliers", fiber.Map{"name": "Acme"}, "", &sup)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var po dto.PurchaseOrderResponse
	resp = do(t, app, http.MethodPost, "/api/purchase-orders", fiber.Map{
		"supplier_id": sup.ID,
		"items":       []fiber.Map{{"item_id": item.ID, "quantity_ordered": 5, "unit_price": "2"}},
	}, "", &po)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var received dto.PurchaseOrderResponse
	resp = do(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", nil, "", &received)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "received", received.Status)

	var apiErr dto.ErrorResponse
	resp = do(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", nil, "", &apiErr)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_ORDER_STATE", apiErr.Code)

	var got dto.ItemResponse
	do(t, app, http.MethodGet, "/api/items/"+item.ID, nil, "", &got)
	assert.Equal(t, 5, got.Quantity)

	resp = do(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/pdf", nil, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), po.PONumber)
}

func TestLowStockYDashboard(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Bombillo", 1)

	var low struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	resp := do(t, app, http.MethodGet, "/api/inventory/low-stock", nil, "", &low)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, low.Total)
	assert.Equal(t, 7, low.Replenishments[0].SuggestedOrderQty, "ideal 8 menos 1 en stock")

	var summary dto.DashboardSummaryDTO
	resp = do(t, app, http.MethodGet, "/api/dashboard/summary", nil, "", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, 1, summary.LowStockCount)
}
