// Package analytics contiene los casos de uso de lectura para el dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/currency"
)

const (
	dashboardRecentMovements = 10 // movimientos en el widget de actividad
	dashboardPeriodDays      = 30
)

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	currencyCode  string
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. currencyCode se usa para los montos formateados.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, currencyCode string) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		currencyCode:  currency.Normalize(currencyCode),
		now:           time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetInventorySummary       → conteos y valorización
//  2. GetPurchaseOrderSummary   → órdenes abiertas
//  3. GetMovementCounts(30 d)   → movimientos por tipo
//  4. ListRecentMovements(10)   → actividad reciente
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -dashboardPeriodDays)

	type invResult struct {
		sum repository.InventorySummary
		err error
	}
	type poResult struct {
		sum repository.PurchaseOrderSummary
		err error
	}
	type countsResult struct {
		rows []repository.MovementTypeCount
		err  error
	}
	type recentResult struct {
		rows []*dto.StockMovementResponse
		err  error
	}

	invCh := make(chan invResult, 1)
	poCh := make(chan poResult, 1)
	countsCh := make(chan countsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		sum, err := uc.analyticsRepo.GetInventorySummary(ctx)
		invCh <- invResult{sum, err}
	}()
	go func() {
		sum, err := uc.analyticsRepo.GetPurchaseOrderSummary(ctx)
		poCh <- poResult{sum, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMovementCounts(ctx, start, end)
		countsCh <- countsResult{rows, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.ListRecentMovements(ctx, dashboardRecentMovements)
		if err != nil {
			recentCh <- recentResult{nil, err}
			return
		}
		rows := make([]*dto.StockMovementResponse, 0, len(list))
		for _, m := range list {
			r := inventory.ToMovementResponse(m)
			rows = append(rows, &r)
		}
		recentCh <- recentResult{rows, nil}
	}()

	inv := <-invCh
	po := <-poCh
	counts := <-countsCh
	recent := <-recentCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de inventario: %w", inv.err)
	}
	if po.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes abiertas: %w", po.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por tipo: %w", counts.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}

	byType := make([]dto.MovementTypeSummaryDTO, 0, len(counts.rows))
	for _, c := range counts.rows {
		byType = append(byType, dto.MovementTypeSummaryDTO{
			MovementType: c.Type.String(),
			Count:        c.Count,
			NetUnits:     c.NetUnits,
		})
	}
	recentRows := make([]dto.StockMovementResponse, 0, len(recent.rows))
	for _, r := range recent.rows {
		recentRows = append(recentRows, *r)
	}

	return &dto.DashboardSummaryDTO{
		ItemCount:              inv.sum.ItemCount,
		UnitsOnHand:            inv.sum.UnitsOnHand,
		ValueAtCost:            inv.sum.ValueAtCost.Round(2),
		ValueAtPrice:           inv.sum.ValueAtPrice.Round(2),
		ValueAtCostText:        currency.Format(inv.sum.ValueAtCost, uc.currencyCode),
		LowStockCount:          inv.sum.LowStockCount,
		OutOfStockCount:        inv.sum.OutOfStockCount,
		OpenPurchaseOrders:     po.sum.OpenCount,
		OpenPurchaseOrderValue: po.sum.OpenValue.Round(2),
		MovementsByType:        byType,
		RecentMovements:        recentRows,
		PeriodLabel:            periodLabel(start, end),
	}, nil
}

// periodLabel etiqueta legible del período, ej: "17 Septiembre 2026 - 17 Octubre 2026".
func periodLabel(start, end time.Time) string {
	return dayLabel(start) + " - " + dayLabel(end)
}

func dayLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}
