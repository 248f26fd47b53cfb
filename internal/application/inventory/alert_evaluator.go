package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// LowStockAlert artículo en o bajo su nivel de reorden.
type LowStockAlert struct {
	ItemID       string
	ItemName     string
	SKU          string
	Quantity     int
	ReorderLevel int
	OnOrder      int
	DetectedAt   time.Time
}

// LogSink registra las alertas en el logger estructurado.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink por defecto.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// Notify implementa AlertSink.
func (s *LogSink) Notify(_ context.Context, a LowStockAlert) error {
	s.log.Warn().
		Str("item_id", a.ItemID).
		Str("item_name", a.ItemName).
		Str("sku", a.SKU).
		Int("quantity", a.Quantity).
		Int("reorder_level", a.ReorderLevel).
		Int("on_order", a.OnOrder).
		Msg("stock bajo")
	return nil
}

// AlertEvaluator compara periódicamente quantity contra reorder_level.
// Solo lee; nunca modifica inventario. Una alerta se repite únicamente si la cantidad del artículo cambió.
type AlertEvaluator struct {
	levelRepo repository.InventoryLevelRepository
	sink      AlertSink
	interval  time.Duration
	log       *logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	notified map[string]int // item_id -> cantidad ya notificada
}

// NewAlertEvaluator construye el evaluador. interval <= 0 usa 5 minutos.
func NewAlertEvaluator(levelRepo repository.InventoryLevelRepository, sink AlertSink, interval time.Duration, log *logger.Logger) *AlertEvaluator {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	if sink == nil {
		sink = NewLogSink(log)
	}
	return &AlertEvaluator{
		levelRepo: levelRepo,
		sink:      sink,
		interval:  interval,
		log:       log,
		now:       time.Now,
		notified:  make(map[string]int),
	}
}

// Run evalúa al arrancar y luego en cada tick hasta que ctx se cancele.
func (e *AlertEvaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		if _, err := e.Evaluate(ctx); err != nil && ctx.Err() == nil {
			e.log.Error().Err(err).Msg("evaluación de alertas falló")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Evaluate ejecuta una pasada y devuelve las alertas nuevas emitidas.
func (e *AlertEvaluator) Evaluate(ctx context.Context) ([]LowStockAlert, error) {
	items, err := e.levelRepo.GetItemsBelowReorderLevel(ctx, "")
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	seen := make(map[string]int, len(items))
	var emitted []LowStockAlert
	for _, it := range items {
		seen[it.ItemID] = it.Quantity
		if last, ok := e.notified[it.ItemID]; ok && last == it.Quantity {
			continue
		}
		alert := LowStockAlert{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			ReorderLevel: it.ReorderLevel,
			OnOrder:      it.OnOrder,
			DetectedAt:   now,
		}
		if err := e.sink.Notify(ctx, alert); err != nil {
			e.log.Error().Err(err).Str("item_id", it.ItemID).Msg("no se pudo notificar alerta")
			delete(seen, it.ItemID)
			continue
		}
		emitted = append(emitted, alert)
	}
	// Los artículos repuestos salen del mapa y volverán a alertar si bajan de nuevo.
	e.notified = seen
	return emitted, nil
}
