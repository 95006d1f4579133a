package projection

import (
	"context"
	"fmt"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	coreagg "github.com/puesto-lab/puesto/internal/core/aggregation"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

// Service implements the statistics read path. It keeps no state between requests:
// every query loads the sales and line tables and folds them from scratch.
type Service struct {
	store       storage.TableStore
	topProducts int
}

// NewService creates a new projection service. topProducts <= 0 means
// coreagg.DefaultTopProducts.
func NewService(store storage.TableStore, topProducts int) *Service {
	if store == nil {
		panic("projection: store must not be nil")
	}
	if topProducts <= 0 {
		topProducts = coreagg.DefaultTopProducts
	}
	return &Service{store: store, topProducts: topProducts}
}

// EventStats summarizes the sales of one event. An event with no sales, or one that does
// not exist, yields zero totals.
func (s *Service) EventStats(ctx context.Context, eventoID int64) (*coreagg.Stats, error) {
	return s.stats(ctx, coreagg.EventScope(eventoID))
}

// DefaultScopeStats summarizes the sales that reference no event.
func (s *Service) DefaultScopeStats(ctx context.Context) (*coreagg.Stats, error) {
	return s.stats(ctx, coreagg.DefaultScope())
}

func (s *Service) stats(ctx context.Context, scope coreagg.Scope) (*coreagg.Stats, error) {
	var ventas, detalles []*storage.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if ventas, err = s.store.Load(gctx, storage.TableVentas); err != nil {
			return fmt.Errorf("load ventas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if detalles, err = s.store.Load(gctx, storage.TableDetalleVenta); err != nil {
			return fmt.Errorf("load detalle_venta: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := coreagg.ComputeStats(v1.VentasFromRecords(ventas), v1.DetallesFromRecords(detalles), scope, s.topProducts)
	return &stats, nil
}
