package ventas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	msgEmptySale       = "Venta vacía o malformateada"
	msgSaleNotFound    = "Venta no encontrada"
	defaultScopeLabel  = "Campamento Adolescentes 2025"
	defaultScopeFecha  = "2025-01-01"
	unknownProductName = "Desconocido"
)

// Options configures how sales outside any event are presented.
type Options struct {
	DefaultScopeLabel string
	DefaultScopeDate  string
}

// Service records and removes sales, keeping product stock in step.
//
// Every operation loads the tables it needs on entry and saves them on exit. The three
// saves of a create or delete are independent full-table overwrites: a failure between
// them is not rolled back.
type Service struct {
	store storage.TableStore
	opts  Options
	nowFn func() time.Time
}

func NewService(store storage.TableStore, opts Options) *Service {
	if store == nil {
		panic("ventas: store must not be nil")
	}
	if opts.DefaultScopeLabel == "" {
		opts.DefaultScopeLabel = defaultScopeLabel
	}
	if opts.DefaultScopeDate == "" {
		opts.DefaultScopeDate = defaultScopeFecha
	}
	return &Service{
		store: store,
		opts:  opts,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// CreateSale validates every item against current stock, then decrements stock and
// appends the sale and its lines. Nothing is saved unless all items pass.
func (s *Service) CreateSale(ctx context.Context, req NuevaVenta) (*v1.Venta, []v1.DetalleVenta, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}
	if err := s.checkEvento(ctx, req.EventoID); err != nil {
		return nil, nil, err
	}

	productos, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return nil, nil, fmt.Errorf("load productos: %w", err)
	}
	ventas, err := s.store.Load(ctx, storage.TableVentas)
	if err != nil {
		return nil, nil, fmt.Errorf("load ventas: %w", err)
	}
	detalles, err := s.store.Load(ctx, storage.TableDetalleVenta)
	if err != nil {
		return nil, nil, fmt.Errorf("load detalle_venta: %w", err)
	}

	// Stock is checked against the running in-memory count, so two items for the same
	// product are checked together.
	for _, item := range req.Items {
		idx := storage.FindByID(productos, item.ProductoID)
		if idx == -1 {
			return nil, nil, httperr.Invalidf("Producto ID %d no encontrado", item.ProductoID)
		}
		p := productos[idx]
		stock := p.Int("stock")
		if item.Cantidad > stock {
			return nil, nil, httperr.InsufficientStockf("Stock insuficiente para %s", p.String("nombre"))
		}
		p.Set("stock", stock-item.Cantidad)
	}

	venta := v1.Venta{
		ID:         storage.NextID(ventas),
		Fecha:      s.nowFn().UTC().Format(v1.FechaLayout),
		Total:      decimal.Zero,
		Ganancia:   decimal.Zero,
		MetodoPago: req.MetodoPago,
		Efectivo:   req.Efectivo,
		Debe:       req.Debe,
		EventoID:   req.EventoID.ptr(),
	}

	nextLine := storage.NextID(detalles)
	lineas := make([]v1.DetalleVenta, 0, len(req.Items))
	for _, item := range req.Items {
		d := v1.DetalleVenta{
			ID:         nextLine,
			VentaID:    venta.ID,
			ProductoID: item.ProductoID,
			Cantidad:   item.Cantidad,
			Subtotal:   item.Subtotal,
			Ganancia:   item.Ganancia,
		}
		nextLine++
		venta.Total = venta.Total.Add(item.Subtotal)
		venta.Ganancia = venta.Ganancia.Add(item.Ganancia)
		lineas = append(lineas, d)
		detalles = append(detalles, d.ToRecord())
	}

	if err := s.store.Save(ctx, storage.TableProductos, productos); err != nil {
		return nil, nil, fmt.Errorf("save productos: %w", err)
	}
	if err := s.store.Save(ctx, storage.TableVentas, append(ventas, venta.ToRecord())); err != nil {
		return nil, nil, fmt.Errorf("save ventas: %w", err)
	}
	if err := s.store.Save(ctx, storage.TableDetalleVenta, detalles); err != nil {
		return nil, nil, fmt.Errorf("save detalle_venta: %w", err)
	}

	return &venta, lineas, nil
}

// DeleteSale removes a sale and its lines and gives their quantities back to stock.
// Lines whose product no longer exists are dropped without restoring anything.
func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	ventas, err := s.store.Load(ctx, storage.TableVentas)
	if err != nil {
		return fmt.Errorf("load ventas: %w", err)
	}
	idx := storage.FindByID(ventas, id)
	if idx == -1 {
		return httperr.NotFoundf(msgSaleNotFound)
	}

	detalles, err := s.store.Load(ctx, storage.TableDetalleVenta)
	if err != nil {
		return fmt.Errorf("load detalle_venta: %w", err)
	}
	productos, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return fmt.Errorf("load productos: %w", err)
	}

	keptLines := make([]*storage.Record, 0, len(detalles))
	for _, d := range detalles {
		if d.Int("venta_id") != id {
			keptLines = append(keptLines, d)
			continue
		}
		pIdx := storage.FindByID(productos, d.Int("producto_id"))
		if pIdx == -1 {
			continue
		}
		p := productos[pIdx]
		p.Set("stock", p.Int("stock")+d.Int("cantidad"))
	}

	keptVentas := make([]*storage.Record, 0, len(ventas))
	for _, v := range ventas {
		if v.Int("id") != id {
			keptVentas = append(keptVentas, v)
		}
	}

	if err := s.store.Save(ctx, storage.TableProductos, productos); err != nil {
		return fmt.Errorf("save productos: %w", err)
	}
	if err := s.store.Save(ctx, storage.TableVentas, keptVentas); err != nil {
		return fmt.Errorf("save ventas: %w", err)
	}
	if err := s.store.Save(ctx, storage.TableDetalleVenta, keptLines); err != nil {
		return fmt.Errorf("save detalle_venta: %w", err)
	}
	return nil
}

// UpdateSale overwrites the given fields of a sale row. Any field may be set, including
// ones the ledger does not know about, except id. Stock and lines are not touched.
func (s *Service) UpdateSale(ctx context.Context, id int64, patch map[string]interface{}) (*v1.Venta, error) {
	ventas, err := s.store.Load(ctx, storage.TableVentas)
	if err != nil {
		return nil, fmt.Errorf("load ventas: %w", err)
	}
	idx := storage.FindByID(ventas, id)
	if idx == -1 {
		return nil, httperr.NotFoundf(msgSaleNotFound)
	}

	fields := make([]string, 0, len(patch))
	for field := range patch {
		if field != "id" && field != "" {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	r := ventas[idx]
	for _, field := range fields {
		r.Set(field, patchValue(patch[field]))
	}

	if err := s.store.Save(ctx, storage.TableVentas, ventas); err != nil {
		return nil, fmt.Errorf("save ventas: %w", err)
	}
	v := v1.VentaFromRecord(r)
	return &v, nil
}

// ListSales returns every sale with its lines and event, newest first.
func (s *Service) ListSales(ctx context.Context) ([]VentaConDetalles, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]VentaConDetalles, 0, len(t.ventas))
	for _, v := range t.ventas {
		out = append(out, s.join(v, t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return parseFecha(out[i].Fecha).After(parseFecha(out[j].Fecha))
	})
	return out, nil
}

// GetSale returns one joined sale.
func (s *Service) GetSale(ctx context.Context, id int64) (*VentaConDetalles, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range t.ventas {
		if v.ID == id {
			joined := s.join(v, t)
			return &joined, nil
		}
	}
	return nil, httperr.NotFoundf(msgSaleNotFound)
}

type tables struct {
	ventas    []v1.Venta
	detalles  []v1.DetalleVenta
	productos map[int64]string
	eventos   map[int64]v1.Evento
}

// loadTables reads the four tables concurrently. An unreadable eventos table only costs
// the event names, so it is logged and treated as empty.
func (s *Service) loadTables(ctx context.Context) (*tables, error) {
	var ventas, detalles, productos, eventos []*storage.Record

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
	g.Go(func() error {
		var err error
		if productos, err = s.store.Load(gctx, storage.TableProductos); err != nil {
			return fmt.Errorf("load productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if eventos, err = s.store.Load(gctx, storage.TableEventos); err != nil {
			slog.Warn("Could not load eventos, listing sales under the default scope", "error", err)
			eventos = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &tables{
		ventas:    v1.VentasFromRecords(ventas),
		detalles:  v1.DetallesFromRecords(detalles),
		productos: make(map[int64]string, len(productos)),
		eventos:   make(map[int64]v1.Evento, len(eventos)),
	}
	for _, r := range productos {
		id := r.Int("id")
		if _, seen := t.productos[id]; !seen {
			t.productos[id] = r.String("nombre")
		}
	}
	for _, r := range eventos {
		e := v1.EventoFromRecord(r)
		if _, seen := t.eventos[e.ID]; !seen {
			t.eventos[e.ID] = e
		}
	}
	return t, nil
}

func (s *Service) join(v v1.Venta, t *tables) VentaConDetalles {
	out := VentaConDetalles{
		Venta:        v,
		Detalles:     []v1.DetalleVenta{},
		EventoNombre: s.opts.DefaultScopeLabel,
		EventoFecha:  s.opts.DefaultScopeDate,
	}

	for _, d := range t.detalles {
		if d.VentaID != v.ID {
			continue
		}
		d.Nombre = unknownProductName
		if nombre := t.productos[d.ProductoID]; nombre != "" {
			d.Nombre = nombre
		}
		out.Detalles = append(out.Detalles, d)
	}

	if v.EventoID != nil {
		if e, ok := t.eventos[*v.EventoID]; ok {
			out.EventoID = v.EventoID
			out.EventoNombre = e.Nombre
			out.EventoFecha = e.Fecha
		}
	}
	return out
}

func (s *Service) checkEvento(ctx context.Context, ref EventoRef) error {
	if ref == 0 {
		return nil
	}
	eventos, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return fmt.Errorf("load eventos: %w", err)
	}
	if storage.FindByID(eventos, int64(ref)) == -1 {
		return httperr.Invalidf("Evento ID %d no encontrado", int64(ref))
	}
	return nil
}

func validateRequest(req NuevaVenta) error {
	if len(req.Items) == 0 {
		return httperr.Invalidf(msgEmptySale)
	}
	for _, item := range req.Items {
		if item.ProductoID <= 0 {
			return httperr.Invalidf("Producto ID %d no encontrado", item.ProductoID)
		}
		if item.Cantidad <= 0 {
			return httperr.Invalidf("Cantidad inválida para producto ID %d", item.ProductoID)
		}
	}
	if !v1.ValidMetodoPago(req.MetodoPago) {
		return httperr.Invalidf("Método de pago inválido: %s", req.MetodoPago)
	}
	if req.Efectivo != nil && req.Efectivo.IsNegative() {
		return httperr.Invalidf("Efectivo inválido")
	}
	return nil
}

// patchValue maps a decoded JSON value onto a table value. Numbers must be decoded as
// json.Number; objects and arrays are kept as their JSON text.
func patchValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, string, bool:
		return val
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d
		}
		return val.String()
	case float64:
		return decimal.NewFromFloat(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func parseFecha(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
