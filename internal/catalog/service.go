package catalog

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/shopspring/decimal"
)

const (
	msgMissingFields = "Faltan campos requeridos"
	msgNotFound      = "Producto no encontrado"
)

// ProductoInput carries the fields of a create or edit request.
// A nil field was not sent.
type ProductoInput struct {
	Nombre    *string          `json:"nombre"`
	Categoria *string          `json:"categoria"`
	Precio    *decimal.Decimal `json:"precio"`
	Costo     *decimal.Decimal `json:"costo"`
	Stock     *int64           `json:"stock"`
}

// Service manages the product catalog.
type Service struct {
	store  storage.TableStore
	images *ImageStore
}

func NewService(store storage.TableStore, images *ImageStore) *Service {
	if store == nil {
		panic("catalog: store must not be nil")
	}
	if images == nil {
		panic("catalog: image store must not be nil")
	}
	return &Service{store: store, images: images}
}

// List returns every product in table order.
func (s *Service) List(ctx context.Context) ([]v1.Producto, error) {
	records, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return nil, fmt.Errorf("load productos: %w", err)
	}
	out := make([]v1.Producto, 0, len(records))
	for _, r := range records {
		out = append(out, v1.ProductoFromRecord(r))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*v1.Producto, error) {
	records, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return nil, fmt.Errorf("load productos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return nil, httperr.NotFoundf(msgNotFound)
	}
	p := v1.ProductoFromRecord(records[idx])
	return &p, nil
}

// Create appends a product. nombre, precio, costo and stock are required; imagen is the
// stored filename of an already saved upload, or empty.
func (s *Service) Create(ctx context.Context, in ProductoInput, imagen string) (*v1.Producto, error) {
	if in.Nombre == nil || strings.TrimSpace(*in.Nombre) == "" || in.Precio == nil || in.Costo == nil || in.Stock == nil {
		return nil, httperr.Invalidf(msgMissingFields)
	}

	p := v1.Producto{
		Nombre: strings.TrimSpace(*in.Nombre),
		Precio: *in.Precio,
		Costo:  *in.Costo,
		Stock:  *in.Stock,
		Imagen: imagen,
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if err := p.Validate(); err != nil {
		return nil, httperr.Invalidf("%s", err)
	}

	records, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return nil, fmt.Errorf("load productos: %w", err)
	}
	p.ID = storage.NextID(records)

	if err := s.store.Save(ctx, storage.TableProductos, append(records, p.ToRecord())); err != nil {
		return nil, fmt.Errorf("save productos: %w", err)
	}
	return &p, nil
}

// Update applies the fields present in in. An empty nombre keeps the previous one, while
// categoria may be cleared. A non-empty imagen replaces the previous picture.
func (s *Service) Update(ctx context.Context, id int64, in ProductoInput, imagen string) (*v1.Producto, error) {
	records, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return nil, fmt.Errorf("load productos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return nil, httperr.NotFoundf(msgNotFound)
	}

	p := v1.ProductoFromRecord(records[idx])
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) != "" {
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.Precio != nil {
		p.Precio = *in.Precio
	}
	if in.Costo != nil {
		p.Costo = *in.Costo
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if imagen != "" {
		p.Imagen = imagen
	}
	if err := p.Validate(); err != nil {
		return nil, httperr.Invalidf("%s", err)
	}

	p.WriteTo(records[idx])
	if err := s.store.Save(ctx, storage.TableProductos, records); err != nil {
		return nil, fmt.Errorf("save productos: %w", err)
	}
	return &p, nil
}

// Delete removes the product row. Sale lines that reference it are left alone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	records, err := s.store.Load(ctx, storage.TableProductos)
	if err != nil {
		return fmt.Errorf("load productos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return httperr.NotFoundf(msgNotFound)
	}

	kept := append(records[:idx:idx], records[idx+1:]...)
	if err := s.store.Save(ctx, storage.TableProductos, kept); err != nil {
		return fmt.Errorf("save productos: %w", err)
	}
	return nil
}
