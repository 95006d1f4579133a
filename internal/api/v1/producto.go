package v1

import (
	"fmt"
	"strings"

	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/shopspring/decimal"
)

// Producto is one catalog entry of the productos table.
type Producto struct {
	ID        int64           `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `json:"precio"`
	Costo     decimal.Decimal `json:"costo"`
	Stock     int64           `json:"stock"`

	// Imagen is the stored filename of the product picture, served under /uploads.
	Imagen string `json:"imagen,omitempty"`
}

// Validate checks the fields a product must carry before it is stored.
// Nothing forces costo <= precio.
func (p *Producto) Validate() error {
	if strings.TrimSpace(p.Nombre) == "" {
		return fmt.Errorf("nombre is required")
	}
	if p.Precio.IsNegative() {
		return fmt.Errorf("precio must be >= 0")
	}
	if p.Costo.IsNegative() {
		return fmt.Errorf("costo must be >= 0")
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	return nil
}

// ProductoFromRecord reads a productos row.
func ProductoFromRecord(r *storage.Record) Producto {
	return Producto{
		ID:        r.Int("id"),
		Nombre:    r.String("nombre"),
		Categoria: r.String("categoria"),
		Precio:    r.Decimal("precio"),
		Costo:     r.Decimal("costo"),
		Stock:     r.Int("stock"),
		Imagen:    r.String("imagen"),
	}
}

// WriteTo copies p's fields onto r, keeping any other columns r already has.
func (p Producto) WriteTo(r *storage.Record) *storage.Record {
	return r.
		Set("id", p.ID).
		Set("nombre", p.Nombre).
		Set("categoria", p.Categoria).
		Set("precio", p.Precio).
		Set("costo", p.Costo).
		Set("stock", p.Stock).
		Set("imagen", p.Imagen)
}

// ToRecord converts p into a new productos row.
func (p Producto) ToRecord() *storage.Record {
	return p.WriteTo(storage.NewRecord())
}
