package aggregation

import (
	"github.com/shopspring/decimal"
)

// DefaultTopProducts is how many products a Stats ranking keeps.
const DefaultTopProducts = 5

// Scope selects the sales a Stats covers: one event, or the default bucket when
// EventoID is nil.
type Scope struct {
	EventoID *int64
}

// EventScope returns the scope of a single event.
func EventScope(id int64) Scope {
	return Scope{EventoID: &id}
}

// DefaultScope returns the scope of sales that reference no event.
func DefaultScope() Scope {
	return Scope{}
}

// ProductoVendido is the per-product total inside a scope.
type ProductoVendido struct {
	ProductoID int64           `json:"producto_id"`
	Cantidad   int64           `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Ganancia   decimal.Decimal `json:"ganancia"`
	Nombre     string          `json:"nombre"`
}

// Stats summarizes the sales of one scope.
type Stats struct {
	TotalVentas     int64             `json:"totalVentas"`
	IngresosTotales decimal.Decimal   `json:"ingresosTotales"`
	GananciaTotales decimal.Decimal   `json:"gananciaTotales"`
	TopProductos    []ProductoVendido `json:"topProductos"`
}
