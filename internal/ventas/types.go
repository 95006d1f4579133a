package ventas

import (
	"fmt"
	"strconv"
	"strings"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	"github.com/shopspring/decimal"
)

// Item is one product line of a sale request. Subtotal and Ganancia are computed by the
// point of sale and stored as given.
type Item struct {
	ProductoID int64           `json:"producto_id"`
	Cantidad   int64           `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Ganancia   decimal.Decimal `json:"ganancia"`
}

// NuevaVenta is the body of a sale registration.
type NuevaVenta struct {
	Items      []Item           `json:"items"`
	MetodoPago string           `json:"metodoPago"`
	Efectivo   *decimal.Decimal `json:"efectivo"`
	Debe       *bool            `json:"debe"`
	EventoID   EventoRef        `json:"evento_id"`
}

// EventoRef is an optional event id as sent by clients: a number, a numeric string,
// "" or null. Zero means the sale belongs to the default scope.
type EventoRef int64

func (e *EventoRef) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*e = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("evento_id must be an integer: %w", err)
	}
	*e = EventoRef(n)
	return nil
}

// ptr returns nil for the default scope.
func (e EventoRef) ptr() *int64 {
	if e == 0 {
		return nil
	}
	id := int64(e)
	return &id
}

// VentaConDetalles is a sale joined with its lines and the event it belongs to.
// Line names come from the current product table, so a renamed product shows its new name.
type VentaConDetalles struct {
	v1.Venta
	Detalles []v1.DetalleVenta `json:"detalles"`

	// EventoID is null when the sale is in the default scope or its event is gone.
	EventoID     *int64 `json:"evento_id"`
	EventoNombre string `json:"evento_nombre"`
	EventoFecha  string `json:"evento_fecha"`
}
