package v1

import (
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/shopspring/decimal"
)

// FechaLayout is the timestamp format of Venta.Fecha (UTC, millisecond precision).
const FechaLayout = "2006-01-02T15:04:05.000Z07:00"

// Payment methods accepted for Venta.MetodoPago.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
)

// ValidMetodoPago reports whether m is empty or a known payment method.
func ValidMetodoPago(m string) bool {
	switch m {
	case "", MetodoEfectivo, MetodoTransferencia:
		return true
	}
	return false
}

// Venta is a recorded sale. Total and Ganancia are the sums of its lines at sale time.
type Venta struct {
	ID         int64            `json:"id"`
	Fecha      string           `json:"fecha"`
	Total      decimal.Decimal  `json:"total"`
	Ganancia   decimal.Decimal  `json:"ganancia"`
	MetodoPago string           `json:"metodoPago,omitempty"`
	Efectivo   *decimal.Decimal `json:"efectivo,omitempty"` // amount tendered, informational
	Debe       *bool            `json:"debe,omitempty"`

	// EventoID is nil for sales in the default scope.
	EventoID *int64 `json:"evento_id"`
}

// VentaFromRecord reads a ventas row. An evento_id of 0 belongs to the default scope,
// like an empty one.
func VentaFromRecord(r *storage.Record) Venta {
	v := Venta{
		ID:         r.Int("id"),
		Fecha:      r.String("fecha"),
		Total:      r.Decimal("total"),
		Ganancia:   r.Decimal("ganancia"),
		MetodoPago: r.String("metodoPago"),
		EventoID:   r.OptionalInt("evento_id"),
	}
	if v.EventoID != nil && *v.EventoID == 0 {
		v.EventoID = nil
	}
	if !r.IsEmpty("efectivo") {
		d := r.Decimal("efectivo")
		v.Efectivo = &d
	}
	if !r.IsEmpty("debe") {
		b := r.Bool("debe")
		v.Debe = &b
	}
	return v
}

// ToRecord converts v into a new ventas row. Optional fields that are unset become empty
// cells so every row shares the same header.
func (v Venta) ToRecord() *storage.Record {
	r := storage.NewRecord().
		Set("id", v.ID).
		Set("fecha", v.Fecha).
		Set("total", v.Total).
		Set("ganancia", v.Ganancia).
		Set("metodoPago", v.MetodoPago).
		Set("efectivo", nil).
		Set("debe", nil).
		Set("evento_id", nil)
	if v.Efectivo != nil {
		r.Set("efectivo", *v.Efectivo)
	}
	if v.Debe != nil {
		r.Set("debe", *v.Debe)
	}
	if v.EventoID != nil {
		r.Set("evento_id", *v.EventoID)
	}
	return r
}

// InScope reports whether the sale belongs to the given event, or to the default scope
// when eventoID is nil.
func (v Venta) InScope(eventoID *int64) bool {
	if eventoID == nil {
		return v.EventoID == nil
	}
	return v.EventoID != nil && *v.EventoID == *eventoID
}

// DetalleVenta is one product line of a sale.
type DetalleVenta struct {
	ID         int64           `json:"id"`
	VentaID    int64           `json:"venta_id"`
	ProductoID int64           `json:"producto_id"`
	Cantidad   int64           `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Ganancia   decimal.Decimal `json:"ganancia"`

	// Nombre is not written by the ledger. It is whatever a nombre column holds, or the
	// live product name when a listing joins it in.
	Nombre string `json:"nombre,omitempty"`
}

func DetalleFromRecord(r *storage.Record) DetalleVenta {
	return DetalleVenta{
		ID:         r.Int("id"),
		VentaID:    r.Int("venta_id"),
		ProductoID: r.Int("producto_id"),
		Cantidad:   r.Int("cantidad"),
		Subtotal:   r.Decimal("subtotal"),
		Ganancia:   r.Decimal("ganancia"),
		Nombre:     r.String("nombre"),
	}
}

// ToRecord converts d into a new detalle_venta row. Nombre is not persisted.
func (d DetalleVenta) ToRecord() *storage.Record {
	return storage.NewRecord().
		Set("id", d.ID).
		Set("venta_id", d.VentaID).
		Set("producto_id", d.ProductoID).
		Set("cantidad", d.Cantidad).
		Set("subtotal", d.Subtotal).
		Set("ganancia", d.Ganancia)
}

// VentasFromRecords converts a loaded ventas table.
func VentasFromRecords(records []*storage.Record) []Venta {
	out := make([]Venta, 0, len(records))
	for _, r := range records {
		out = append(out, VentaFromRecord(r))
	}
	return out
}

// DetallesFromRecords converts a loaded detalle_venta table.
func DetallesFromRecords(records []*storage.Record) []DetalleVenta {
	out := make([]DetalleVenta, 0, len(records))
	for _, r := range records {
		out = append(out, DetalleFromRecord(r))
	}
	return out
}
