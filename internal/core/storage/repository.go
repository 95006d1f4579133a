package storage

import (
	"context"
)

// Table names. Each table is persisted one-to-one with a file named after it.
const (
	TableProductos    = "productos"
	TableVentas       = "ventas"
	TableDetalleVenta = "detalle_venta"
	TableEventos      = "eventos"
)

// AllTables lists every table the ledger owns, in the order they are ensured on startup.
var AllTables = []string{TableProductos, TableVentas, TableDetalleVenta, TableEventos}

// TableStore translates between a named durable table and an ordered sequence of records.
//
// There is no partial update and no locking: Save replaces the whole table, so two
// overlapping load-modify-save cycles on the same table lose the earlier write.
type TableStore interface {
	// Ensure creates the table with zero records if it does not exist yet.
	Ensure(ctx context.Context, table string) error

	// Load returns every record of the table in file order.
	// A table that was never created yields an empty slice and a nil error.
	Load(ctx context.Context, table string) ([]*Record, error)

	// Save replaces the table's contents with records.
	Save(ctx context.Context, table string, records []*Record) error
}

// HealthChecker is implemented by stores that can verify their backing location.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NextID returns max(id)+1 over records, or 1 for an empty table.
// Non-numeric ids count as 0.
func NextID(records []*Record) int64 {
	var max int64
	for _, r := range records {
		if id := r.Int("id"); id > max {
			max = id
		}
	}
	return max + 1
}

// FindByID returns the index of the first record whose id equals id, or -1.
func FindByID(records []*Record, id int64) int {
	for i, r := range records {
		if r.Int("id") == id {
			return i
		}
	}
	return -1
}
