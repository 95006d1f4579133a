package aggregation

import (
	"fmt"
	"sort"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	"github.com/shopspring/decimal"
)

// ComputeStats summarizes the sales in scope and ranks their products by quantity sold.
//
// Product names come from the line records themselves, never from the productos table;
// lines without a name are labelled "Producto {id}". Ties in quantity keep the order in
// which products were first seen. limit <= 0 means DefaultTopProducts.
func ComputeStats(ventas []v1.Venta, detalles []v1.DetalleVenta, scope Scope, limit int) Stats {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	var (
		ids       = make(map[int64]struct{})
		totals    []decimal.Decimal
		ganancias []decimal.Decimal
	)
	for _, v := range ventas {
		if !v.InScope(scope.EventoID) {
			continue
		}
		ids[v.ID] = struct{}{}
		totals = append(totals, v.Total)
		ganancias = append(ganancias, v.Ganancia)
	}

	stats := Stats{
		TotalVentas:     Fold(OpCount, totals).IntPart(),
		IngresosTotales: Fold(OpSum, totals),
		GananciaTotales: Fold(OpSum, ganancias),
		TopProductos:    rankProducts(detalles, ids),
	}
	if len(stats.TopProductos) > limit {
		stats.TopProductos = stats.TopProductos[:limit]
	}
	return stats
}

func rankProducts(detalles []v1.DetalleVenta, ventaIDs map[int64]struct{}) []ProductoVendido {
	index := make(map[int64]int)
	groups := []ProductoVendido{}

	for _, d := range detalles {
		if _, ok := ventaIDs[d.VentaID]; !ok {
			continue
		}
		i, seen := index[d.ProductoID]
		if !seen {
			i = len(groups)
			index[d.ProductoID] = i
			groups = append(groups, ProductoVendido{
				ProductoID: d.ProductoID,
				Subtotal:   decimal.Zero,
				Ganancia:   decimal.Zero,
			})
		}
		g := &groups[i]
		g.Cantidad += d.Cantidad
		g.Subtotal = g.Subtotal.Add(d.Subtotal)
		g.Ganancia = g.Ganancia.Add(d.Ganancia)
		if g.Nombre == "" && d.Nombre != "" {
			g.Nombre = d.Nombre
		}
	}

	for i := range groups {
		if groups[i].Nombre == "" {
			groups[i].Nombre = fmt.Sprintf("Producto %d", groups[i].ProductoID)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Cantidad > groups[j].Cantidad
	})
	return groups
}
