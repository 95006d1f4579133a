package catalog

import (
	"context"
	"testing"

	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/puesto-lab/puesto/internal/core/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	images, err := NewImageStore(t.TempDir())
	require.NoError(t, err)
	store := memory.NewStore()
	return NewService(store, images), store
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int64) *int64 { return &n }

func sticker() ProductoInput {
	return ProductoInput{
		Nombre: strPtr("Sticker"),
		Precio: decPtr("100"),
		Costo:  decPtr("60"),
		Stock:  intPtr(10),
	}
}

func TestService_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Create(ctx, sticker(), "")
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, "", first.Categoria)

	in := sticker()
	in.Nombre = strPtr("  Taza ")
	in.Categoria = strPtr("Bazar")
	second, err := svc.Create(ctx, in, "1-abc-taza.png")
	require.NoError(t, err)
	require.Equal(t, int64(2), second.ID)
	require.Equal(t, "Taza", second.Nombre)

	got, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bazar", got.Categoria)
	assert.Equal(t, "1-abc-taza.png", got.Imagen)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Precio))
	assert.Equal(t, int64(10), got.Stock)
}

func TestService_CreateAfterGapUsesMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, store.Save(ctx, storage.TableProductos, []*storage.Record{
		storage.NewRecord().Set("id", int64(7)).Set("nombre", "Gorra"),
		storage.NewRecord().Set("id", int64(3)).Set("nombre", "Llavero"),
	}))

	p, err := svc.Create(ctx, sticker(), "")
	require.NoError(t, err)
	require.Equal(t, int64(8), p.ID)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	missing := sticker()
	missing.Stock = nil
	_, err := svc.Create(ctx, missing, "")
	require.ErrorIs(t, err, httperr.ErrInvalid)
	require.EqualError(t, err, "Faltan campos requeridos")

	blank := sticker()
	blank.Nombre = strPtr("   ")
	_, err = svc.Create(ctx, blank, "")
	require.ErrorIs(t, err, httperr.ErrInvalid)

	negative := sticker()
	negative.Costo = decPtr("-1")
	_, err = svc.Create(ctx, negative, "")
	require.ErrorIs(t, err, httperr.ErrInvalid)
	require.EqualError(t, err, "costo must be >= 0")

	records, err := store.Load(ctx, storage.TableProductos)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestService_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	in := sticker()
	in.Categoria = strPtr("Papelería")
	_, err := svc.Create(ctx, in, "1-abc-sticker.png")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, ProductoInput{
		Nombre: strPtr(""),
		Precio: decPtr("120.5"),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Sticker", updated.Nombre, "empty nombre keeps the previous one")
	assert.Equal(t, "Papelería", updated.Categoria)
	assert.True(t, decimal.RequireFromString("120.5").Equal(updated.Precio))
	assert.True(t, decimal.NewFromInt(60).Equal(updated.Costo))
	assert.Equal(t, int64(10), updated.Stock)
	assert.Equal(t, "1-abc-sticker.png", updated.Imagen)

	cleared, err := svc.Update(ctx, 1, ProductoInput{Categoria: strPtr("")}, "2-def-nuevo.png")
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Categoria)
	assert.Equal(t, "2-def-nuevo.png", cleared.Imagen)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "", got.Categoria)
	assert.Equal(t, "2-def-nuevo.png", got.Imagen)
	assert.True(t, decimal.RequireFromString("120.5").Equal(got.Precio))
}

func TestService_UpdateKeepsUnknownColumns(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, store.Save(ctx, storage.TableProductos, []*storage.Record{
		storage.NewRecord().Set("id", int64(1)).Set("nombre", "Sticker").Set("stock", int64(2)).Set("proveedor", "Imprenta Sur"),
	}))

	_, err := svc.Update(ctx, 1, ProductoInput{Stock: intPtr(5)}, "")
	require.NoError(t, err)

	records, err := store.Load(ctx, storage.TableProductos)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Imprenta Sur", records[0].String("proveedor"))
	require.Equal(t, int64(5), records[0].Int("stock"))
}

func TestService_UpdateRejectsNegativeStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.Create(ctx, sticker(), "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, ProductoInput{Stock: intPtr(-1)}, "")
	require.ErrorIs(t, err, httperr.ErrInvalid)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Stock)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Get(ctx, 99)
	require.ErrorIs(t, err, httperr.ErrNotFound)

	_, err = svc.Update(ctx, 99, sticker(), "")
	require.ErrorIs(t, err, httperr.ErrNotFound)

	err = svc.Delete(ctx, 99)
	require.ErrorIs(t, err, httperr.ErrNotFound)
	require.EqualError(t, err, "Producto no encontrado")
}

func TestService_DeleteIsHard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, sticker(), "")
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, 2))

	productos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, productos, 2)
	require.Equal(t, int64(1), productos[0].ID)
	require.Equal(t, int64(3), productos[1].ID)

	p, err := svc.Create(ctx, sticker(), "")
	require.NoError(t, err)
	require.Equal(t, int64(4), p.ID)
}
