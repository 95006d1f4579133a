package ventas

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/puesto-lab/puesto/internal/core/storage/memory"
	storagemocks "github.com/puesto-lab/puesto/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, store storage.TableStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	newService(store).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorBody(t *testing.T, resp *httptest.ResponseRecorder) httperr.ErrorResponse {
	t.Helper()
	var body httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestHandleCreate_Success(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, storage.TableProductos, producto(1, "Sticker", "100", "60", 10))
	r := newRouter(t, store)

	resp := do(r, http.MethodPost, "/api/ventas",
		`{"items":[{"producto_id":1,"cantidad":3,"subtotal":300,"ganancia":120}],"metodoPago":"efectivo","efectivo":500,"evento_id":""}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		OK      bool     `json:"ok"`
		VentaID int64    `json:"ventaId"`
		Venta   v1.Venta `json:"venta"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.True(t, body.OK)
	require.Equal(t, int64(1), body.VentaID)
	require.True(t, dec("300").Equal(body.Venta.Total))
	require.Nil(t, body.Venta.EventoID)

	require.Equal(t, int64(7), stockOf(t, store, 1))
}

func TestHandleCreate_ClientErrors(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, storage.TableProductos, producto(1, "Sticker", "100", "60", 2))
	r := newRouter(t, store)

	tests := []struct {
		name     string
		body     string
		wantType string
		wantMsg  string
	}{
		{name: "malformed", body: `{"items": "todo"}`, wantType: httperr.HttpInvalidJsonError, wantMsg: "Venta vacía o malformateada"},
		{name: "empty", body: `{"items": []}`, wantType: httperr.HttpValidationError, wantMsg: "Venta vacía o malformateada"},
		{name: "missing product", body: `{"items":[{"producto_id":9,"cantidad":1}]}`, wantType: httperr.HttpValidationError, wantMsg: "Producto ID 9 no encontrado"},
		{name: "no stock", body: `{"items":[{"producto_id":1,"cantidad":3}]}`, wantType: httperr.HttpInsufficientStockError, wantMsg: "Stock insuficiente para Sticker"},
		{name: "bad event ref", body: `{"items":[{"producto_id":1,"cantidad":1}],"evento_id":"x"}`, wantType: httperr.HttpInvalidJsonError, wantMsg: "Venta vacía o malformateada"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(r, http.MethodPost, "/api/ventas", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)

			body := errorBody(t, resp)
			require.Equal(t, tc.wantType, body.ErrorType)
			require.Equal(t, tc.wantMsg, body.Message)
		})
	}

	require.Equal(t, int64(2), stockOf(t, store, 1))
}

func TestHandlers_ListGetUpdateDelete(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, storage.TableProductos, producto(1, "Sticker", "100", "60", 10))
	r := newRouter(t, store)

	resp := do(r, http.MethodPost, "/api/ventas", `{"items":[{"producto_id":1,"cantidad":2,"subtotal":200,"ganancia":80}]}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = do(r, http.MethodGet, "/api/ventas", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var list []VentaConDetalles
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Campamento Adolescentes 2025", list[0].EventoNombre)
	require.Len(t, list[0].Detalles, 1)
	require.Equal(t, "Sticker", list[0].Detalles[0].Nombre)

	resp = do(r, http.MethodPut, "/api/ventas/1", `{"id": 50, "debe": true, "efectivo": 1000.5}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(r, http.MethodGet, "/api/ventas/1", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var got VentaConDetalles
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
	require.NotNil(t, got.Debe)
	require.True(t, *got.Debe)
	require.NotNil(t, got.Efectivo)
	require.True(t, dec("1000.5").Equal(*got.Efectivo))

	resp = do(r, http.MethodDelete, "/api/ventas/1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"mensaje":"Venta eliminada correctamente"}`, resp.Body.String())
	require.Equal(t, int64(10), stockOf(t, store, 1))

	resp = do(r, http.MethodDelete, "/api/ventas/1", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "Venta no encontrada", errorBody(t, resp).Message)

	resp = do(r, http.MethodGet, "/api/ventas/uno", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "ID inválido", errorBody(t, resp).Message)

	resp = do(r, http.MethodPut, "/api/ventas/1", `[1,2]`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleCreate_StoreFailureReturns500(t *testing.T) {
	mockStore := storagemocks.NewTableStore(t)
	mockStore.EXPECT().
		Load(mock.Anything, storage.TableProductos).
		Return(nil, errors.New("open data/productos.xlsx: input/output error")).
		Once()

	r := newRouter(t, mockStore)
	resp := do(r, http.MethodPost, "/api/ventas", `{"items":[{"producto_id":1,"cantidad":1}]}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	body := errorBody(t, resp)
	require.Equal(t, httperr.HttpInternalError, body.ErrorType)
	require.NotContains(t, body.Message, "productos.xlsx")
}
