package ventas

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
)

// RegisterRoutes registers the sales routes. Default-scope statistics live under the same
// prefix but are served by the projection service.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/ventas")
	g.GET("", s.HandleList)
	g.POST("", s.HandleCreate)
	g.GET("/:id", s.HandleGet)
	g.PUT("/:id", s.HandleUpdate)
	g.DELETE("/:id", s.HandleDelete)
}

func (s *Service) HandleList(c *gin.Context) {
	ventas, err := s.ListSales(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

func (s *Service) HandleGet(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	v, err := s.GetSale(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// HandleCreate registers a sale. A body that cannot be decoded is answered like an
// empty sale.
func (s *Service) HandleCreate(c *gin.Context) {
	var req NuevaVenta
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Malformed sale received", "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgEmptySale,
			Details:   err.Error(),
		})
		return
	}

	venta, lineas, err := s.CreateSale(c.Request.Context(), req)
	if err != nil {
		slog.Warn("Sale rejected", "items", len(req.Items), "evento_id", int64(req.EventoID), "error", err)
		httperr.Respond(c, err)
		return
	}

	slog.Info("Sale recorded",
		"venta_id", venta.ID,
		"lineas", len(lineas),
		"total", venta.Total.String(),
		"metodo_pago", venta.MetodoPago,
		"evento_id", int64(req.EventoID))

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"ventaId": venta.ID,
		"venta":   venta,
	})
}

// HandleUpdate applies a generic field patch to a sale.
func (s *Service) HandleUpdate(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}

	var patch map[string]interface{}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&patch); err != nil {
		httperr.RespondInvalidJSON(c, err)
		return
	}

	v, err := s.UpdateSale(c.Request.Context(), id, patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Venta actualizada correctamente",
		"venta":   v,
	})
}

func (s *Service) HandleDelete(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	if err := s.DeleteSale(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("Sale deleted", "venta_id", id)
	c.JSON(http.StatusOK, gin.H{"mensaje": "Venta eliminada correctamente"})
}
