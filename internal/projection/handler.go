package projection

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
)

// RegisterRoutes registers all statistics routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/eventos/:id/estadisticas", s.HandleEventStats)

	// Both paths serve the default scope; older clients use the ventas one.
	r.GET("/api/eventos/campamento/estadisticas", s.HandleDefaultScopeStats)
	r.GET("/api/ventas/campamento-adolescentes/estadisticas", s.HandleDefaultScopeStats)
}

// HandleEventStats handles GET /api/eventos/:id/estadisticas
func (s *Service) HandleEventStats(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	stats, err := s.EventStats(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Service) HandleDefaultScopeStats(c *gin.Context) {
	stats, err := s.DefaultScopeStats(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
