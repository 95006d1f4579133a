package eventos

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
)

// RegisterRoutes registers the event routes. Event statistics are served by the
// projection service under the same prefix.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/eventos")
	g.GET("", s.HandleList)
	g.POST("", s.HandleCreate)
	g.GET("/:id", s.HandleGet)
	g.PUT("/:id", s.HandleUpdate)
	g.DELETE("/:id", s.HandleDeactivate)
}

func (s *Service) HandleList(c *gin.Context) {
	eventos, err := s.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

func (s *Service) HandleGet(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	e, err := s.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Service) HandleCreate(c *gin.Context) {
	var in NuevoEvento
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.RespondInvalidJSON(c, err)
		return
	}
	e, err := s.Create(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *Service) HandleUpdate(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	var in CambiosEvento
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.RespondInvalidJSON(c, err)
		return
	}
	e, err := s.Update(c.Request.Context(), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Service) HandleDeactivate(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	if err := s.Deactivate(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Evento desactivado correctamente"})
}
