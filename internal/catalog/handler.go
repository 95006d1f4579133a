package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/shopspring/decimal"
)

const imageField = "imagen"

// RegisterRoutes registers the product catalog routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/productos")
	g.GET("", s.HandleList)
	g.POST("", s.HandleCreate)
	g.GET("/:id", s.HandleGet)
	g.PUT("/:id", s.HandleUpdate)
	g.DELETE("/:id", s.HandleDelete)
}

func (s *Service) HandleList(c *gin.Context) {
	productos, err := s.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func (s *Service) HandleGet(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	p, err := s.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleCreate accepts JSON or multipart/form-data with an optional "imagen" file.
func (s *Service) HandleCreate(c *gin.Context) {
	in, err := bindProducto(c)
	if err != nil {
		httperr.RespondInvalidJSON(c, err)
		return
	}

	imagen, err := s.saveUpload(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := s.Create(c.Request.Context(), in, imagen)
	if err != nil {
		s.discardUpload(imagen)
		httperr.Respond(c, err)
		return
	}

	slog.Info("Producto creado", "id", p.ID, "nombre", p.Nombre, "imagen", p.Imagen)
	c.JSON(http.StatusCreated, p)
}

func (s *Service) HandleUpdate(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	in, err := bindProducto(c)
	if err != nil {
		httperr.RespondInvalidJSON(c, err)
		return
	}

	imagen, err := s.saveUpload(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := s.Update(c.Request.Context(), id, in, imagen)
	if err != nil {
		s.discardUpload(imagen)
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Service) HandleDelete(c *gin.Context) {
	id, ok := httperr.PathID(c)
	if !ok {
		return
	}
	if err := s.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// saveUpload stores the "imagen" file of a multipart request and returns its new name.
// Requests without a file yield "".
func (s *Service) saveUpload(c *gin.Context) (string, error) {
	if !isMultipart(c) {
		return "", nil
	}
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		slog.Warn("Unreadable image upload", "error", err)
		return "", httperr.Invalidf("Imagen inválida")
	}

	name := s.images.NewName(fh.Filename)
	if err := c.SaveUploadedFile(fh, s.images.Path(name)); err != nil {
		return "", fmt.Errorf("save image %s: %w", name, err)
	}
	return name, nil
}

func (s *Service) discardUpload(name string) {
	if err := s.images.Remove(name); err != nil {
		slog.Error("Failed to discard image upload", "imagen", name, "error", err)
	}
}

func bindProducto(c *gin.Context) (ProductoInput, error) {
	if isMultipart(c) || c.ContentType() == gin.MIMEPOSTForm {
		return bindProductoForm(c)
	}
	var in ProductoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		return in, err
	}
	return in, nil
}

// bindProductoForm reads form fields. Empty numeric fields count as not sent.
func bindProductoForm(c *gin.Context) (ProductoInput, error) {
	var in ProductoInput
	if v, ok := c.GetPostForm("nombre"); ok {
		in.Nombre = &v
	}
	if v, ok := c.GetPostForm("categoria"); ok {
		in.Categoria = &v
	}

	for field, dst := range map[string]**decimal.Decimal{"precio": &in.Precio, "costo": &in.Costo} {
		v := strings.TrimSpace(c.PostForm(field))
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return in, fmt.Errorf("%s: %w", field, err)
		}
		*dst = &d
	}

	if v := strings.TrimSpace(c.PostForm("stock")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, fmt.Errorf("stock: %w", err)
		}
		in.Stock = &n
	}
	return in, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}
