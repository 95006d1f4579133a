package v1

import (
	"fmt"
	"strings"

	"github.com/puesto-lab/puesto/internal/core/storage"
)

// Evento is a named occasion sales can be attributed to.
// Events are never removed: deleting one sets Activo to false.
type Evento struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

func (e *Evento) Validate() error {
	if strings.TrimSpace(e.Nombre) == "" {
		return fmt.Errorf("nombre is required")
	}
	if strings.TrimSpace(e.Fecha) == "" {
		return fmt.Errorf("fecha is required")
	}
	return nil
}

func EventoFromRecord(r *storage.Record) Evento {
	return Evento{
		ID:          r.Int("id"),
		Nombre:      r.String("nombre"),
		Fecha:       r.String("fecha"),
		Descripcion: r.String("descripcion"),
		Activo:      r.Bool("activo"),
	}
}

func (e Evento) WriteTo(r *storage.Record) *storage.Record {
	return r.
		Set("id", e.ID).
		Set("nombre", e.Nombre).
		Set("fecha", e.Fecha).
		Set("descripcion", e.Descripcion).
		Set("activo", e.Activo)
}

func (e Evento) ToRecord() *storage.Record {
	return e.WriteTo(storage.NewRecord())
}
