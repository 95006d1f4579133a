package eventos

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/puesto-lab/puesto/internal/api/v1"
	httperr "github.com/puesto-lab/puesto/internal/core/errors"
	"github.com/puesto-lab/puesto/internal/core/storage"
)

const (
	msgRequired = "Nombre y fecha son requeridos"
	msgNotFound = "Evento no encontrado"
)

// NuevoEvento is the body of an event creation.
type NuevoEvento struct {
	Nombre      string `json:"nombre"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
}

// CambiosEvento is the body of an event edit. Empty nombre or fecha keep the previous
// value; nil descripcion or activo keep theirs.
type CambiosEvento struct {
	Nombre      string  `json:"nombre"`
	Fecha       string  `json:"fecha"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}

// Service manages the events sales can be attributed to.
type Service struct {
	store storage.TableStore
}

func NewService(store storage.TableStore) *Service {
	if store == nil {
		panic("eventos: store must not be nil")
	}
	return &Service{store: store}
}

// List returns every event, active or not, in table order.
func (s *Service) List(ctx context.Context) ([]v1.Evento, error) {
	records, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return nil, fmt.Errorf("load eventos: %w", err)
	}
	out := make([]v1.Evento, 0, len(records))
	for _, r := range records {
		out = append(out, v1.EventoFromRecord(r))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*v1.Evento, error) {
	records, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return nil, fmt.Errorf("load eventos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return nil, httperr.NotFoundf(msgNotFound)
	}
	e := v1.EventoFromRecord(records[idx])
	return &e, nil
}

// Create appends an active event.
func (s *Service) Create(ctx context.Context, in NuevoEvento) (*v1.Evento, error) {
	e := v1.Evento{
		Nombre:      strings.TrimSpace(in.Nombre),
		Fecha:       strings.TrimSpace(in.Fecha),
		Descripcion: in.Descripcion,
		Activo:      true,
	}
	if err := e.Validate(); err != nil {
		return nil, httperr.Invalidf(msgRequired)
	}

	records, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return nil, fmt.Errorf("load eventos: %w", err)
	}
	e.ID = storage.NextID(records)

	if err := s.store.Save(ctx, storage.TableEventos, append(records, e.ToRecord())); err != nil {
		return nil, fmt.Errorf("save eventos: %w", err)
	}
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id int64, in CambiosEvento) (*v1.Evento, error) {
	records, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return nil, fmt.Errorf("load eventos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return nil, httperr.NotFoundf(msgNotFound)
	}

	e := v1.EventoFromRecord(records[idx])
	if v := strings.TrimSpace(in.Nombre); v != "" {
		e.Nombre = v
	}
	if v := strings.TrimSpace(in.Fecha); v != "" {
		e.Fecha = v
	}
	if in.Descripcion != nil {
		e.Descripcion = *in.Descripcion
	}
	if in.Activo != nil {
		e.Activo = *in.Activo
	}

	e.WriteTo(records[idx])
	if err := s.store.Save(ctx, storage.TableEventos, records); err != nil {
		return nil, fmt.Errorf("save eventos: %w", err)
	}
	return &e, nil
}

// Deactivate soft-deletes an event. Its sales keep pointing at it and its statistics
// stay reachable.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	records, err := s.store.Load(ctx, storage.TableEventos)
	if err != nil {
		return fmt.Errorf("load eventos: %w", err)
	}
	idx := storage.FindByID(records, id)
	if idx == -1 {
		return httperr.NotFoundf(msgNotFound)
	}

	records[idx].Set("activo", false)
	if err := s.store.Save(ctx, storage.TableEventos, records); err != nil {
		return fmt.Errorf("save eventos: %w", err)
	}
	return nil
}
