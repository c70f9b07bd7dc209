package lifecycle

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// Apply returns a new record set with m applied. The input is not modified.
func Apply(records []model.Record, m model.Mutation) ([]model.Record, error) {
	idx := slices.IndexFunc(records, func(r model.Record) bool { return r.ID == m.Record.ID })

	switch m.Kind {
	case model.MutationInsert:
		if idx >= 0 {
			return nil, fmt.Errorf("%w: record %s already exists", model.ErrConflict, m.Record.ID)
		}
		out := make([]model.Record, 0, len(records)+1)
		out = append(out, records...)
		return append(out, m.Record), nil
	case model.MutationReplace:
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", model.ErrRecordNotFound, m.Record.ID)
		}
		out := slices.Clone(records)
		out[idx] = m.Record
		return out, nil
	case model.MutationDelete:
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", model.ErrRecordNotFound, m.Record.ID)
		}
		out := make([]model.Record, 0, len(records)-1)
		out = append(out, records[:idx]...)
		return append(out, records[idx+1:]...), nil
	default:
		return nil, fmt.Errorf("unknown mutation kind %q", m.Kind)
	}
}

func Find(records []model.Record, id uuid.UUID) (model.Record, error) {
	idx := slices.IndexFunc(records, func(r model.Record) bool { return r.ID == id })
	if idx < 0 {
		return model.Record{}, fmt.Errorf("%w: %s", model.ErrRecordNotFound, id)
	}
	return records[idx], nil
}
