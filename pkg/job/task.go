package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
)

// Task is a named handler for payloads of type P.
type Task[P any] interface {
	Name() string
	Handle(ctx context.Context, payload P) error
}

type executor func(ctx context.Context, raw json.RawMessage) error

// registry is filled at construction and read-only afterwards.
type registry map[string]executor

func (r registry) names() []string {
	return slices.Sorted(maps.Keys(r))
}

func wrap[P any](task Task[P]) executor {
	return func(ctx context.Context, raw json.RawMessage) error {
		var payload P
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				return errors.Join(ErrInvalidPayload, err)
			}
		}
		return task.Handle(ctx, payload)
	}
}
