package listing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// Controller owns the in-memory collection of one entity type and mediates
// every create, edit and delete. It is not safe for concurrent use; callers
// serialize access the way a single UI thread would.
type Controller[R any] struct {
	schema Schema[R]
	repo   Repository[R]

	records   []R
	form      *Form[R]
	editingID string
	editing   bool
	err       error
}

func NewController[R any](schema Schema[R], repo Repository[R]) *Controller[R] {
	return &Controller[R]{schema: schema, repo: repo}
}

// Initialize replaces the in-memory collection with the persisted one. An
// absent collection starts empty. Nothing is written back.
func (c *Controller[R]) Initialize(ctx context.Context) error {
	records, err := c.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s collection: %w", c.schema.Entity, err)
	}
	if records == nil {
		records = []R{}
	}

	c.records = records
	c.form = nil
	c.editing = false
	c.editingID = ""
	c.err = nil

	slogx.FromContext(ctx).Debug("collection loaded",
		slog.String("entity", c.schema.Entity),
		slog.Int("count", len(records)),
	)
	return nil
}

// Records returns the collection in display order.
func (c *Controller[R]) Records() []R {
	out := make([]R, len(c.records))
	for i, r := range c.records {
		out[i] = c.schema.clone(r)
	}
	return out
}

// Find returns the record with the given id.
func (c *Controller[R]) Find(id string) (R, bool) {
	i := c.indexOf(id)
	if i < 0 {
		var zero R
		return zero, false
	}
	return c.schema.clone(c.records[i]), true
}

// Form returns the open form, or nil when no form is open.
func (c *Controller[R]) Form() *Form[R] { return c.form }

func (c *Controller[R]) FormOpen() bool { return c.form != nil }

// Editing returns the record currently being edited.
func (c *Controller[R]) Editing() (R, bool) {
	if !c.editing {
		var zero R
		return zero, false
	}
	return c.Find(c.editingID)
}

// Err returns the last submit error shown next to the form.
func (c *Controller[R]) Err() error { return c.err }

// OpenCreateForm clears any edit in progress and opens an empty form.
func (c *Controller[R]) OpenCreateForm() *Form[R] {
	c.editing = false
	c.editingID = ""
	var zero R
	c.form = c.newForm(zero, ModeCreate)
	return c.form
}

// OpenEditForm opens a form pre-filled with the record's current values.
func (c *Controller[R]) OpenEditForm(id string) (*Form[R], error) {
	rec, ok := c.Find(id)
	if !ok {
		return nil, ErrRecordNotFound
	}
	c.editing = true
	c.editingID = id
	c.form = c.newForm(rec, ModeEdit)
	return c.form, nil
}

func (c *Controller[R]) newForm(draft R, mode Mode) *Form[R] {
	f := &Form[R]{
		draft:    c.schema.clone(draft),
		mode:     mode,
		validate: c.schema.FormValidate,
	}
	// Only the form currently on screen may talk to the controller.
	f.onSave = func(ctx context.Context, draft R) (R, error) {
		if c.form != f {
			var zero R
			return zero, ErrFormClosed
		}
		return c.Submit(ctx, c.schema.clone(draft))
	}
	f.onCancel = func() {
		if c.form == f {
			c.Cancel()
		}
	}
	return f
}

// Cancel closes the form without touching the collection.
func (c *Controller[R]) Cancel() {
	c.form = nil
	c.editing = false
	c.editingID = ""
	c.err = nil
}

// Submit validates the candidate and, when it passes, either replaces the
// record being edited (keeping its id and position) or appends a new record
// with a fresh id. The whole collection is persisted before the in-memory
// state changes, so a failed write leaves both sides as they were.
func (c *Controller[R]) Submit(ctx context.Context, candidate R) (R, error) {
	var zero R
	l := slogx.FromContext(ctx)

	if c.schema.Validate != nil {
		if err := c.schema.Validate(candidate); err != nil {
			c.err = err
			l.Debug("submit rejected", slog.String("entity", c.schema.Entity), slog.Any("error", err))
			return zero, err
		}
	}

	next := slices.Clone(c.records)
	var saved R

	if c.editing {
		i := c.indexOf(c.editingID)
		if i < 0 {
			// The record vanished under the form (e.g. deleted meanwhile).
			c.err = ErrRecordNotFound
			return zero, ErrRecordNotFound
		}
		saved = c.schema.WithID(candidate, c.editingID)
		next[i] = saved
	} else {
		saved = c.schema.WithID(candidate, c.repo.NextID())
		next = append(next, saved)
	}

	if err := c.persist(ctx, next); err != nil {
		return zero, err
	}

	l.Info("record saved",
		slog.String("entity", c.schema.Entity),
		slog.String("id", c.schema.ID(saved)),
		slog.Bool("edited", c.editing),
	)

	c.form = nil
	c.editing = false
	c.editingID = ""
	c.err = nil
	return c.schema.clone(saved), nil
}

// Remove deletes the record with the given id. Unknown ids are a no-op.
func (c *Controller[R]) Remove(ctx context.Context, id string) error {
	next := slices.DeleteFunc(slices.Clone(c.records), func(r R) bool {
		return c.schema.ID(r) == id
	})
	if len(next) == len(c.records) {
		return nil
	}

	if err := c.persist(ctx, next); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("record removed",
		slog.String("entity", c.schema.Entity),
		slog.String("id", id),
	)
	return nil
}

func (c *Controller[R]) persist(ctx context.Context, next []R) error {
	if err := c.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persist %s collection: %w", c.schema.Entity, err)
	}
	c.records = next
	return nil
}

func (c *Controller[R]) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(r R) bool {
		return c.schema.ID(r) == id
	})
}
