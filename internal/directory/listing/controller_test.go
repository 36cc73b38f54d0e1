package listing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/listing"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
	Tags []string
}

var errNameRequired = &listing.ValidationError{Message: "name is required"}

func itemSchema(validate bool) listing.Schema[item] {
	s := listing.Schema[item]{
		Entity: "item",
		ID:     func(i item) string { return i.ID },
		WithID: func(i item, id string) item { i.ID = id; return i },
		Clone: func(i item) item {
			i.Tags = append([]string(nil), i.Tags...)
			return i
		},
	}
	if validate {
		check := func(i item) error {
			if i.Name == "" {
				return errNameRequired
			}
			return nil
		}
		s.Validate = check
		s.FormValidate = check
	}
	return s
}

// fakeRepo stands in for durable storage and counts writes.
type fakeRepo struct {
	stored  []item
	saves   int
	next    int
	failErr error
}

func (r *fakeRepo) Load(context.Context) ([]item, error) {
	return append([]item(nil), r.stored...), nil
}

func (r *fakeRepo) Save(_ context.Context, records []item) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.saves++
	r.stored = append([]item(nil), records...)
	return nil
}

func (r *fakeRepo) NextID() string {
	r.next++
	return fmt.Sprintf("id-%d", r.next)
}

func newController(t *testing.T, repo *fakeRepo, validate bool) *listing.Controller[item] {
	t.Helper()
	c := listing.NewController(itemSchema(validate), repo)
	require.NoError(t, c.Initialize(context.Background()))
	return c
}

func TestInitialize(t *testing.T) {
	t.Run("empty storage starts empty without writing", func(t *testing.T) {
		repo := &fakeRepo{}
		c := newController(t, repo, false)

		require.Empty(t, c.Records())
		require.NotNil(t, c.Records())
		require.Zero(t, repo.saves)
	})

	t.Run("loads persisted records in order", func(t *testing.T) {
		repo := &fakeRepo{stored: []item{{ID: "b", Name: "second"}, {ID: "a", Name: "first"}}}
		c := newController(t, repo, false)

		require.Equal(t, repo.stored, c.Records())
		require.Zero(t, repo.saves)
	})
}

func TestSubmitCreate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{stored: []item{{ID: "existing", Name: "kept"}}}
	c := newController(t, repo, true)

	c.OpenCreateForm()
	saved, err := c.Submit(ctx, item{Name: "new"})
	require.NoError(t, err)

	require.Equal(t, "id-1", saved.ID)
	require.NotEqual(t, "existing", saved.ID)
	require.Equal(t, []item{{ID: "existing", Name: "kept"}, {ID: "id-1", Name: "new"}}, c.Records())
	require.Equal(t, c.Records(), repo.stored)
	require.False(t, c.FormOpen())
	require.NoError(t, c.Err())
}

func TestSubmitRejected(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{stored: []item{{ID: "x", Name: "kept"}}}
	c := newController(t, repo, true)

	c.OpenCreateForm()
	_, err := c.Submit(ctx, item{})

	var vErr *listing.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "name is required", c.Err().Error())
	require.True(t, c.FormOpen(), "form stays open for correction")
	require.Equal(t, []item{{ID: "x", Name: "kept"}}, c.Records())
	require.Zero(t, repo.saves)
}

func TestSubmitEdit(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{stored: []item{
		{ID: "a", Name: "one"},
		{ID: "b", Name: "two", Tags: []string{"x"}},
		{ID: "c", Name: "three"},
	}}
	c := newController(t, repo, false)

	form, err := c.OpenEditForm("b")
	require.NoError(t, err)
	require.Equal(t, listing.ModeEdit, form.Mode())
	require.Equal(t, "two", form.Draft().Name)

	editing, ok := c.Editing()
	require.True(t, ok)
	require.Equal(t, "b", editing.ID)

	saved, err := c.Submit(ctx, item{ID: "ignored", Name: "TWO"})
	require.NoError(t, err)

	require.Equal(t, "b", saved.ID)
	require.Equal(t, []item{
		{ID: "a", Name: "one"},
		{ID: "b", Name: "TWO"},
		{ID: "c", Name: "three"},
	}, c.Records())

	_, ok = c.Editing()
	require.False(t, ok)
}

func TestOpenEditFormUnknown(t *testing.T) {
	c := newController(t, &fakeRepo{}, false)

	_, err := c.OpenEditForm("nope")
	require.ErrorIs(t, err, listing.ErrRecordNotFound)
	require.False(t, c.FormOpen())
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes exactly the matching record", func(t *testing.T) {
		repo := &fakeRepo{stored: []item{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
		c := newController(t, repo, false)

		require.NoError(t, c.Remove(ctx, "b"))
		require.Equal(t, []item{{ID: "a"}, {ID: "c"}}, c.Records())
		require.Equal(t, c.Records(), repo.stored)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		repo := &fakeRepo{stored: []item{{ID: "a"}}}
		c := newController(t, repo, false)

		require.NoError(t, c.Remove(ctx, "zzz"))
		require.Equal(t, []item{{ID: "a"}}, c.Records())
		require.Zero(t, repo.saves)
	})
}

func TestPersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	repo := &fakeRepo{stored: []item{{ID: "a", Name: "one"}}}
	c := newController(t, repo, false)

	repo.failErr = boom

	_, err := c.Submit(ctx, item{Name: "two"})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []item{{ID: "a", Name: "one"}}, c.Records())

	require.ErrorIs(t, c.Remove(ctx, "a"), boom)
	require.Len(t, c.Records(), 1)
}

func TestFormLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("form validation never reaches the parent", func(t *testing.T) {
		repo := &fakeRepo{}
		c := newController(t, repo, true)

		form := c.OpenCreateForm()
		_, err := form.Save(ctx)
		require.ErrorIs(t, err, errNameRequired)
		require.Equal(t, errNameRequired, form.Err())
		require.NoError(t, c.Err(), "parent was not called")
		require.True(t, c.FormOpen())
	})

	t.Run("save hands the draft to the parent", func(t *testing.T) {
		repo := &fakeRepo{}
		c := newController(t, repo, true)

		form := c.OpenCreateForm()
		form.Update(func(i *item) { i.Name = "drafted" })
		saved, err := form.Save(ctx)
		require.NoError(t, err)

		require.Equal(t, "drafted", saved.Name)
		require.True(t, form.Closed())
		require.False(t, c.FormOpen())
		require.Len(t, c.Records(), 1)
	})

	t.Run("cancel discards edits", func(t *testing.T) {
		repo := &fakeRepo{stored: []item{{ID: "a", Name: "one", Tags: []string{"t"}}}}
		c := newController(t, repo, false)

		form, err := c.OpenEditForm("a")
		require.NoError(t, err)
		form.Update(func(i *item) {
			i.Name = "changed"
			i.Tags[0] = "mutated"
		})
		form.Cancel()

		require.False(t, c.FormOpen())
		require.Equal(t, []item{{ID: "a", Name: "one", Tags: []string{"t"}}}, c.Records())
		require.Zero(t, repo.saves)

		_, err = form.Save(ctx)
		require.ErrorIs(t, err, listing.ErrFormClosed)
	})

	t.Run("stale form cannot close its replacement", func(t *testing.T) {
		c := newController(t, &fakeRepo{}, false)

		stale := c.OpenCreateForm()
		current := c.OpenCreateForm()
		stale.Cancel()

		require.Same(t, current, c.Form())
		_, err := current.Save(ctx)
		require.NoError(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	c := newController(t, repo, false)

	for _, name := range []string{"a", "b", "c"} {
		_, err := c.Submit(ctx, item{Name: name, Tags: []string{name}})
		require.NoError(t, err)
	}
	require.NoError(t, c.Remove(ctx, "id-2"))
	before := c.Records()

	reloaded := listing.NewController(itemSchema(false), repo)
	require.NoError(t, reloaded.Initialize(ctx))
	require.Equal(t, before, reloaded.Records())
}
