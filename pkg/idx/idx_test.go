package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewIsULID(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	_, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)

	// Same timestamp must still produce distinct, increasing ids
	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String())
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	u, err := ulid.ParseStrict(idx.NewAt(tm).String())
	require.NoError(t, err)
	require.WithinDuration(t, tm, ulid.Time(u.Time()), time.Millisecond)
}

func TestGenerator(t *testing.T) {
	t.Run("ulid by default", func(t *testing.T) {
		gen, err := idx.Generator("")
		require.NoError(t, err)
		require.Len(t, gen(), 26)
	})

	t.Run("uuid", func(t *testing.T) {
		gen, err := idx.Generator(idx.FormatUUID)
		require.NoError(t, err)

		id := gen()
		require.Len(t, id, 36)
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, uuid.Version(4), parsed.Version())
	})

	t.Run("case-insensitive format", func(t *testing.T) {
		gen, err := idx.Generator("UUID")
		require.NoError(t, err)
		require.Len(t, gen(), 36)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := idx.Generator("snowflake")
		require.ErrorIs(t, err, idx.ErrUnknownFormat)
	})
}
