// Package idx mints record identifiers. ULIDs are the default because they
// sort by creation time; UUIDv4 is available for stores shared with systems
// that expect it.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type ID string

// ErrUnknownFormat reports an unsupported Format name.
var ErrUnknownFormat = errors.New("idx: unknown id format")

type Format string

const (
	FormatULID Format = "ulid"
	FormatUUID Format = "uuid"
)

var (
	globalOnce sync.Once
	global     *generator
)

// generator is a tool to safely generate ULIDs concurrently using a monotonic
// source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(t), g.entropy)
	return ID(u.String())
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a new lexicographically sortable ULID using the current time in
// UTC. IDs minted within the same millisecond still increase monotonically.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt generates an ID at the provided time (UTC), useful for tests.
func NewAt(t time.Time) ID {
	globalOnce.Do(initGlobal)
	return global.NewAt(t)
}

// NewUUID returns a random (version 4) UUID.
func NewUUID() ID {
	return ID(uuid.NewString())
}

// Generator returns a function minting ids in the given format.
func Generator(f Format) (func() string, error) {
	switch Format(strings.ToLower(string(f))) {
	case FormatULID, "":
		return func() string { return New().String() }, nil
	case FormatUUID:
		return func() string { return NewUUID().String() }, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// String returns the canonical string form.
func (id ID) String() string { return string(id) }
