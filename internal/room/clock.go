package room

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies UTC timestamps. Injected so tests can drive the
// status machine deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDSource produces globally unique player identifiers.
type IDSource interface {
	NewID() string
}

// UUIDSource generates random UUIDs.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }
