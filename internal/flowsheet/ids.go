package flowsheet

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDSource hands out record and group identifiers. Record IDs are ULIDs drawn
// from a monotonic entropy source, so two IDs from the same source never collide
// even within one millisecond.
type IDSource struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewIDSource returns a source seeded from the current time.
func NewIDSource() *IDSource {
	return &IDSource{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
}

// NewRecordID returns a fresh intervention identifier.
func (s *IDSource) NewRecordID() string {
	id := ulid.MustNew(ulid.Timestamp(s.now()), s.entropy)
	return "intervention-" + strings.ToLower(id.String())
}

// NewGroupID returns a fresh group identifier scoped to a billing code.
func (s *IDSource) NewGroupID(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "custom"
	}
	return "cpt-" + code + "-" + uuid.NewString()
}
