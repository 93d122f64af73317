// Package wizard provides the stepped proposal wizard engine: a form state
// container, a step sequencer, per-step validation, and the BubbleTea model
// that drives them.
package wizard

import (
	"sync"
	"time"
)

// DefaultExpirationOffset is how long after voting ends an intent expires
// when no explicit expiration was chosen.
const DefaultExpirationOffset = 7 * 24 * time.Hour

// Meta holds the fields every proposal flow shares: a name, a markdown
// description, and the proposal timeline.
type Meta struct {
	ProposalName string     `json:"proposalName"`
	Description  string     `json:"description"`
	VotingStart  *time.Time `json:"votingStart,omitempty"`
	VotingEnd    *time.Time `json:"votingEnd,omitempty"`
	Execution    *time.Time `json:"execution,omitempty"`
	Expiration   *time.Time `json:"expiration,omitempty"` // explicit override
}

// EffectiveExpiration returns the expiration that will be submitted: the
// explicit override when set, otherwise voting end plus the default offset.
// Returns false when voting end is not chosen yet and there is no override.
func (m *Meta) EffectiveExpiration() (time.Time, bool) {
	if m.Expiration != nil {
		return *m.Expiration, true
	}
	if m.VotingEnd != nil {
		return m.VotingEnd.Add(DefaultExpirationOffset), true
	}
	return time.Time{}, false
}

// Form is implemented by every flow's form struct.
type Form interface {
	// Meta returns the shared proposal fields.
	Meta() *Meta
}

// Container owns a flow's form state. Steps never hold form data themselves;
// they read the form through Get and mutate it through Update, so a value
// entered on step 2 is still there after going back to step 1 and forward
// again.
type Container[F any] struct {
	mu   sync.Mutex
	form F
}

// NewContainer creates a container around an initial form value.
func NewContainer[F any](initial F) *Container[F] {
	return &Container[F]{form: initial}
}

// Get returns a copy of the current form.
func (c *Container[F]) Get() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Update applies a patch to the form. A nil patch is a no-op: the form is
// unchanged, which keeps repeated empty updates idempotent.
func (c *Container[F]) Update(patch func(*F)) {
	if patch == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	patch(&c.form)
}
