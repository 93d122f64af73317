package wizard

// Phase is the submission phase of a wizard. The wizard is always in exactly
// one phase; there are no independent "submitting" and "completed" flags to
// drift apart.
type Phase int

const (
	PhaseEditing    Phase = iota // User is filling in steps
	PhaseSubmitting              // Transaction pipeline is running
	PhaseCompleted               // Transaction landed on chain
	PhaseFailed                  // Pipeline failed, user may retry
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of an Advance call.
type Outcome int

const (
	OutcomeNone     Outcome = iota // Step invalid or wizard not editing; nothing moved
	OutcomeAdvanced                // Moved to the next step
	OutcomeSubmit                  // Last step confirmed; caller should begin submission
)

// Validator reports whether the step at the given index is complete for the
// given form. It must be pure: no I/O, no mutation, same answer for the same
// form. Index len(steps)-1 is the recap step.
type Validator[F any] func(step int, form F) bool

// Sequencer tracks which step a wizard is on and which phase it is in.
// All navigation goes through Advance and Retreat so the invariants hold:
// the index never skips a step, never moves past an invalid step, and never
// moves at all outside the editing phase.
type Sequencer[F any] struct {
	steps    int
	validate Validator[F]
	idx      int
	phase    Phase
	err      error
}

// NewSequencer creates a sequencer over a fixed number of steps.
func NewSequencer[F any](steps int, validate Validator[F]) *Sequencer[F] {
	return &Sequencer[F]{steps: steps, validate: validate}
}

// Step returns the current step index.
func (s *Sequencer[F]) Step() int { return s.idx }

// Steps returns the total number of steps.
func (s *Sequencer[F]) Steps() int { return s.steps }

// Phase returns the current phase.
func (s *Sequencer[F]) Phase() Phase { return s.phase }

// Err returns the failure from the last submission attempt, if any.
func (s *Sequencer[F]) Err() error { return s.err }

// Valid reports whether the current step is complete for the given form.
func (s *Sequencer[F]) Valid(form F) bool {
	return s.validate(s.idx, form)
}

// Advance moves forward one step if the current step validates. On the last
// step it does not move; it reports OutcomeSubmit so the caller can start
// the submission pipeline.
func (s *Sequencer[F]) Advance(form F) Outcome {
	if s.phase != PhaseEditing {
		return OutcomeNone
	}
	if !s.validate(s.idx, form) {
		return OutcomeNone
	}
	if s.idx == s.steps-1 {
		return OutcomeSubmit
	}
	s.idx++
	return OutcomeAdvanced
}

// Retreat moves back one step. Returns false on the first step or outside
// the editing phase; going back never validates and never loses form state.
// Leaving the recap to edit also drops the last failure; it belongs to the
// attempt, not to the steps behind it.
func (s *Sequencer[F]) Retreat() bool {
	if s.phase != PhaseEditing || s.idx == 0 {
		return false
	}
	s.idx--
	s.err = nil
	return true
}

// BeginSubmit enters the submitting phase. Only legal from editing.
func (s *Sequencer[F]) BeginSubmit() {
	if s.phase == PhaseEditing {
		s.phase = PhaseSubmitting
		s.err = nil
	}
}

// CompleteOK marks the submission as landed.
func (s *Sequencer[F]) CompleteOK() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseCompleted
	}
}

// Fail records a submission failure.
func (s *Sequencer[F]) Fail(err error) {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseFailed
		s.err = err
	}
}

// Resume returns a failed wizard to editing on the recap step so the user
// can adjust and retry. Form state is untouched.
func (s *Sequencer[F]) Resume() {
	if s.phase == PhaseFailed {
		s.phase = PhaseEditing
		s.idx = s.steps - 1
	}
}

// CompletedSteps returns how many steps render as done in the progress
// indicator. While submitting or after completion every step is done;
// while editing, the steps before the current one.
func (s *Sequencer[F]) CompletedSteps() int {
	if s.phase == PhaseSubmitting || s.phase == PhaseCompleted {
		return s.steps
	}
	return s.idx
}

// IsActive reports whether the step at index i has been reached.
func (s *Sequencer[F]) IsActive(i int) bool {
	return i <= s.CompletedSteps()
}
