package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testForm struct {
	name  string
	ready bool
}

func testValidator(step int, f testForm) bool {
	switch step {
	case 0:
		return f.name != ""
	case 1:
		return f.ready
	default:
		return true // recap
	}
}

func newTestSequencer() *Sequencer[testForm] {
	return NewSequencer(3, testValidator)
}

func TestAdvance_BlockedOnInvalidStep(t *testing.T) {
	seq := newTestSequencer()

	require.Equal(t, OutcomeNone, seq.Advance(testForm{}))
	require.Equal(t, 0, seq.Step())
}

func TestAdvance_MovesOneStepAtATime(t *testing.T) {
	seq := newTestSequencer()
	form := testForm{name: "Q3 Grants", ready: true}

	require.Equal(t, OutcomeAdvanced, seq.Advance(form))
	require.Equal(t, 1, seq.Step())
	require.Equal(t, OutcomeAdvanced, seq.Advance(form))
	require.Equal(t, 2, seq.Step())
}

func TestAdvance_LastStepReportsSubmit(t *testing.T) {
	seq := newTestSequencer()
	form := testForm{name: "a", ready: true}

	seq.Advance(form)
	seq.Advance(form)
	require.Equal(t, OutcomeSubmit, seq.Advance(form))
	require.Equal(t, 2, seq.Step(), "submit must not move the index")
}

func TestRetreat_NeverValidates(t *testing.T) {
	seq := newTestSequencer()
	seq.Advance(testForm{name: "a", ready: true})

	// Invalid form; going back still works.
	require.True(t, seq.Retreat())
	require.Equal(t, 0, seq.Step())
	require.False(t, seq.Retreat(), "cannot retreat past the first step")
}

func TestPhaseTransitions(t *testing.T) {
	seq := newTestSequencer()
	form := testForm{name: "a", ready: true}
	seq.Advance(form)
	seq.Advance(form)

	seq.BeginSubmit()
	require.Equal(t, PhaseSubmitting, seq.Phase())

	// Navigation is frozen while submitting.
	require.Equal(t, OutcomeNone, seq.Advance(form))
	require.False(t, seq.Retreat())

	seq.CompleteOK()
	require.Equal(t, PhaseCompleted, seq.Phase())
}

func TestFailAndResume(t *testing.T) {
	seq := newTestSequencer()
	form := testForm{name: "a", ready: true}
	seq.Advance(form)
	seq.Advance(form)

	seq.BeginSubmit()
	seq.Fail(errors.New("dry run failed"))
	require.Equal(t, PhaseFailed, seq.Phase())
	require.EqualError(t, seq.Err(), "dry run failed")

	seq.Resume()
	require.Equal(t, PhaseEditing, seq.Phase())
	require.Equal(t, 2, seq.Step(), "resume lands on the recap step")
}

func TestBeginSubmit_OnlyFromEditing(t *testing.T) {
	seq := newTestSequencer()
	seq.BeginSubmit()
	seq.CompleteOK()
	require.Equal(t, PhaseCompleted, seq.Phase())

	// Already completed; a second BeginSubmit is ignored.
	seq.BeginSubmit()
	require.Equal(t, PhaseCompleted, seq.Phase())
}

func TestCompletedSteps(t *testing.T) {
	seq := newTestSequencer()
	form := testForm{name: "a", ready: true}

	require.Equal(t, 0, seq.CompletedSteps())

	seq.Advance(form)
	require.Equal(t, 1, seq.CompletedSteps())

	seq.Advance(form)
	seq.BeginSubmit()
	require.Equal(t, 3, seq.CompletedSteps(), "all steps done while submitting")

	seq.CompleteOK()
	require.Equal(t, 3, seq.CompletedSteps())
}
