package domain_test

import (
	"math/rand"
	"testing"

	"learnhub/internal/modules/learner/domain"
)

func filledWizard(askStyle bool) domain.Wizard {
	w := domain.NewWizard(askStyle)
	w.SetUsername("ana")
	w.SetLearningGoals("Python")
	return w
}

func TestWizardStepCountFollowsLearningStyleOption(t *testing.T) {
	t.Parallel()
	if got := domain.NewWizard(true).Total(); got != 4 {
		t.Fatalf("expected 4 steps with learning style, got %d", got)
	}
	w := domain.NewWizard(false)
	if w.Total() != 3 {
		t.Fatalf("expected 3 steps without learning style, got %d", w.Total())
	}
	if w.Form().LearningStyle != "" {
		t.Fatalf("learning style must stay unset when not asked")
	}
	w.SetLearningStyle(domain.StyleVisual)
	if w.Form().LearningStyle != "" {
		t.Fatalf("learning style must not be settable when not asked")
	}
}

func TestWizardGatesFirstTwoSteps(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard(true)
	if w.CanAdvance() {
		t.Fatalf("next must be disabled with empty username")
	}
	w.SetUsername("   ")
	if w.Next() || w.Step() != 1 {
		t.Fatalf("blank username must not advance, step=%d", w.Step())
	}
	w.SetUsername("ana")
	if !w.CanAdvance() {
		t.Fatalf("next must be enabled with username")
	}
	w.Next()
	if w.Step() != domain.StepGoals {
		t.Fatalf("expected goals step, got %d", w.Step())
	}
	if w.CanAdvance() {
		t.Fatalf("next must be disabled with empty goal")
	}
	w.SetLearningGoals("Python")
	w.Next()
	if w.Step() != domain.StepExperience || !w.CanAdvance() {
		t.Fatalf("experience step must be pre-filled and ungated")
	}
	if w.Form().ExperienceLevel != domain.ExperienceBeginner {
		t.Fatalf("expected beginner default, got %s", w.Form().ExperienceLevel)
	}
}

func TestWizardRandomWalkStaysInBoundsAndMovesByOne(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for _, askStyle := range []bool{true, false} {
		w := filledWizard(askStyle)
		for i := 0; i < 500; i++ {
			before := w.Step()
			if rng.Intn(2) == 0 {
				if w.Next() {
					w.FailSubmit()
				}
			} else {
				w.Back()
			}
			after := w.Step()
			if after < 1 || after > w.Total() {
				t.Fatalf("step %d out of [1,%d]", after, w.Total())
			}
			if d := after - before; d > 1 || d < -1 {
				t.Fatalf("step jumped from %d to %d", before, after)
			}
		}
	}
}

func TestWizardSubmitLifecycle(t *testing.T) {
	t.Parallel()
	w := filledWizard(true)
	for !w.IsFinal() {
		w.Next()
	}
	if !w.Next() {
		t.Fatalf("next on final step must request submission")
	}
	if !w.Loading() || w.CanAdvance() || w.CanGoBack() {
		t.Fatalf("wizard must be locked while loading")
	}
	if w.Back() || w.Next() {
		t.Fatalf("back and next must be no-ops while loading")
	}
	w.FailSubmit()
	if w.Loading() || w.Step() != w.Total() {
		t.Fatalf("failed submit must stay on final step and unlock, step=%d loading=%t", w.Step(), w.Loading())
	}
	if !w.Back() || w.Step() != w.Total()-1 {
		t.Fatalf("back must work again after failure")
	}
	for w.Step() > 1 {
		w.Back()
	}
	if w.Back() || w.Step() != 1 {
		t.Fatalf("back at step 1 must be a no-op")
	}
}

func TestSubmissionTrimsFields(t *testing.T) {
	t.Parallel()
	w := domain.NewWizard(false)
	w.SetUsername("  ana ")
	w.SetLearningGoals(" Go\n")
	p := w.Submission()
	if p.Username != "ana" || p.LearningGoals != "Go" {
		t.Fatalf("unexpected submission %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("submission should validate: %v", err)
	}
}
