package domain

import "strings"

const (
	StepUsername   = 1
	StepGoals      = 2
	StepExperience = 3
	StepStyle      = 4
)

// Wizard is the onboarding state machine. The step only moves by one via
// Next or Back and always stays within [1, Total].
type Wizard struct {
	step    int
	total   int
	form    Profile
	loading bool
}

// NewWizard starts at step 1 with the enum steps pre-filled. Without the
// learning style step the wizard has three steps.
func NewWizard(askLearningStyle bool) Wizard {
	w := Wizard{
		step:  StepUsername,
		total: StepExperience,
		form:  Profile{ExperienceLevel: ExperienceBeginner},
	}
	if askLearningStyle {
		w.total = StepStyle
		w.form.LearningStyle = StyleCombination
	}
	return w
}

func (w Wizard) Step() int       { return w.step }
func (w Wizard) Total() int      { return w.total }
func (w Wizard) Form() Profile   { return w.form }
func (w Wizard) Loading() bool   { return w.loading }
func (w Wizard) IsFinal() bool   { return w.step == w.total }
func (w Wizard) CanGoBack() bool { return w.step > StepUsername && !w.loading }

func (w *Wizard) SetUsername(v string)                 { w.form.Username = v }
func (w *Wizard) SetLearningGoals(v string)            { w.form.LearningGoals = v }
func (w *Wizard) SetExperienceLevel(v ExperienceLevel) { w.form.ExperienceLevel = v }
func (w *Wizard) SetLearningStyle(v LearningStyle) {
	if w.total == StepStyle {
		w.form.LearningStyle = v
	}
}

// CanAdvance reports whether Next is enabled on the current step.
func (w Wizard) CanAdvance() bool {
	if w.loading {
		return false
	}
	switch w.step {
	case StepUsername:
		return strings.TrimSpace(w.form.Username) != ""
	case StepGoals:
		return strings.TrimSpace(w.form.LearningGoals) != ""
	default:
		return true
	}
}

// Next advances one step. On the final step it enters the loading state
// and returns true: the caller must issue exactly one submission and then
// call FailSubmit or CompleteSubmit.
func (w *Wizard) Next() (submit bool) {
	if !w.CanAdvance() {
		return false
	}
	if w.step < w.total {
		w.step++
		return false
	}
	w.loading = true
	return true
}

func (w *Wizard) Back() bool {
	if !w.CanGoBack() {
		return false
	}
	w.step--
	return true
}

// FailSubmit keeps the wizard on its final step and re-enables it.
func (w *Wizard) FailSubmit() { w.loading = false }

func (w *Wizard) CompleteSubmit() { w.loading = false }

// Submission returns the profile with surrounding whitespace removed.
func (w Wizard) Submission() Profile {
	p := w.form
	p.Username = strings.TrimSpace(p.Username)
	p.LearningGoals = strings.TrimSpace(p.LearningGoals)
	return p
}
