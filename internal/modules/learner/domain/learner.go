package domain

import (
	"fmt"
	"strings"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

type LearningStyle string

const (
	StyleCombination LearningStyle = "combination"
	StyleVisual      LearningStyle = "visual"
	StyleAudio       LearningStyle = "audio"
	StyleHandsOn     LearningStyle = "hands-on"
)

var (
	ExperienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	LearningStyles   = []LearningStyle{StyleCombination, StyleVisual, StyleAudio, StyleHandsOn}

	// GoalPresets are offered as suggestions; any non-blank goal is accepted.
	GoalPresets = []string{
		"Python",
		"JavaScript",
		"Go",
		"Web Development",
		"Data Science",
		"Machine Learning",
	}
)

func (e ExperienceLevel) Validate() error {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return nil
	default:
		return fmt.Errorf("unsupported experience level %q", string(e))
	}
}

func (s LearningStyle) Validate() error {
	switch s {
	case StyleCombination, StyleVisual, StyleAudio, StyleHandsOn:
		return nil
	default:
		return fmt.Errorf("unsupported learning style %q", string(s))
	}
}

// Profile is what onboarding collects. An empty LearningStyle is omitted
// from the request and left to the backend default.
type Profile struct {
	Username        string
	LearningGoals   string
	ExperienceLevel ExperienceLevel
	LearningStyle   LearningStyle
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(p.LearningGoals) == "" {
		return fmt.Errorf("learning goals are required")
	}
	if err := p.ExperienceLevel.Validate(); err != nil {
		return err
	}
	if p.LearningStyle != "" {
		return p.LearningStyle.Validate()
	}
	return nil
}

type Learner struct {
	ID       string
	Username string
}
