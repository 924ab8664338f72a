package dto

type RegisterInput struct {
	Username        string
	LearningGoals   string
	ExperienceLevel string
	LearningStyle   string
}

type RegisterOutput struct {
	LearnerID string
	Username  string
}

type CurrentOutput struct {
	LearnerID string
}
