package dto

import "time"

type ListInput struct {
	LearnerID string
}

type SessionOutput struct {
	ID        string
	Topic     string
	Progress  int
	CreatedAt time.Time
	Content   string
}

type StartInput struct {
	LearnerID string
	Topic     string
}

type StartOutput struct {
	SessionID string
	Topic     string
	Message   string
}

type GenerateInput struct {
	LearnerID string
}

type GenerateOutput struct {
	Message string
	Content string
}

type ExportInput struct {
	LearnerID string
	Dir       string
}

type ExportOutput struct {
	Paths []string
}
