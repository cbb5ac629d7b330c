package internal

import (
	"time"

	"insurance-server/internal/insurance/domain"
)

type SubmissionEvent struct {
	ID         int64         `json:"id"`
	PublicID   string        `json:"public_id"`
	TemplateID int64         `json:"template_id"`
	Type       string        `json:"type"`
	Data       domain.Values `json:"data"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

func FromSubmission(s domain.Submission) SubmissionEvent {
	return SubmissionEvent{
		ID:         s.ID,
		PublicID:   s.PublicID,
		TemplateID: s.TemplateID,
		Type:       s.Type,
		Data:       s.Data,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
	}
}

func (e SubmissionEvent) ToDomain() domain.Submission {
	return domain.Submission{
		ID:         e.ID,
		PublicID:   e.PublicID,
		TemplateID: e.TemplateID,
		Type:       e.Type,
		Data:       e.Data,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
	}
}
