package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"insurance-server/internal/insurance/domain"

	"gorm.io/datatypes"
)

type FormSubmission struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	PublicID   string         `gorm:"uniqueIndex;not null"`
	TemplateID int64          `gorm:"index;not null"`
	Type       string         `gorm:"index;not null"`
	Data       datatypes.JSON `gorm:"not null"`
	Status     string         `gorm:"not null;default:pending"`
	CreatedAt  time.Time      `gorm:"index"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}

func FromSubmission(value domain.Submission) (FormSubmission, error) {
	data, err := json.Marshal(value.Data)
	if err != nil {
		return FormSubmission{}, fmt.Errorf("encoding submission data: %w", err)
	}

	return FormSubmission{
		ID:         value.ID,
		PublicID:   value.PublicID,
		TemplateID: value.TemplateID,
		Type:       value.Type,
		Data:       datatypes.JSON(data),
		Status:     value.Status,
		CreatedAt:  value.CreatedAt,
	}, nil
}

func (s FormSubmission) ToDomain() (domain.Submission, error) {
	data, err := domain.DecodeValues(s.Data)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("decoding submission %d data: %w", s.ID, err)
	}

	return domain.Submission{
		ID:         s.ID,
		PublicID:   s.PublicID,
		TemplateID: s.TemplateID,
		Type:       s.Type,
		Data:       data,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt.UTC(),
	}, nil
}
