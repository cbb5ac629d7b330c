package domain

import (
	"strconv"
	"time"

	"insurance-server/internal/infra/utils"

	"github.com/google/uuid"
)

const StatusPending = "pending"

// SubmissionRequest is the outbound payload of a filled form.
type SubmissionRequest struct {
	Data       Values
	TemplateID int64
	Type       string
}

// BuildSubmission shapes the answers into a request. It does not validate.
func BuildSubmission(values Values, formType string, templateID int64) SubmissionRequest {
	return SubmissionRequest{
		Data:       values.Clone(),
		TemplateID: templateID,
		Type:       formType,
	}
}

type Submission struct {
	ID         int64
	PublicID   string
	TemplateID int64
	Type       string
	Data       Values
	Status     string
	CreatedAt  time.Time
}

// Row flattens the submission for listings. Data keys override id and type;
// status and createdAt always come from the record.
func (s Submission) Row() Row {
	row := make(Row, len(s.Data)+4)
	row["id"] = String(strconv.FormatInt(s.ID, 10))
	row["type"] = String(s.Type)
	for k, v := range s.Data {
		row[k] = v
	}
	row["status"] = String(s.Status)
	row["createdAt"] = String(s.CreatedAt.UTC().Format(utils.JSTimeLayout))
	return row
}

func NewSubmissionBuilder() *submissionBuilder {
	return &submissionBuilder{}
}

type submissionBuilder struct {
	actions []submissionHandler
}

type submissionHandler func(v *Submission) error

func (b *submissionBuilder) WithTemplateID(value int64) *submissionBuilder {
	b.actions = append(b.actions, func(s *Submission) error {
		if value <= 0 {
			return ErrInvalidTemplateID
		}
		s.TemplateID = value
		return nil
	})
	return b
}

func (b *submissionBuilder) WithType(value string) *submissionBuilder {
	b.actions = append(b.actions, func(s *Submission) error {
		s.Type = value
		return nil
	})
	return b
}

func (b *submissionBuilder) WithData(value Values) *submissionBuilder {
	b.actions = append(b.actions, func(s *Submission) error {
		if len(value) == 0 {
			return ErrEmptyData
		}
		s.Data = value.Clone()
		return nil
	})
	return b
}

func (b *submissionBuilder) WithCreatedAt(value time.Time) *submissionBuilder {
	b.actions = append(b.actions, func(s *Submission) error {
		s.CreatedAt = value
		return nil
	})
	return b
}

func (b *submissionBuilder) Build() (Submission, error) {
	result := Submission{
		PublicID:  uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return Submission{}, err
		}
	}

	if result.TemplateID == 0 {
		return Submission{}, ErrInvalidTemplateID
	}
	if len(result.Data) == 0 {
		return Submission{}, ErrEmptyData
	}
	if result.Type == "" {
		return Submission{}, ErrMissingType
	}

	return result, nil
}
