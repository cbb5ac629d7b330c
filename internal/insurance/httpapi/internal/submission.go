package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"insurance-server/internal/infra/utils"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/usecases"
)

var (
	ErrInvalidData       = errors.New("data must be a non-empty object")
	ErrInvalidTemplateID = errors.New("templateId must be a number")
)

type SubmitRequest struct {
	Data       json.RawMessage `json:"data"`
	TemplateID json.RawMessage `json:"templateId"`
	Type       string          `json:"type,omitempty"`
}

// ToCommand checks the request shape. A numeric string is accepted as
// template id.
func (r SubmitRequest) ToCommand() (usecases.SubmitCommand, error) {
	data, err := domain.DecodeValues(r.Data)
	if err != nil || len(data) == 0 {
		return usecases.SubmitCommand{}, ErrInvalidData
	}

	templateID, err := parseTemplateID(r.TemplateID)
	if err != nil {
		return usecases.SubmitCommand{}, err
	}

	return usecases.SubmitCommand{
		TemplateID: templateID,
		Type:       strings.TrimSpace(r.Type),
		Data:       data,
	}, nil
}

func parseTemplateID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrInvalidTemplateID
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidTemplateID
		}
	} else {
		text = string(raw)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, ErrInvalidTemplateID
	}
	return id, nil
}

type SubmissionResponse struct {
	ID         int64         `json:"id"`
	PublicID   string        `json:"publicId"`
	TemplateID int64         `json:"templateId"`
	Type       string        `json:"type"`
	Data       domain.Values `json:"data"`
	Status     string        `json:"status"`
	CreatedAt  utils.Time    `json:"createdAt"`
}

func FromSubmission(value domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:         value.ID,
		PublicID:   value.PublicID,
		TemplateID: value.TemplateID,
		Type:       value.Type,
		Data:       value.Data,
		Status:     value.Status,
		CreatedAt:  utils.Time{Time: value.CreatedAt},
	}
}

type SubmissionsResponse struct {
	Columns []string     `json:"columns"`
	Data    []domain.Row `json:"data"`
}

type ColumnsResponse struct {
	Columns []string `json:"columns"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type TablePage struct {
	Columns []domain.ColumnConfig `json:"columns"`
	Rows    []domain.Row          `json:"rows"`
}

type SubmissionEvent struct {
	Type       string             `json:"type"`
	Submission SubmissionResponse `json:"submission"`
}
