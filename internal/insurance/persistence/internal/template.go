package internal

import (
	"time"

	"insurance-server/internal/insurance/domain"
)

type FormTemplate struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"uniqueIndex;not null"`
	Description string
	Sections    []FormSection `gorm:"foreignKey:TemplateID"`
	Fields      []FormField   `gorm:"foreignKey:TemplateID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FormTemplate) TableName() string {
	return "form_templates"
}

type FormSection struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	TemplateID int64  `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	Order      int    `gorm:"column:order;not null;default:0"`
}

func (FormSection) TableName() string {
	return "form_sections"
}

// FormField keeps options, validation and conditions as the JSON text they
// were written with, so a malformed facet is still readable.
type FormField struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	TemplateID  int64  `gorm:"index;not null"`
	SectionID   *int64 `gorm:"index"`
	ParentID    *int64 `gorm:"index"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"`
	Label       string
	Required    bool
	Placeholder string
	Options     string `gorm:"type:text"`
	Validation  string `gorm:"type:text"`
	Conditions  string `gorm:"type:text"`
	APIEndpoint string `gorm:"column:api_endpoint"`
	Order       int    `gorm:"column:order;not null;default:0"`
}

func (FormField) TableName() string {
	return "form_fields"
}

func (t FormTemplate) ToDomain() domain.TemplateRecord {
	record := domain.TemplateRecord{
		ID:          t.ID,
		Name:        t.Name,
		Type:        t.Type,
		Description: t.Description,
		Sections:    make([]domain.SectionRecord, 0, len(t.Sections)),
		Fields:      make([]domain.FieldRecord, 0, len(t.Fields)),
	}
	for _, s := range t.Sections {
		record.Sections = append(record.Sections, domain.SectionRecord{
			ID:    s.ID,
			Name:  s.Name,
			Order: s.Order,
		})
	}
	for _, f := range t.Fields {
		record.Fields = append(record.Fields, f.ToDomain())
	}
	return record
}

func (f FormField) ToDomain() domain.FieldRecord {
	return domain.FieldRecord{
		ID:          f.ID,
		SectionID:   f.SectionID,
		ParentID:    f.ParentID,
		Name:        f.Name,
		Type:        f.Type,
		Label:       f.Label,
		Required:    f.Required,
		Placeholder: f.Placeholder,
		Options:     f.Options,
		Validation:  f.Validation,
		Conditions:  f.Conditions,
		APIEndpoint: f.APIEndpoint,
		Order:       f.Order,
	}
}

// FromFieldRecord copies a field without its ids; links are set by the caller.
func FromFieldRecord(templateID int64, value domain.FieldRecord) FormField {
	return FormField{
		TemplateID:  templateID,
		Name:        value.Name,
		Type:        value.Type,
		Label:       value.Label,
		Required:    value.Required,
		Placeholder: value.Placeholder,
		Options:     value.Options,
		Validation:  value.Validation,
		Conditions:  value.Conditions,
		APIEndpoint: value.APIEndpoint,
		Order:       value.Order,
	}
}
