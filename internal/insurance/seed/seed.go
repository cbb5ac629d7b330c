// Package seed holds the stock insurance templates loaded into an empty
// database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/usecases"
)

const (
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	PhonePattern = `^\+?[1-9]\d{1,14}$`

	dateLayout = "2006-01-02"
)

type section struct {
	name   string
	order  int
	fields []domain.FormField
}

type template struct {
	name        string
	formType    string
	description string
	sections    []section
}

func (t template) record() domain.TemplateRecord {
	structure := domain.FormStructure{Title: t.name, Type: t.formType}
	for _, s := range t.sections {
		structure.Sections = append(structure.Sections, domain.FormSection{Title: s.name, Fields: s.fields})
	}

	record := domain.Flatten(structure)
	record.Description = t.description
	for i := range record.Sections {
		record.Sections[i].Order = t.sections[i].order
	}
	return record
}

// Templates returns the health, car and home templates. Date of birth
// fields are bounded by today.
func Templates(today time.Time) []domain.TemplateRecord {
	templates := []template{health(), car(today), home(today)}
	records := make([]domain.TemplateRecord, len(templates))
	for i, t := range templates {
		records[i] = t.record()
	}
	return records
}

type Result struct {
	Created []string
	Skipped []string
}

// Load creates every stock template whose type is not stored yet.
func Load(ctx context.Context, repo usecases.TemplateRepository, today time.Time) (Result, error) {
	var result Result
	for _, record := range Templates(today) {
		_, err := repo.Create(ctx, record)
		if errors.Is(err, usecases.ErrTemplateDuplicated) {
			slog.Debug("template already seeded", slog.String("type", record.Type))
			result.Skipped = append(result.Skipped, record.Type)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("seeding %s template: %w", record.Type, err)
		}
		slog.Info("template seeded", slog.String("type", record.Type))
		result.Created = append(result.Created, record.Type)
	}
	return result, nil
}

func health() template {
	return template{
		name:        "Health Insurance Form",
		formType:    "health",
		description: "Form for health insurance applications",
		sections: []section{
			{
				name:  "Personal Information",
				order: 1,
				fields: []domain.FormField{
					fullName("Full Name"),
					email(),
					{
						ID: "age", Type: domain.FieldTypeNumber, Label: "Age", Required: true,
						Validation: &domain.Validation{Required: true, Min: number(18), Max: number(120)},
					},
					{
						ID: "gender", Type: domain.FieldTypeRadio, Label: "Gender", Required: true,
						Options: []domain.Option{
							{Label: "Male", Value: "male"},
							{Label: "Female", Value: "female"},
							{Label: "Other", Value: "other"},
							{Label: "Prefer not to say", Value: "not_specified"},
						},
					},
					{
						ID: "pregnancyStatus", Type: domain.FieldTypeRadio, Label: "Pregnancy Status",
						Options: []domain.Option{
							{Label: "Currently pregnant", Value: "pregnant"},
							{Label: "Planning pregnancy in next 12 months", Value: "planning"},
							{Label: "Not applicable", Value: "not_applicable"},
						},
						Conditions: equals("gender", domain.String("female")),
					},
				},
			},
			{
				name:  "Medical History",
				order: 2,
				fields: []domain.FormField{
					{
						ID: "existingConditions", Type: domain.FieldTypeCheckbox,
						Label: "Do you have any existing medical conditions?", Required: true,
					},
					{
						ID: "conditionDetails", Type: domain.FieldTypeText,
						Label:       "Please describe your medical conditions",
						Placeholder: "List any diagnosed conditions",
						Conditions:  equals("existingConditions", domain.Bool(true)),
					},
				},
			},
		},
	}
}

func car(today time.Time) template {
	return template{
		name:        "Car Insurance Form",
		formType:    "car",
		description: "Form for car insurance applications",
		sections: []section{
			{
				name:  "Personal Information",
				order: 1,
				fields: []domain.FormField{
					fullName("Full Name"),
					email(),
					phone(),
					address("Address"),
					dateOfBirth(today),
				},
			},
			{
				name:  "Vehicle Information",
				order: 2,
				fields: []domain.FormField{
					yesNo("hasAccidents", "Have you had any accidents?"),
					{
						ID: "accidentCount", Type: domain.FieldTypeNumber, Label: "Number of Accidents",
						Validation: &domain.Validation{Min: number(1)},
						Conditions: equals("hasAccidents", domain.String("yes")),
					},
				},
			},
		},
	}
}

// home keeps the property section ahead of the personal one in storage
// while ordering it after.
func home(today time.Time) template {
	return template{
		name:        "Home Insurance Form",
		formType:    "home",
		description: "Form for home insurance applications",
		sections: []section{
			{
				name:  "Property Information",
				order: 1,
				fields: []domain.FormField{
					yesNo("hasSecurity", "Do you have a security system?"),
					{
						ID: "securitySystemType", Type: domain.FieldTypeSelect, Label: "Security System Type",
						Options: []domain.Option{
							{Label: "Basic Alarm", Value: "basic"},
							{Label: "Camera System", Value: "camera"},
							{Label: "Monitored Service", Value: "monitored"},
							{Label: "Smart Home Security", Value: "smart"},
						},
						Conditions: equals("hasSecurity", domain.String("yes")),
					},
				},
			},
			{
				name:  "Personal Information",
				order: 0,
				fields: []domain.FormField{
					fullName("Full Name"),
					email(),
					phone(),
					address("Current Address"),
					dateOfBirth(today),
				},
			},
		},
	}
}

func fullName(label string) domain.FormField {
	return domain.FormField{ID: "fullName", Type: domain.FieldTypeText, Label: label, Required: true}
}

func email() domain.FormField {
	return domain.FormField{
		ID: "email", Type: domain.FieldTypeEmail, Label: "Email Address", Required: true,
		Validation: &domain.Validation{Required: true, Pattern: EmailPattern},
	}
}

func phone() domain.FormField {
	return domain.FormField{
		ID: "phone", Type: domain.FieldTypeTel, Label: "Phone Number", Required: true,
		Validation: &domain.Validation{Required: true, Pattern: PhonePattern},
	}
}

func address(label string) domain.FormField {
	return domain.FormField{ID: "address", Type: domain.FieldTypeText, Label: label, Required: true}
}

func dateOfBirth(today time.Time) domain.FormField {
	lower := domain.String("1900-01-01")
	upper := domain.String(today.UTC().Format(dateLayout))
	return domain.FormField{
		ID: "dateOfBirth", Type: domain.FieldTypeDate, Label: "Date of Birth", Required: true,
		Validation: &domain.Validation{Required: true, Min: &lower, Max: &upper},
	}
}

func yesNo(id, label string) domain.FormField {
	return domain.FormField{
		ID: id, Type: domain.FieldTypeRadio, Label: label, Required: true,
		Options: []domain.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}},
	}
}

func equals(field string, value domain.Value) []domain.Condition {
	return []domain.Condition{{Field: field, Operator: domain.OperatorEquals, Value: value}}
}

func number(v float64) *domain.Value {
	n := domain.Number(v)
	return &n
}
