package domain

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
	FieldTypePassword FieldType = "password"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeGroup    FieldType = "group"
)

type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "notEquals"
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = "greaterThan"
	OperatorLessThan    Operator = "lessThan"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Validation bounds. Min and Max are Values because stored templates use
// ISO dates as bounds for date fields; numeric checks ignore those.
type Validation struct {
	Required  bool   `json:"required,omitempty"`
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Min       *Value `json:"min,omitempty"`
	Max       *Value `json:"max,omitempty"`
}

type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

type FormField struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type"`
	Label       string      `json:"label"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty"`
	Fields      []FormField `json:"fields,omitempty"`
	APIEndpoint string      `json:"apiEndpoint,omitempty"`
}

// Rules merges the field-level required flag into its validation block.
func (f FormField) Rules() *Validation {
	if !f.Required {
		return f.Validation
	}
	if f.Validation == nil {
		return &Validation{Required: true}
	}
	rules := *f.Validation
	rules.Required = true
	return &rules
}

type FormSection struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

type FormStructure struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Type     string        `json:"type"`
	Sections []FormSection `json:"sections,omitempty"`
	Fields   []FormField   `json:"fields,omitempty"`
}

// Walk visits every field depth first, sections before root fields.
// Returning false from fn stops the walk.
func (s FormStructure) Walk(fn func(field FormField, depth int) bool) {
	var visit func(fields []FormField, depth int) bool
	visit = func(fields []FormField, depth int) bool {
		for _, f := range fields {
			if !fn(f, depth) {
				return false
			}
			if !visit(f.Fields, depth+1) {
				return false
			}
		}
		return true
	}

	for _, section := range s.Sections {
		if !visit(section.Fields, 0) {
			return
		}
	}
	visit(s.Fields, 0)
}

// FieldIndex returns every field keyed by id. The first occurrence wins.
func (s FormStructure) FieldIndex() map[string]FormField {
	index := make(map[string]FormField)
	s.Walk(func(f FormField, _ int) bool {
		if _, ok := index[f.ID]; !ok {
			index[f.ID] = f
		}
		return true
	})
	return index
}

// TemplateRecord is the relational shape of a form template: flat sections
// and fields linked by ids, with facets kept as serialized JSON text.
type TemplateRecord struct {
	ID          int64
	Name        string
	Type        string
	Description string
	Sections    []SectionRecord
	Fields      []FieldRecord
}

type SectionRecord struct {
	ID    int64
	Name  string
	Order int
}

type FieldRecord struct {
	ID          int64
	SectionID   *int64
	ParentID    *int64
	Name        string
	Type        string
	Label       string
	Required    bool
	Placeholder string
	Options     string
	Validation  string
	Conditions  string
	APIEndpoint string
	Order       int
}
