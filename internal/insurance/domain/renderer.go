package domain

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

type Surface string

const (
	SurfaceText      Surface = "text"
	SurfaceChoice    Surface = "choice"
	SurfaceToggle    Surface = "toggle"
	SurfaceContainer Surface = "container"
)

// SurfaceFor maps a field type to the input it is rendered with. Unknown
// types fall back to free text.
func SurfaceFor(t FieldType) Surface {
	switch t {
	case FieldTypeSelect, FieldTypeRadio:
		return SurfaceChoice
	case FieldTypeCheckbox:
		return SurfaceToggle
	case FieldTypeGroup:
		return SurfaceContainer
	default:
		return SurfaceText
	}
}

type FormView struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Type     string        `json:"type"`
	Sections []SectionView `json:"sections"`
	Fields   []FieldView   `json:"fields"`
}

type SectionView struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FieldView `json:"fields"`
}

type FieldView struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type"`
	Surface     Surface     `json:"surface"`
	Label       string      `json:"label"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	Value       Value       `json:"value"`
	Error       string      `json:"error,omitempty"`
	Fields      []FieldView `json:"fields,omitempty"`
}

//go:generate mockgen -source=renderer.go -destination=../../../test/unit/doubles/insurance/domain/option_loader_mock.go -package=domain

// OptionLoader fetches the options published at a field's apiEndpoint.
type OptionLoader interface {
	LoadOptions(ctx context.Context, endpoint string) ([]Option, error)
}

// Session holds the answers of one form being filled. It is owned by a
// single caller and is not safe for concurrent use.
type Session struct {
	form    FormStructure
	index   map[string]FormField
	initial Values
	values  Values
	touched map[string]struct{}
	options map[string][]Option
	mounted map[string]struct{}
}

func NewSession(form FormStructure, initial Values) *Session {
	s := &Session{
		form:    form,
		index:   form.FieldIndex(),
		initial: initial.Clone(),
		options: make(map[string][]Option),
		mounted: make(map[string]struct{}),
	}
	s.Reset()
	return s
}

func (s *Session) Form() FormStructure { return s.form }

func (s *Session) Values() Values { return s.values.Clone() }

// Reset drops every answer given since the session started.
func (s *Session) Reset() {
	s.values = s.initial.Clone()
	s.touched = make(map[string]struct{})
}

// OnChange records an answer by field id. Numeric text typed into number
// fields is stored as a number. Visibility of every field is recomputed on
// the next Render.
func (s *Session) OnChange(fieldID string, value Value) (Values, error) {
	field, ok := s.index[fieldID]
	if !ok {
		return s.Values(), ErrUnknownField
	}

	if field.Type == FieldTypeNumber {
		if str, isString := value.Str(); isString && strings.TrimSpace(str) != "" {
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				value = Number(f)
			}
		}
	}

	s.values[fieldID] = value
	s.touched[fieldID] = struct{}{}
	return s.Values(), nil
}

// Render walks the form against a snapshot of the answers. Hidden fields
// and their children are left out, but their answers are kept.
func (s *Session) Render() FormView {
	snapshot := s.values.Clone()

	view := FormView{
		ID:       s.form.ID,
		Title:    s.form.Title,
		Type:     s.form.Type,
		Sections: make([]SectionView, 0, len(s.form.Sections)),
		Fields:   s.renderFields(s.form.Fields, snapshot),
	}
	for _, section := range s.form.Sections {
		view.Sections = append(view.Sections, SectionView{
			ID:     section.ID,
			Title:  section.Title,
			Fields: s.renderFields(section.Fields, snapshot),
		})
	}
	return view
}

func (s *Session) renderFields(fields []FormField, snapshot Values) []FieldView {
	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		if !IsVisible(f, snapshot) {
			continue
		}

		view := FieldView{
			ID:          f.ID,
			Type:        f.Type,
			Surface:     SurfaceFor(f.Type),
			Label:       f.Label,
			Required:    f.Required,
			Placeholder: f.Placeholder,
			Options:     f.Options,
		}
		if mounted, ok := s.options[f.ID]; ok {
			view.Options = mounted
		}
		if view.Surface != SurfaceContainer {
			view.Value = snapshot[f.ID]
			if _, ok := s.touched[f.ID]; ok {
				view.Error = validate(f.Rules(), view.Value).Message
			}
		}
		if len(f.Fields) > 0 {
			view.Fields = s.renderFields(f.Fields, snapshot)
		}
		views = append(views, view)
	}
	return views
}

// MountOptions loads dynamic options once per field with an apiEndpoint,
// one request at a time in walk order. A failed load keeps the static
// options and is only logged.
func (s *Session) MountOptions(ctx context.Context, loader OptionLoader) {
	s.form.Walk(func(f FormField, _ int) bool {
		if f.APIEndpoint == "" {
			return true
		}
		if _, done := s.mounted[f.ID]; done {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		s.mounted[f.ID] = struct{}{}

		options, err := loader.LoadOptions(ctx, f.APIEndpoint)
		if err != nil {
			slog.Warn("failed to load field options",
				slog.String("field", f.ID),
				slog.String("endpoint", f.APIEndpoint),
				slog.String("error", err.Error()))
			return true
		}
		s.options[f.ID] = options
		return true
	})
}

// Validate returns the violation of every visible field, keyed by id.
func (s *Session) Validate() map[string]string {
	snapshot := s.values.Clone()
	violations := make(map[string]string)

	var check func(fields []FormField)
	check = func(fields []FormField) {
		for _, f := range fields {
			if !IsVisible(f, snapshot) {
				continue
			}
			if SurfaceFor(f.Type) != SurfaceContainer {
				if result := validate(f.Rules(), snapshot[f.ID]); !result.Valid() {
					violations[f.ID] = result.Message
				}
			}
			check(f.Fields)
		}
	}
	for _, section := range s.form.Sections {
		check(section.Fields)
	}
	check(s.form.Fields)

	return violations
}

// Submit packages every answer, hidden ones included, once all visible
// fields pass validation.
func (s *Session) Submit() (SubmissionRequest, error) {
	if violations := s.Validate(); len(violations) > 0 {
		for id := range violations {
			s.touched[id] = struct{}{}
		}
		return SubmissionRequest{}, &SubmitValidationError{Violations: violations}
	}

	templateID, err := strconv.ParseInt(s.form.ID, 10, 64)
	if err != nil {
		return SubmissionRequest{}, ErrInvalidTemplateID
	}

	return BuildSubmission(s.values, s.form.Type, templateID), nil
}
