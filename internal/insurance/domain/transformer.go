package domain

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
)

// MaxFieldDepth bounds nesting of child fields. Deeper children are dropped.
const MaxFieldDepth = 16

// Transform builds the nested form tree from its relational rows. Sections
// and fields are ordered by their stored order; facets that fail to decode
// are dropped and logged, leaving the field usable.
func Transform(record TemplateRecord) FormStructure {
	structure := FormStructure{
		ID:    strconv.FormatInt(record.ID, 10),
		Title: record.Name,
		Type:  record.Type,
	}

	children := make(map[int64][]FieldRecord)
	bySection := make(map[int64][]FieldRecord)
	var roots []FieldRecord
	for _, f := range record.Fields {
		switch {
		case f.ParentID != nil:
			children[*f.ParentID] = append(children[*f.ParentID], f)
		case f.SectionID != nil:
			bySection[*f.SectionID] = append(bySection[*f.SectionID], f)
		default:
			roots = append(roots, f)
		}
	}

	t := transformer{record: record, children: children}

	sections := append([]SectionRecord(nil), record.Sections...)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	for _, s := range sections {
		structure.Sections = append(structure.Sections, FormSection{
			ID:     strconv.FormatInt(s.ID, 10),
			Title:  s.Name,
			Fields: t.fields(bySection[s.ID], 0),
		})
	}

	if len(roots) > 0 {
		structure.Fields = t.fields(roots, 0)
	}

	reportDuplicateIDs(structure)
	return structure
}

type transformer struct {
	record   TemplateRecord
	children map[int64][]FieldRecord
}

func (t transformer) fields(rows []FieldRecord, depth int) []FormField {
	sorted := append([]FieldRecord(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	fields := make([]FormField, 0, len(sorted))
	for _, row := range sorted {
		fields = append(fields, t.field(row, depth))
	}
	return fields
}

func (t transformer) field(row FieldRecord, depth int) FormField {
	field := FormField{
		ID:          row.Name,
		Type:        FieldType(row.Type),
		Label:       row.Label,
		Required:    row.Required,
		Placeholder: row.Placeholder,
		APIEndpoint: row.APIEndpoint,
	}

	if row.Options != "" {
		var options []Option
		if err := json.Unmarshal([]byte(row.Options), &options); err != nil {
			t.warnFacet(row, "options", err)
		} else {
			field.Options = options
		}
	}

	if row.Validation != "" {
		var validation Validation
		if err := json.Unmarshal([]byte(row.Validation), &validation); err != nil {
			t.warnFacet(row, "validation", err)
		} else {
			field.Validation = &validation
		}
	}

	if row.Conditions != "" {
		var conditions []Condition
		if err := json.Unmarshal([]byte(row.Conditions), &conditions); err != nil {
			t.warnFacet(row, "conditions", err)
		} else {
			field.Conditions = conditions
		}
	}

	nested := t.children[row.ID]
	if len(nested) > 0 {
		if depth+1 >= MaxFieldDepth {
			slog.Warn("dropping nested fields beyond depth limit",
				slog.String("template", t.record.Type),
				slog.String("field", row.Name),
				slog.Int("dropped", len(nested)))
		} else {
			field.Fields = t.fields(nested, depth+1)
		}
	}

	return field
}

func (t transformer) warnFacet(row FieldRecord, facet string, err error) {
	slog.Warn("dropping malformed field facet",
		slog.String("template", t.record.Type),
		slog.String("field", row.Name),
		slog.String("facet", facet),
		slog.String("error", err.Error()))
}

func reportDuplicateIDs(structure FormStructure) {
	seen := make(map[string]struct{})
	structure.Walk(func(f FormField, _ int) bool {
		if _, ok := seen[f.ID]; ok {
			slog.Warn("duplicate field id in form",
				slog.String("form", structure.Type),
				slog.String("field", f.ID))
		}
		seen[f.ID] = struct{}{}
		return true
	})
}

// Flatten is the inverse of Transform. Field ids are synthesized in walk
// order, sections keep numeric ids and get unused ones otherwise. Sections
// and fields get their position as order.
func Flatten(structure FormStructure) TemplateRecord {
	id, _ := strconv.ParseInt(structure.ID, 10, 64)
	record := TemplateRecord{
		ID:   id,
		Name: structure.Title,
		Type: structure.Type,
	}

	var nextField int64
	var flatten func(fields []FormField, sectionID, parentID *int64)
	flatten = func(fields []FormField, sectionID, parentID *int64) {
		for i, f := range fields {
			nextField++
			row := FieldRecord{
				ID:          nextField,
				SectionID:   sectionID,
				ParentID:    parentID,
				Name:        f.ID,
				Type:        string(f.Type),
				Label:       f.Label,
				Required:    f.Required,
				Placeholder: f.Placeholder,
				APIEndpoint: f.APIEndpoint,
				Order:       i,
			}
			if f.Options != nil {
				row.Options = mustJSON(f.Options)
			}
			if f.Validation != nil {
				row.Validation = mustJSON(f.Validation)
			}
			if f.Conditions != nil {
				row.Conditions = mustJSON(f.Conditions)
			}
			record.Fields = append(record.Fields, row)

			if len(f.Fields) > 0 {
				rowID := row.ID
				flatten(f.Fields, sectionID, &rowID)
			}
		}
	}

	taken := make(map[int64]bool, len(structure.Sections))
	for _, s := range structure.Sections {
		if id, err := strconv.ParseInt(s.ID, 10, 64); err == nil {
			taken[id] = true
		}
	}

	var nextSection int64
	for i, s := range structure.Sections {
		sectionID, err := strconv.ParseInt(s.ID, 10, 64)
		if err != nil {
			nextSection++
			for taken[nextSection] {
				nextSection++
			}
			sectionID = nextSection
			taken[sectionID] = true
		}
		record.Sections = append(record.Sections, SectionRecord{
			ID:    sectionID,
			Name:  s.Title,
			Order: i,
		})
		flatten(s.Fields, &sectionID, nil)
	}
	flatten(structure.Fields, nil, nil)

	return record
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to serialize field facet", slog.String("error", err.Error()))
		return ""
	}
	return string(data)
}
