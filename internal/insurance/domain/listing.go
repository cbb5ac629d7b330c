package domain

import (
	"sort"
	"strings"

	"insurance-server/internal/infra/utils"

	"github.com/thoas/go-funk"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	TypeColumn      = "type"
	typeColumnLabel = "Insurance Type"
)

// Row is one flattened submission as shown in a listing.
type Row map[string]Value

func (r Row) ID() string {
	return r["id"].String()
}

type ColumnConfig struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Visible    bool   `json:"visible"`
	Sortable   bool   `json:"sortable"`
	Filterable bool   `json:"filterable"`
}

// DeriveColumns builds one column per distinct id, every flag on. A type
// column is put first when none of the ids is "type".
func DeriveColumns(ids []string) []ColumnConfig {
	unique := funk.UniqString(ids)

	columns := make([]ColumnConfig, 0, len(unique)+1)
	if !funk.ContainsString(unique, TypeColumn) {
		columns = append(columns, newColumn(TypeColumn, typeColumnLabel))
	}
	for _, id := range unique {
		if id == "" {
			continue
		}
		label := utils.ToTitleWords(id)
		if id == TypeColumn {
			label = typeColumnLabel
		}
		columns = append(columns, newColumn(id, label))
	}
	return columns
}

func newColumn(id, label string) ColumnConfig {
	return ColumnConfig{ID: id, Label: label, Visible: true, Sortable: true, Filterable: true}
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

type Sort struct {
	Column    string
	Direction Direction
}

// Project filters, sorts and trims rows to the visible columns. The filter
// is a case-insensitive substring match over filterable columns; sorting is
// stable, numeric when both sides are numeric and collated otherwise.
func Project(rows []Row, columns []ColumnConfig, filter string, order Sort) []Row {
	filtered := Filter(rows, columns, filter)
	SortRows(filtered, columns, order)

	visible := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.Visible {
			visible = append(visible, c.ID)
		}
	}

	projected := make([]Row, len(filtered))
	for i, row := range filtered {
		out := make(Row, len(visible)+1)
		for _, id := range visible {
			if v, ok := row[id]; ok {
				out[id] = v
			}
		}
		// selection needs the id even when its column is hidden
		if id, ok := row["id"]; ok {
			out["id"] = id
		}
		projected[i] = out
	}
	return projected
}

func Filter(rows []Row, columns []ColumnConfig, text string) []Row {
	if text == "" {
		return append([]Row(nil), rows...)
	}

	fold := cases.Fold()
	needle := fold.String(text)

	var result []Row
	for _, row := range rows {
		for _, c := range columns {
			if !c.Filterable {
				continue
			}
			v, ok := row[c.ID]
			if !ok || v.IsNull() {
				continue
			}
			if strings.Contains(fold.String(v.String()), needle) {
				result = append(result, row)
				break
			}
		}
	}
	return result
}

// SortRows sorts in place. Unknown or unsortable columns leave the order untouched.
func SortRows(rows []Row, columns []ColumnConfig, order Sort) {
	if order.Column == "" {
		return
	}
	sortable := false
	for _, c := range columns {
		if c.ID == order.Column {
			sortable = c.Sortable
			break
		}
	}
	if !sortable {
		return
	}

	collator := collate.New(language.Und)
	sign := 1
	if order.Direction == Descending {
		sign = -1
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return sign*Compare(collator, rows[i][order.Column], rows[j][order.Column]) < 0
	})
}

// Compare orders two cells. Missing values compare equal to anything.
func Compare(collator *collate.Collator, a, b Value) int {
	if a.IsNull() || b.IsNull() {
		return 0
	}

	af, aNumeric := a.Numeric()
	bf, bNumeric := b.Numeric()
	if aNumeric && bNumeric {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return collator.CompareString(a.String(), b.String())
}

// ColumnState tracks which columns the viewer has toggled off.
type ColumnState struct {
	columns []ColumnConfig
}

func NewColumnState(columns []ColumnConfig) *ColumnState {
	return &ColumnState{columns: append([]ColumnConfig(nil), columns...)}
}

func (s *ColumnState) Columns() []ColumnConfig {
	return append([]ColumnConfig(nil), s.columns...)
}

func (s *ColumnState) Toggle(id string) bool {
	for i := range s.columns {
		if s.columns[i].ID == id {
			s.columns[i].Visible = !s.columns[i].Visible
			return true
		}
	}
	return false
}

func (s *ColumnState) Hide(ids ...string) {
	for i := range s.columns {
		if funk.ContainsString(ids, s.columns[i].ID) {
			s.columns[i].Visible = false
		}
	}
}

func (s *ColumnState) Visible() []ColumnConfig {
	var visible []ColumnConfig
	for _, c := range s.columns {
		if c.Visible {
			visible = append(visible, c)
		}
	}
	return visible
}

// Selection is the set of checked row ids.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll checks every row, or clears the selection when all are already checked.
func (s *Selection) SelectAll(rows []Row) {
	if len(rows) > 0 && s.Len() == len(rows) && s.containsAll(rows) {
		s.Clear()
		return
	}
	for _, r := range rows {
		s.ids[r.ID()] = struct{}{}
	}
}

func (s *Selection) containsAll(rows []Row) bool {
	for _, r := range rows {
		if !s.IsSelected(r.ID()) {
			return false
		}
	}
	return true
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
