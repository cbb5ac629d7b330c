package domain_test

import (
	"insurance-server/internal/insurance/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func rowIDs(rows []domain.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID()
	}
	return ids
}

var _ = ginkgo.Describe("Listing", func() {
	ginkgo.Context("DeriveColumns", func() {
		ginkgo.It("should prepend a type column when missing", func() {
			columns := domain.DeriveColumns([]string{"id", "fullName", "createdAt"})

			gomega.Expect(columns).To(gomega.HaveLen(4))
			gomega.Expect(columns[0]).To(gomega.Equal(domain.ColumnConfig{
				ID: "type", Label: "Insurance Type", Visible: true, Sortable: true, Filterable: true,
			}))
			gomega.Expect(columns[2].Label).To(gomega.Equal("Full Name"))
			gomega.Expect(columns[3].Label).To(gomega.Equal("Created At"))
		})

		ginkgo.It("should keep an existing type column in place", func() {
			columns := domain.DeriveColumns([]string{"id", "type", "id"})

			gomega.Expect(columns).To(gomega.HaveLen(2))
			gomega.Expect(columns[1].ID).To(gomega.Equal("type"))
			gomega.Expect(columns[1].Label).To(gomega.Equal("Insurance Type"))
		})
	})

	ginkgo.Context("Project", func() {
		columns := domain.DeriveColumns([]string{"id", "fullName", "age"})

		ginkgo.It("should sort numeric-looking strings numerically", func() {
			rows := []domain.Row{
				{"id": domain.String("a"), "age": domain.String("30")},
				{"id": domain.String("b"), "age": domain.String("5")},
			}

			sorted := domain.Project(rows, columns, "", domain.Sort{Column: "age", Direction: domain.Ascending})

			gomega.Expect(rowIDs(sorted)).To(gomega.Equal([]string{"b", "a"}))
		})

		ginkgo.It("should show the plain string order the numeric coercion avoids", func() {
			collator := collate.New(language.Und)
			gomega.Expect(collator.CompareString("30", "5")).To(gomega.Equal(-1))
		})

		ginkgo.It("should flip the order when descending", func() {
			rows := []domain.Row{
				{"id": domain.String("a"), "age": domain.Number(5)},
				{"id": domain.String("b"), "age": domain.Number(30)},
				{"id": domain.String("c"), "age": domain.Number(12)},
			}

			sorted := domain.Project(rows, columns, "", domain.Sort{Column: "age", Direction: domain.Descending})

			gomega.Expect(rowIDs(sorted)).To(gomega.Equal([]string{"b", "c", "a"}))
		})

		ginkgo.It("should collate text case-insensitively before accents", func() {
			rows := []domain.Row{
				{"id": domain.String("1"), "fullName": domain.String("bob")},
				{"id": domain.String("2"), "fullName": domain.String("Alice")},
				{"id": domain.String("3"), "fullName": domain.String("Émile")},
			}

			sorted := domain.Project(rows, columns, "", domain.Sort{Column: "fullName"})

			gomega.Expect(rowIDs(sorted)).To(gomega.Equal([]string{"2", "1", "3"}))
		})

		ginkgo.It("should keep rows with missing values stable", func() {
			rows := []domain.Row{
				{"id": domain.String("1"), "age": domain.Number(9)},
				{"id": domain.String("2")},
				{"id": domain.String("3"), "age": domain.Number(1)},
			}

			sorted := domain.Project(rows, columns, "", domain.Sort{Column: "age"})

			gomega.Expect(sorted).To(gomega.HaveLen(3))
			gomega.Expect(rowIDs(sorted)).To(gomega.ContainElements("1", "2", "3"))
		})

		ginkgo.It("should filter on filterable columns ignoring case", func() {
			rows := []domain.Row{
				{"id": domain.String("1"), "fullName": domain.String("Jane Doe")},
				{"id": domain.String("2"), "fullName": domain.String("John Smith")},
			}

			filtered := domain.Project(rows, columns, "JANE", domain.Sort{})

			gomega.Expect(rowIDs(filtered)).To(gomega.Equal([]string{"1"}))
		})

		ginkgo.It("should pass everything with an empty filter", func() {
			rows := []domain.Row{{"id": domain.String("1")}, {"id": domain.String("2")}}
			gomega.Expect(domain.Project(rows, columns, "", domain.Sort{})).To(gomega.HaveLen(2))
		})

		ginkgo.It("should ignore columns that are not filterable", func() {
			state := domain.NewColumnState(columns)
			restricted := state.Columns()
			for i := range restricted {
				if restricted[i].ID == "fullName" {
					restricted[i].Filterable = false
				}
			}
			rows := []domain.Row{{"id": domain.String("1"), "fullName": domain.String("Jane Doe")}}

			gomega.Expect(domain.Project(rows, restricted, "jane", domain.Sort{})).To(gomega.BeEmpty())
		})

		ginkgo.It("should skip null cells when filtering", func() {
			rows := []domain.Row{{"id": domain.String("1"), "fullName": domain.Null()}}
			gomega.Expect(domain.Project(rows, columns, "null", domain.Sort{})).To(gomega.BeEmpty())
		})

		ginkgo.It("should drop hidden columns but keep row ids", func() {
			state := domain.NewColumnState(columns)
			state.Hide("age", "id")
			rows := []domain.Row{{"id": domain.String("1"), "fullName": domain.String("Jane"), "age": domain.Number(3)}}

			projected := domain.Project(rows, state.Columns(), "", domain.Sort{})

			gomega.Expect(projected[0]).To(gomega.HaveKey("fullName"))
			gomega.Expect(projected[0]).To(gomega.HaveKey("id"))
			gomega.Expect(projected[0]).NotTo(gomega.HaveKey("age"))
		})
	})

	ginkgo.Context("ColumnState", func() {
		ginkgo.It("should toggle visibility per column", func() {
			state := domain.NewColumnState(domain.DeriveColumns([]string{"id", "email"}))

			gomega.Expect(state.Toggle("email")).To(gomega.BeTrue())
			gomega.Expect(state.Visible()).To(gomega.HaveLen(2))
			gomega.Expect(state.Toggle("email")).To(gomega.BeTrue())
			gomega.Expect(state.Visible()).To(gomega.HaveLen(3))
			gomega.Expect(state.Toggle("missing")).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Selection", func() {
		rows := []domain.Row{{"id": domain.String("1")}, {"id": domain.String("2")}}

		ginkgo.It("should toggle single rows", func() {
			selection := domain.NewSelection()
			selection.Toggle("1")
			gomega.Expect(selection.IsSelected("1")).To(gomega.BeTrue())
			selection.Toggle("1")
			gomega.Expect(selection.Len()).To(gomega.BeZero())
		})

		ginkgo.It("should select all and clear on a second call", func() {
			selection := domain.NewSelection()
			selection.SelectAll(rows)
			gomega.Expect(selection.IDs()).To(gomega.Equal([]string{"1", "2"}))

			selection.SelectAll(rows)
			gomega.Expect(selection.Len()).To(gomega.BeZero())
		})

		ginkgo.It("should clear", func() {
			selection := domain.NewSelection()
			selection.Toggle("2")
			selection.Clear()
			gomega.Expect(selection.IsSelected("2")).To(gomega.BeFalse())
		})
	})
})
