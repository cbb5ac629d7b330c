package seed_test

import (
	"context"
	"time"

	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/persistence"
	"insurance-server/internal/insurance/seed"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Seed", func() {
	today := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	formOf := func(formType string) domain.FormStructure {
		for _, record := range seed.Templates(today) {
			if record.Type == formType {
				return domain.Transform(record)
			}
		}
		ginkgo.Fail("missing template " + formType)
		return domain.FormStructure{}
	}

	ginkgo.It("should provide the health, car and home templates", func() {
		records := seed.Templates(today)
		gomega.Expect(records).To(gomega.HaveLen(3))
		gomega.Expect(records[0].Type).To(gomega.Equal("health"))
		gomega.Expect(records[1].Type).To(gomega.Equal("car"))
		gomega.Expect(records[2].Type).To(gomega.Equal("home"))
	})

	ginkgo.It("should order the home personal section first", func() {
		form := formOf("home")
		gomega.Expect(form.Sections).To(gomega.HaveLen(2))
		gomega.Expect(form.Sections[0].Title).To(gomega.Equal("Personal Information"))
		gomega.Expect(form.Sections[1].Title).To(gomega.Equal("Property Information"))
	})

	ginkgo.It("should bound the date of birth by today", func() {
		index := formOf("car").FieldIndex()
		dob := index["dateOfBirth"]
		gomega.Expect(dob.Validation).NotTo(gomega.BeNil())
		gomega.Expect(dob.Validation.Min.String()).To(gomega.Equal("1900-01-01"))
		gomega.Expect(dob.Validation.Max.String()).To(gomega.Equal("2025-06-15"))
	})

	ginkgo.It("should show accident count only after an accident", func() {
		index := formOf("car").FieldIndex()
		count := index["accidentCount"]

		gomega.Expect(domain.IsVisible(count, domain.Values{"hasAccidents": domain.String("no")})).To(gomega.BeFalse())
		gomega.Expect(domain.IsVisible(count, domain.Values{"hasAccidents": domain.String("yes")})).To(gomega.BeTrue())
		gomega.Expect(domain.Validate(count, domain.Number(0)).Valid()).To(gomega.BeFalse())
	})

	ginkgo.It("should validate email and phone patterns", func() {
		index := formOf("home").FieldIndex()
		gomega.Expect(domain.Validate(index["email"], domain.String("ana@example.com")).Valid()).To(gomega.BeTrue())
		gomega.Expect(domain.Validate(index["email"], domain.String("ana@")).Valid()).To(gomega.BeFalse())
		gomega.Expect(domain.Validate(index["phone"], domain.String("+5491155550000")).Valid()).To(gomega.BeTrue())
		gomega.Expect(domain.Validate(index["phone"], domain.String("0123")).Valid()).To(gomega.BeFalse())
	})

	ginkgo.Context("Load", func() {
		var repo *persistence.SimpleTemplateRepository

		ginkgo.BeforeEach(func() {
			orm, err := sql.NewMemoryORM()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			repo, err = persistence.NewTemplateRepository(orm)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should be idempotent per template type", func() {
			ctx := context.Background()

			first, err := seed.Load(ctx, repo, today)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(first.Created).To(gomega.ConsistOf("health", "car", "home"))

			second, err := seed.Load(ctx, repo, today)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(second.Created).To(gomega.BeEmpty())
			gomega.Expect(second.Skipped).To(gomega.HaveLen(3))

			count, err := repo.Count(ctx)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.BeEquivalentTo(3))
		})

		ginkgo.It("should keep stored sections in declaration order", func() {
			ctx := context.Background()
			_, err := seed.Load(ctx, repo, today)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			record, err := repo.FindByType(ctx, "home")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(record.Sections[0].Name).To(gomega.Equal("Property Information"))
			gomega.Expect(record.Sections[0].Order).To(gomega.Equal(1))
			gomega.Expect(record.Sections[1].Order).To(gomega.Equal(0))
		})
	})
})
