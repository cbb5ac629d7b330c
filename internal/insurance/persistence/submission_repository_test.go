package persistence_test

import (
	"context"
	"encoding/json"
	"time"

	"insurance-server/internal/infra/sql"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/persistence"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SubmissionRepository", func() {
	var (
		ctx  context.Context
		repo *persistence.SimpleSubmissionRepository
	)

	newSubmission := func(formType, payload string, createdAt time.Time) domain.Submission {
		data, err := domain.DecodeValues([]byte(payload))
		Expect(err).NotTo(HaveOccurred())

		submission, err := domain.NewSubmissionBuilder().
			WithTemplateID(1).
			WithType(formType).
			WithData(data).
			WithCreatedAt(createdAt).
			Build()
		Expect(err).NotTo(HaveOccurred())
		return submission
	}

	BeforeEach(func() {
		ctx = context.Background()
		orm, err := sql.NewMemoryORM()
		Expect(err).NotTo(HaveOccurred())

		repo, err = persistence.NewSubmissionRepository(orm)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should assign an id and keep the payload intact", func() {
		payload := `{"age":30.50,"fullName":"Ana","tags":["a","b"],"type":"health"}`
		created, err := repo.Create(ctx, newSubmission("health", payload, time.Now()))
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).To(BeNumerically(">", 0))

		all, err := repo.FindAll(ctx, "health")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(1))
		Expect(all[0].PublicID).To(Equal(created.PublicID))
		Expect(all[0].Status).To(Equal(domain.StatusPending))

		data, err := json.Marshal(all[0].Data)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(payload))
	})

	It("should list newest first and filter by type", func() {
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, newSubmission("car", `{"make":"old"}`, base))
		Expect(err).NotTo(HaveOccurred())
		_, err = repo.Create(ctx, newSubmission("car", `{"make":"new"}`, base.Add(time.Hour)))
		Expect(err).NotTo(HaveOccurred())
		_, err = repo.Create(ctx, newSubmission("home", `{"rooms":3}`, base.Add(2*time.Hour)))
		Expect(err).NotTo(HaveOccurred())

		cars, err := repo.FindAll(ctx, "car")
		Expect(err).NotTo(HaveOccurred())
		Expect(cars).To(HaveLen(2))
		make0, _ := cars[0].Data.Get("make")
		Expect(make0.String()).To(Equal("new"))

		all, err := repo.FindAll(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))
		Expect(all[0].Type).To(Equal("home"))
	})
})
