package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/usecases"
	mockusecases "insurance-server/test/unit/doubles/insurance/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("SubmissionService", func() {
	var (
		ctx         context.Context
		ctrl        *gomock.Controller
		submissions *mockusecases.MockSubmissionRepository
		templates   *mockusecases.MockTemplateRepository
		publisher   *mockusecases.MockSubmissionPublisher
		service     *usecases.SimpleSubmissionService
	)

	healthTemplate := domain.TemplateRecord{ID: 1, Name: "Health Insurance Form", Type: "health"}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		submissions = mockusecases.NewMockSubmissionRepository(ctrl)
		templates = mockusecases.NewMockTemplateRepository(ctrl)
		publisher = mockusecases.NewMockSubmissionPublisher(ctrl)
		service = usecases.NewSubmissionService(submissions, templates, publisher)
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	storeAs := func(id int64) func(context.Context, domain.Submission) (domain.Submission, error) {
		return func(_ context.Context, s domain.Submission) (domain.Submission, error) {
			s.ID = id
			return s, nil
		}
	}

	ginkgo.Context("Submit", func() {
		ginkgo.It("should store a pending submission and publish it", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(9))
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, s domain.Submission) error {
					gomega.Expect(s.ID).To(gomega.Equal(int64(9)))
					return nil
				})

			stored, err := service.Submit(ctx, usecases.SubmitCommand{
				TemplateID: 1,
				Type:       "health",
				Data: domain.Values{
					"fullName": domain.String("Jane Doe"),
					"email":    domain.String("jane@x.com"),
					"age":      domain.Number(30),
				},
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.ID).To(gomega.Equal(int64(9)))
			gomega.Expect(stored.Status).To(gomega.Equal("pending"))
			gomega.Expect(stored.Type).To(gomega.Equal("health"))
			gomega.Expect(stored.TemplateID).To(gomega.Equal(int64(1)))
			gomega.Expect(stored.Data).NotTo(gomega.HaveKey("type"))
			gomega.Expect(stored.Data["age"].String()).To(gomega.Equal("30"))
		})

		ginkgo.DescribeTable("type resolution",
			func(cmdType string, data domain.Values, expected string) {
				templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
				submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(1))
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

				stored, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Type: cmdType, Data: data})

				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(stored.Type).To(gomega.Equal(expected))
				gomega.Expect(stored.Data).To(gomega.Equal(data))
			},
			ginkgo.Entry("command wins", "car", domain.Values{"type": domain.String("home")}, "car"),
			ginkgo.Entry("answers next", "", domain.Values{"type": domain.String("home")}, "home"),
			ginkgo.Entry("template last", "", domain.Values{"fullName": domain.String("x")}, "health"),
			ginkgo.Entry("non text answer ignored", "", domain.Values{"type": domain.Number(3)}, "health"),
		)

		ginkgo.It("should store the answers exactly as given", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(1))
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			payload := []byte(`{"age":30,"email":"jane@x.com","fullName":"Jane Doe","type":"car"}`)
			data, err := domain.DecodeValues(payload)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			stored, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Type: "health", Data: data})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.Type).To(gomega.Equal("health"))

			encoded, err := json.Marshal(stored.Data)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(encoded).To(gomega.MatchJSON(payload))
		})

		ginkgo.It("should not mutate the caller's answers", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(1))
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			data := domain.Values{"fullName": domain.String("x")}
			_, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Data: data})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(data).NotTo(gomega.HaveKey("type"))
		})

		ginkgo.It("should accept answers that fail validation", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(1))
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

			_, err := service.Submit(ctx, usecases.SubmitCommand{
				TemplateID: 1,
				Data:       domain.Values{"age": domain.Number(3), "email": domain.String("nope")},
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should reject empty answers", func() {
			_, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Data: domain.Values{}})
			gomega.Expect(err).To(gomega.MatchError(domain.ErrEmptyData))
		})

		ginkgo.It("should reject unknown templates", func() {
			templates.EXPECT().Get(gomock.Any(), int64(42)).Return(domain.TemplateRecord{}, usecases.ErrTemplateNotFound)

			_, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 42, Data: domain.Values{"a": domain.Bool(true)}})

			gomega.Expect(err).To(gomega.MatchError(usecases.ErrTemplateNotFound))
		})

		ginkgo.It("should keep the submission when publishing fails", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(storeAs(3))
			publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

			stored, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Data: domain.Values{"a": domain.Bool(true)}})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.ID).To(gomega.Equal(int64(3)))
		})

		ginkgo.It("should wrap storage failures", func() {
			templates.EXPECT().Get(gomock.Any(), int64(1)).Return(healthTemplate, nil)
			submissions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Submission{}, errors.New("disk full"))

			_, err := service.Submit(ctx, usecases.SubmitCommand{TemplateID: 1, Data: domain.Values{"a": domain.Bool(true)}})

			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("disk full")))
		})
	})

	ginkgo.Context("List", func() {
		ginkgo.It("should flatten stored submissions into rows", func() {
			createdAt := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
			submissions.EXPECT().FindAll(gomock.Any(), "car").Return([]domain.Submission{
				{ID: 2, Type: "car", Status: "pending", CreatedAt: createdAt, Data: domain.Values{"fullName": domain.String("John")}},
				{ID: 1, Type: "car", Status: "pending", CreatedAt: createdAt.Add(-time.Hour), Data: domain.Values{"fullName": domain.String("Jane")}},
			}, nil)

			rows, err := service.List(ctx, "car")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(2))
			gomega.Expect(rows[0].ID()).To(gomega.Equal("2"))
			gomega.Expect(rows[0]["fullName"].String()).To(gomega.Equal("John"))
			gomega.Expect(rows[0]["createdAt"].String()).To(gomega.Equal("2024-05-01T08:30:00.000Z"))
		})
	})

	ginkgo.It("should expose the fixed column list", func() {
		gomega.Expect(service.Columns()).To(gomega.Equal(
			[]string{"id", "fullName", "email", "age", "type", "status", "createdAt"}))
	})
})
