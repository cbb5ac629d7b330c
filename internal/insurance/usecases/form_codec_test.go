package usecases

import (
	"encoding/json"

	"insurance-server/internal/insurance/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("cached form encoding", func() {
	ginkgo.It("should keep conditions, bounds and number literals", func() {
		minimum, err := domain.NumberLiteral(json.Number("1.50"))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		form := domain.FormStructure{
			ID:    "2",
			Title: "Car Insurance Form",
			Type:  "car",
			Sections: []domain.FormSection{{
				ID:    "5",
				Title: "Vehicle Information",
				Fields: []domain.FormField{
					{ID: "hasAccidents", Type: domain.FieldTypeRadio, Label: "Accidents?",
						Options: []domain.Option{{Label: "Yes", Value: "yes"}}},
					{ID: "accidentCount", Type: domain.FieldTypeNumber,
						Validation: &domain.Validation{Min: &minimum},
						Conditions: []domain.Condition{{Field: "hasAccidents", Operator: domain.OperatorEquals, Value: domain.String("yes")}}},
				},
			}},
		}

		data, err := encodeCached([]domain.FormStructure{form})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		var decoded []domain.FormStructure
		gomega.Expect(decodeCached(data, &decoded)).To(gomega.Succeed())
		gomega.Expect(decoded).To(gomega.HaveLen(1))

		want, _ := json.Marshal(form)
		got, _ := json.Marshal(decoded[0])
		gomega.Expect(got).To(gomega.MatchJSON(want))

		literal, ok := decoded[0].Sections[0].Fields[1].Validation.Min.Literal()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(literal).To(gomega.Equal(json.Number("1.50")))
	})

	ginkgo.It("should reject bytes that are not msgpack", func() {
		var form domain.FormStructure
		gomega.Expect(decodeCached([]byte{0xc1}, &form)).NotTo(gomega.Succeed())
	})
})
