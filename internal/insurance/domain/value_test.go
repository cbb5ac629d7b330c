package domain_test

import (
	"encoding/json"
	"math"

	"insurance-server/internal/insurance/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Value", func() {
	ginkgo.Context("JSON", func() {
		ginkgo.It("should keep number literals when encoding again", func() {
			payload := []byte(`{"age":30.50,"big":12345678901234567890,"fullName":"Jane Doe","married":false,"pet":null}`)

			values, err := domain.DecodeValues(payload)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			encoded, err := json.Marshal(values)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(string(encoded)).To(gomega.Equal(string(payload)))
		})

		ginkgo.It("should decode nested objects and lists", func() {
			values, err := domain.DecodeValues([]byte(`{"address":{"city":"Lyon"},"tags":["a",1]}`))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			address, ok := values["address"].Fields()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(address["city"].String()).To(gomega.Equal("Lyon"))

			tags, ok := values["tags"].Items()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(tags).To(gomega.HaveLen(2))
			gomega.Expect(values["tags"].String()).To(gomega.Equal("a,1"))
		})

		ginkgo.It("should reject payloads that are not objects", func() {
			_, err := domain.DecodeValues([]byte(`[1,2]`))
			gomega.Expect(err).To(gomega.MatchError(domain.ErrNotAnObject))
		})

		ginkgo.It("should encode null values explicitly", func() {
			encoded, err := json.Marshal(domain.Values{"x": domain.Null()})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(string(encoded)).To(gomega.Equal(`{"x":null}`))
		})
	})

	ginkgo.DescribeTable("String",
		func(v domain.Value, expected string) {
			gomega.Expect(v.String()).To(gomega.Equal(expected))
		},
		ginkgo.Entry("string", domain.String("yes"), "yes"),
		ginkgo.Entry("integer number", domain.Number(30), "30"),
		ginkgo.Entry("fractional number", domain.Number(2.5), "2.5"),
		ginkgo.Entry("true", domain.Bool(true), "true"),
		ginkgo.Entry("false", domain.Bool(false), "false"),
		ginkgo.Entry("null", domain.Null(), "null"),
		ginkgo.Entry("object", domain.Object(map[string]domain.Value{}), "[object Object]"),
	)

	ginkgo.DescribeTable("Float",
		func(v domain.Value, expected float64) {
			gomega.Expect(v.Float()).To(gomega.Equal(expected))
		},
		ginkgo.Entry("number", domain.Number(4), 4.0),
		ginkgo.Entry("numeric string", domain.String(" 12.5 "), 12.5),
		ginkgo.Entry("blank string", domain.String(""), 0.0),
		ginkgo.Entry("true", domain.Bool(true), 1.0),
		ginkgo.Entry("null", domain.Null(), 0.0),
	)

	ginkgo.It("should coerce text to NaN", func() {
		gomega.Expect(math.IsNaN(domain.String("abc").Float())).To(gomega.BeTrue())
	})

	ginkgo.It("should treat only null and the empty string as empty", func() {
		gomega.Expect(domain.Null().IsEmpty()).To(gomega.BeTrue())
		gomega.Expect(domain.String("").IsEmpty()).To(gomega.BeTrue())
		gomega.Expect(domain.Bool(false).IsEmpty()).To(gomega.BeFalse())
		gomega.Expect(domain.Number(0).IsEmpty()).To(gomega.BeFalse())
	})

	ginkgo.It("should report numeric-looking strings as numeric", func() {
		n, ok := domain.String("30").Numeric()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(n).To(gomega.Equal(30.0))

		_, ok = domain.String("").Numeric()
		gomega.Expect(ok).To(gomega.BeFalse())
		_, ok = domain.Bool(true).Numeric()
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should reject invalid number literals", func() {
		_, err := domain.NumberLiteral(json.Number("1x"))
		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should clone values independently", func() {
		original := domain.Values{"a": domain.String("1")}
		clone := original.Clone()
		clone["a"] = domain.String("2")
		gomega.Expect(original["a"].String()).To(gomega.Equal("1"))
	})
})
