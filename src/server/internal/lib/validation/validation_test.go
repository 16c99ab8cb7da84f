package validation_test

import (
	"github.com/accountkeeper/accounts-be/src/server/internal/lib/validation"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type payload struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=starter pro business"`
}

var _ = Describe("Validator", func() {
	var checker validation.Validator

	BeforeEach(func() {
		checker = validation.NewValidator()
	})

	It("passes a well formed payload", func() {
		violations := checker.Check(payload{
			Email:    "someone@accountkeeper.app",
			Password: "landline-7",
		})

		Expect(violations).To(BeEmpty())
	})

	It("reports missing required fields by their JSON names", func() {
		violations := checker.Check(payload{})

		Expect(violations).To(ConsistOf(
			validation.Violation{Field: "email", Rule: "required"},
			validation.Violation{Field: "password", Rule: "required"},
		))
	})

	It("reports rule parameters", func() {
		violations := checker.Check(payload{
			Email:    "someone@accountkeeper.app",
			Password: "nope",
		})

		Expect(violations).To(ConsistOf(
			validation.Violation{Field: "password", Rule: "min=6"},
		))
	})

	It("reports values outside the allowed set", func() {
		violations := checker.Check(payload{
			Email:        "someone@accountkeeper.app",
			Password:     "landline-7",
			Subscription: "platinum",
		})

		Expect(violations).To(ConsistOf(
			validation.Violation{Field: "subscription", Rule: "oneof=starter pro business"},
		))
	})

	It("describes violations readably", func() {
		described := validation.Describe([]validation.Violation{
			{Field: "email", Rule: "required"},
			{Field: "password", Rule: "min=6"},
		})

		Expect(described).To(Equal("email fails the required rule, password fails the min=6 rule"))
	})
})
