// Package flow implements the onboarding conversation state machine and the
// in-memory session registry behind it.
package flow

// Step identifies a stage of the onboarding conversation.
type Step string

const (
	StepProduct         Step = "product"
	StepMarket          Step = "market"
	StepDifferentiation Step = "differentiation"
	StepCompanySize     Step = "company_size"
	StepLinkedIn        Step = "linkedin"
	StepLocation        Step = "location"
	StepComplete        Step = "complete"
)

// Sequence is the fixed order of onboarding steps.
var Sequence = []Step{
	StepProduct,
	StepMarket,
	StepDifferentiation,
	StepCompanySize,
	StepLinkedIn,
	StepLocation,
	StepComplete,
}

// stepLabels are the human-readable names used when building LLM context from
// collected answers.
var stepLabels = map[Step]string{
	StepProduct:         "Product",
	StepMarket:          "Target market",
	StepDifferentiation: "Differentiation",
	StepCompanySize:     "Typical customer size",
	StepLinkedIn:        "LinkedIn consent",
	StepLocation:        "Location",
}

// NextStep returns the step after current. StepComplete is terminal and any
// unrecognized step restarts the flow at StepProduct.
func NextStep(current Step) Step {
	if current == StepComplete {
		return StepComplete
	}
	for i, step := range Sequence {
		if step == current && i+1 < len(Sequence) {
			return Sequence[i+1]
		}
	}
	return StepProduct
}

// regeneratesKeywords reports whether an answer at this step should refresh
// the session's keyword set. Consent and location answers carry no business
// context, so they are skipped.
func regeneratesKeywords(step Step) bool {
	return step != StepLinkedIn && step != StepLocation && step != StepComplete
}
