package entity

type DocumentationOutcome string

const (
	OutcomeGenerated DocumentationOutcome = "generated"
	OutcomeEmpty     DocumentationOutcome = "empty"
	OutcomeFailed    DocumentationOutcome = "failed"
)

const (
	NoDocumentationText   = "No documentation generated."
	GenerationFailureText = "Error generating documentation."
)

// Documentation is the result of a generation attempt. Reason is set for
// every outcome other than OutcomeGenerated.
type Documentation struct {
	Text    string
	Outcome DocumentationOutcome
	Reason  error
}

func GeneratedDocumentation(text string) Documentation {
	return Documentation{Text: text, Outcome: OutcomeGenerated}
}

func EmptyDocumentation(reason error) Documentation {
	return Documentation{Outcome: OutcomeEmpty, Reason: reason}
}

func FailedDocumentation(reason error) Documentation {
	return Documentation{Outcome: OutcomeFailed, Reason: reason}
}

func (d Documentation) Degraded() bool {
	return d.Outcome != OutcomeGenerated
}

// Display returns the text shown to callers; degraded outcomes map to fixed placeholders.
func (d Documentation) Display() string {
	switch d.Outcome {
	case OutcomeGenerated:
		if d.Text != "" {
			return d.Text
		}
		return NoDocumentationText
	case OutcomeEmpty:
		return NoDocumentationText
	default:
		return GenerationFailureText
	}
}
