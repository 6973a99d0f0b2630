package entity

type Prompt struct {
	ID   string
	Text string
}

// Build appends the source text to the instruction, separated by a blank line.
func (p Prompt) Build(code string) string {
	return p.Text + "\n\n" + code
}

var DocumentationPrompt = Prompt{
	ID:   "documentation",
	Text: "Generate clean and understandable developer documentation for this code:",
}
