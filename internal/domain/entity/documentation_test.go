package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentation_Display(t *testing.T) {
	reason := errors.New("x")

	tests := []struct {
		name     string
		doc      Documentation
		want     string
		degraded bool
	}{
		{name: "generated", doc: GeneratedDocumentation("# Docs"), want: "# Docs"},
		{name: "generated blank", doc: GeneratedDocumentation(""), want: NoDocumentationText},
		{name: "empty", doc: EmptyDocumentation(reason), want: "No documentation generated.", degraded: true},
		{name: "failed", doc: FailedDocumentation(reason), want: "Error generating documentation.", degraded: true},
		{name: "zero value", doc: Documentation{}, want: GenerationFailureText, degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.Display())
			assert.Equal(t, tt.degraded, tt.doc.Degraded())
		})
	}
}

func TestError_KindAndMessage(t *testing.T) {
	cause := errors.New("unexpected status 404")
	err := fmt.Errorf("handler: %w", NewUpstreamFailure("Failed to process the repository URL.", cause))

	assert.Equal(t, KindUpstreamFailure, KindOf(err))
	assert.Equal(t, "Failed to process the repository URL.", PublicMessage(err, "fallback"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unexpected status 404")

	invalid := NewInvalidInput("repoUrl is required and must be a string", nil)
	assert.Equal(t, KindInvalidInput, KindOf(invalid))
	assert.Equal(t, "repoUrl is required and must be a string", invalid.Error())

	plain := errors.New("plain")
	assert.Equal(t, KindUnknown, KindOf(plain))
	assert.Equal(t, "fallback", PublicMessage(plain, "fallback"))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "InvalidInput", KindInvalidInput.String())
	assert.Equal(t, "UpstreamFailure", KindUpstreamFailure.String())
	assert.Equal(t, "Unknown", ErrorKind(42).String())
}

func TestPrompt_Build(t *testing.T) {
	assert.Equal(t,
		"Generate clean and understandable developer documentation for this code:\n\nx := 1",
		DocumentationPrompt.Build("x := 1"))
	assert.Equal(t,
		"Generate clean and understandable developer documentation for this code:\n\n",
		DocumentationPrompt.Build(""))
}
