package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: whatever the input and whatever the upstream answers, the generator
// returns a non-empty string and never an empty Display.
func TestGenerateDocumentation_AlwaysReturnsText(t *testing.T) {
	bodies := []struct {
		status int
		body   string
	}{
		{http.StatusOK, `{"generations":[{"text":"ok"}]}`},
		{http.StatusOK, `{"generations":[]}`},
		{http.StatusOK, `{}`},
		{http.StatusOK, `not json`},
		{http.StatusOK, `null`},
		{http.StatusInternalServerError, `{"message":"boom"}`},
		{http.StatusBadGateway, ``},
	}

	var current atomic.Int64
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b := bodies[int(current.Load())%len(bodies)]
		respond(b.status, b.body)(w, r)
	})

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 70
	properties := gopter.NewProperties(parameters)

	properties.Property("display is never empty", prop.ForAll(
		func(code string, variant int) bool {
			current.Store(int64(variant))
			doc := generator.GenerateDocumentation(context.Background(), code)
			return doc.Display() != ""
		},
		gen.AnyString(),
		gen.IntRange(0, len(bodies)-1),
	))

	properties.Property("degraded results carry a reason", prop.ForAll(
		func(code string, variant int) bool {
			current.Store(int64(variant))
			doc := generator.GenerateDocumentation(context.Background(), code)
			return !doc.Degraded() || doc.Reason != nil
		},
		gen.AnyString(),
		gen.IntRange(0, len(bodies)-1),
	))

	properties.TestingRun(t)
}
