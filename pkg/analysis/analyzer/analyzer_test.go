package analyzer

import (
	"context"
	"encoding/json"
	"testing"

	"mindcare-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// script builds a command whose positional arguments are the analyzer flags:
// $1=--entries $2=<json> $3=--mode $4=<mode> $5=--provider $6=<provider>
func script(body string) []string {
	return []string{"sh", "-c", body, "analyzer"}
}

var sampleRequest = Request{
	Entries: []Entry{
		{EntryID: "e1", Content: "slept badly", Mood: "sad", EntryDate: "2024-05-01"},
		{EntryID: "e2", Content: "better today", Mood: "happy", EntryDate: "2024-05-02"},
	},
	Mode:     "cbt",
	Provider: "anthropic",
}

func TestNewProcessAnalyzer_RequiresCommand(t *testing.T) {
	_, err := NewProcessAnalyzer(nil, "", logger.NewNop())
	assert.Error(t, err)
}

func TestProcessAnalyzer_PassesFlags(t *testing.T) {
	a, err := NewProcessAnalyzer(script(
		`printf '{"risk_level":"low","mode":"%s","provider":"%s","entries":%s,"unbuffered":"%s"}' "$4" "$6" "$2" "$PYTHONUNBUFFERED"`,
	), "", logger.NewNop())
	require.NoError(t, err)

	out, err := a.Analyze(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "low", out.RiskLevel)

	var payload struct {
		Mode       string  `json:"mode"`
		Provider   string  `json:"provider"`
		Entries    []Entry `json:"entries"`
		Unbuffered string  `json:"unbuffered"`
	}
	require.NoError(t, json.Unmarshal(out.Payload, &payload))
	assert.Equal(t, "cbt", payload.Mode)
	assert.Equal(t, "anthropic", payload.Provider)
	assert.Equal(t, "1", payload.Unbuffered)
	assert.Equal(t, sampleRequest.Entries, payload.Entries)
}

func TestProcessAnalyzer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		command []string
	}{
		{name: "non-zero exit", command: script(`echo boom >&2; exit 3`)},
		{name: "missing binary", command: []string{"/nonexistent/analyzer-binary"}},
		{name: "not json", command: script(`echo "hello"`)},
		{name: "no risk level", command: script(`echo '{"summary":"ok"}'`)},
		{name: "risk level not a string", command: script(`echo '{"risk_level":3}'`)},
		{name: "analyzer reported error", command: script(`echo '{"error":"llm down","risk_level":"unknown"}'`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewProcessAnalyzer(tt.command, "", logger.NewNop())
			require.NoError(t, err)

			out, err := a.Analyze(context.Background(), sampleRequest)
			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestProcessAnalyzer_ContextCancelled(t *testing.T) {
	a, err := NewProcessAnalyzer(script(`sleep 5; echo '{"risk_level":"low"}'`), "", logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Analyze(ctx, sampleRequest)
	assert.Error(t, err)
}
