package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/alexanderramin/spirulina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnswerer records the last call and returns a canned reply.
type stubAnswerer struct {
	reply        string
	err          error
	delay        time.Duration
	panics       bool
	lastQuestion string
	lastContext  string
}

func (s *stubAnswerer) Answer(ctx context.Context, question, contextSummary string) (string, error) {
	s.lastQuestion, s.lastContext = question, contextSummary
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func TestBuildContext_NoPonds(t *testing.T) {
	assert.Equal(t, "The user has no ponds registered yet.", BuildContext(nil, nil))
}

func TestBuildContext_PondsAndReadings(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	north := testutil.NewTestPond("North", testutil.WithVolume(1000))
	empty := testutil.NewTestPond("Nursery", testutil.WithVolume(20), testutil.WithStatus(domain.PondMaintenance))

	var logs []domain.ParameterLog
	for i := 0; i < 4; i++ {
		logs = append(logs, testutil.NewTestLog(north.ID,
			testutil.WithLogTime(base.AddDate(0, 0, i)),
			testutil.WithPH(9.5+float64(i)/10),
			testutil.WithTemperature(30),
			testutil.WithOpticalDensity(0.4),
		))
	}
	logs[3].AddedMedium = 15

	got := BuildContext([]domain.Pond{north, empty}, logs)

	assert.True(t, strings.HasPrefix(got, "Current culture information:\n"))
	assert.Contains(t, got, "- Pond: North (1000L, Status: Active).")
	assert.Contains(t, got, "- Pond: Nursery (20L, Status: Maintenance).\n  No recent readings.")
	assert.Contains(t, got, "[2024-06-04]: pH 9.8, Temp 30°C, OD 0.4, added 15L of medium")
	assert.NotContains(t, got, "2024-06-01", "only the three most recent readings")

	newest := strings.Index(got, "2024-06-04")
	oldest := strings.Index(got, "2024-06-02")
	assert.Less(t, newest, oldest, "most recent first")
}

func TestAdvisor_Ask_ReturnsReplyUnmodified(t *testing.T) {
	stub := &stubAnswerer{reply: "  Raise the pH **slowly**.\n"}
	a := New(stub)

	pond := testutil.NewTestPond("North")
	reply := a.Ask(context.Background(), "What now?", []domain.Pond{pond}, nil)

	assert.Equal(t, "  Raise the pH **slowly**.\n", reply)
	assert.Equal(t, "What now?", stub.lastQuestion)
	assert.Contains(t, stub.lastContext, "North")
}

func TestAdvisor_Ask_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		stub *stubAnswerer
		want string
	}{
		{"missing key", &stubAnswerer{err: llm.ErrMissingAPIKey}, FallbackMissingKey},
		{"wrapped missing key", &stubAnswerer{err: fmt.Errorf("gemini: %w", llm.ErrMissingAPIKey)}, FallbackMissingKey},
		{"empty response error", &stubAnswerer{err: llm.ErrEmptyResponse}, FallbackEmpty},
		{"blank reply", &stubAnswerer{reply: " \n "}, FallbackEmpty},
		{"unavailable", &stubAnswerer{err: llm.ErrUnavailable}, FallbackFailure},
		{"other error", &stubAnswerer{err: errors.New("quota")}, FallbackFailure},
		{"panic", &stubAnswerer{panics: true}, FallbackFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := New(tt.stub).Ask(context.Background(), "q", nil, nil)
			assert.Equal(t, tt.want, reply)
			assert.True(t, IsFallback(reply))
		})
	}
}

func TestAdvisor_Ask_TimeoutBecomesFailure(t *testing.T) {
	stub := &stubAnswerer{reply: "late", delay: time.Second}
	a := New(stub, WithTimeout(20*time.Millisecond))

	start := time.Now()
	reply := a.Ask(context.Background(), "q", nil, nil)

	assert.Equal(t, FallbackFailure, reply)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestLLMAnswerer_SendsSystemInstruction(t *testing.T) {
	client := &testutil.MockLLMClient{Response: "Use shade cloth."}
	a := New(NewLLMAnswerer(client))

	reply := a.Ask(context.Background(), "It is too hot", nil, nil)
	assert.Equal(t, "Use shade cloth.", reply)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, llm.TaskAdvise, reqs[0].Task)
	assert.Equal(t, "It is too hot", reqs[0].UserPrompt)
	assert.True(t, strings.HasSuffix(reqs[0].SystemPrompt, "The user has no ponds registered yet."))
	assert.Contains(t, reqs[0].SystemPrompt, "Spirulina")
}

func TestLLMAnswerer_MapsClientErrors(t *testing.T) {
	a := New(NewLLMAnswerer(&testutil.MockLLMClient{Err: llm.ErrMissingAPIKey}))
	assert.Equal(t, FallbackMissingKey, a.Ask(context.Background(), "q", nil, nil))

	a = New(NewLLMAnswerer(&testutil.MockLLMClient{Err: llm.ErrTimeout}))
	assert.Equal(t, FallbackFailure, a.Ask(context.Background(), "q", nil, nil))
}
