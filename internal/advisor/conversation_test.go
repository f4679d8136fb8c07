package advisor

import (
	"context"
	"testing"

	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/alexanderramin/spirulina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_TranscriptAndHistory(t *testing.T) {
	client := &testutil.MockLLMClient{Response: "Keep pH near 10."}
	conv := NewConversation(New(NewLLMAnswerer(client)))

	transcript := conv.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, Greeting, transcript[0].Text)

	conv.Send(context.Background(), "What pH?", nil, nil)
	conv.Send(context.Background(), "And temperature?", nil, nil)

	transcript = conv.Transcript()
	require.Len(t, transcript, 5)
	assert.Equal(t, llm.RoleUser, transcript[1].Role)
	assert.Equal(t, "What pH?", transcript[1].Text)
	assert.Equal(t, llm.RoleModel, transcript[2].Role)

	reqs := client.Requests()
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].History, "greeting is not sent")
	assert.Equal(t, llm.TaskAdvise, reqs[0].Task)
	require.Len(t, reqs[1].History, 2)
	assert.Equal(t, "What pH?", reqs[1].History[0].Text)
	assert.Equal(t, llm.TaskChat, reqs[1].Task)
}

func TestConversation_FallbackKeptButNotSent(t *testing.T) {
	client := &testutil.MockLLMClient{Err: llm.ErrUnavailable}
	conv := NewConversation(New(NewLLMAnswerer(client)))

	reply := conv.Send(context.Background(), "hello?", nil, nil)
	assert.Equal(t, FallbackFailure, reply)

	client.Err = nil
	client.Response = "Back online."
	conv.Send(context.Background(), "retry", nil, nil)

	transcript := conv.Transcript()
	require.Len(t, transcript, 5)
	assert.True(t, transcript[2].Fallback)

	reqs := client.Requests()
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[1].History, "the unanswered question goes with its fallback")
	assert.Equal(t, "retry", reqs[1].UserPrompt)
}

func TestConversation_HistoryAlternatesAfterFallback(t *testing.T) {
	client := &testutil.MockLLMClient{Response: "Keep pH near 10."}
	conv := NewConversation(New(NewLLMAnswerer(client)))

	conv.Send(context.Background(), "What pH?", nil, nil)
	client.Err = llm.ErrTimeout
	conv.Send(context.Background(), "Too hot?", nil, nil)
	client.Err = nil
	client.Response = "Use shade cloth."
	conv.Send(context.Background(), "Still too hot?", nil, nil)
	conv.Send(context.Background(), "Thanks", nil, nil)

	reqs := client.Requests()
	require.Len(t, reqs, 4)

	var texts []string
	for i, m := range reqs[3].History {
		want := llm.RoleUser
		if i%2 == 1 {
			want = llm.RoleModel
		}
		assert.Equal(t, want, m.Role, "turn %d", i)
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"What pH?", "Keep pH near 10.", "Still too hot?", "Use shade cloth."}, texts)
}

func TestAnsweredHistory_SkipsPendingQuestion(t *testing.T) {
	turns := []Turn{
		{Role: llm.RoleModel, Text: Greeting},
		{Role: llm.RoleUser, Text: "a"},
		{Role: llm.RoleModel, Text: "b"},
		{Role: llm.RoleUser, Text: "in flight"},
	}
	history := answeredHistory(turns)
	require.Len(t, history, 2)
	assert.Equal(t, "a", history[0].Text)
	assert.Equal(t, "b", history[1].Text)
}
