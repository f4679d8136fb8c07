package advisor

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/llm"
)

// Greeting opens every conversation.
const Greeting = "Hi! I'm your Spirulina assistant. How can I help with your culture today?"

// Turn is one message in a conversation transcript.
type Turn struct {
	Role llm.Role
	Text string
	At   time.Time
	// Fallback marks replies produced locally after a failed call. They are
	// kept in the transcript but never sent back as history.
	Fallback bool
}

// Conversation keeps the transcript of one advisory session in memory.
type Conversation struct {
	mu      sync.Mutex
	advisor *Advisor
	turns   []Turn
	now     func() time.Time
}

func NewConversation(a *Advisor) *Conversation {
	c := &Conversation{advisor: a, now: time.Now}
	c.turns = append(c.turns, Turn{Role: llm.RoleModel, Text: Greeting, At: c.now()})
	return c
}

// Send records the question, asks with the earlier answered turns as
// history, and records the reply. Fallback replies are recorded like any
// other.
func (c *Conversation) Send(ctx context.Context, question string, ponds []domain.Pond, logs []domain.ParameterLog) string {
	c.mu.Lock()
	history := answeredHistory(c.turns)
	c.turns = append(c.turns, Turn{Role: llm.RoleUser, Text: question, At: c.now()})
	c.mu.Unlock()

	reply := c.advisor.ask(ctx, question, BuildContext(ponds, logs), history)

	c.mu.Lock()
	c.turns = append(c.turns, Turn{Role: llm.RoleModel, Text: reply, At: c.now(), Fallback: IsFallback(reply)})
	c.mu.Unlock()
	return reply
}

// answeredHistory returns the question and reply pairs the model actually
// answered. The greeting, fallback replies and the questions that led to
// them or are still waiting for a reply are left out, so history alternates
// user and model.
func answeredHistory(turns []Turn) []llm.Message {
	history := make([]llm.Message, 0, len(turns))
	for i := 0; i+1 < len(turns); i++ {
		q, a := turns[i], turns[i+1]
		if q.Role != llm.RoleUser || a.Role != llm.RoleModel || a.Fallback {
			continue
		}
		history = append(history,
			llm.Message{Role: q.Role, Text: q.Text},
			llm.Message{Role: a.Role, Text: a.Text},
		)
		i++
	}
	return history
}

// Transcript returns a copy of all turns, oldest first.
func (c *Conversation) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}
