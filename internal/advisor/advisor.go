package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/llm"
)

// Fallback replies returned instead of errors.
const (
	FallbackMissingKey = "Error: API key not configured. Please check your environment."
	FallbackFailure    = "Sorry, there was an error consulting the virtual expert. Check your connection."
	FallbackEmpty      = "I couldn't generate an answer. Please try again."
)

// IsFallback reports whether reply is one of the fixed fallback strings.
func IsFallback(reply string) bool {
	return reply == FallbackMissingKey || reply == FallbackFailure || reply == FallbackEmpty
}

// DefaultTimeout bounds one advisory call.
const DefaultTimeout = 30 * time.Second

// Answerer produces a reply for a question given a culture context summary.
type Answerer interface {
	Answer(ctx context.Context, question, contextSummary string) (string, error)
}

// LLMAnswerer answers through an llm.LLMClient.
type LLMAnswerer struct {
	client llm.LLMClient
}

func NewLLMAnswerer(client llm.LLMClient) *LLMAnswerer {
	return &LLMAnswerer{client: client}
}

func (a *LLMAnswerer) Answer(ctx context.Context, question, contextSummary string) (string, error) {
	return a.answer(ctx, question, contextSummary, nil)
}

// AnswerWithHistory includes earlier conversation turns in the request.
func (a *LLMAnswerer) AnswerWithHistory(ctx context.Context, question, contextSummary string, history []llm.Message) (string, error) {
	return a.answer(ctx, question, contextSummary, history)
}

func (a *LLMAnswerer) answer(ctx context.Context, question, contextSummary string, history []llm.Message) (string, error) {
	task := llm.TaskAdvise
	if len(history) > 0 {
		task = llm.TaskChat
	}
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: SystemInstruction(contextSummary),
		History:      history,
		UserPrompt:   question,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// historyAnswerer is implemented by answerers that accept prior turns.
type historyAnswerer interface {
	AnswerWithHistory(ctx context.Context, question, contextSummary string, history []llm.Message) (string, error)
}

// Advisor builds the context and maps every failure onto a fallback reply.
type Advisor struct {
	answerer Answerer
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*Advisor)

func WithTimeout(d time.Duration) Option {
	return func(a *Advisor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Advisor) { a.logger = l }
}

func New(answerer Answerer, opts ...Option) *Advisor {
	a := &Advisor{answerer: answerer, timeout: DefaultTimeout, logger: slog.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Ask returns the reply to question given the current ponds and logs. It
// never returns an error: failures become fixed fallback strings.
func (a *Advisor) Ask(ctx context.Context, question string, ponds []domain.Pond, logs []domain.ParameterLog) string {
	return a.ask(ctx, question, BuildContext(ponds, logs), nil)
}

func (a *Advisor) ask(ctx context.Context, question, contextSummary string, history []llm.Message) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("advisor panicked", "panic", r)
			reply = FallbackFailure
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		text string
		err  error
	)
	if h, ok := a.answerer.(historyAnswerer); ok && len(history) > 0 {
		text, err = h.AnswerWithHistory(ctx, question, contextSummary, history)
	} else {
		text, err = a.answerer.Answer(ctx, question, contextSummary)
	}

	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return FallbackMissingKey
	case errors.Is(err, llm.ErrEmptyResponse):
		return FallbackEmpty
	case err != nil:
		a.logger.Warn("advisor request failed", "error", err)
		return FallbackFailure
	case strings.TrimSpace(text) == "":
		return FallbackEmpty
	}
	return text
}
