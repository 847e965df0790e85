// Package chat is the campus assistant offered to guests and students. It
// grounds a generative model on the current club and activity listings.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/dmitrijs2005/clubportal/internal/logging"
)

const (
	Greeting     = "Hi! I'm your RY-SYS Assistant. Ask me anything about our clubs and upcoming activities!"
	OfflineReply = "The campus assistant is not configured on this device."
	EmptyReply   = "I'm sorry, I couldn't process that request."
	TroubleReply = "I'm having trouble connecting to the campus brain right now. Please try again later!"

	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = float32(0.7)
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role
	Text string
}

// Request is one completion call. History already ends with the new user
// message.
type Request struct {
	System      string
	History     []Message
	Temperature float32
}

type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Assistant keeps one conversation. A nil backend means no API key was
// configured and every question gets OfflineReply.
type Assistant struct {
	backend     Backend
	temperature float32
	log         logging.Logger

	mu      sync.Mutex
	history []Message
}

func NewAssistant(backend Backend, temperature float32, log logging.Logger) *Assistant {
	if log == nil {
		log = logging.Nop()
	}
	return &Assistant{
		backend:     backend,
		temperature: temperature,
		log:         log,
		history:     []Message{{Role: RoleModel, Text: Greeting}},
	}
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Message(nil), a.history...)
}

// Reset starts a new conversation.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = []Message{{Role: RoleModel, Text: Greeting}}
}

// Ask sends question with the current listings as context and returns the
// reply. It never fails: backend problems turn into a fixed apology.
func (a *Assistant) Ask(ctx context.Context, question string, clubs []models.Club, activities []models.Activity) string {
	question = strings.TrimSpace(question)

	a.mu.Lock()
	history := append(append([]Message(nil), a.history...), Message{Role: RoleUser, Text: question})
	a.mu.Unlock()

	reply := a.generate(ctx, Request{
		System:      SystemInstruction(clubs, activities),
		History:     history,
		Temperature: a.temperature,
	})

	a.mu.Lock()
	a.history = append(a.history, Message{Role: RoleUser, Text: question}, Message{Role: RoleModel, Text: reply})
	a.mu.Unlock()
	return reply
}

func (a *Assistant) generate(ctx context.Context, req Request) string {
	if a.backend == nil {
		return OfflineReply
	}
	text, err := a.backend.Generate(ctx, req)
	if err != nil {
		a.log.Error(ctx, "chat completion failed", "error", err)
		return TroubleReply
	}
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

// SystemInstruction renders the listings the model is grounded on.
func SystemInstruction(clubs []models.Club, activities []models.Activity) string {
	var b strings.Builder
	b.WriteString("You are the RY-SYSTEM Assistant. You help students find clubs and activities.\n")
	b.WriteString("Current Clubs:\n")
	for _, c := range clubs {
		fmt.Fprintf(&b, "- %s (%s): %s\n", c.Name, c.Category, c.Description)
	}
	b.WriteString("\nCurrent Activities:\n")
	for _, act := range activities {
		fmt.Fprintf(&b, "- %s on %s at %s: %s\n", act.Title, act.Date, act.Location, act.Description)
	}
	b.WriteString("\nBe friendly, helpful, and concise. If you don't know the answer, suggest they contact the campus office.")
	return b.String()
}
