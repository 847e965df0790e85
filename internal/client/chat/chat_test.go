package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls   int
	lastReq Request
	reply   string
	err     error
}

func (f *fakeBackend) Generate(_ context.Context, req Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

var (
	clubs      = []models.Club{{Name: "Chess", Category: "Games", Description: "Weekly blitz"}}
	activities = []models.Activity{{Title: "Open Day", Date: "2026-11-02", Location: "Hall A", Description: "Meet the clubs"}}
)

func TestAsk_SendsGroundedRequest(t *testing.T) {
	fb := &fakeBackend{reply: "Try the Chess club!"}
	a := NewAssistant(fb, DefaultTemperature, nil)

	reply := a.Ask(context.Background(), "  what can I join? ", clubs, activities)
	assert.Equal(t, "Try the Chess club!", reply)

	require.Equal(t, 1, fb.calls)
	assert.InDelta(t, 0.7, fb.lastReq.Temperature, 1e-6)
	assert.Contains(t, fb.lastReq.System, "- Chess (Games): Weekly blitz")
	assert.Contains(t, fb.lastReq.System, "- Open Day on 2026-11-02 at Hall A: Meet the clubs")

	require.Len(t, fb.lastReq.History, 2)
	assert.Equal(t, Message{Role: RoleModel, Text: Greeting}, fb.lastReq.History[0])
	assert.Equal(t, Message{Role: RoleUser, Text: "what can I join?"}, fb.lastReq.History[1])

	h := a.History()
	require.Len(t, h, 3)
	assert.Equal(t, Message{Role: RoleModel, Text: "Try the Chess club!"}, h[2])
}

func TestAsk_HistoryGrows(t *testing.T) {
	fb := &fakeBackend{reply: "ok"}
	a := NewAssistant(fb, 0.7, nil)

	a.Ask(context.Background(), "one", nil, nil)
	a.Ask(context.Background(), "two", nil, nil)

	assert.Len(t, fb.lastReq.History, 4)
	assert.Len(t, a.History(), 5)

	a.Reset()
	assert.Equal(t, []Message{{Role: RoleModel, Text: Greeting}}, a.History())
}

func TestAsk_FixedReplies(t *testing.T) {
	assert.Equal(t, OfflineReply, NewAssistant(nil, 0.7, nil).Ask(context.Background(), "hi", nil, nil))
	assert.Equal(t, TroubleReply, NewAssistant(&fakeBackend{err: errors.New("quota")}, 0.7, nil).Ask(context.Background(), "hi", nil, nil))
	assert.Equal(t, EmptyReply, NewAssistant(&fakeBackend{reply: "  "}, 0.7, nil).Ask(context.Background(), "hi", nil, nil))
}

func TestSystemInstruction_Shape(t *testing.T) {
	s := SystemInstruction(nil, nil)
	assert.True(t, strings.HasPrefix(s, "You are the RY-SYSTEM Assistant. You help students find clubs and activities."))
	assert.True(t, strings.HasSuffix(s, "suggest they contact the campus office."))
	assert.Contains(t, s, "Current Clubs:")
	assert.Contains(t, s, "Current Activities:")
}
