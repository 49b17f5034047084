package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/mentoria/internal/core"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]core.UserProfile
	contexts map[string]core.ConversationContext
	messages []core.LoggedMessage

	failReads  bool
	failWrites bool
	puts       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]core.UserProfile),
		contexts: make(map[string]core.ConversationContext),
	}
}

func (s *fakeStore) stores() Stores {
	return Stores{Profiles: s, Contexts: s, Messages: s}
}

func (s *fakeStore) GetProfile(_ context.Context, userID string) (core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errStoreDown
	}
	return s.profiles[userID], nil
}

func (s *fakeStore) PutProfile(_ context.Context, userID string, p core.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	s.profiles[userID] = p
	return nil
}

func (s *fakeStore) GetContext(_ context.Context, convID string) (core.ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return core.ConversationContext{}, errStoreDown
	}
	return s.contexts[convID], nil
}

func (s *fakeStore) PutContext(_ context.Context, convID, _ string, c core.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failWrites {
		return errStoreDown
	}
	c.Version++
	s.contexts[convID] = c
	return nil
}

func (s *fakeStore) AppendMessage(_ context.Context, msg core.LoggedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeStore) ListMessages(context.Context, string, int, int) (core.MessagePage, error) {
	return core.MessagePage{}, nil
}

func (s *fakeStore) LatestConversation(context.Context, string) (string, error) {
	return "", core.ErrNotFound
}

func (s *fakeStore) ConversationInfo(context.Context, string) (core.ConversationInfo, error) {
	return core.ConversationInfo{}, core.ErrNotFound
}

func (s *fakeStore) context(convID string) core.ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contexts[convID]
}

type fakePlanner struct {
	route   func(core.RouteRequest) (*core.RoutingPlan, error)
	analyze func(core.AnalyzeRequest) (*core.AnalysisPlan, error)

	routeCalls   []core.RouteRequest
	analyzeCalls []core.AnalyzeRequest
}

func (p *fakePlanner) Route(_ context.Context, req core.RouteRequest) (*core.RoutingPlan, error) {
	p.routeCalls = append(p.routeCalls, req)
	if p.route == nil {
		return nil, errors.New("route not configured")
	}
	return p.route(req)
}

func (p *fakePlanner) Analyze(_ context.Context, req core.AnalyzeRequest) (*core.AnalysisPlan, error) {
	p.analyzeCalls = append(p.analyzeCalls, req)
	if p.analyze == nil {
		return nil, errors.New("analyze not configured")
	}
	return p.analyze(req)
}

func directAnswer(intent, text string) func(core.RouteRequest) (*core.RoutingPlan, error) {
	return func(core.RouteRequest) (*core.RoutingPlan, error) {
		return &core.RoutingPlan{
			Intent: intent,
			Action: core.Action{Type: core.ActionDirectAnswer, Data: core.ActionData{ResponseText: text}},
		}, nil
	}
}

type fakeSearcher struct {
	results []core.SearchResult
	err     error
	queries []string
	ks      []int
}

func (s *fakeSearcher) Search(_ context.Context, query string, k int) ([]core.SearchResult, error) {
	s.queries = append(s.queries, query)
	s.ks = append(s.ks, k)
	return s.results, s.err
}

var testKnowledge = core.Knowledge{
	NEM: core.KnowledgeIndex{"k1": "nem uno", "k2": "nem dos"},
	SEP: core.KnowledgeIndex{"k3": "sep tres"},
}

func testLimits() core.Limits {
	return core.Limits{MaxMessagesPerConversation: 20, MaxHistoryContext: 8, SearchNeighbors: 5}
}

// newTestAgent wires an agent with deterministic ids and clock.
func newTestAgent(store *fakeStore, planner *fakePlanner, searcher *fakeSearcher, limits core.Limits) *Agent {
	a := NewAgent(limits, testKnowledge, store.stores(), planner, searcher)
	now := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	var n int
	var mu sync.Mutex
	a.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
	a.rotator.WithIDGenerator(func() string { return "conv-rotated" })
	return a
}

// seedConversation stores a context past the welcome turn.
func seedConversation(store *fakeStore, convID string, count int) {
	store.contexts[convID] = core.ConversationContext{
		History: []core.HistoryEntry{
			{Role: core.RoleAssistant, Content: "¡Bienvenido!", Type: core.EntryWelcome},
		},
		MessageCount: count,
		WelcomeShown: true,
	}
}
