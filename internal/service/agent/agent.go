package agent

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/memory"
	"github.com/sandevgo/mentoria/pkg/log"
)

const intentProviderError = "provider_error"

// Stores groups the store collaborators a turn reads and writes.
type Stores struct {
	Profiles core.ProfileRepository
	Contexts core.ContextRepository
	Messages core.MessagesRepository
}

// Agent runs one conversational turn at a time. It keeps no state between
// turns; everything is re-read from the stores.
type Agent struct {
	stores    Stores
	planner   core.PlanProvider
	executor  *Executor
	memory    *memory.Memory
	rotator   *memory.Rotator
	knowledge core.Knowledge
	now       func() time.Time
	newID     func() string
}

func NewAgent(
	limits core.Limits,
	knowledge core.Knowledge,
	stores Stores,
	planner core.PlanProvider,
	searcher core.ContentSearcher,
) *Agent {
	return &Agent{
		stores:    stores,
		planner:   planner,
		executor:  NewExecutor(planner, searcher, knowledge, limits),
		memory:    memory.NewMemory(limits),
		rotator:   memory.NewRotator(limits),
		knowledge: knowledge,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// HandleTurn processes a single user input and returns the engine response.
// Only unexpected failures are returned as errors, wrapped in core.ErrInternal.
func (a *Agent) HandleTurn(ctx context.Context, req core.TurnRequest) (resp core.Response, err error) {
	logger := log.FromCtx(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("user_id", req.UserID).
				Str("conversation_id", req.ConversationID).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("turn aborted")
			resp = core.Response{}
			err = fmt.Errorf("%w: %v", core.ErrInternal, r)
		}
	}()

	requestedID := req.ConversationID
	convID := requestedID
	if convID == "" {
		convID = a.newID()
	}

	a.logMessage(ctx, convID, req.UserID, core.RoleUser, describeInput(req))

	profile := a.loadProfile(ctx, req.UserID)
	convCtx := a.loadContext(ctx, convID)

	if convCtx.IsFresh() {
		return a.welcome(ctx, req.UserID, convID, requestedID, profile, convCtx), nil
	}

	convID, convCtx, rotated := a.rotator.MaybeRotate(convID, convCtx)
	if rotated {
		logger.Info().
			Str("previous", requestedID).
			Str("conversation_id", convID).
			Msg("message budget reached, starting new conversation")
	}

	in := resolveInput(req, convCtx)

	if in.menuReply != nil {
		return a.finish(ctx, req.UserID, convID, requestedID, convCtx, *in.menuReply, "Seleccionó: "+in.selectedOption), nil
	}

	if len(in.updatedFields) > 0 {
		profile = profile.Merge(in.updatedFields)
		if err := a.stores.Profiles.PutProfile(ctx, req.UserID, profile); err != nil {
			logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to save profile")
		}
	}

	if in.message == "" {
		logger.Warn().Str("conversation_id", requestedID).Msg("turn without usable input")
		return core.Response{
			ConversationID: requestedID,
			Kind:           core.KindText,
			Data:           core.TextData{Text: msgNoInput},
			Timestamp:      a.now(),
		}, nil
	}

	outcome := a.plan(ctx, in.message, profile, convCtx)
	outcome.Plan.SelectedOption = in.selectedOption
	outcome.Plan.UpdatedFields = in.updatedFields

	return a.finish(ctx, req.UserID, convID, requestedID, convCtx, outcome, in.message), nil
}

func (a *Agent) plan(ctx context.Context, message string, profile core.UserProfile, convCtx core.ConversationContext) Outcome {
	logger := log.FromCtx(ctx)

	routing, err := a.planner.Route(ctx, core.RouteRequest{
		Message: message,
		Profile: profile,
		Context: convCtx,
		NEMKeys: a.knowledge.NEM.Keys(),
		SEPKeys: a.knowledge.SEP.Keys(),
	})
	if err == nil && routing == nil {
		err = core.ErrNoPlan
	}
	if err != nil {
		logger.Error().Err(err).Msg("routing stage failed")
		text := msgRouteFailed
		if isMalformed(err) {
			text = msgUnknownAction
		}
		return textOutcome(text, core.ExecutedPlan{Intent: intentProviderError})
	}

	logger.Debug().
		Str("intent", routing.Intent).
		Str("action", string(routing.Action.Type)).
		Msg("routing plan received")

	return a.executor.Execute(ctx, *routing, message, profile)
}

// finish records the turn, persists the context and builds the response.
func (a *Agent) finish(
	ctx context.Context,
	userID, convID, requestedID string,
	convCtx core.ConversationContext,
	outcome Outcome,
	userMessage string,
) core.Response {
	resp := core.Response{
		ConversationID:  convID,
		Kind:            outcome.Kind,
		Data:            outcome.Data,
		NewConversation: convID != requestedID,
		Timestamp:       a.now(),
	}

	record := outcome.Plan
	record.ResponseKind = resp.Kind
	record.ResponseSummary = resp.Summary()

	next := a.memory.Merge(convCtx, record, userMessage)
	a.saveContext(ctx, convID, userID, next)
	a.logMessage(ctx, convID, userID, core.RoleAssistant, record.ResponseSummary)

	return resp
}

func (a *Agent) welcome(ctx context.Context, userID, convID, requestedID string, profile core.UserProfile, convCtx core.ConversationContext) core.Response {
	now := a.now()
	data := welcomeData(profile)

	seeded := core.ConversationContext{
		History: []core.HistoryEntry{{
			Role:      core.RoleAssistant,
			Content:   data.Message,
			Type:      core.EntryWelcome,
			Timestamp: now,
		}},
		MessageCount: 1,
		WelcomeShown: true,
		LastUpdated:  now,
		Version:      convCtx.Version,
	}
	a.saveContext(ctx, convID, userID, seeded)

	resp := core.Response{
		ConversationID:  convID,
		Kind:            core.KindWelcome,
		Data:            data,
		NewConversation: convID != requestedID,
		Timestamp:       now,
	}
	a.logMessage(ctx, convID, userID, core.RoleAssistant, resp.Summary())

	log.FromCtx(ctx).Info().Str("conversation_id", convID).Msg("welcome shown")
	return resp
}

func (a *Agent) loadProfile(ctx context.Context, userID string) core.UserProfile {
	profile, err := a.stores.Profiles.GetProfile(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to load profile, using empty")
		return core.UserProfile{}
	}
	if profile == nil {
		return core.UserProfile{}
	}
	return profile
}

func (a *Agent) loadContext(ctx context.Context, convID string) core.ConversationContext {
	c, err := a.stores.Contexts.GetContext(ctx, convID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("conversation_id", convID).Msg("failed to load context, using empty")
		return core.ConversationContext{}
	}
	return c
}

func (a *Agent) saveContext(ctx context.Context, convID, userID string, c core.ConversationContext) {
	if err := a.stores.Contexts.PutContext(ctx, convID, userID, c); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("conversation_id", convID).Msg("failed to save context")
	}
}

func (a *Agent) logMessage(ctx context.Context, convID, userID string, role core.Role, content string) {
	msg := core.LoggedMessage{
		ID:             a.newID(),
		ConversationID: convID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		IsAgent:        role == core.RoleAssistant,
		CreatedAt:      a.now(),
	}
	if err := a.stores.Messages.AppendMessage(ctx, msg); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("conversation_id", convID).Msg("failed to log message")
	}
}
