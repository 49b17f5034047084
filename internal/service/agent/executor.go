package agent

import (
	"context"
	"errors"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

const (
	msgNoInput        = "No se recibió un mensaje válido para procesar"
	msgRouteFailed    = "No pude entender tu solicitud"
	msgAnalysisFailed = "Tuve problemas al analizar tu solicitud en detalle"
	msgMissingQuery   = "Hubo un problema al generar la consulta"
	msgNoContent      = "No encontré contenido para tu consulta"
	msgUnknownAction  = "No estoy seguro de cómo proceder"

	defaultIntroText   = "Aquí tienes algunos recursos:"
	defaultContentType = "med"
	defaultTitle       = "Sin título"
	defaultDescription = "Sin descripción"
)

// Outcome is a response payload plus the plan that actually produced it.
type Outcome struct {
	Kind core.ResponseKind
	Data any
	Plan core.ExecutedPlan
}

type Executor struct {
	planner   core.PlanProvider
	searcher  core.ContentSearcher
	knowledge core.Knowledge
	neighbors int
}

func NewExecutor(
	planner core.PlanProvider,
	searcher core.ContentSearcher,
	knowledge core.Knowledge,
	limits core.Limits,
) *Executor {
	return &Executor{
		planner:   planner,
		searcher:  searcher,
		knowledge: knowledge,
		neighbors: limits.SearchNeighbors,
	}
}

// Execute carries out a routing plan. Escalation runs the analysis stage once;
// an analysis plan has no escalation branch, so depth never exceeds two.
func (e *Executor) Execute(ctx context.Context, plan core.RoutingPlan, message string, profile core.UserProfile) Outcome {
	record := core.ExecutedPlan{
		Intent:            plan.Intent,
		Analysis:          plan.Analysis,
		ActionType:        plan.Action.Type,
		ContextToRemember: plan.ContextToRemember,
	}

	if err := plan.Validate(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("intent", plan.Intent).Msg("routing plan rejected")
		return textOutcome(msgUnknownAction, record)
	}

	switch plan.Action.Type {
	case core.ActionAskForInformation:
		record.PendingPrompt = message
		return Outcome{
			Kind: core.KindButtons,
			Data: core.ButtonsData{
				Message:   plan.Action.Data.Message,
				Questions: plan.Action.Data.Questions,
			},
			Plan: record,
		}
	case core.ActionNeedsDeepAnalysis:
		return e.escalate(ctx, plan, message, profile, record)
	default:
		return e.terminal(ctx, plan.Action, record)
	}
}

func (e *Executor) escalate(ctx context.Context, plan core.RoutingPlan, message string, profile core.UserProfile, record core.ExecutedPlan) Outcome {
	logger := log.FromCtx(ctx)

	keys := plan.Action.Data.SelectedContextKeys
	subset := e.knowledge.Select(keys)
	logger.Debug().
		Strs("requested_keys", keys).
		Int("selected", len(subset)).
		Msg("escalating to analysis")

	analysis, err := e.planner.Analyze(ctx, core.AnalyzeRequest{
		Message:   message,
		Profile:   profile,
		Knowledge: subset,
	})
	if err == nil && analysis == nil {
		err = core.ErrNoPlan
	}
	if err != nil {
		logger.Error().Err(err).Msg("analysis stage failed")
		return textOutcome(msgAnalysisFailed, record)
	}

	final := core.ExecutedPlan{
		Intent:            analysis.Intent,
		Analysis:          analysis.Analysis,
		ActionType:        core.ActionType(analysis.Action.Type),
		ContextToRemember: analysis.ContextToRemember,
	}
	if err := analysis.Validate(); err != nil {
		logger.Warn().Err(err).Str("intent", analysis.Intent).Msg("analysis plan rejected")
		return textOutcome(msgUnknownAction, final)
	}

	switch analysis.Action.Type {
	case core.AnalysisDirectAnswer:
		return textOutcome(analysis.Action.Data.ResponseText, final)
	case core.AnalysisVectorSearch:
		return e.search(ctx, analysis.Action.Data, final)
	}
	return textOutcome(msgUnknownAction, final)
}

// terminal handles the non-escalating routing actions.
func (e *Executor) terminal(ctx context.Context, action core.Action, record core.ExecutedPlan) Outcome {
	switch action.Type {
	case core.ActionDirectAnswer:
		return textOutcome(action.Data.ResponseText, record)
	case core.ActionVectorSearch:
		return e.search(ctx, action.Data, record)
	}
	return textOutcome(msgUnknownAction, record)
}

func (e *Executor) search(ctx context.Context, data core.ActionData, record core.ExecutedPlan) Outcome {
	logger := log.FromCtx(ctx)

	if data.Query == "" {
		return textOutcome(msgMissingQuery, record)
	}

	results, err := e.searcher.Search(ctx, data.Query, e.neighbors)
	if err != nil {
		logger.Error().Err(err).Str("query", data.Query).Msg("content search failed")
		results = nil
	}
	if len(results) == 0 {
		return textOutcome(msgNoContent, record)
	}

	intro := data.IntroText
	if intro == "" {
		intro = defaultIntroText
	}

	cards := make([]core.ContentCard, 0, len(results))
	for _, r := range results {
		cards = append(cards, toCard(r.Item))
	}

	logger.Debug().Str("query", data.Query).Int("results", len(cards)).Msg("content search done")
	return Outcome{
		Kind: core.KindContentCards,
		Data: core.CardsData{
			IntroText:    intro,
			ContentCards: cards,
			TotalResults: len(cards),
		},
		Plan: record,
	}
}

func toCard(item core.ContentItem) core.ContentCard {
	card := core.ContentCard{
		ID:          item.ID,
		ContentType: item.ContentType,
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		Tags:        item.Tags,
	}
	if card.ContentType == "" {
		card.ContentType = defaultContentType
	}
	if card.Title == "" {
		card.Title = defaultTitle
	}
	if card.Description == "" {
		card.Description = defaultDescription
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	return card
}

func textOutcome(text string, record core.ExecutedPlan) Outcome {
	return Outcome{
		Kind: core.KindText,
		Data: core.TextData{Text: text},
		Plan: record,
	}
}

// isMalformed reports whether a routing failure came from undecodable output.
func isMalformed(err error) bool {
	return errors.Is(err, core.ErrMalformedPlan) || errors.Is(err, core.ErrUnknownAction)
}
