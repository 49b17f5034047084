package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/sandevgo/mentoria/pkg/retry"
)

// Planner implements core.PlanProvider on top of two generators: a fast one
// for routing and a stronger one for escalated analysis.
type Planner struct {
	router  Generator
	analyst Generator
	retrier *retry.Retrier
}

func NewPlanner(router, analyst Generator, retrier *retry.Retrier) *Planner {
	return &Planner{
		router:  router,
		analyst: analyst,
		retrier: retrier,
	}
}

func (p *Planner) Route(ctx context.Context, req core.RouteRequest) (*core.RoutingPlan, error) {
	prompt, err := routerPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := p.generate(ctx, p.router, prompt)
	if err != nil {
		return nil, fmt.Errorf("routing call failed: %w", err)
	}

	plan, err := decodePlan(raw)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("output", raw).Msg("undecodable routing plan")
		return nil, err
	}
	return plan, nil
}

func (p *Planner) Analyze(ctx context.Context, req core.AnalyzeRequest) (*core.AnalysisPlan, error) {
	prompt, err := analysisPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := p.generate(ctx, p.analyst, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	plan, err := decodePlan(raw)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("output", raw).Msg("undecodable analysis plan")
		return nil, err
	}
	analysis := core.NewAnalysisPlan(*plan)
	return &analysis, nil
}

func (p *Planner) generate(ctx context.Context, g Generator, prompt Prompt) (string, error) {
	var out string
	err := p.retrier.Do(ctx, func() error {
		text, err := g.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}

	log.FromCtx(ctx).Debug().Str("model", g.Model()).Int("chars", len(out)).Msg("plan generated")
	return out, nil
}
