package core

import "fmt"

type ActionType string

const (
	ActionDirectAnswer      ActionType = "direct_answer"
	ActionAskForInformation ActionType = "ask_for_information"
	ActionNeedsDeepAnalysis ActionType = "needs_deep_analysis"
	ActionVectorSearch      ActionType = "vector_search"
)

// Option is one selectable answer of a clarifying question.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question asks the user to fill a single profile field.
type Question struct {
	FieldName    string   `json:"field_name"`
	QuestionText string   `json:"question_text"`
	Options      []Option `json:"options,omitempty"`
}

// ActionData is the union of payload fields across action types.
// Which fields are meaningful depends on Action.Type.
type ActionData struct {
	ResponseText        string     `json:"response_text,omitempty"`
	Message             string     `json:"message,omitempty"`
	Questions           []Question `json:"questions,omitempty"`
	SelectedContextKeys []string   `json:"selected_context_keys,omitempty"`
	Query               string     `json:"query,omitempty"`
	IntroText           string     `json:"intro_text,omitempty"`
}

type Action struct {
	Type ActionType `json:"type"`
	Data ActionData `json:"data"`
}

// RoutingPlan is produced by the first, fast classification stage.
type RoutingPlan struct {
	Intent            string         `json:"intent"`
	Analysis          string         `json:"analysis"`
	Action            Action         `json:"action"`
	ContextToRemember map[string]any `json:"context_to_remember,omitempty"`
}

// AnalysisActionType is the action set of the escalated stage. It has no
// escalation or clarifying-question member.
type AnalysisActionType string

const (
	AnalysisDirectAnswer AnalysisActionType = "direct_answer"
	AnalysisVectorSearch AnalysisActionType = "vector_search"
)

type AnalysisAction struct {
	Type AnalysisActionType `json:"type"`
	Data ActionData         `json:"data"`
}

// AnalysisPlan is produced by the escalated stage. It can never escalate again.
type AnalysisPlan struct {
	Intent            string         `json:"intent"`
	Analysis          string         `json:"analysis"`
	Action            AnalysisAction `json:"action"`
	ContextToRemember map[string]any `json:"context_to_remember,omitempty"`
}

// NewAnalysisPlan narrows a decoded plan to the analysis variant. The action
// type is carried as is; Validate rejects anything outside the analysis set.
func NewAnalysisPlan(p RoutingPlan) AnalysisPlan {
	return AnalysisPlan{
		Intent:   p.Intent,
		Analysis: p.Analysis,
		Action: AnalysisAction{
			Type: AnalysisActionType(p.Action.Type),
			Data: p.Action.Data,
		},
		ContextToRemember: p.ContextToRemember,
	}
}

// Validate checks the action type against the routing variant.
func (p RoutingPlan) Validate() error {
	switch p.Action.Type {
	case ActionDirectAnswer, ActionAskForInformation, ActionNeedsDeepAnalysis, ActionVectorSearch:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, p.Action.Type)
}

// Validate checks the action type against the analysis variant.
func (p AnalysisPlan) Validate() error {
	switch p.Action.Type {
	case AnalysisDirectAnswer, AnalysisVectorSearch:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, p.Action.Type)
}
