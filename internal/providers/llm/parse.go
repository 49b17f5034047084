package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
)

// decodePlan reads a plan from model output. Output that is not a bare JSON
// object is searched for the outermost {...} block.
func decodePlan(raw string) (*core.RoutingPlan, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty output", core.ErrMalformedPlan)
	}

	var plan core.RoutingPlan
	err := json.Unmarshal([]byte(text), &plan)
	if err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object in output: %v", core.ErrMalformedPlan, err)
		}
		plan = core.RoutingPlan{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedPlan, err)
		}
	}

	if plan.Action.Type == "" {
		return nil, fmt.Errorf("%w: missing action type", core.ErrMalformedPlan)
	}
	return &plan, nil
}
