package roles

import (
	"context"
	"fmt"
	"log"

	"github.com/agenthands/tribunal/internal/config"
	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
)

const assessSystem = "You are a helpful assistant that provides self-assessments in JSON format."

// Assigner runs stage 0: it collects a self-assessment from each configured
// model, then derives the final slot assignments deterministically.
type Assigner struct {
	Gateway     *gateway.Gateway
	Models      []config.SlotModel
	Temperature float64
	Prompt      string
}

func NewAssigner(gw *gateway.Gateway, models []config.SlotModel, temperature float64, prompt string) *Assigner {
	return &Assigner{
		Gateway:     gw,
		Models:      models,
		Temperature: temperature,
		Prompt:      prompt,
	}
}

type assessmentResponse struct {
	RolePreferences  []string           `json:"role_preferences"`
	ConfidenceByRole map[string]float64 `json:"confidence_by_role"`
	Reasoning        string             `json:"reasoning"`
}

func (a *Assigner) Run(ctx context.Context, problem model.Problem) (model.RoleAssignment, error) {
	assessments := make([]model.SelfAssessment, 0, len(a.Models))

	for _, sm := range a.Models {
		log.Printf("[%s] Getting self-assessment from %s (%s)", problem.ID, sm.Model, sm.Slot)

		req := llm.Request{
			Model:       sm.Model,
			System:      assessSystem,
			Prompt:      fmt.Sprintf(a.Prompt, problem.Text),
			Temperature: a.Temperature,
		}
		parsed, err := gateway.InvokeAs[assessmentResponse](ctx, a.Gateway, req)
		if err != nil {
			return model.RoleAssignment{}, fmt.Errorf("self-assessment from %s (%s): %w", sm.Model, sm.Slot, err)
		}

		assessments = append(assessments, model.SelfAssessment{
			ModelID:          sm.Slot,
			ModelName:        sm.Model,
			RolePreferences:  parsed.RolePreferences,
			ConfidenceByRole: parsed.ConfidenceByRole,
			Reasoning:        parsed.Reasoning,
		})
	}

	final, err := Assign(assessments)
	if err != nil {
		return model.RoleAssignment{}, err
	}

	return model.RoleAssignment{
		ProblemID:       problem.ID,
		SelfAssessments: assessments,
		Final:           final,
	}, nil
}
