package graph

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/store"
)

// stubDriver records every query instead of talking to a database.
type stubDriver struct {
	queries []string
	params  []map[string]interface{}
}

func (d *stubDriver) ExecuteQuery(_ context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	d.queries = append(d.queries, query)
	d.params = append(d.params, params)
	return neo4j.EagerResult{}, nil
}

func (d *stubDriver) BuildIndices(context.Context) error { return nil }
func (d *stubDriver) Close(context.Context) error        { return nil }

func (d *stubDriver) countOf(query string) int {
	n := 0
	for _, q := range d.queries {
		if q == query {
			n++
		}
	}
	return n
}

func seedRun(t *testing.T, st store.Store) model.PipelineRun {
	t.Helper()

	names := map[string]string{"solver_1": "model-a", "solver_2": "model-b", "solver_3": "model-c"}

	assignment := model.RoleAssignment{
		ProblemID: "p001",
		SelfAssessments: []model.SelfAssessment{
			{ModelID: "solver_1", ModelName: "model-a"},
			{ModelID: "solver_2", ModelName: "model-b"},
			{ModelID: "solver_3", ModelName: "model-c"},
			{ModelID: "judge", ModelName: "model-d"},
		},
	}
	require.NoError(t, st.Save("p001", model.StageRoles, assignment))

	solutions := model.SolutionSet{ProblemID: "p001", Solutions: map[string]model.Solution{}}
	refined := model.RefinedSet{ProblemID: "p001", Refined: map[string]model.RefinedSolution{}}
	for id, name := range names {
		solutions.Solutions[id] = model.Solution{SolverID: id, ModelName: name, FinalAnswer: "42", Confidence: 0.9}
		refined.Refined[id] = model.RefinedSolution{SolverID: id, ModelName: name, FinalAnswer: "42", Confidence: 0.95}
	}
	require.NoError(t, st.Save("p001", model.StageSolutions, solutions))

	reviews := model.ReviewSet{ProblemID: "p001"}
	for reviewer, rname := range names {
		for target, tname := range names {
			if reviewer == target {
				continue
			}
			reviews.Reviews = append(reviews.Reviews, model.Review{
				ReviewerID:        reviewer,
				ReviewerModel:     rname,
				TargetSolverID:    target,
				TargetModel:       tname,
				AnswerCorrectness: model.CorrectnessCorrect,
				Confidence:        0.8,
			})
		}
	}
	require.NoError(t, st.Save("p001", model.StageReviews, reviews))
	require.NoError(t, st.Save("p001", model.StageRefined, refined))

	judgment := model.Judgment{
		ProblemID:     "p001",
		JudgeModel:    "model-d",
		Winner:        "solver_1",
		WinningAnswer: "42",
		Confidence:    0.9,
	}
	require.NoError(t, st.Save("p001", model.StageJudgment, judgment))

	return model.PipelineRun{
		RunID:         "run-1",
		ProblemID:     "p001",
		Success:       true,
		Winner:        "solver_1",
		WinningAnswer: "42",
	}
}

func TestExportRun(t *testing.T) {
	st := store.NewMemStore()
	run := seedRun(t, st)
	driver := &stubDriver{}
	exporter := NewExporter(driver, st)

	require.NoError(t, exporter.ExportRun(context.Background(), run))

	assert.Equal(t, 1, driver.countOf(SaveProblemQuery))
	assert.Equal(t, 4, driver.countOf(SaveModelQuery))
	assert.Equal(t, 3, driver.countOf(SaveSolvedEdgeQuery))
	assert.Equal(t, 6, driver.countOf(SaveReviewedEdgeQuery))
	assert.Equal(t, 1, driver.countOf(SaveJudgedEdgeQuery))

	require.NotEmpty(t, driver.params)
	assert.Equal(t, "p001", driver.params[0]["id"])
	assert.Equal(t, "solver_1", driver.params[0]["winner"])
}

func TestExportRunMissingArtifacts(t *testing.T) {
	driver := &stubDriver{}
	exporter := NewExporter(driver, store.NewMemStore())

	err := exporter.ExportRun(context.Background(), model.PipelineRun{ProblemID: "absent"})

	require.Error(t, err)
	assert.Empty(t, driver.queries)
}
