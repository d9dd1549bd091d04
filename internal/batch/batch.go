package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/pipeline"
	"github.com/agenthands/tribunal/internal/store"
)

// Exporter receives completed runs for optional post-processing, e.g. the
// results graph export.
type Exporter interface {
	ExportRun(ctx context.Context, run model.PipelineRun) error
}

// ProblemRunner runs the per-problem pipeline. Satisfied by
// *pipeline.Pipeline.
type ProblemRunner interface {
	Run(ctx context.Context, problem model.Problem, skip pipeline.SkipSet) model.PipelineRun
}

// Runner iterates problems through the pipeline, checkpointing progress
// after each one so an interrupted batch can resume.
type Runner struct {
	Pipeline   ProblemRunner
	Checkpoint *store.CheckpointFile
	ResultsDir string
	Skip       pipeline.SkipSet
	Exporter   Exporter
}

type Options struct {
	StartIndex int
	MaxCount   int
}

// RunAll processes problems from opts.StartIndex, bounded by opts.MaxCount
// when positive. A context cancellation stops the batch cleanly after the
// current problem; only checkpoint and summary write failures are fatal.
func (r *Runner) RunAll(ctx context.Context, problems []model.Problem, opts Options) ([]model.PipelineRun, model.Summary, error) {
	start := opts.StartIndex
	if start < 0 {
		start = 0
	}
	end := len(problems)
	if opts.MaxCount > 0 && start+opts.MaxCount < end {
		end = start + opts.MaxCount
	}
	if start > end {
		start = end
	}

	if err := os.MkdirAll(r.ResultsDir, 0o755); err != nil {
		return nil, model.Summary{}, fmt.Errorf("failed to create results dir: %w", err)
	}

	// Resume onto an existing checkpoint when one is present.
	cp, _, err := r.Checkpoint.Load()
	if err != nil {
		return nil, model.Summary{}, err
	}

	log.Printf("Processing %d problems (starting from index %d)", end-start, start)

	var runs []model.PipelineRun
	for i := start; i < end; i++ {
		if ctx.Err() != nil {
			log.Printf("Interrupt received, stopping batch after %d problems", len(runs))
			break
		}

		run := r.Pipeline.Run(ctx, problems[i], r.Skip)
		runs = append(runs, run)

		if err := r.writeRunResult(run); err != nil {
			log.Printf("Warning: failed to write result for %s: %v", run.ProblemID, err)
		}

		cp.ProcessedProblemIDs = append(cp.ProcessedProblemIDs, run.ProblemID)
		cp.LastIndex = i
		cp.UpdatedAt = time.Now().UTC()
		if err := r.Checkpoint.Write(cp); err != nil {
			return runs, model.Summary{}, err
		}

		if r.Exporter != nil && run.Success {
			if err := r.Exporter.ExportRun(ctx, run); err != nil {
				log.Printf("Warning: graph export failed for %s: %v", run.ProblemID, err)
			}
		}
	}

	summary := Summarize(end-start, runs)
	if err := r.writeSummary(summary); err != nil {
		return runs, summary, err
	}

	log.Printf("Batch complete: total=%d successful=%d failed=%d", summary.TotalProblems, summary.Successful, summary.Failed)
	return runs, summary, nil
}

// Summarize builds the final batch report from the runs processed so far.
func Summarize(total int, runs []model.PipelineRun) model.Summary {
	summary := model.Summary{
		TotalProblems: total,
		Processed:     len(runs),
		Timestamp:     time.Now().UTC(),
	}
	for _, run := range runs {
		if run.Success {
			summary.Successful++
			continue
		}
		summary.Failed++
		failed := model.FailedProblem{ProblemID: run.ProblemID}
		for _, se := range run.Errors {
			failed.Errors = append(failed.Errors, fmt.Sprintf("stage %d: %s", int(se.Stage), se.Message))
		}
		summary.FailedProblems = append(summary.FailedProblems, failed)
	}
	return summary
}

func (r *Runner) writeRunResult(run model.PipelineRun) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(r.ResultsDir, fmt.Sprintf("%s_final_result.json", run.ProblemID))
	return store.WriteFileAtomic(path, data)
}

func (r *Runner) writeSummary(summary model.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	path := filepath.Join(r.ResultsDir, "summary.json")
	if err := store.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
