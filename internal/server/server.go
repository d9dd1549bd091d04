package server

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/tribunal/internal/config"
	"github.com/agenthands/tribunal/internal/core/model"
	"github.com/agenthands/tribunal/internal/dataset"
	"github.com/agenthands/tribunal/internal/gateway"
	"github.com/agenthands/tribunal/internal/llm"
	"github.com/agenthands/tribunal/internal/pipeline"
	"github.com/agenthands/tribunal/internal/store"
)

// Server exposes the persisted pipeline artifacts and lets an operator
// trigger single-problem runs over HTTP.
type Server struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Problems []model.Problem
}

// NewServer wires the server from an already loaded config and provider
// client.
func NewServer(cfg *config.Config, client llm.Client) (*Server, error) {
	st, err := store.NewFileStore(cfg.Paths.RawOutputsDir)
	if err != nil {
		return nil, err
	}

	gw := gateway.New(client, gateway.Config{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: time.Duration(cfg.Retry.InitialDelaySeconds * float64(time.Second)),
		MaxTokens:    cfg.LLM.MaxTokens,
	})

	problems, err := dataset.Load(cfg.Paths.ProblemsFile)
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:   cfg,
		Pipeline: pipeline.New(cfg, st, gw),
		Store:    st,
		Problems: problems,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/problems", s.ListProblems)
	r.POST("/problems/:id/run", s.RunProblem)
	r.GET("/problems/:id/stages/:stage", s.GetStageResult)
	r.GET("/summary", s.GetSummary)

	return r
}

func (s *Server) ListProblems(c *gin.Context) {
	type entry struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	out := make([]entry, 0, len(s.Problems))
	for _, p := range s.Problems {
		out = append(out, entry{ID: p.ID, Category: p.Category})
	}
	c.JSON(http.StatusOK, gin.H{"problems": out})
}

func (s *Server) RunProblem(c *gin.Context) {
	problem, ok := dataset.FindByID(s.Problems, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "problem not found"})
		return
	}

	skip, err := pipeline.ParseSkipSet(c.Query("skip"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run := s.Pipeline.Run(c.Request.Context(), problem, skip)
	c.JSON(http.StatusOK, run)
}

func (s *Server) GetStageResult(c *gin.Context) {
	var stage model.Stage
	switch c.Param("stage") {
	case "0", "roles":
		stage = model.StageRoles
	case "1", "solutions":
		stage = model.StageSolutions
	case "2", "reviews":
		stage = model.StageReviews
	case "3", "refined":
		stage = model.StageRefined
	case "4", "judgment":
		stage = model.StageJudgment
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown stage"})
		return
	}

	var result map[string]interface{}
	if err := s.Store.Load(c.Param("id"), stage, &result); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) GetSummary(c *gin.Context) {
	path := filepath.Join(s.Config.Paths.ResultsDir, "summary.json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary available"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
