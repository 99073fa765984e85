package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/roadgrade/builder"
	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/engine"
	"github.com/katalvlaran/roadgrade/grader"
	"github.com/katalvlaran/roadgrade/query"
)

var (
	genNodes   int
	genEdges   int
	genSeed    int64
	genOneWay  float64
	genSlots   int
	genPOITags []string

	gradeMetricsOut string

	solveCmd = &cobra.Command{
		Use:   "solve GRAPH QUERIES OUT",
		Short: "Answer a query stream and write the answers file",
		Args:  cobra.ExactArgs(3),
		RunE:  runSolve,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify GRAPH QUERIES ANSWERS [EXPECTED]",
		Short: "Grade an answers file and print the report as JSON",
		Args:  cobra.RangeArgs(3, 4),
		RunE:  runVerify,
	}

	gradeCmd = &cobra.Command{
		Use:   "grade MANIFEST",
		Short: "Grade every case of a YAML manifest concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrade,
	}

	generateCmd = &cobra.Command{
		Use:   "generate OUT",
		Short: "Write a seeded random road network",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
)

func init() {
	gradeCmd.Flags().StringVar(&gradeMetricsOut, "metrics-out", "", "write the grading metrics in Prometheus text format to this file")

	f := generateCmd.Flags()
	f.IntVar(&genNodes, "nodes", 100, "number of intersections")
	f.IntVar(&genEdges, "edges", 300, "expected number of roads")
	f.Int64Var(&genSeed, "seed", 1, "random seed")
	f.Float64Var(&genOneWay, "one-way", 0.2, "probability that a road is one-way")
	f.IntVar(&genSlots, "speed-slots", 0, "speed profile slots per road (0 for constant average_time)")
	f.StringSliceVar(&genPOITags, "poi", []string{"cafe", "fuel"}, "POI tags drawn onto intersections")
}

func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func runSolve(cmd *cobra.Command, args []string) error {
	desc, err := decodeFile(args[0], core.DecodeDescription)
	if err != nil {
		return err
	}
	st, err := decodeFile(args[1], query.DecodeStream)
	if err != nil {
		return err
	}
	s, err := engine.New(desc, cfg.EngineOptions(logger)...)
	if err != nil {
		return err
	}

	// A fatal precondition still writes the answers produced before it.
	out, solveErr := s.SolveAll(st)
	if out.Results == nil {
		out.Results = []query.Answer{}
	}
	if err = writeJSON(args[2], out); err != nil {
		return err
	}
	logger.Info("solved", "events", len(st.Events), "answers", len(out.Results))

	return solveErr
}

func runVerify(cmd *cobra.Command, args []string) error {
	c := grader.Case{Name: args[2], Graph: args[0], Queries: args[1], Answers: args[2]}
	if len(args) == 4 {
		c.Expected = args[3]
	}
	rep, err := grader.Grade(c, grader.WithLogger(logger), grader.WithVerifyOptions(cfg.VerifyOptions(nil)...))
	if err != nil && rep.SessionID == uuid.Nil {
		return err
	}
	if werr := writeJSON("-", rep); werr != nil {
		return werr
	}

	return err
}

func runGrade(cmd *cobra.Command, args []string) error {
	m, err := grader.LoadManifest(args[0])
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	metrics := grader.NewMetrics(reg, cfg.Metrics.Namespace)

	reports, err := grader.GradeAll(context.Background(), m.Cases, cfg.Grading.Concurrency,
		grader.WithLogger(logger),
		grader.WithMetrics(metrics),
		grader.WithVerifyOptions(cfg.VerifyOptions(nil)...),
	)
	if err != nil {
		return err
	}
	if err = writeJSON("-", reports); err != nil {
		return err
	}
	if gradeMetricsOut != "" {
		if err = prometheus.WriteToTextfile(gradeMetricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	var fatal []error
	for _, r := range reports {
		if r.Fatal != "" {
			fatal = append(fatal, fmt.Errorf("%s: %s", r.Name, r.Fatal))
		}
	}

	return errors.Join(fatal...)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genNodes < 2 {
		return fmt.Errorf("--nodes must be at least 2")
	}
	if genOneWay < 0 || genOneWay > 1 {
		return fmt.Errorf("--one-way must be in [0,1]")
	}
	pairs := float64(genNodes) * float64(genNodes-1) / 2
	p := min(1, max(0, float64(genEdges)/pairs))

	opts := []builder.BuilderOption{
		builder.WithSeed(genSeed),
		builder.WithOneWayProbability(genOneWay),
		builder.WithPOIs(0.1, genPOITags...),
	}
	if genSlots > 0 {
		opts = append(opts, builder.WithSpeedProfiles(genSlots, false))
	}
	desc, err := builder.BuildDescription(opts, builder.RandomSparse(genNodes, p))
	if err != nil {
		return err
	}
	logger.Info("generated", "nodes", len(desc.Nodes), "roads", len(desc.Edges), "seed", genSeed)

	return writeJSON(args[0], desc)
}
