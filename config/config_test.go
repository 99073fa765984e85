package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadgrade/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roadgrade.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1e-2, cfg.Tolerances.SelfConsistency)
	assert.Equal(t, 1e-1, cfg.Tolerances.Expected)
	assert.Equal(t, 900.0, cfg.TimeCost.SlotSeconds)
	assert.Equal(t, "euclidean", cfg.Nearest.DefaultMetric)
	assert.Equal(t, 0.3, cfg.KShortest.UsagePenalty)
	assert.Equal(t, 200, cfg.Assignment.TwoOptMaxIterations)
	assert.Equal(t, 4, cfg.Grading.Concurrency)
	assert.Equal(t, "roadgrade", cfg.Metrics.Namespace)

	empty, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, empty)
}

func TestLoad_MergesOverDefault(t *testing.T) {
	cfg, err := config.Load(write(t, `
tolerances:
  expected: 0.5
nearest:
  default_metric: haversine
grading:
  concurrency: 8
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Tolerances.Expected)
	assert.Equal(t, 1e-2, cfg.Tolerances.SelfConsistency)
	assert.Equal(t, "haversine", cfg.Nearest.DefaultMetric)
	assert.Equal(t, 8, cfg.Grading.Concurrency)
	assert.Equal(t, 2, cfg.KShortest.RejectedUsageBump)

	var buf bytes.Buffer
	cfg.Logger(&buf).Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"tolerance":  "tolerances:\n  self_consistency: 0\n",
		"slot":       "timecost:\n  slot_seconds: 60\n",
		"metric":     "nearest:\n  default_metric: manhattan\n",
		"concurrent": "grading:\n  concurrency: 0\n",
		"level":      "logging:\n  level: loud\n",
		"format":     "logging:\n  format: xml\n",
		"namespace":  "metrics:\n  namespace: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(write(t, body))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	_, err := config.Load(write(t, "tolerances: [1, 2]\n"))
	require.Error(t, err)
	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := config.Default()
	assert.Len(t, cfg.EngineOptions(nil), 4)
	assert.Len(t, cfg.VerifyOptions(nil), 3)
	assert.True(t, cfg.Searcher().Has("shortest_path"))
}
