package grader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadgrade/core"
	"github.com/katalvlaran/roadgrade/query"
)

// DefaultConcurrency bounds GradeAll when the caller passes a non-positive limit.
const DefaultConcurrency = 4

// ErrManifest is returned for unreadable or malformed manifests.
var ErrManifest = errors.New("grader: bad manifest")

// Case names the files of one grading case. Expected is optional.
type Case struct {
	Name     string `yaml:"name"`
	Graph    string `yaml:"graph"`
	Queries  string `yaml:"queries"`
	Answers  string `yaml:"answers"`
	Expected string `yaml:"expected,omitempty"`
}

// Manifest lists the cases of a batch.
type Manifest struct {
	Cases []Case `yaml:"cases"`
}

// LoadManifest reads a YAML manifest. Relative file paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Cases {
		c := &m.Cases[i]
		if c.Graph == "" || c.Queries == "" || c.Answers == "" {
			return Manifest{}, fmt.Errorf("%w: case %d (%q) needs graph, queries and answers", ErrManifest, i, c.Name)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i)
		}
		c.Graph = resolve(base, c.Graph)
		c.Queries = resolve(base, c.Queries)
		c.Answers = resolve(base, c.Answers)
		if c.Expected != "" {
			c.Expected = resolve(base, c.Expected)
		}
	}

	return m, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(base, p)
}

// Grade loads the files of c and runs one session over them. Load errors
// are returned without a report.
func Grade(c Case, opts ...SessionOption) (Report, error) {
	desc, err := readFile(c.Graph, core.DecodeDescription)
	if err != nil {
		return Report{}, err
	}
	queries, err := readFile(c.Queries, query.DecodeStream)
	if err != nil {
		return Report{}, err
	}
	answers, err := readFile(c.Answers, query.DecodeAnswers)
	if err != nil {
		return Report{}, err
	}
	var expected *query.AnswerStream
	if c.Expected != "" {
		exp, err := readFile(c.Expected, query.DecodeAnswers)
		if err != nil {
			return Report{}, err
		}
		expected = &exp
	}

	s, err := NewSession(desc, append([]SessionOption{WithName(c.Name)}, opts...)...)
	if err != nil {
		return Report{}, err
	}

	return s.Run(queries, answers, expected)
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
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

// GradeAll grades cases concurrently, at most limit at a time. Every case
// gets its own Session; reports[i] belongs to cases[i].
//
// A case that fails to load or aborts on a fatal precondition still gets a
// report with Name and Fatal set; it does not stop the others. The returned
// error is non-nil only when ctx is cancelled.
func GradeAll(ctx context.Context, cases []Case, limit int, opts ...SessionOption) ([]Report, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	reports := make([]Report, len(cases))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range cases {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rep, err := Grade(c, opts...)
			if err != nil {
				rep.Name = c.Name
				rep.Fatal = err.Error()
			}
			reports[i] = rep

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	return reports, nil
}
