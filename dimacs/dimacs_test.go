package dimacs_test

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hartlab/cdcl/dimacs"
	"github.com/hartlab/cdcl/sat"
)

// This test verifies that the solver finds the exact set of models for a
// handful of small instances with known solutions (see testdataDir).
var testdataDir = "testdata"

type testCase struct {
	name         string
	instanceFile string
	modelsFile   string
}

func listTestCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		cases = append(cases, testCase{
			name:         d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})
	return cases, err
}

func toString(model []bool) string {
	b := make([]byte, len(model))
	for i, v := range model {
		if v {
			b[i] = 1
		}
	}
	return string(b)
}

func toSet(models [][]bool) map[string]struct{} {
	set := make(map[string]struct{}, len(models))
	for _, m := range models {
		set[toString(m)] = struct{}{}
	}
	return set
}

// solveAll enumerates every model of s by repeatedly forbidding the model
// just found via a blocking clause.
func solveAll(s *sat.Solver) [][]bool {
	var models [][]bool
	for s.Solve(false) == sat.True {
		models = append(models, append([]bool(nil), s.Model...))

		blocking := make([]sat.Literal, s.NumVariables())
		for i, v := range s.Model {
			if v {
				blocking[i] = sat.NegativeLiteral(sat.Var(i))
			} else {
				blocking[i] = sat.PositiveLiteral(sat.Var(i))
			}
		}
		s.AddClause(blocking)
	}
	return models
}

func TestSolveAll(t *testing.T) {
	cases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("listing test cases: %s", err)
	}
	if len(cases) == 0 {
		t.Fatal("no test cases found under testdata")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			want, err := dimacs.LoadModels(tc.modelsFile)
			if err != nil {
				t.Fatalf("loading models: %s", err)
			}

			s := sat.NewDefaultSolver()
			if _, _, err := dimacs.LoadFile(tc.instanceFile, false, s); err != nil {
				t.Fatalf("loading instance: %s", err)
			}

			got := solveAll(s)

			if len(got) != len(want) {
				t.Errorf("model count: got %d, want %d", len(got), len(want))
			}
			if diff := cmp.Diff(toSet(want), toSet(got)); diff != "" {
				t.Errorf("model set mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
