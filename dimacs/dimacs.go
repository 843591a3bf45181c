// Package dimacs loads DIMACS CNF files into a sat.Solver. The parsing
// itself lives entirely in the third-party github.com/rhartert/dimacs
// package, kept out of the sat package's own dependency surface.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	upstream "github.com/rhartert/dimacs"

	"github.com/hartlab/cdcl/sat"
)

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadFile parses the CNF file at filename and adds its variables and
// clauses to s, returning the variable and clause counts declared by the
// file's problem line.
func LoadFile(filename string, gzipped bool, s *sat.Solver) (nVars, nClauses int, err error) {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return 0, 0, fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: s}
	if err := upstream.ReadBuilder(r, b); err != nil {
		return 0, 0, fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return b.nVars, b.nClauses, nil
}

// builder implements upstream.Builder, translating 1-based signed DIMACS
// literals into sat.Literal and driving a sat.Solver directly.
type builder struct {
	solver   *sat.Solver
	nVars    int
	nClauses int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.NewVar(sat.PolarityUnset, true)
	}
	b.nVars = nVars
	b.nClauses = nClauses
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(sat.Var(-l - 1))
		} else {
			lits[i] = sat.PositiveLiteral(sat.Var(l - 1))
		}
	}
	b.solver.AddClause(lits)
	return nil
}

func (b *builder) Comment(string) error {
	return nil
}

// LoadModels reads a file in DIMACS solution-set format (one satisfying
// model per "clause" line, positive/negative integers marking each
// variable's value).
func LoadModels(filename string) ([][]bool, error) {
	r, err := openReader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := upstream.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(string, int, int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(string) error {
	return nil
}

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
