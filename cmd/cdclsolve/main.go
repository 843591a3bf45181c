// Command cdclsolve reads a DIMACS CNF file and reports whether it is
// satisfiable, printing a model when it is.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hartlab/cdcl/dimacs"
	"github.com/hartlab/cdcl/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagMaxConflicts = flag.Int64(
	"max_conflicts",
	-1,
	"maximum number of conflicts allowed to solve the problem (-1 = no maximum)",
)

var flagGzipped = flag.Bool(
	"gzip",
	false,
	"the instance file is gzip-compressed",
)

var flagVerbose = flag.Bool(
	"verbose",
	true,
	"print search statistics to stdout",
)

type config struct {
	instanceFile string
	gzipped      bool
	memProfile   bool
	cpuProfile   bool
	maxConflicts int64
	verbose      bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		gzipped:      *flagGzipped,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		maxConflicts: *flagMaxConflicts,
		verbose:      *flagVerbose,
	}, nil
}

func solverOptions(cfg *config) sat.Options {
	opts := sat.DefaultOptions
	if cfg.maxConflicts >= 0 {
		opts.MaxConflicts = cfg.maxConflicts
	}
	opts.Verbose = cfg.verbose
	return opts
}

func run(cfg *config) error {
	s := sat.NewSolver(solverOptions(cfg), sat.NopTheory{})

	nVars, nClauses, err := dimacs.LoadFile(cfg.instanceFile, cfg.gzipped, s)
	if err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	if cfg.verbose {
		fmt.Printf("c variables:  %d\n", nVars)
		fmt.Printf("c clauses:    %d\n", nClauses)
	}

	t := time.Now()
	status := s.Solve(false)
	elapsed := time.Since(t)

	if cfg.verbose {
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
		fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.Stats.Conflicts, float64(s.Stats.Conflicts)/elapsed.Seconds())
		fmt.Printf("c decisions:  %d\n", s.Stats.Decisions)
		fmt.Printf("c restarts:   %d\n", s.Stats.Restarts)
		fmt.Printf("c status:     %s\n", status)
	}

	switch status {
	case sat.True:
		fmt.Println("SATISFIABLE")
		printModel(s)
	case sat.False:
		fmt.Println("UNSATISFIABLE")
	default:
		fmt.Println("UNKNOWN")
	}

	return nil
}

func printModel(s *sat.Solver) {
	for v, val := range s.Model {
		if val {
			fmt.Printf("%d ", v+1)
		} else {
			fmt.Printf("-%d ", v+1)
		}
	}
	fmt.Println("0")
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
