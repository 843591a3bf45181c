package sat

import "time"

// CCMinMode selects the learnt-clause minimization strategy.
type CCMinMode int

const (
	CCMinNone      CCMinMode = 0
	CCMinBasic     CCMinMode = 1
	CCMinRecursive CCMinMode = 2
)

// PhaseSaving selects how much of the last assignment to remember across
// backtracks.
type PhaseSaving int

const (
	PhaseSavingNone PhaseSaving = 0
	PhaseSavingTop  PhaseSaving = 1
	PhaseSavingAll  PhaseSaving = 2
)

// Options configures a Solver. Defaults mirror MiniSat's own defaults.
type Options struct {
	VarDecay      float64
	ClauseDecay   float64
	RandomVarFreq float64
	RandomSeed    int64
	CCMinMode     CCMinMode
	PhaseSaving   PhaseSaving
	RandInitAct   bool
	// RndPol, when true, picks a decision literal's polarity by coin flip
	// instead of falling back to the saved phase, whenever the variable has
	// no user-set preference.
	RndPol       bool
	LubyRestart  bool
	RestartFirst int
	RestartInc   float64
	GarbageFrac  float64

	LearntsizeFactor float64
	LearntsizeInc    float64

	// CustomHeuristic, when true, enables the ChangeBranchChoice detour
	// with a frequency that decays toward CustomHeurFreqFloor.
	CustomHeuristic     bool
	CustomHeurFreqFloor float64

	// MaxConflicts and MaxPropagations are the conflict/propagation budgets.
	// -1 means unbounded. Timeout, if non-negative, is polled alongside them.
	MaxConflicts    int64
	MaxPropagations int64
	Timeout         time.Duration

	// Verbose records whether the caller wants statistics reported;
	// cmd/cdclsolve sets it from its -verbose flag. The sat package itself
	// never reads it and never prints.
	Verbose bool
}

// DefaultOptions holds the solver's default configuration knobs.
var DefaultOptions = Options{
	VarDecay:            0.95,
	ClauseDecay:         0.999,
	RandomVarFreq:       0,
	RandomSeed:          91648253,
	CCMinMode:           CCMinRecursive,
	PhaseSaving:         PhaseSavingAll,
	RandInitAct:         false,
	RndPol:              false,
	LubyRestart:         true,
	RestartFirst:        100,
	RestartInc:          2,
	GarbageFrac:         0.20,
	LearntsizeFactor:    1.0 / 3.0,
	LearntsizeInc:       1.1,
	CustomHeuristic:     false,
	CustomHeurFreqFloor: 0.25,
	MaxConflicts:        -1,
	MaxPropagations:     -1,
	Timeout:             -1,
}
