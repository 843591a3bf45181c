package sat

// Stats accumulates search statistics that every embedding host still wants
// to read, even though reporting them is not the core's own concern. Apart
// from the conflict and propagation budgets checked in shouldStop, nothing in
// this package branches on Stats; it is populated as a side effect of search
// and safe to ignore.
type Stats struct {
	Conflicts       int64
	Restarts        int64
	Decisions       int64
	RandomDecisions int64
	Propagations    int64
	LearntsSize     ema
	LearntsLBD      ema
}
