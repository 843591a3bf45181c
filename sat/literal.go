package sat

import "fmt"

// Var identifies a Boolean variable by its zero-based index.
type Var int32

// Literal is a signed reference to a Var. Negation flips a single bit, and
// the two literals of a variable are adjacent: 2*v is the positive literal,
// 2*v+1 is its negation.
type Literal int32

// LitNone is the distinguished "no literal" sentinel, used as the unknown
// literal in conflict analysis and as a not-applicable return value.
const LitNone Literal = -1

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v Var) Literal {
	return Literal(2 * v)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v Var) Literal {
	return PositiveLiteral(v).Opposite()
}

// VarID returns the variable referenced by l.
func (l Literal) VarID() Var {
	return Var(l >> 1)
}

// IsPositive reports whether l is the non-negated literal of its variable.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l == LitNone {
		return "<none>"
	}
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}
