package merge

// TriState is a session wide boolean combined by logical AND over every
// input; Unset means no input has been seen.
type TriState int

const (
	Unset TriState = iota
	False
	True
)

// And folds one input's value into t.  It never raises False.
func (t TriState) And(v bool) TriState {
	if !v {
		return False
	}
	if t == Unset {
		return True
	}
	return t
}

func (t TriState) String() string {
	switch t {
	case False:
		return "false"
	case True:
		return "true"
	default:
		return "unset"
	}
}
