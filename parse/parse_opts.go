package parse

type parseOpts struct {
	lenient  bool
	maxDepth int
}

type ParseOption func(*parseOpts)

// ParseLenient accepts unknown entities and mismatched tags the way
// encoding/xml does in non-strict mode.  Entities are still never expanded
// from a DTD.
func ParseLenient() ParseOption {
	return func(o *parseOpts) { o.lenient = true }
}

// ParseMaxDepth limits element nesting; 0 means no limit.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
