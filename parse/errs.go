package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse         = errors.New("parse error")
	ErrUnboundPrefix = fmt.Errorf("%w: unbound namespace prefix", ErrParse)
	ErrTooDeep       = fmt.Errorf("%w: element nesting too deep", ErrParse)
)
