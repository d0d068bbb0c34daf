package taglib

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrRule = errors.New("taglib rule error")

// Rule maps declared library namespaces to a canonical target namespace.
// Pattern is a regular expression that must match the whole declared
// namespace.  When, if set, is an expression over namespace and file that
// must evaluate to true.  Target may refer to Pattern's submatches as $1
// or ${name}.
type Rule struct {
	Pattern string `yaml:"pattern"`
	When    string `yaml:"when,omitempty"`
	Target  string `yaml:"target"`
}

type rule struct {
	Rule
	re   *regexp.Regexp
	when *vm.Program
}

func compileRules(rules []Rule) ([]*rule, error) {
	res := make([]*rule, 0, len(rules))
	for i, r := range rules {
		c, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		res = append(res, c)
	}
	return res, nil
}

func compileRule(r Rule) (*rule, error) {
	if r.Target == "" {
		return nil, fmt.Errorf("%w: empty target", ErrRule)
	}
	re, err := regexp.Compile("^(?:" + r.Pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrRule, r.Pattern, err)
	}
	res := &rule{Rule: r, re: re}
	if r.When == "" {
		return res, nil
	}
	opts := append(exprOpts(), expr.Env(ruleEnv("", "")), expr.AsBool())
	res.when, err = expr.Compile(r.When, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: when %q: %w", ErrRule, r.When, err)
	}
	return res, nil
}

func ruleEnv(namespace, file string) map[string]any {
	return map[string]any{
		"namespace": namespace,
		"file":      file,
	}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("shortName", func(params ...any) (any, error) {
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("shortName: want a string, got %T", params[0])
			}
			return ShortName(s), nil
		}, new(func(string) string)),
	}
}

// apply returns the target of the first rule matching namespace declared
// in file, or namespace itself when no rule matches.
func apply(rules []*rule, namespace, file string) (string, error) {
	for _, r := range rules {
		m := r.re.FindStringSubmatchIndex(namespace)
		if m == nil {
			continue
		}
		if r.when != nil {
			out, err := vm.Run(r.when, ruleEnv(namespace, file))
			if err != nil {
				return "", fmt.Errorf("%w: when %q: %w", ErrRule, r.When, err)
			}
			if ok, _ := out.(bool); !ok {
				continue
			}
		}
		return string(r.re.ExpandString(nil, r.Target, namespace, m)), nil
	}
	return namespace, nil
}
