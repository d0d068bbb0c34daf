package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse      bool
	Accept     bool
	Order      bool
	Namespaces bool
	Assembly   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DESCMERGE_DEBUG_PARSE")
	d.Accept = boolEnv("DESCMERGE_DEBUG_ACCEPT")
	d.Order = boolEnv("DESCMERGE_DEBUG_ORDER")
	d.Namespaces = boolEnv("DESCMERGE_DEBUG_NAMESPACES")
	d.Assembly = boolEnv("DESCMERGE_DEBUG_ASSEMBLY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Accept() bool {
	return d.Accept
}
func Order() bool {
	return d.Order
}
func Namespaces() bool {
	return d.Namespaces
}
func Assembly() bool {
	return d.Assembly
}
