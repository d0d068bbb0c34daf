package merge

import "strings"

const MetaInf = "META-INF/"

// MetaInfName returns the file name of path when path lives directly
// under META-INF/.
func MetaInfName(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, MetaInf)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
