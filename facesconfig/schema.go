package facesconfig

import (
	"github.com/signadot/descmerge/merge"
)

const javaeeNS = merge.JavaEENamespace

// Schemas lists the supported output schemas, default first.
var Schemas = []merge.Schema{
	{
		Name:      "javaee-2.0",
		Namespace: merge.JavaEENamespace,
		Version:   "2.0",
		Location:  "http://java.sun.com/xml/ns/javaee/web-facesconfig_2_0.xsd",
	},
	{
		Name:      "jcp-2.2",
		Namespace: merge.JCPNamespace,
		Version:   "2.2",
		Location:  "http://xmlns.jcp.org/xml/ns/javaee/web-facesconfig_2_2.xsd",
		Legacy:    []string{merge.JavaEENamespace},
	},
	{
		Name:      "jakarta-3.0",
		Namespace: merge.JakartaNamespace,
		Version:   "3.0",
		Location:  "https://jakarta.ee/xml/ns/jakartaee/web-facesconfig_3_0.xsd",
		Legacy:    []string{merge.JavaEENamespace, merge.JCPNamespace},
	},
}

// Profile returns the named output schema; "" is javaee-2.0.
func Profile(name string) (merge.Schema, error) {
	return merge.FindSchema("faces-config", Schemas, name)
}
