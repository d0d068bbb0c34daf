package taglib

import "github.com/signadot/descmerge/merge"

var Schemas = []merge.Schema{
	{
		Name:      "javaee-2.0",
		Namespace: merge.JavaEENamespace,
		Version:   "2.0",
		Location:  "http://java.sun.com/xml/ns/javaee/web-facelettaglibrary_2_0.xsd",
	},
	{
		Name:      "jcp-2.2",
		Namespace: merge.JCPNamespace,
		Version:   "2.2",
		Location:  "http://xmlns.jcp.org/xml/ns/javaee/web-facelettaglibrary_2_2.xsd",
		Legacy:    []string{merge.JavaEENamespace},
	},
	{
		Name:      "jakarta-3.0",
		Namespace: merge.JakartaNamespace,
		Version:   "3.0",
		Location:  "https://jakarta.ee/xml/ns/jakartaee/web-facelettaglibrary_3_0.xsd",
		Legacy:    []string{merge.JavaEENamespace, merge.JCPNamespace},
	},
}

func Profile(name string) (merge.Schema, error) {
	return merge.FindSchema("taglib", Schemas, name)
}
