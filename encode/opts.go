package encode

type EncodeOption func(*EncState)

// EncodeIndent sets the number of spaces per nesting level.  Zero writes
// the document on a single line.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeDeclaration(v bool) EncodeOption {
	return func(es *EncState) { es.declaration = v }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
