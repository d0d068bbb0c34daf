package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	PunctColor ColorAttr = iota
	ElementColor
	AttrNameColor
	AttrValueColor
	NamespaceColor
	TextColor
	DeclColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[PunctColor] = color.RGB(196, 128, 128).SprintfFunc()
	colors.Map[ElementColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[AttrNameColor] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[AttrValueColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[NamespaceColor] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[TextColor] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[DeclColor] = color.BlueString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
