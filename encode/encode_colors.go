package encode

import (
	"github.com/signadot/haarprep/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(...any) string
	Map     map[Colorable]func(...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(...any) string{},
	}
	for _, t := range ir.Types() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintFunc()
	}
	colors.Map[Colorable{Type: ir.ObjectType, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintFunc()
	colors.Map[Colorable{Type: ir.NumberType, Attr: ValueColor}] = color.RGB(128, 216, 236).SprintFunc()
	colors.Map[Colorable{Type: ir.NullType, Attr: ValueColor}] = color.RGB(168, 0, 196).SprintFunc()
	colors.Map[Colorable{Type: ir.BoolType, Attr: ValueColor}] = color.New(color.FgCyan).SprintFunc()
	colors.Map[Colorable{Type: ir.StringType, Attr: ValueColor}] = color.RGB(8, 196, 16).SprintFunc()
	return colors
}

func colorDefault(v ...any) string {
	if len(v) == 1 {
		if s, ok := v[0].(string); ok {
			return s
		}
	}
	return ""
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
