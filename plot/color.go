package plot

// Colors is the palette ColorPicker cycles through.
var Colors = []string{
	"red",
	"green",
	"blue",
	"magenta",
	"orange",
	"cyan",
	"purple",
	"lime",
	"#AABBCC",
	"#BBAACC",
	"#CCBBAA",
	"#AABBAA",
}

// ColorPicker hands out stroke colors in palette order, wrapping around.
type ColorPicker struct {
	next int
}

// Next returns the next color.
func (p *ColorPicker) Next() string {
	color := Colors[p.next%len(Colors)]
	p.next++

	return color
}

// Reset restarts from the first color.
func (p *ColorPicker) Reset() {
	p.next = 0
}
