package tela

// BorderStyle represents different styles of box borders.
type BorderStyle int

const (
	// BorderNone indicates no border should be drawn.
	BorderNone BorderStyle = iota
	// BorderSingle uses single-line box-drawing characters.
	BorderSingle
	// BorderDouble uses double-line box-drawing characters.
	BorderDouble
	// BorderRounded uses rounded corner characters.
	BorderRounded
	// BorderThick uses heavy box-drawing characters.
	BorderThick
)

// BorderChars holds the characters used to draw a box border.
type BorderChars struct {
	TopLeft     rune
	Top         rune
	TopRight    rune
	Left        rune
	Right       rune
	BottomLeft  rune
	Bottom      rune
	BottomRight rune
}

var borderCharSets = map[BorderStyle]BorderChars{
	BorderSingle:  {'┌', '─', '┐', '│', '│', '└', '─', '┘'},
	BorderDouble:  {'╔', '═', '╗', '║', '║', '╚', '═', '╝'},
	BorderRounded: {'╭', '─', '╮', '│', '│', '╰', '─', '╯'},
	BorderThick:   {'┏', '━', '┓', '┃', '┃', '┗', '━', '┛'},
}

// Chars returns the box-drawing characters for this border style.
// BorderNone yields spaces.
func (b BorderStyle) Chars() BorderChars {
	if chars, ok := borderCharSets[b]; ok {
		return chars
	}
	return BorderChars{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}
}
