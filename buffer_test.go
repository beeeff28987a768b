package tela

import (
	"testing"
)

func TestNewBuffer(t *testing.T) {
	type tc struct {
		width  int
		height int
	}

	tests := map[string]tc{
		"standard size": {
			width:  80,
			height: 24,
		},
		"small size": {
			width:  10,
			height: 5,
		},
		"single cell": {
			width:  1,
			height: 1,
		},
		"zero width": {
			width:  0,
			height: 10,
		},
		"negative dimensions": {
			width:  -5,
			height: -3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(tt.width, tt.height)

			wantW := max(tt.width, 0)
			wantH := max(tt.height, 0)

			if b.Width() != wantW {
				t.Errorf("Width() = %d, want %d", b.Width(), wantW)
			}
			if b.Height() != wantH {
				t.Errorf("Height() = %d, want %d", b.Height(), wantH)
			}

			rect := b.Rect()
			if rect.X != 0 || rect.Y != 0 || rect.Width != wantW || rect.Height != wantH {
				t.Errorf("Rect() = %+v, want {0, 0, %d, %d}", rect, wantW, wantH)
			}
		})
	}
}

func TestBuffer_InitializedWithSpaces(t *testing.T) {
	b := NewBuffer(5, 3)
	defaultStyle := NewStyle()

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			cell := b.Cell(x, y)
			if cell.Rune != ' ' {
				t.Errorf("Cell(%d, %d).Rune = %q, want ' '", x, y, cell.Rune)
			}
			if !cell.Style.Equal(defaultStyle) {
				t.Errorf("Cell(%d, %d) has non-default style", x, y)
			}
			if cell.Width != 1 {
				t.Errorf("Cell(%d, %d).Width = %d, want 1", x, y, cell.Width)
			}
		}
	}
}

func TestBuffer_SetCell_OutOfBounds(t *testing.T) {
	b := NewBuffer(5, 3)
	style := NewStyle().Foreground(Red)

	// None of these should panic or modify the buffer.
	b.SetCell(-1, 0, NewCell('X', style))
	b.SetCell(0, -1, NewCell('X', style))
	b.SetCell(5, 0, NewCell('X', style))
	b.SetCell(0, 3, NewCell('X', style))

	if got := b.Cell(-1, 0); got.Rune != 0 {
		t.Errorf("Cell(-1, 0) = %+v, want zero cell", got)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if b.Cell(x, y).Rune != ' ' {
				t.Errorf("Cell(%d, %d) modified by out-of-bounds write", x, y)
			}
		}
	}
}

func TestBuffer_SetRune_Wide(t *testing.T) {
	b := NewBuffer(10, 2)
	style := NewStyle()

	b.SetRune(2, 0, '世', style)

	cell := b.Cell(2, 0)
	if cell.Rune != '世' || cell.Width != 2 {
		t.Errorf("Cell(2, 0) = %+v, want wide '世'", cell)
	}
	cont := b.Cell(3, 0)
	if !cont.IsContinuation() {
		t.Errorf("Cell(3, 0) = %+v, want continuation cell", cont)
	}
}

func TestBuffer_SetRune_WideAtLastColumn(t *testing.T) {
	b := NewBuffer(5, 1)
	b.SetRune(4, 0, '世', NewStyle())

	// A wide rune can't fit in the last column; it pads with a space.
	cell := b.Cell(4, 0)
	if cell.Rune != ' ' || cell.Width != 1 {
		t.Errorf("Cell(4, 0) = %+v, want padded space", cell)
	}
}

func TestBuffer_OverwriteWideRune(t *testing.T) {
	type tc struct {
		overwriteX int // which half of the wide rune gets overwritten
		wantAt     map[int]rune
	}

	tests := map[string]tc{
		"overwrite start": {
			overwriteX: 2,
			wantAt:     map[int]rune{2: 'A', 3: ' '},
		},
		"overwrite continuation": {
			overwriteX: 3,
			wantAt:     map[int]rune{2: ' ', 3: 'A'},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(10, 1)
			b.SetRune(2, 0, '世', NewStyle())
			b.SetRune(tt.overwriteX, 0, 'A', NewStyle())

			for x, want := range tt.wantAt {
				cell := b.Cell(x, 0)
				if cell.Rune != want {
					t.Errorf("Cell(%d, 0).Rune = %q, want %q", x, cell.Rune, want)
				}
				if cell.IsContinuation() {
					t.Errorf("Cell(%d, 0) is an orphaned continuation", x)
				}
			}
		})
	}
}

func TestBuffer_WideRuneClobbersNeighbor(t *testing.T) {
	b := NewBuffer(10, 1)
	b.SetRune(3, 0, '世', NewStyle()) // occupies 3, 4
	b.SetRune(2, 0, '界', NewStyle()) // occupies 2, 3; clobbers the first

	if got := b.Cell(2, 0).Rune; got != '界' {
		t.Errorf("Cell(2, 0).Rune = %q, want '界'", got)
	}
	if !b.Cell(3, 0).IsContinuation() {
		t.Errorf("Cell(3, 0) should be the continuation of '界'")
	}
	if got := b.Cell(4, 0); got.IsContinuation() || got.Rune != ' ' {
		t.Errorf("Cell(4, 0) = %+v, want cleared cell", got)
	}
}

func TestBuffer_SetString(t *testing.T) {
	type tc struct {
		input     string
		startX    int
		wantWidth int
		wantText  string
	}

	tests := map[string]tc{
		"plain ascii": {
			input:     "hello",
			startX:    0,
			wantWidth: 5,
			wantText:  "hello",
		},
		"wide runes": {
			input:     "日本",
			startX:    0,
			wantWidth: 4,
			wantText:  "日本",
		},
		"mixed width": {
			input:     "a日b",
			startX:    1,
			wantWidth: 4,
			wantText:  " a日b",
		},
		"clipped at edge": {
			input:     "hello world",
			startX:    6,
			wantWidth: 4,
			wantText:  "      hell",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(10, 1)
			got := b.SetString(tt.startX, 0, tt.input, NewStyle())
			if got != tt.wantWidth {
				t.Errorf("SetString() = %d, want %d", got, tt.wantWidth)
			}
			if s := b.String(); s != tt.wantText {
				t.Errorf("String() = %q, want %q", s, tt.wantText)
			}
		})
	}
}

func TestBuffer_SetString_CombiningMark(t *testing.T) {
	b := NewBuffer(10, 1)

	// "e" plus a combining acute accent is a single grapheme cluster
	// occupying one column.
	got := b.SetString(0, 0, "éx", NewStyle())
	if got != 2 {
		t.Errorf("SetString() = %d, want 2", got)
	}
	if cell := b.Cell(1, 0); cell.Rune != 'x' {
		t.Errorf("Cell(1, 0).Rune = %q, want 'x'", cell.Rune)
	}
}

func TestBuffer_SetStringClipped(t *testing.T) {
	b := NewBuffer(10, 1)
	clip := NewRect(2, 0, 4, 1) // columns 2..5

	b.SetStringClipped(0, 0, "abcdefgh", NewStyle(), clip)

	if s := b.StringTrimmed(); s != "  cdef" {
		t.Errorf("StringTrimmed() = %q, want %q", s, "  cdef")
	}
}

func TestBuffer_SetStringClipped_WideStraddle(t *testing.T) {
	b := NewBuffer(10, 1)
	clip := NewRect(0, 0, 3, 1)

	// "世" would occupy columns 2 and 3; column 3 is outside the clip so
	// the whole cluster is dropped rather than halved.
	b.SetStringClipped(0, 0, "ab世c", NewStyle(), clip)

	if s := b.StringTrimmed(); s != "ab" {
		t.Errorf("StringTrimmed() = %q, want %q", s, "ab")
	}
}

func TestStringWidth(t *testing.T) {
	type tc struct {
		input string
		want  int
	}

	tests := map[string]tc{
		"empty":          {input: "", want: 0},
		"ascii":          {input: "hello", want: 5},
		"wide":           {input: "日本", want: 4},
		"combining mark": {input: "é", want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := StringWidth(tt.input); got != tt.want {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuffer_Fill(t *testing.T) {
	b := NewBuffer(5, 3)
	b.Fill(NewRect(1, 1, 3, 2), '#', NewStyle())

	want := "     \n ### \n ###"
	if s := b.StringTrimmed(); s != want {
		t.Errorf("StringTrimmed() = %q, want %q", s, want)
	}
}

func TestBuffer_Fill_Wide(t *testing.T) {
	b := NewBuffer(5, 1)
	b.Fill(NewRect(0, 0, 5, 1), '世', NewStyle())

	// Two wide runes fit in columns 0-3; column 4 is padded with a space.
	if s := b.String(); s != "世世 " {
		t.Errorf("String() = %q, want %q", s, "世世 ")
	}
}

func TestBuffer_SetStringGradient(t *testing.T) {
	b := NewBuffer(10, 1)
	g := Gradient{From: RGBColor(0, 0, 0), To: RGBColor(255, 255, 255)}

	width := b.SetStringGradient(0, 0, "abc", g, NewStyle())
	if width != 3 {
		t.Errorf("SetStringGradient() = %d, want 3", width)
	}

	first := b.Cell(0, 0).Style.Fg
	last := b.Cell(2, 0).Style.Fg
	if first.Equal(last) {
		t.Errorf("gradient endpoints have the same color: %+v", first)
	}
	if want := g.At(0); !first.Equal(want) {
		t.Errorf("first cell fg = %+v, want %+v", first, want)
	}
	if want := g.At(1); !last.Equal(want) {
		t.Errorf("last cell fg = %+v, want %+v", last, want)
	}
}

func TestBuffer_FillGradient_Directions(t *testing.T) {
	type tc struct {
		dir GradientDirection

		// coordinates whose backgrounds must differ
		ax, ay, bx, by int
	}

	tests := map[string]tc{
		"horizontal varies across columns": {
			dir: GradientHorizontal,
			ax:  0, ay: 0, bx: 4, by: 0,
		},
		"vertical varies across rows": {
			dir: GradientVertical,
			ax:  0, ay: 0, bx: 0, by: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(5, 4)
			g := Gradient{
				From:      RGBColor(0, 0, 0),
				To:        RGBColor(255, 0, 0),
				Direction: tt.dir,
			}
			b.FillGradient(b.Rect(), ' ', g, NewStyle())

			a := b.Cell(tt.ax, tt.ay).Style.Bg
			bb := b.Cell(tt.bx, tt.by).Style.Bg
			if a.Equal(bb) {
				t.Errorf("bg at (%d,%d) equals bg at (%d,%d): %+v",
					tt.ax, tt.ay, tt.bx, tt.by, a)
			}
		})
	}
}

func TestBuffer_ClearRect_WideEdges(t *testing.T) {
	b := NewBuffer(10, 1)
	b.SetRune(1, 0, '世', NewStyle()) // occupies 1, 2
	b.SetRune(5, 0, '界', NewStyle()) // occupies 5, 6

	// Region covers the continuation of the first and the start of the second.
	b.ClearRect(NewRect(2, 0, 4, 1))

	for x := 1; x <= 6; x++ {
		cell := b.Cell(x, 0)
		if cell.Rune != ' ' || cell.IsContinuation() {
			t.Errorf("Cell(%d, 0) = %+v, want cleared", x, cell)
		}
	}
}

func TestBuffer_Diff(t *testing.T) {
	b := NewBuffer(5, 3)

	if changes := b.Diff(); len(changes) != 0 {
		t.Fatalf("Diff() on fresh buffer = %d changes, want 0", len(changes))
	}

	b.SetRune(3, 0, 'A', NewStyle())
	b.SetRune(1, 2, 'B', NewStyle())
	b.SetRune(0, 1, 'C', NewStyle())

	changes := b.Diff()
	if len(changes) != 3 {
		t.Fatalf("Diff() = %d changes, want 3", len(changes))
	}

	// Row-major order: (3,0), (0,1), (1,2).
	wantOrder := []CellChange{
		{X: 3, Y: 0, Cell: NewCell('A', NewStyle())},
		{X: 0, Y: 1, Cell: NewCell('C', NewStyle())},
		{X: 1, Y: 2, Cell: NewCell('B', NewStyle())},
	}
	for i, want := range wantOrder {
		got := changes[i]
		if got.X != want.X || got.Y != want.Y || got.Cell.Rune != want.Cell.Rune {
			t.Errorf("changes[%d] = {%d, %d, %q}, want {%d, %d, %q}",
				i, got.X, got.Y, got.Cell.Rune, want.X, want.Y, want.Cell.Rune)
		}
	}
}

func TestBuffer_Diff_EmptyAfterSwap(t *testing.T) {
	b := NewBuffer(5, 3)
	b.SetString(0, 0, "hello", NewStyle())
	b.Swap()

	if changes := b.Diff(); len(changes) != 0 {
		t.Errorf("Diff() after Swap = %d changes, want 0", len(changes))
	}
}

func TestBuffer_Invalidate(t *testing.T) {
	b := NewBuffer(4, 2)
	b.SetString(0, 0, "hi", NewStyle())
	b.Swap()

	b.Invalidate()

	if changes := b.Diff(); len(changes) != 8 {
		t.Errorf("Diff() after Invalidate = %d changes, want 8", len(changes))
	}
}

func TestBuffer_Resize(t *testing.T) {
	type tc struct {
		newW, newH int
		want       string
	}

	tests := map[string]tc{
		"grow": {
			newW: 8, newH: 3,
			want: "abc\ndef\n",
		},
		"shrink": {
			newW: 2, newH: 1,
			want: "ab",
		},
		"same size": {
			newW: 3, newH: 2,
			want: "abc\ndef",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(3, 2)
			b.SetString(0, 0, "abc", NewStyle())
			b.SetString(0, 1, "def", NewStyle())

			b.Resize(tt.newW, tt.newH)

			if b.Width() != tt.newW || b.Height() != tt.newH {
				t.Errorf("size = (%d, %d), want (%d, %d)",
					b.Width(), b.Height(), tt.newW, tt.newH)
			}
			if s := b.StringTrimmed(); s != tt.want {
				t.Errorf("StringTrimmed() = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestBuffer_Cursor(t *testing.T) {
	b := NewBuffer(10, 5)

	if b.CursorVisible() {
		t.Error("cursor visible on a fresh buffer")
	}

	b.SetCursor(3, 2)
	b.ShowCursor(true)

	x, y := b.Cursor()
	if x != 3 || y != 2 {
		t.Errorf("Cursor() = (%d, %d), want (3, 2)", x, y)
	}
	if !b.CursorVisible() {
		t.Error("CursorVisible() = false after ShowCursor(true)")
	}
}
