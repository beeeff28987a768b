package tela

import (
	"testing"
)

func TestBorderStyle_Chars(t *testing.T) {
	type tc struct {
		style BorderStyle
		want  BorderChars
	}

	tests := map[string]tc{
		"single": {
			style: BorderSingle,
			want:  BorderChars{'┌', '─', '┐', '│', '│', '└', '─', '┘'},
		},
		"double": {
			style: BorderDouble,
			want:  BorderChars{'╔', '═', '╗', '║', '║', '╚', '═', '╝'},
		},
		"rounded": {
			style: BorderRounded,
			want:  BorderChars{'╭', '─', '╮', '│', '│', '╰', '─', '╯'},
		},
		"thick": {
			style: BorderThick,
			want:  BorderChars{'┏', '━', '┓', '┃', '┃', '┗', '━', '┛'},
		},
		"none is spaces": {
			style: BorderNone,
			want:  BorderChars{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.style.Chars(); got != tt.want {
				t.Errorf("Chars() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
