package token

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Plus, "Plus"},
		{EqualEqual, "EqualEqual"},
		{Eof, "Eof"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestKeywordsCoverSpecSet(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil", "or",
		"print", "return", "super", "this", "true", "var", "while",
	}
	if len(Keywords) != len(want) {
		t.Fatalf("Keywords has %d entries, want %d", len(Keywords), len(want))
	}
	for _, w := range want {
		if _, ok := Keywords[w]; !ok {
			t.Errorf("Keywords missing %q", w)
		}
	}
}

func TestNewToken(t *testing.T) {
	tok := New(Number, "123", 4)
	if tok.Kind != Number || tok.Lexeme != "123" || tok.Line != 4 {
		t.Errorf("New() = %+v, want Kind=Number Lexeme=123 Line=4", tok)
	}
}
