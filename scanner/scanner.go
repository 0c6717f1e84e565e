// Package scanner turns glint source text into a stream of tokens.
//
// It is restartable: each call to Next produces exactly one token, so the
// compiler can interleave scanning with parsing instead of materializing a
// token slice up front.
package scanner

import (
	"glint/token"
)

// Scanner walks a source buffer one byte at a time. Tokens it produces
// borrow their lexeme directly from source, so the Scanner (and every Token
// it returns) must not outlive the string it was built with.
type Scanner struct {
	source  string
	start   int
	current int
	line    int
}

func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Next scans and returns the next token, advancing past it.
func (s *Scanner) Next() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return s.make(token.Eof)
	}

	c := s.advance()

	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LeftParen)
	case ')':
		return s.make(token.RightParen)
	case '{':
		return s.make(token.LeftBrace)
	case '}':
		return s.make(token.RightBrace)
	case ';':
		return s.make(token.Semicolon)
	case ',':
		return s.make(token.Comma)
	case '.':
		return s.make(token.Dot)
	case '-':
		return s.make(token.Minus)
	case '+':
		return s.make(token.Plus)
	case '/':
		return s.make(token.Slash)
	case '*':
		return s.make(token.Star)
	case '!':
		return s.make(s.choose('=', token.BangEqual, token.Bang))
	case '=':
		return s.make(s.choose('=', token.EqualEqual, token.Equal))
	case '<':
		return s.make(s.choose('=', token.LessEqual, token.Less))
	case '>':
		return s.make(s.choose('=', token.GreaterEqual, token.Greater))
	case '"':
		return s.string()
	}

	return s.errorToken("Unexpected character.")
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.source) }

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) choose(expected byte, ifMatch, otherwise token.Kind) token.Kind {
	if s.atEnd() || s.source[s.current] != expected {
		return otherwise
	}
	s.current++
	return ifMatch
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.New(kind, s.source[s.start:s.current], s.line)
}

func (s *Scanner) errorToken(message string) token.Token {
	return token.New(token.Error, message, s.line)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.make(token.Number)
}

// string scans a double-quoted string literal. Spec-corrected behavior: an
// unterminated string is reported exactly when the scanner runs off the end
// of the source without finding the closing quote.
func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		return s.errorToken("Unterminated string.")
	}

	s.advance() // closing quote
	return s.make(token.String)
}

// identifier scans a run of alphanumeric/underscore characters and
// classifies it as a keyword or a plain identifier via a first-letter,
// then second-letter, dispatch trie.
func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	return s.make(s.identifierKind())
}

func (s *Scanner) identifierKind() token.Kind {
	lexeme := s.source[s.start:s.current]
	switch lexeme[0] {
	case 'a':
		return s.checkKeyword(lexeme, "and", token.And)
	case 'c':
		return s.checkKeyword(lexeme, "class", token.Class)
	case 'e':
		return s.checkKeyword(lexeme, "else", token.Else)
	case 'i':
		return s.checkKeyword(lexeme, "if", token.If)
	case 'n':
		return s.checkKeyword(lexeme, "nil", token.Nil)
	case 'o':
		return s.checkKeyword(lexeme, "or", token.Or)
	case 'p':
		return s.checkKeyword(lexeme, "print", token.Print)
	case 'r':
		return s.checkKeyword(lexeme, "return", token.Return)
	case 's':
		return s.checkKeyword(lexeme, "super", token.Super)
	case 'v':
		return s.checkKeyword(lexeme, "var", token.Var)
	case 'w':
		return s.checkKeyword(lexeme, "while", token.While)
	case 'f':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'a':
				return s.checkKeyword(lexeme, "false", token.False)
			case 'o':
				return s.checkKeyword(lexeme, "for", token.For)
			case 'u':
				return s.checkKeyword(lexeme, "fun", token.Fun)
			}
		}
	case 't':
		if len(lexeme) > 1 {
			switch lexeme[1] {
			case 'h':
				return s.checkKeyword(lexeme, "this", token.This)
			case 'r':
				return s.checkKeyword(lexeme, "true", token.True)
			}
		}
	}
	return token.Identifier
}

func (s *Scanner) checkKeyword(lexeme, keyword string, kind token.Kind) token.Kind {
	if lexeme == keyword {
		return kind
	}
	return token.Identifier
}
