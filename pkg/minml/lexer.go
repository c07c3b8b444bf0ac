package minml

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"minml/pkg/token"
)

func lower(ch rune) rune { return ('a' - 'A') | ch } // returns lower-case ch iff ch is ASCII letter

func isLetter(ch rune) bool {
	return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isDigit(ch rune) bool {
	return isDecimal(ch) || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

// Lex turns source text into tokens. Positions are 1-based row/column.
func Lex(src string) ([]token.Tok, error) {
	var out []token.Tok
	row, col := 1, 1
	for i := 0; i < len(src); {
		pos := token.Pos{Row: row, Col: col}
		c := src[i]
		switch c {
		case '\n':
			row++
			col = 1
			i++
		case ' ', '\t', '\r':
			col++
			i++
		case '(':
			out = append(out, token.Tok{Pos: pos, Kind: token.LPAREN, Lit: "("})
			col++
			i++
		case ')':
			out = append(out, token.Tok{Pos: pos, Kind: token.RPAREN, Lit: ")"})
			col++
			i++
		case '=':
			if i+1 < len(src) && src[i+1] == '>' {
				out = append(out, token.Tok{Pos: pos, Kind: token.FATARROW, Lit: "=>"})
				col += 2
				i += 2
			} else {
				out = append(out, token.Tok{Pos: pos, Kind: token.ASSIGN, Lit: "="})
				col++
				i++
			}
		case '-':
			if i+1 < len(src) && src[i+1] == '>' {
				out = append(out, token.Tok{Pos: pos, Kind: token.ARROW, Lit: "->"})
				col += 2
				i += 2
			} else {
				return nil, &SyntaxError{Pos: pos, Msg: "unexpected character '-'"}
			}
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
			} else {
				return nil, &SyntaxError{Pos: pos, Msg: "unexpected character '/'"}
			}
		default:
			ch, size := utf8.DecodeRuneInString(src[i:])
			switch {
			case isLetter(ch):
				start := i
				for i < len(src) {
					ch, size = utf8.DecodeRuneInString(src[i:])
					if !isLetter(ch) && !isDigit(ch) {
						break
					}
					i += size
					col++
				}
				lit := src[start:i]
				out = append(out, token.Tok{Pos: pos, Kind: token.Lookup(lit), Lit: lit})
			case isDecimal(ch):
				start := i
				for i < len(src) && isDecimal(rune(src[i])) {
					i++
					col++
				}
				out = append(out, token.Tok{Pos: pos, Kind: token.NUMBER, Lit: src[start:i]})
			default:
				return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", ch)}
			}
		}
	}
	return out, nil
}
