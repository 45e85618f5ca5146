// Package lexer turns RoverScript source text into a stream of tokens.
//
// Tokenization runs in two passes: a preprocessing scan strips `//` and
// `/* */` comments while leaving quoted strings untouched (including any
// comment-like characters inside them), then a second scan splits the
// result on whitespace — with one exception, a double-quoted string is
// always a single token even if it contains spaces — and classifies each
// resulting lexeme.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/token"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Lexer scans RoverScript source text into tokens.
type Lexer struct {
	src string
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Lex tokenizes src in one call, returning the full token stream (always
// terminated by an EOF token) or the first lexical error encountered.
func Lex(src string) ([]token.Token, error) {
	return New(src).Lex()
}

// positionedRune is one surviving rune after comment-stripping, tagged
// with its original line/column and the full source line it came from (for
// error reporting).
type positionedRune struct {
	r        rune
	line     int
	col      int
	fullLine string
}

// Lex runs the full two-pass scan described in the package doc.
func (l *Lexer) Lex() ([]token.Token, error) {
	cleaned, err := stripComments(l.src)
	if err != nil {
		return nil, err
	}
	return tokenize(cleaned)
}

// stripComments performs a single left-to-right scan where three mutually
// exclusive modes (line-comment, block-comment, in-string) determine
// whether each rune survives into the cleaned stream.
func stripComments(src string) ([]positionedRune, error) {
	runes := []rune(src)
	lines := strings.Split(src, "\n")
	lineAt := func(n int) string {
		if n-1 >= 0 && n-1 < len(lines) {
			return lines[n-1]
		}
		return ""
	}

	const (
		modeBase = iota
		modeLineComment
		modeBlockComment
		modeString
	)

	var out []positionedRune
	mode := modeBase
	curLine, curCol := 1, 1

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch mode {
		case modeLineComment:
			if ch == '\n' {
				mode = modeBase
				out = append(out, positionedRune{ch, curLine, curCol, lineAt(curLine)})
			}
		case modeBlockComment:
			if ch == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				i++
				curCol++
				mode = modeBase
			} else if ch == '\n' {
				out = append(out, positionedRune{ch, curLine, curCol, lineAt(curLine)})
			}
		case modeString:
			out = append(out, positionedRune{ch, curLine, curCol, lineAt(curLine)})
			if ch == '"' {
				mode = modeBase
			}
		default: // modeBase
			if ch == '"' {
				mode = modeString
				out = append(out, positionedRune{ch, curLine, curCol, lineAt(curLine)})
			} else if ch == '/' && i+1 < len(runes) && runes[i+1] == '/' {
				mode = modeLineComment
				i++
				curCol++
			} else if ch == '/' && i+1 < len(runes) && runes[i+1] == '*' {
				mode = modeBlockComment
				i++
				curCol++
			} else {
				out = append(out, positionedRune{ch, curLine, curCol, lineAt(curLine)})
			}
		}

		if ch == '\n' {
			curLine++
			curCol = 1
		} else {
			curCol++
		}
	}

	if mode == modeBlockComment {
		return nil, roverr.NewLexError(token.Position{Line: curLine, Col: curCol}, lineAt(curLine), "unterminated block comment")
	}
	if mode == modeString {
		return nil, roverr.NewLexError(token.Position{Line: curLine, Col: curCol}, lineAt(curLine), "unterminated string literal")
	}

	return out, nil
}

// tokenize splits the cleaned rune stream on whitespace (quoted strings
// excepted) and classifies each lexeme.
func tokenize(runes []positionedRune) ([]token.Token, error) {
	var toks []token.Token
	i := 0
	n := len(runes)

	for i < n {
		if unicode.IsSpace(runes[i].r) {
			i++
			continue
		}

		start := i
		pos := token.Position{Line: runes[i].line, Col: runes[i].col}
		fullLine := runes[i].fullLine

		if runes[i].r == '"' {
			i++
			for i < n && runes[i].r != '"' {
				i++
			}
			if i >= n {
				return nil, roverr.NewLexError(pos, fullLine, "unterminated string literal")
			}
			i++ // consume closing quote
		} else {
			for i < n && !unicode.IsSpace(runes[i].r) && runes[i].r != '"' {
				i++
			}
		}

		var sb strings.Builder
		for _, pr := range runes[start:i] {
			sb.WriteRune(pr.r)
		}
		lexeme := sb.String()

		kind, err := classify(lexeme)
		if err != nil {
			return nil, roverr.NewLexError(pos, fullLine, err.Error())
		}

		toks = append(toks, token.Token{Lexeme: lexeme, Kind: kind, Pos: pos, FullLine: fullLine})
	}

	last := token.Position{Line: 1, Col: 1}
	lastLine := ""
	if n > 0 {
		last = token.Position{Line: runes[n-1].line, Col: runes[n-1].col + 1}
		lastLine = runes[n-1].fullLine
	}
	toks = append(toks, token.Token{Lexeme: "", Kind: token.EOF, Pos: last, FullLine: lastLine})

	return toks, nil
}

var punctAndOps = map[string]token.Kind{
	"(": token.LPAREN, ")": token.RPAREN,
	"{": token.LBRACE, "}": token.RBRACE,
	"[": token.LBRACKET, "]": token.RBRACKET,
	";": token.SEMI, ".": token.DOT, "=": token.ASSIGN,
	"+": token.PLUS, "-": token.MINUS, "*": token.STAR, "/": token.SLASH,
	"!": token.NOT, "&&": token.AND, "||": token.OR,
	"==": token.EQ, "!=": token.NEQ,
	"<": token.LT, ">": token.GT, "<=": token.LE, ">=": token.GE,
}

// classify implements the ordered classification: punctuation/operators,
// then keywords and basic types, then numeric and string literals, then
// identifiers. Rover action/getter lexemes are intentionally left classified as
// IDENT here; the parser resolves "rover . X" against token.ActionKinds /
// token.GetterKinds once it knows from grammar position whether an action
// or a getter is expected.
func classify(lexeme string) (token.Kind, error) {
	if k, ok := punctAndOps[lexeme]; ok {
		return k, nil
	}
	if k, ok := token.Lookup(lexeme); ok {
		return k, nil
	}
	if isIntLiteral(lexeme) {
		return token.NUM, nil
	}
	if isRealLiteral(lexeme) {
		return token.REAL, nil
	}
	if strings.HasPrefix(lexeme, `"`) && strings.HasSuffix(lexeme, `"`) && len(lexeme) >= 2 {
		return token.STRING, nil
	}
	if identPattern.MatchString(lexeme) {
		return token.IDENT, nil
	}
	return token.ILLEGAL, illegalLexemeError(lexeme)
}

func illegalLexemeError(lexeme string) error {
	return &lexError{msg: "Unexpected token: " + lexeme}
}

type lexError struct{ msg string }

func (e *lexError) Error() string { return e.msg }

// isIntLiteral reports whether lexeme looks like an integer: an optional
// leading sign followed by all digits, round-tripping through int64
// parsing.
func isIntLiteral(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	s := lexeme
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(lexeme, 10, 64)
	return err == nil
}

// isRealLiteral reports whether lexeme parses as a float but is not itself
// a valid integer literal.
func isRealLiteral(lexeme string) bool {
	if isIntLiteral(lexeme) {
		return false
	}
	_, err := strconv.ParseFloat(lexeme, 64)
	return err == nil
}
