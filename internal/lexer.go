package internal

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	start   int
	current int
	line    int

	state *interpreterState
}

var keywords = map[string]tokenType{
	"and":      tkAnd,
	"break":    tkBreak,
	"case":     tkCase,
	"catch":    tkCatch,
	"class":    tkClass,
	"continue": tkContinue,
	"default":  tkDefault,
	"else":     tkElse,
	"false":    tkFalse,
	"for":      tkFor,
	"fun":      tkFun,
	"if":       tkIf,
	"nil":      tkNil,
	"or":       tkOr,
	"print":    tkPrint,
	"return":   tkReturn,
	"static":   tkStatic,
	"super":    tkSuper,
	"switch":   tkSwitch,
	"this":     tkThis,
	"throw":    tkThrow,
	"true":     tkTrue,
	"try":      tkTry,
	"var":      tkVar,
	"while":    tkWhile,
}

func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.start = l.current
	l.emit(tkEOF, nil)
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '[':
		l.emit(tkLeftBrace, nil)
	case ']':
		l.emit(tkRightBrace, nil)
	case '{':
		l.emit(tkLeftCurlyBrace, nil)
	case '}':
		l.emit(tkRightCurlyBrace, nil)
	case '(':
		l.emit(tkLeftParen, nil)
	case ')':
		l.emit(tkRightParen, nil)
	case ',':
		l.emit(tkComma, nil)
	case ';':
		l.emit(tkSemicolon, nil)
	case ':':
		l.emit(tkColon, nil)
	case '+':
		l.emit(tkPlus, nil)
	case '%':
		l.emit(tkMod, nil)
	case '&':
		l.emit(tkAmpersand, nil)
	case '|':
		l.emit(tkPipe, nil)
	case '^':
		l.emit(tkCaret, nil)
	case '~':
		l.emit(tkTilde, nil)
	case '.':
		if l.peek() == '.' && l.peekNext() == '.' {
			l.advance()
			l.advance()
			l.emit(tkEllipsis, nil)
		} else {
			l.emit(tkDot, nil)
		}
	case '-':
		if l.match('>') {
			l.emit(tkArrow, nil)
		} else {
			l.emit(tkMinus, nil)
		}
	case '*':
		if l.match('*') {
			l.emit(tkPower, nil)
		} else {
			l.emit(tkStar, nil)
		}
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else if l.match('*') {
			l.blockComment()
		} else {
			l.emit(tkSlash, nil)
		}
	case '!':
		if l.match('=') {
			l.emit(tkBangEqual, nil)
		} else {
			l.emit(tkBang, nil)
		}
	case '=':
		if l.match('=') {
			l.emit(tkEqualEqual, nil)
		} else {
			l.emit(tkEqual, nil)
		}
	case '<':
		if l.match('=') {
			l.emit(tkLessEqual, nil)
		} else {
			l.emit(tkLess, nil)
		}
	case '>':
		if l.match('=') {
			l.emit(tkGreaterEqual, nil)
		} else {
			l.emit(tkGreater, nil)
		}

	// Ignore whitespace
	case ' ', '\r', '\t':

	case '\n':
		l.line++

	case '"':
		l.string()

	default:
		if isDigit(c) {
			l.number()
		} else if isAlpha(c) {
			l.identifier()
		} else {
			l.state.setError(errIllegalChar, l.line, l.start)
		}
	}
}

func (l *lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.advance() == '\n' {
			l.line++
		}
	}
	l.state.setError(errUnclosedComment, l.line, l.start)
}

func (l *lexer) string() {
	line := l.line
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '"' {
		c := l.advance()
		if c == '\n' {
			l.line++
		}
		if c == '\\' && !l.isAtEnd() {
			switch esc := l.advance(); esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(c)
	}

	if l.isAtEnd() {
		l.state.setError(errUnclosedString, line, l.start)
		return
	}

	// Consume ending "
	l.advance()

	l.emit(tkString, lumenString(sb.String()))
}

func (l *lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal, err := strconv.ParseFloat(l.source()[l.start:l.current], 64)
	if err != nil {
		l.state.setError(errInvalidNumber, l.line, l.start)
		return
	}

	l.emit(tkNumber, lumenNumber(literal))
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	identifier := l.source()[l.start:l.current]

	tokenType, ok := keywords[identifier]
	if !ok {
		tokenType = tkIdentifier
	}

	l.emit(tokenType, nil)
}

func (l *lexer) source() string {
	return l.state.source
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source()[l.current:])
	l.current += size
	return r
}

func (l *lexer) match(c rune) bool {
	if l.isAtEnd() || l.peek() != c {
		return false
	}
	l.advance()
	return true
}

func (l *lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source()[l.current:])
	return r
}

func (l *lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source()[l.current:])
	if l.current+size >= len(l.source()) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source()[l.current+size:])
	return r
}

func (l *lexer) emit(tk tokenType, literal Value) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  l.source()[l.start:l.current],
		literal: literal,
		line:    l.line,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.source())
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (c > unicode.MaxASCII && unicode.IsLetter(c))
}
