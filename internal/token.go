package internal

import "fmt"

type tokenType int

const (
	tkEOF tokenType = iota - 1

	// Single-character tokens.
	// (, ), [, ], {, }, ',', ., ;, :, -, +, /, *, %, &, |, ^, ~
	tkLeftParen
	tkRightParen
	tkLeftBrace
	tkRightBrace
	tkLeftCurlyBrace
	tkRightCurlyBrace
	tkComma
	tkDot
	tkSemicolon
	tkColon
	tkMinus
	tkPlus
	tkSlash
	tkStar
	tkMod
	tkAmpersand
	tkPipe
	tkCaret
	tkTilde

	// One, two or three character tokens.
	// !, !=, =, ==, >, >=, <, <=, **, ->, ...
	tkBang
	tkBangEqual
	tkEqual
	tkEqualEqual
	tkGreater
	tkGreaterEqual
	tkLess
	tkLessEqual
	tkPower
	tkArrow
	tkEllipsis

	// Literals.
	tkIdentifier
	tkString
	tkNumber

	// Keywords.
	tkAnd
	tkBreak
	tkCase
	tkCatch
	tkClass
	tkContinue
	tkDefault
	tkElse
	tkFalse
	tkFor
	tkFun
	tkIf
	tkNil
	tkOr
	tkPrint
	tkReturn
	tkStatic
	tkSuper
	tkSwitch
	tkThis
	tkThrow
	tkTrue
	tkTry
	tkVar
	tkWhile
)

var tokenNames = map[tokenType]string{
	tkEOF:             "EOF",
	tkLeftParen:       "LEFT_PAREN",
	tkRightParen:      "RIGHT_PAREN",
	tkLeftBrace:       "LEFT_BRACE",
	tkRightBrace:      "RIGHT_BRACE",
	tkLeftCurlyBrace:  "LEFT_CURLY_BRACE",
	tkRightCurlyBrace: "RIGHT_CURLY_BRACE",
	tkComma:           "COMMA",
	tkDot:             "DOT",
	tkSemicolon:       "SEMICOLON",
	tkColon:           "COLON",
	tkMinus:           "MINUS",
	tkPlus:            "PLUS",
	tkSlash:           "SLASH",
	tkStar:            "STAR",
	tkMod:             "MOD",
	tkAmpersand:       "AMPERSAND",
	tkPipe:            "PIPE",
	tkCaret:           "CARET",
	tkTilde:           "TILDE",
	tkBang:            "BANG",
	tkBangEqual:       "BANG_EQUAL",
	tkEqual:           "EQUAL",
	tkEqualEqual:      "EQUAL_EQUAL",
	tkGreater:         "GREATER",
	tkGreaterEqual:    "GREATER_EQUAL",
	tkLess:            "LESS",
	tkLessEqual:       "LESS_EQUAL",
	tkPower:           "POWER",
	tkArrow:           "ARROW",
	tkEllipsis:        "ELLIPSIS",
	tkIdentifier:      "IDENTIFIER",
	tkString:          "STRING",
	tkNumber:          "NUMBER",
	tkAnd:             "AND",
	tkBreak:           "BREAK",
	tkCase:            "CASE",
	tkCatch:           "CATCH",
	tkClass:           "CLASS",
	tkContinue:        "CONTINUE",
	tkDefault:         "DEFAULT",
	tkElse:            "ELSE",
	tkFalse:           "FALSE",
	tkFor:             "FOR",
	tkFun:             "FUN",
	tkIf:              "IF",
	tkNil:             "NIL",
	tkOr:              "OR",
	tkPrint:           "PRINT",
	tkReturn:          "RETURN",
	tkStatic:          "STATIC",
	tkSuper:           "SUPER",
	tkSwitch:          "SWITCH",
	tkThis:            "THIS",
	tkThrow:           "THROW",
	tkTrue:            "TRUE",
	tkTry:             "TRY",
	tkVar:             "VAR",
	tkWhile:           "WHILE",
}

func (t tokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

type token struct {
	token   tokenType
	lexeme  string
	literal Value
	line    int
}

func (t *token) String() string {
	if t.literal != nil {
		return fmt.Sprintf("%d %s %s %s", t.line, t.token, t.lexeme, repr(t.literal))
	}
	return fmt.Sprintf("%d %s %s", t.line, t.token, t.lexeme)
}
