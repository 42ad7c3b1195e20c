package main

// TokenKind is the type of token (identifier, operator, literal, etc.).
type TokenKind string

// Definition of token kinds
const (
	// Special tokens
	ILLEGAL TokenKind = "ILLEGAL"
	EOF     TokenKind = "EOF"

	// Identifiers + literals
	IDENT  TokenKind = "IDENT" // main, foo, _bar
	INT    TokenKind = "INT"   // 12345
	FLOAT  TokenKind = "FLOAT" // 3.14
	STRING TokenKind = "STRING"

	// Operators
	ASSIGN   TokenKind = "="
	PLUS     TokenKind = "+"
	MINUS    TokenKind = "-"
	BANG     TokenKind = "!"
	ASTERISK TokenKind = "*"
	SLASH    TokenKind = "/"
	PERCENT  TokenKind = "%"

	LT     TokenKind = "<"
	GT     TokenKind = ">"
	EQ     TokenKind = "=="
	NOT_EQ TokenKind = "!="
	LE     TokenKind = "<="
	GE     TokenKind = ">="

	AND TokenKind = "&&"
	OR  TokenKind = "||"

	RANGE      TokenKind = ".."
	RANGE_INCL TokenKind = "..="

	// Delimiters
	COMMA     TokenKind = ","
	SEMICOLON TokenKind = ";"
	COLON     TokenKind = ":"
	LPAREN    TokenKind = "("
	RPAREN    TokenKind = ")"
	LBRACE    TokenKind = "{"
	RBRACE    TokenKind = "}"
	LBRACKET  TokenKind = "["
	RBRACKET  TokenKind = "]"
	DOT       TokenKind = "."

	// Keywords
	LET      TokenKind = "LET"
	CONST    TokenKind = "CONST"
	FN       TokenKind = "FN"
	STRUCT   TokenKind = "STRUCT"
	ENUM     TokenKind = "ENUM"
	IF       TokenKind = "IF"
	ELSE     TokenKind = "ELSE"
	WHILE    TokenKind = "WHILE"
	FOR      TokenKind = "FOR"
	IN       TokenKind = "IN"
	RETURN   TokenKind = "RETURN"
	BREAK    TokenKind = "BREAK"
	CONTINUE TokenKind = "CONTINUE"
	PRINT    TokenKind = "PRINT"
	IMPORT   TokenKind = "IMPORT"
	TRUE     TokenKind = "TRUE"
	FALSE    TokenKind = "FALSE"

	// Type keywords
	INT_TYPE   TokenKind = "INT_TYPE"
	FLOAT_TYPE TokenKind = "FLOAT_TYPE"
	BOOL_TYPE  TokenKind = "BOOL_TYPE"
	STR_TYPE   TokenKind = "STR_TYPE"
	VOID       TokenKind = "VOID"
)

var keywords = map[string]TokenKind{
	"let":      LET,
	"const":    CONST,
	"fn":       FN,
	"struct":   STRUCT,
	"enum":     ENUM,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"print":    PRINT,
	"import":   IMPORT,
	"true":     TRUE,
	"false":    FALSE,
	"int":      INT_TYPE,
	"float":    FLOAT_TYPE,
	"bool":     BOOL_TYPE,
	"str":      STR_TYPE,
	"void":     VOID,
}

// Token is one lexical element of a Tern source file. Tokens are produced
// once by the lexer and never mutated.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Int    int64   // only meaningful when Kind == INT
	Float  float64 // only meaningful when Kind == FLOAT
	Str    string  // only meaningful when Kind == STRING
	Span   Span
}

// isTypeKeyword reports whether kind names one of the primitive types that
// can double as a cast target when followed by '('.
func isTypeKeyword(kind TokenKind) bool {
	switch kind {
	case INT_TYPE, FLOAT_TYPE, BOOL_TYPE, STR_TYPE:
		return true
	default:
		return false
	}
}
