package main

import "strconv"

// Lexer scans Tern source text into tokens. Each call to Next returns the
// following token; the stream ends with an EOF token. A Lexer holds no global
// state, so independent instances are safe to run in parallel.
type Lexer struct {
	src      string
	source   string // name reported in spans, e.g. the file name
	pos      int
	line     int
	col      int
	lastLine int // end of the most recent token, anchors the EOF span
	lastCol  int
}

func NewLexer(src, source string) *Lexer {
	return &Lexer{src: src, source: source, line: 1, col: 1, lastLine: 1, lastCol: 1}
}

// Scan tokenizes src in one pass. The returned slice always ends with an EOF
// token; the first malformed character aborts the scan.
func Scan(src, source string) ([]Token, error) {
	l := NewLexer(src, source)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) here() Span {
	return Span{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col + 1, Source: l.source}
}

func (l *Lexer) spanFrom(startLine, startCol int) Span {
	return Span{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col, Source: l.source}
}

// Next scans and returns the next token. The EOF token is anchored at the
// end of the last real token, so errors at end of input point into the
// program rather than past trailing whitespace.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind == EOF {
		tok.Span = Span{
			StartLine: l.lastLine, StartCol: l.lastCol,
			EndLine: l.lastLine, EndCol: l.lastCol + 1,
			Source: l.source,
		}
	} else {
		l.lastLine, l.lastCol = tok.Span.EndLine, tok.Span.EndCol
	}
	return tok, nil
}

func (l *Lexer) next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	startLine, startCol := l.line, l.col
	emit := func(kind TokenKind, lexeme string) Token {
		return Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(startLine, startCol)}
	}

	c := l.peek()
	switch {
	case c == 0:
		return emit(EOF, ""), nil

	case c == '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return emit(EQ, "=="), nil
		}
		return emit(ASSIGN, "="), nil

	case c == '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return emit(NOT_EQ, "!="), nil
		}
		return emit(BANG, "!"), nil

	case c == '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return emit(LE, "<="), nil
		}
		return emit(LT, "<"), nil

	case c == '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return emit(GE, ">="), nil
		}
		return emit(GT, ">"), nil

	case c == '&':
		l.advance()
		if l.peek() == '&' {
			l.advance()
			return emit(AND, "&&"), nil
		}
		return Token{}, syntaxErrorf(l.spanFrom(startLine, startCol), "unexpected character '&'")

	case c == '|':
		l.advance()
		if l.peek() == '|' {
			l.advance()
			return emit(OR, "||"), nil
		}
		return Token{}, syntaxErrorf(l.spanFrom(startLine, startCol), "unexpected character '|'")

	case c == '.':
		l.advance()
		if l.peek() == '.' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
				return emit(RANGE_INCL, "..="), nil
			}
			return emit(RANGE, ".."), nil
		}
		return emit(DOT, "."), nil

	case c == '+':
		l.advance()
		return emit(PLUS, "+"), nil
	case c == '-':
		l.advance()
		return emit(MINUS, "-"), nil
	case c == '*':
		l.advance()
		return emit(ASTERISK, "*"), nil
	case c == '/':
		l.advance()
		return emit(SLASH, "/"), nil
	case c == '%':
		l.advance()
		return emit(PERCENT, "%"), nil
	case c == ',':
		l.advance()
		return emit(COMMA, ","), nil
	case c == ';':
		l.advance()
		return emit(SEMICOLON, ";"), nil
	case c == ':':
		l.advance()
		return emit(COLON, ":"), nil
	case c == '(':
		l.advance()
		return emit(LPAREN, "("), nil
	case c == ')':
		l.advance()
		return emit(RPAREN, ")"), nil
	case c == '{':
		l.advance()
		return emit(LBRACE, "{"), nil
	case c == '}':
		l.advance()
		return emit(RBRACE, "}"), nil
	case c == '[':
		l.advance()
		return emit(LBRACKET, "["), nil
	case c == ']':
		l.advance()
		return emit(RBRACKET, "]"), nil

	case c == '"':
		return l.readString(startLine, startCol)

	case isDigit(c):
		return l.readNumber(startLine, startCol)

	case isLetter(c):
		lexeme := l.readIdentifier()
		tok := emit(IDENT, lexeme)
		if kind, ok := keywords[lexeme]; ok {
			tok.Kind = kind
		}
		return tok, nil

	default:
		l.advance()
		return Token{}, syntaxErrorf(l.spanFrom(startLine, startCol), "unexpected character %q", string(c))
	}
}

// skipTrivia consumes whitespace and comments.
func (l *Lexer) skipTrivia() error {
	for {
		c := l.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.advance()
			continue
		}
		if c == '/' && l.peekAt(1) == '/' {
			for l.peek() != '\n' && l.peek() != 0 {
				l.advance()
			}
			continue
		}
		if c == '/' && l.peekAt(1) == '*' {
			startLine, startCol := l.line, l.col
			l.advance()
			l.advance()
			for {
				if l.peek() == 0 {
					return syntaxErrorf(l.spanFrom(startLine, startCol), "unterminated block comment")
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
			continue
		}
		return nil
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// readNumber scans an integer or float literal. A '.' only starts the
// fractional part when a digit follows, so "0..10" lexes as two integers
// around a range operator.
func (l *Lexer) readNumber(startLine, startCol int) (Token, error) {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.src[start:l.pos]
	span := l.spanFrom(startLine, startCol)
	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Token{}, syntaxErrorf(span, "invalid float literal %q", lexeme)
		}
		return Token{Kind: FLOAT, Lexeme: lexeme, Float: val, Span: span}, nil
	}
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Token{}, syntaxErrorf(span, "integer literal %q out of range", lexeme)
	}
	return Token{Kind: INT, Lexeme: lexeme, Int: val, Span: span}, nil
}

func (l *Lexer) readString(startLine, startCol int) (Token, error) {
	startOff := l.pos
	l.advance() // opening quote
	var out []byte
	for {
		c := l.peek()
		if c == 0 || c == '\n' {
			return Token{}, syntaxErrorf(l.spanFrom(startLine, startCol), "unterminated string literal")
		}
		if c == '"' {
			l.advance()
			break
		}
		if c == '\\' {
			l.advance()
			switch l.peek() {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				return Token{}, syntaxErrorf(l.here(), "invalid escape sequence '\\%s'", string(l.peek()))
			}
			l.advance()
			continue
		}
		out = append(out, c)
		l.advance()
	}
	span := l.spanFrom(startLine, startCol)
	return Token{Kind: STRING, Lexeme: l.src[startOff:l.pos], Str: string(out), Span: span}, nil
}
