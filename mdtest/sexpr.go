// Package mdtest runs the markdown test corpus: it extracts fenced test
// cases from test/*.md files and matches compiler output against
// s-expression patterns.
package mdtest

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a pattern Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeNumber
	NodeEllipsis
	NodeList
)

// Node is one datum of a parsed s-expression pattern.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeNumber
	Items []*Node // NodeList
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeNumber:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

// Parse parses input as a single s-expression datum.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()
	p.nextToken()

	result, err := p.parseDatum()
	if err != nil {
		return nil, err
	}
	if p.currentToken.kind != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.kind)
	}
	return result, nil
}

// Match reports the first place where actual does not satisfy pattern.
// An ellipsis matches any single datum; inside a list it matches all
// remaining items. The path in the error identifies the mismatched datum.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
	}
	switch pattern.Type {
	case NodeSymbol, NodeString, NodeNumber:
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	case NodeList:
		for i, sub := range pattern.Items {
			if sub.Type == NodeEllipsis {
				return nil
			}
			if i >= len(actual.Items) {
				return fmt.Errorf("at %s: missing item %d, expected %s", path, i, sub)
			}
			if err := match(sub, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		if len(actual.Items) > len(pattern.Items) {
			return fmt.Errorf("at %s: unexpected extra item %s", path, actual.Items[len(pattern.Items)])
		}
		return nil
	default:
		return fmt.Errorf("at %s: unhandled pattern type", path)
	}
}

type parser struct {
	lexer        *lexer
	currentToken token
	peekToken    token
}

func (p *parser) nextToken() {
	p.currentToken = p.peekToken
	p.peekToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	switch p.currentToken.kind {
	case tokenSymbol:
		node := &Node{Type: NodeSymbol, Text: p.currentToken.value}
		p.nextToken()
		return node, nil
	case tokenString:
		node := &Node{Type: NodeString, Text: p.currentToken.value}
		p.nextToken()
		return node, nil
	case tokenNumber:
		node := &Node{Type: NodeNumber, Text: p.currentToken.value}
		p.nextToken()
		return node, nil
	case tokenEllipsis:
		p.nextToken()
		return &Node{Type: NodeEllipsis}, nil
	case tokenLParen:
		return p.parseList()
	case tokenError:
		return nil, fmt.Errorf("%s", p.currentToken.value)
	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken.kind)
	}
}

func (p *parser) parseList() (*Node, error) {
	var items []*Node
	p.nextToken() // consume '('

	for p.currentToken.kind != tokenRParen && p.currentToken.kind != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.kind != tokenRParen {
		return nil, fmt.Errorf("expected ')' but got %s", p.currentToken.kind)
	}
	p.nextToken() // consume ')'

	return &Node{Type: NodeList, Items: items}, nil
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenSymbol
	tokenString
	tokenNumber
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenError
)

func (t tokenKind) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenError:
		return "error"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	kind  tokenKind
	value string
}

type lexer struct {
	input    string
	position int
	current  rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.position >= len(l.input) {
		l.current = 0
	} else {
		l.current = rune(l.input[l.position])
	}
	l.position++
}

func (l *lexer) peekChar() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return rune(l.input[l.position])
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.current) {
		l.readChar()
	}
}

func (l *lexer) skipComment() {
	for l.current != '\n' && l.current != '\r' && l.current != 0 {
		l.readChar()
	}
}

func (l *lexer) readSymbol() string {
	start := l.position - 1
	for isSymbolChar(l.current) {
		l.readChar()
	}
	return l.input[start : l.position-1]
}

func (l *lexer) readString() (string, error) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"':
				result.WriteByte('"')
			case '\\':
				result.WriteByte('\\')
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			result.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return result.String(), nil
}

// readNumber accepts an optional sign, digits, and an optional fraction.
func (l *lexer) readNumber() string {
	start := l.position - 1
	if l.current == '+' || l.current == '-' {
		l.readChar()
	}
	for unicode.IsDigit(l.current) {
		l.readChar()
	}
	if l.current == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.current) {
			l.readChar()
		}
	}
	return l.input[start : l.position-1]
}

func (l *lexer) nextToken() token {
	for {
		l.skipWhitespace()

		switch {
		case l.current == 0:
			return token{kind: tokenEOF}
		case l.current == ';':
			l.skipComment()
			continue
		case l.current == '(':
			l.readChar()
			return token{kind: tokenLParen, value: "("}
		case l.current == ')':
			l.readChar()
			return token{kind: tokenRParen, value: ")"}
		case l.current == '"':
			str, err := l.readString()
			if err != nil {
				return token{kind: tokenError, value: err.Error()}
			}
			return token{kind: tokenString, value: str}
		case l.current == '.':
			if l.peekChar() == '.' {
				l.readChar()
				if l.peekChar() == '.' {
					l.readChar()
					l.readChar()
					return token{kind: tokenEllipsis, value: "..."}
				}
			}
			return token{kind: tokenError, value: "unexpected character '.'"}
		case unicode.IsLetter(l.current):
			return token{kind: tokenSymbol, value: l.readSymbol()}
		case unicode.IsDigit(l.current) || l.current == '+' || l.current == '-':
			if (l.current == '+' || l.current == '-') && !unicode.IsDigit(l.peekChar()) {
				return token{kind: tokenSymbol, value: l.readSymbol()}
			}
			return token{kind: tokenNumber, value: l.readNumber()}
		default:
			return token{kind: tokenError, value: fmt.Sprintf("unexpected character %q", l.current)}
		}
	}
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
