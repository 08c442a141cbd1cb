package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// listLiteral is the grammar of a multivalued cell, e.g. ['Action', "Assassin's Creed"].
type listLiteral struct {
	Items []string `parser:"\"[\" ( @String ( \",\" @String )* \",\"? )? \"]\""`
}

var listLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:\\[\s\S]|[^'\\])*'|"(?:\\[\s\S]|[^"\\])*"`},
	{Name: "Punct", Pattern: `[\[\],]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var listParser = participle.MustBuild[listLiteral](
	participle.Lexer(listLexer),
	participle.Map(unquoteToken, "String"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseList decodes a list literal cell. An empty cell yields an empty list.
func ParseList(cell string) ([]string, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return []string{}, nil
	}
	lit, err := listParser.ParseString("", s)
	if err != nil {
		return nil, &Error{Kind: KindList, Input: cell, Err: err}
	}
	if lit.Items == nil {
		return []string{}, nil
	}
	return lit.Items, nil
}

// FormatList encodes items the way ParseList reads them back.
func FormatList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		quoteString(&b, item)
	}
	b.WriteByte(']')
	return b.String()
}

func unquoteToken(tok lexer.Token) (lexer.Token, error) {
	s, err := unquote(tok.Value)
	if err != nil {
		return tok, participle.Errorf(tok.Pos, "%v", err)
	}
	tok.Value = s
	return tok, nil
}

var errBadEscape = errors.New("invalid escape sequence")

// hex digits following \x, \u and \U
var escapeWidth = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// unquote strips the quotes of a single- or double-quoted literal and
// resolves backslash escapes. Unknown escapes are kept verbatim.
func unquote(lit string) (string, error) {
	if len(lit) < 2 {
		return "", errors.New("unterminated string")
	}
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(body) {
			return "", errBadEscape
		}
		i++
		switch e := body[i]; e {
		case '\n':
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'x', 'u', 'U':
			width := escapeWidth[e]
			if i+width >= len(body) {
				return "", fmt.Errorf("%w: truncated \\%c", errBadEscape, e)
			}
			r, err := strconv.ParseUint(body[i+1:i+1+width], 16, 32)
			if err != nil || r > utf8.MaxRune {
				return "", fmt.Errorf("%w: \\%c%s", errBadEscape, e, body[i+1:i+1+width])
			}
			b.WriteRune(rune(r))
			i += width
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 0
			j := i
			for ; j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '7'; j++ {
				n = n*8 + int(body[j]-'0')
			}
			b.WriteRune(rune(n))
			i = j - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String(), nil
}

func quoteString(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case strconv.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(b, `\u%04x`, r)
		default:
			fmt.Fprintf(b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
}
