// Package recommend extracts product recommendation tokens from assistant replies.
//
// A token has the form
//
//	"[" "RECOMMEND:" ws* id ws* "]"
//
// where ws is a space or tab and id is any non-empty run of characters other
// than '[', ']', '\n' and '\r'. The prefix is case-sensitive. Anything that
// looks like the start of a token but does not complete one is left in the
// text untouched.
package recommend

import (
	"strings"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

const tokenPrefix = "RECOMMEND:"

// Token is one well-formed recommendation token found in the source text.
// Start and End are byte offsets, End exclusive.
type Token struct {
	ID       string `json:"id"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Resolved bool   `json:"resolved"`
}

// Result is the outcome of parsing one reply.
type Result struct {
	Text     string
	Products []domain.Product
	Tokens   []Token
}

// LookupFunc resolves a product id against the catalogue.
type LookupFunc func(id string) (domain.Product, bool)

// Parse strips every token from text and resolves the referenced products.
// Products are returned in text order, each at most once. Ids that do not
// resolve are dropped.
func Parse(text string, lookup LookupFunc) Result {
	var (
		b      strings.Builder
		tokens []Token
		last   int
	)
	for i := 0; i < len(text); {
		if text[i] != '[' {
			i++
			continue
		}
		tok, ok := scanToken(text, i)
		if !ok {
			// resume right after the bracket so an inner '[' gets its own chance
			i++
			continue
		}
		b.WriteString(text[last:i])
		tokens = append(tokens, tok)
		last = tok.End
		i = tok.End
	}
	if len(tokens) == 0 {
		return Result{Text: text}
	}
	b.WriteString(text[last:])

	res := Result{Text: strings.TrimSpace(b.String())}
	seen := make(map[string]struct{}, len(tokens))
	for i := range tokens {
		p, ok := lookup(tokens[i].ID)
		if !ok {
			continue
		}
		tokens[i].Resolved = true
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		res.Products = append(res.Products, p)
	}
	res.Tokens = tokens
	return res
}

type scanState int

const (
	stateLeadingSpace scanState = iota
	stateID
)

// scanToken tries to read a token whose '[' is at start.
func scanToken(src string, start int) (Token, bool) {
	pos := start + 1
	if !strings.HasPrefix(src[pos:], tokenPrefix) {
		return Token{}, false
	}
	pos += len(tokenPrefix)

	state := stateLeadingSpace
	idStart := pos
	for ; pos < len(src); pos++ {
		c := src[pos]
		switch c {
		case '[', '\n', '\r':
			return Token{}, false
		case ']':
			if state != stateID {
				return Token{}, false
			}
			id := strings.TrimRight(src[idStart:pos], " \t")
			return Token{ID: id, Start: start, End: pos + 1}, true
		case ' ', '\t':
			if state == stateLeadingSpace {
				idStart = pos + 1
			}
		default:
			state = stateID
		}
	}
	return Token{}, false
}
