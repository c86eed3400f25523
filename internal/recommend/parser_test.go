package recommend

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

func testLookup(ids ...string) LookupFunc {
	known := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		known[id] = domain.Product{ID: id, Name: "Product " + id}
	}
	return func(id string) (domain.Product, bool) {
		p, ok := known[id]
		return p, ok
	}
}

func productIDs(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestParseResolvesAndDropsUnknown(t *testing.T) {
	res := Parse("Try [RECOMMEND: p1] or [RECOMMEND: p9]", testLookup("p1", "p2"))

	assert.Equal(t, "Try  or", res.Text)
	assert.Equal(t, []string{"p1"}, productIDs(res.Products))
	require.Len(t, res.Tokens, 2)
	assert.True(t, res.Tokens[0].Resolved)
	assert.False(t, res.Tokens[1].Resolved)
}

func TestParsePreservesTextOrder(t *testing.T) {
	res := Parse("First [RECOMMEND: p2] then [RECOMMEND: p1].", testLookup("p1", "p2"))

	assert.Equal(t, []string{"p2", "p1"}, productIDs(res.Products))
	assert.Equal(t, "First  then .", res.Text)
}

func TestParseDeduplicatesByFirstOccurrence(t *testing.T) {
	res := Parse("[RECOMMEND: p1][RECOMMEND: p2] again [RECOMMEND: p1]", testLookup("p1", "p2"))

	assert.Equal(t, []string{"p1", "p2"}, productIDs(res.Products))
	assert.Equal(t, "again", res.Text)
	assert.Len(t, res.Tokens, 3)
}

func TestParseNoTokensReturnsInputUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"  plain reply with padding  ",
		"[recommend: p1] lower case prefix",
		"[RECOMMEND:] empty id",
		"[RECOMMEND:    ] blank id",
		"[RECOMMEND: p1 unterminated",
		"[RECOMMEND: p1\n] newline inside",
		"[ RECOMMEND: p1] space before prefix",
	}
	for _, in := range inputs {
		res := Parse(in, testLookup("p1"))
		assert.Equal(t, in, res.Text, "input %q", in)
		assert.Empty(t, res.Products, "input %q", in)
		assert.Empty(t, res.Tokens, "input %q", in)
	}
}

func TestParseNestedBracketStartsFreshCandidate(t *testing.T) {
	res := Parse("See [RECOMMEND: [RECOMMEND: p3] now", testLookup("p3"))

	assert.Equal(t, "See [RECOMMEND:  now", res.Text)
	assert.Equal(t, []string{"p3"}, productIDs(res.Products))
}

func TestParseTrimsIdentifier(t *testing.T) {
	res := Parse("[RECOMMEND:\tp4 \t] ok", testLookup("p4"))

	require.Len(t, res.Tokens, 1)
	assert.Equal(t, "p4", res.Tokens[0].ID)
	assert.Equal(t, "ok", res.Text)
}

func TestParseKeepsMultibyteText(t *testing.T) {
	res := Parse("Héllo 👋 [RECOMMEND: p1] ✓", testLookup("p1"))

	assert.Equal(t, "Héllo 👋  ✓", res.Text)
	assert.Len(t, res.Products, 1)
}

// Removing tokens never leaves a token behind and accounts for every byte.
func TestParseStripsExhaustively(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fillers := []string{"", "a", "hello ", " world", "x y z", "] stray", "RECOMMEND: p1", "ü"}
	ids := []string{"p1", "p2", "p9", "id with space"}

	for n := 0; n < 200; n++ {
		var (
			b         strings.Builder
			tokenLen  int
			wantCount int
		)
		for k := rng.Intn(6); k >= 0; k-- {
			b.WriteString(fillers[rng.Intn(len(fillers))])
			if rng.Intn(2) == 0 {
				tok := fmt.Sprintf("[RECOMMEND:%s%s ]", strings.Repeat(" ", rng.Intn(3)), ids[rng.Intn(len(ids))])
				tokenLen += len(tok)
				wantCount++
				b.WriteString(tok)
			}
		}
		in := b.String()
		res := Parse(in, testLookup("p1", "p2"))

		require.Len(t, res.Tokens, wantCount, "input %q", in)
		assert.NotContains(t, res.Text, "[RECOMMEND:", "input %q", in)
		if wantCount == 0 {
			assert.Equal(t, in, res.Text)
			continue
		}
		untrimmed := len(in) - tokenLen
		assert.LessOrEqual(t, len(res.Text), untrimmed, "input %q", in)
		assert.Equal(t, strings.TrimSpace(stripTokens(in, res.Tokens)), res.Text, "input %q", in)
		assert.Equal(t, untrimmed, len(stripTokens(in, res.Tokens)), "input %q", in)
	}
}

func stripTokens(in string, tokens []Token) string {
	var b strings.Builder
	last := 0
	for _, tok := range tokens {
		b.WriteString(in[last:tok.Start])
		last = tok.End
	}
	b.WriteString(in[last:])
	return b.String()
}
