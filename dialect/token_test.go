package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenConstructors(t *testing.T) {
	tests := []struct {
		tok      Token
		wantKind TokenKind
		wantText string
	}{
		{Keyword("SELECT"), TokenKeyword, "SELECT"},
		{Identifier("country AS pais"), TokenIdentifier, "country AS pais"},
		{Literal("'Brazil'"), TokenLiteral, "'Brazil'"},
		{Combinator("AND"), TokenCombinator, "AND"},
		{Separator(), TokenCombinator, ","},
		{ParenOpen(), TokenParenOpen, "("},
		{ParenClose(), TokenParenClose, ")"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantKind, tt.tok.Kind, tt.wantText)
		assert.Equal(t, tt.wantText, tt.tok.String())
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "Keyword", TokenKeyword.String())
	assert.Equal(t, "ParenClose", TokenParenClose.String())
	assert.Equal(t, "Unknown", TokenKind(99).String())
}

func TestClauseString(t *testing.T) {
	assert.Equal(t, "WITH", ClauseWith.String())
	assert.Equal(t, "SELECT", ClauseSelect.String())
	assert.Equal(t, "FROM", ClauseFrom.String())
	assert.Equal(t, "WHERE", ClauseWhere.String())
	assert.Equal(t, "UNKNOWN", ClauseCount.String())
	assert.Equal(t, "UNKNOWN", Clause(-1).String())

	assert.Equal(t, [...]Clause{ClauseWith, ClauseSelect, ClauseFrom, ClauseWhere}, EmitOrder)
}

func TestBuffer(t *testing.T) {
	var b Buffer
	assert.True(t, b.Empty())
	_, ok := b.Last()
	assert.False(t, ok)
	assert.Equal(t, "", b.Render())

	b.Append(Keyword("WHERE"), Identifier("country"), Identifier("="), Literal("'Brazil'"))
	assert.Equal(t, 4, b.Len())
	assert.False(t, b.Empty())
	assert.Equal(t, "WHERE country = 'Brazil'", b.Render())

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, Literal("'Brazil'"), last)

	assert.True(t, b.Contains(TokenKeyword, "WHERE"))
	assert.False(t, b.Contains(TokenIdentifier, "WHERE"))

	// Tokens returns a copy.
	tokens := b.Tokens()
	tokens[0] = Keyword("SELECT")
	assert.Equal(t, "WHERE", b.Tokens()[0].Text)

	b.Reset()
	assert.True(t, b.Empty())
}

func TestRender(t *testing.T) {
	tokens := []Token{Identifier("population"), Identifier("IN"), ParenOpen(), Keyword("SELECT"), Identifier("population"), ParenClose()}
	assert.Equal(t, "population IN ( SELECT population )", Render(tokens))
	assert.Equal(t, "", Render(nil))
}
