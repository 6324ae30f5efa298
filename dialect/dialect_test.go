package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBuilder, Grammar testleri için sabit clause'lar döndürür.
type mockBuilder struct {
	clauses map[Clause][]Token
	depth   int
}

func (m *mockBuilder) GetClause(c Clause) []Token { return m.clauses[c] }
func (m *mockBuilder) Depth() int                 { return m.depth }

func TestCompileSelect(t *testing.T) {
	tests := []struct {
		name    string
		clauses map[Clause][]Token
		want    string
	}{
		{
			name: "empty builder",
			want: "SELECT *;",
		},
		{
			name: "from only",
			clauses: map[Clause][]Token{
				ClauseFrom: {Keyword("FROM"), Identifier("public.locations")},
			},
			want: "SELECT * FROM public.locations;",
		},
		{
			name: "emit order ignores insertion order",
			clauses: map[Clause][]Token{
				ClauseWhere:  {Keyword("WHERE"), Identifier("population"), Identifier(">"), Literal("1000")},
				ClauseFrom:   {Keyword("FROM"), Identifier("public.locations")},
				ClauseSelect: {Keyword("SELECT"), Identifier("country")},
				ClauseWith:   {Keyword("WITH"), ParenOpen(), Keyword("SELECT"), Identifier("1"), ParenClose()},
			},
			want: "WITH ( SELECT 1 ) SELECT country FROM public.locations WHERE population > 1000;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Postgres().CompileSelect(&mockBuilder{clauses: tt.clauses})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileSelectOpenGroup(t *testing.T) {
	_, err := Postgres().CompileSelect(&mockBuilder{depth: 1})
	assert.True(t, errors.Is(err, ErrOpenGroup))
	assert.Equal(t, "dialect: query compiled while a subquery group is still open", err.Error())
}

func TestQualifyTable(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		table   string
		schema  string
		want    string
	}{
		{"postgres default", Postgres(), "locations", "", "public.locations"},
		{"postgres explicit", Postgres(), "locations", "geo", "geo.locations"},
		{"postgres dotted", Postgres(), "sales.orders", "geo", "sales.orders"},
		{"mysql bare", MySQL(), "users", "", "users"},
		{"mysql explicit", MySQL(), "users", "app", "app.users"},
		{"sqlite default", SQLite(), "locations", "", "main.locations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.grammar.QualifyTable(tt.table, tt.schema))
		})
	}
}

func TestByName(t *testing.T) {
	tests := map[string]string{
		"postgres":   "postgres",
		"postgresql": "postgres",
		"pgx":        "postgres",
		"pq":         "postgres",
		"mysql":      "mysql",
		"mariadb":    "mysql",
		"sqlite":     "sqlite",
		"sqlite3":    "sqlite",
	}
	for name, want := range tests {
		g, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, g.Name())
	}

	_, ok := ByName("oracle")
	assert.False(t, ok)
}

func TestGrammarDefaults(t *testing.T) {
	assert.Equal(t, "public", Postgres().DefaultSchema())
	assert.Equal(t, "", MySQL().DefaultSchema())
	assert.Equal(t, "main", SQLite().DefaultSchema())

	assert.Equal(t, Postgres(), NewPostgresGrammar())
	assert.Equal(t, MySQL(), NewMySQLGrammar())
}
