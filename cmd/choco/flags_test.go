package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chocosql "github.com/biyonik/go-choco-sql"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"null", nil},
		{"NULL", nil},
		{"true", true},
		{"False", false},
		{"1000", int64(1000)},
		{"-5", int64(-5)},
		{"1.5", "1.5"},
		{"Brazil", "Brazil"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), tt.in)
	}
}

func TestParseCondition(t *testing.T) {
	field, op, value, err := parseCondition("population:>:1000")
	require.NoError(t, err)
	assert.Equal(t, "population", field)
	assert.Equal(t, ">", op)
	assert.Equal(t, int64(1000), value)

	_, _, value, err = parseCondition("created_at:>:2024-01-01 10:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 10:00", value)

	for _, bad := range []string{"", "population", "population:>", ":=:1", "a::1"} {
		_, _, _, err := parseCondition(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseInList(t *testing.T) {
	field, values, err := parseInList("id:1, 2,x")
	require.NoError(t, err)
	assert.Equal(t, "id", field)
	assert.Equal(t, []any{int64(1), int64(2), "x"}, values)

	field, values, err = parseInList("id:")
	require.NoError(t, err)
	assert.Equal(t, "id", field)
	assert.Empty(t, values)

	_, _, err = parseInList("id")
	assert.Error(t, err)
}

func TestQueryFlagsApply(t *testing.T) {
	f := queryFlags{
		selects:     []string{"country AS pais", "population AS populacao"},
		from:        "locations",
		where:       []string{"country:=:Brazil"},
		orWhere:     []string{"population:>:1000"},
		whereIn:     []string{"code:BR,AR", "id:"},
		whereSelect: []string{"population:IN:population:locations"},
	}

	b := chocosql.New()
	require.NoError(t, f.apply(b))

	got, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT country AS pais , population AS populacao FROM public.locations "+
		"WHERE country = 'Brazil' OR population > 1000 AND code IN ('BR', 'AR') "+
		"AND population IN ( SELECT population FROM public.locations );", got)
}

func TestQueryFlagsApplyErrors(t *testing.T) {
	assert.Error(t, (&queryFlags{}).apply(chocosql.New()), "missing --from")
	assert.Error(t, (&queryFlags{from: "t", where: []string{"bad"}}).apply(chocosql.New()))
	assert.Error(t, (&queryFlags{from: "t", whereSelect: []string{"id:IN:x"}}).apply(chocosql.New()))
	assert.NoError(t, (&queryFlags{from: "t", where: []string{"ratio:>:0.5"}}).apply(chocosql.New()), "0.5 stays a string")
	assert.ErrorIs(t, (&queryFlags{from: "bad table"}).apply(chocosql.New(chocosql.WithStrict(true))), chocosql.ErrInvalidIdentifier)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "choco.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("query:\n  schema: geo\n"), 0o644))
	t.Setenv("CHOCO_QUERY_DIALECT", "")
	t.Setenv("CHOCO_QUERY_SCHEMA", "")
	t.Setenv("CHOCO_DATABASE_DRIVER", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"render", "--config", configFile,
		"--select", "country", "--from", "locations", "--where", "country:=:Brazil",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "SELECT country FROM geo.locations WHERE country = 'Brazil';\n", out.String())
}
