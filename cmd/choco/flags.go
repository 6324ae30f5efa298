package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	chocosql "github.com/biyonik/go-choco-sql"
)

// queryFlags holds the query-shaping flags shared by render and query.
type queryFlags struct {
	selects     []string
	from        string
	schema      string
	dialect     string
	where       []string
	orWhere     []string
	whereIn     []string
	whereSelect []string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.selects, "select", nil, "fields to select (repeatable, comma separated)")
	fs.StringVar(&f.from, "from", "", "table to select from")
	fs.StringVar(&f.schema, "schema", "", "schema for unqualified tables (overrides query.schema)")
	fs.StringVar(&f.dialect, "dialect", "", "SQL dialect: postgres, mysql or sqlite (overrides query.dialect)")
	fs.StringArrayVar(&f.where, "where", nil, `AND condition as "field:op:value" (repeatable)`)
	fs.StringArrayVar(&f.orWhere, "or-where", nil, `OR condition as "field:op:value" (repeatable)`)
	fs.StringArrayVar(&f.whereIn, "where-in", nil, `IN condition as "field:v1,v2,..." (repeatable)`)
	fs.StringArrayVar(&f.whereSelect, "where-select", nil, `subquery condition as "field:op:column:table" (repeatable)`)
}

// apply replays the flags on b in a fixed order: select, from, where, or-where,
// where-in, where-select.
func (f *queryFlags) apply(b *chocosql.Builder) error {
	if f.schema != "" {
		b.FromSchema(f.schema)
	}
	b.Select(f.selects...)
	if f.from == "" {
		return fmt.Errorf("--from is required")
	}
	b.From(f.from)

	for _, raw := range f.where {
		field, op, value, err := parseCondition(raw)
		if err != nil {
			return err
		}
		b.Where(field, op, value)
	}
	for _, raw := range f.orWhere {
		field, op, value, err := parseCondition(raw)
		if err != nil {
			return err
		}
		b.OrWhere(field, op, value)
	}
	for _, raw := range f.whereIn {
		field, values, err := parseInList(raw)
		if err != nil {
			return err
		}
		b.WhereIn(field, values)
	}
	for _, raw := range f.whereSelect {
		parts := strings.SplitN(raw, ":", 4)
		if len(parts) != 4 || parts[0] == "" || parts[3] == "" {
			return fmt.Errorf("invalid --where-select %q: expected field:op:column:table", raw)
		}
		column, table := parts[2], parts[3]
		b.WhereSubquery(parts[0], parts[1],
			chocosql.Func(func(q *chocosql.Builder) { q.Select(column) }),
			chocosql.Func(func(q *chocosql.Builder) { q.From(table) }),
		)
	}
	return b.Err()
}

// parseCondition splits "field:op:value". The value keeps any further colons.
func parseCondition(raw string) (field, op string, value any, err error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, fmt.Errorf("invalid condition %q: expected field:op:value", raw)
	}
	return parts[0], parts[1], parseValue(parts[2]), nil
}

// parseInList splits "field:v1,v2,...". An empty list is allowed.
func parseInList(raw string) (string, []any, error) {
	field, list, ok := strings.Cut(raw, ":")
	if !ok || field == "" {
		return "", nil, fmt.Errorf("invalid in-list %q: expected field:v1,v2,...", raw)
	}
	var values []any
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, parseValue(item))
		}
	}
	return field, values, nil
}

// parseValue turns a flag value into null, a bool, an integer or a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

// builderOptions maps the loaded configuration and --dialect onto chocosql options.
// Without an explicit dialect the grammar follows database.driver when it is known.
func builderOptions(f *queryFlags) ([]chocosql.Option, error) {
	opts := []chocosql.Option{
		chocosql.WithStrict(cfg.Query.Strict),
	}

	c := *cfg
	c.Query.Dialect = resolveString(f.dialect, cfg.Query.Dialect)
	g, err := c.Grammar()
	switch {
	case err == nil:
		opts = append(opts, chocosql.WithGrammar(g))
	case c.Query.Dialect != "":
		return nil, err
	}

	if cfg.Query.Schema != "" {
		opts = append(opts, chocosql.WithSchema(cfg.Query.Schema))
	}
	return opts, nil
}
