package main

import (
	"fmt"

	"github.com/spf13/cobra"

	chocosql "github.com/biyonik/go-choco-sql"
	"github.com/biyonik/go-choco-sql/internal/cli"
)

var renderFlags queryFlags

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the SQL for a query without running it",
	Example: `  # Simple filter
  choco render --select country,population --from locations --where "country:=:Brazil"

  # IN subquery against another table
  choco render --select name --from users --where-select "id:IN:user_id:orders"

  # MySQL dialect, no schema qualification
  choco render --dialect mysql --from users --where-in "id:1,2,3"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := builderOptions(&renderFlags)
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}

		b := chocosql.New(opts...)
		if err := renderFlags.apply(b); err != nil {
			return cli.BuildError("building query", err)
		}
		query, err := b.Build()
		if err != nil {
			return cli.BuildError("building query", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), query)
		return nil
	},
}

func init() {
	renderFlags.register(renderCmd)
}
