package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	chocosql "github.com/biyonik/go-choco-sql"
	"github.com/biyonik/go-choco-sql/internal/cli"
	"github.com/biyonik/go-choco-sql/internal/logging"
)

var (
	queryFlagsSet queryFlags
	queryFormat   string
	queryPrint    bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a query and print the result as YAML",
	Long: `Run a query against the configured database and print the result as YAML.

The connection is taken from choco.yaml or the environment. When cache.redis_addr
is set, results are read from and written to Redis.`,
	Example: `  # Records (column -> value)
  choco query --select country,population --from locations --where "population:>:1000"

  # Header row followed by raw rows, printing the SQL first
  choco query --from locations --format header --print`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts, err := builderOptions(&queryFlagsSet)
		if err != nil {
			return cli.ConfigError("resolving dialect", err)
		}
		mode, err := chocosql.ParseOutputMode(resolveString(queryFormat, cfg.Query.Output))
		if err != nil {
			return cli.ConfigError("resolving output format", err)
		}
		opts = append(opts,
			chocosql.WithOutputMode(mode),
			chocosql.WithOutput(cmd.OutOrStdout()),
			chocosql.WithDebug(resolveBool(cfg.Query.Debug, verbose > 0)),
			chocosql.WithLogger(chocosql.SlogLogger{}),
		)

		if addr := cfg.Cache.RedisAddr; addr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: addr})
			defer func() { _ = rdb.Close() }()
			opts = append(opts, chocosql.WithCache(chocosql.NewRedisCache(rdb, cfg.Cache.TTL)))
			logging.Debug("result cache enabled", "addr", addr, "ttl", cfg.Cache.TTL)
		}

		db, err := chocosql.ConnectWithConfig(ctx, cfg.Connection(), opts...)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = db.Close() }()

		b := db.Query()
		if err := queryFlagsSet.apply(b); err != nil {
			return cli.BuildError("building query", err)
		}
		if queryPrint {
			b.PrintQuery()
		}

		res, err := b.GetContext(ctx)
		if err != nil {
			return cli.GeneralError("running query", err)
		}
		return writeResult(cmd, res)
	},
}

// resultView is the YAML shape of a query result.
type resultView struct {
	Query   string           `json:"query"`
	Mode    string           `json:"mode"`
	Count   int              `json:"count"`
	Header  []string         `json:"header,omitempty"`
	Rows    [][]any          `json:"rows,omitempty"`
	Records []map[string]any `json:"records,omitempty"`
}

func writeResult(cmd *cobra.Command, res *chocosql.Result) error {
	data, err := yaml.Marshal(resultView{
		Query:   res.Query,
		Mode:    res.Mode.String(),
		Count:   res.Len(),
		Header:  res.Header,
		Rows:    res.Rows,
		Records: res.Records,
	})
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	queryFlagsSet.register(queryCmd)
	queryCmd.Flags().StringVar(&queryFormat, "format", "", "result format: records, rows or header (overrides query.output)")
	queryCmd.Flags().BoolVar(&queryPrint, "print", false, "print the SQL before running it")
}
