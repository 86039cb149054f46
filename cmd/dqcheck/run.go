package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/cobra"
	"github.com/tazeverywhere/dataquery/pkg/connection"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/logging"
	"github.com/tazeverywhere/dataquery/pkg/query"
	"github.com/tazeverywhere/dataquery/pkg/validate"
	"github.com/tazeverywhere/dataquery/server/render"
)

// errReportFailed signals an error diagnostic; the report itself was already printed.
var errReportFailed = errors.New("query validation failed")

type checkOptions struct {
	db          string
	initSQL     string
	lang        string
	catalog     string
	format      string
	noMutations bool
	verbose     bool
	color       bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readOptions(cmd)
	if err != nil {
		return err
	}

	raw, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	report, err := check(cmd.Context(), opts, raw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "pretty":
		printReport(out, report, opts.color)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(render.Response(report)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	case "html":
		if err := render.HTML(&headerlessWriter{Writer: out}, report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}

	if report.MaxSeverity() == validate.SeverityError {
		cmd.SilenceErrors = true
		return errReportFailed
	}
	return nil
}

func readOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
	var err error
	flags := cmd.Flags()

	if opts.db, err = flags.GetString("db"); err != nil {
		return opts, fmt.Errorf("failed to get db flag: %w", err)
	}
	if opts.initSQL, err = flags.GetString("init-sql"); err != nil {
		return opts, fmt.Errorf("failed to get init-sql flag: %w", err)
	}
	if opts.lang, err = flags.GetString("lang"); err != nil {
		return opts, fmt.Errorf("failed to get lang flag: %w", err)
	}
	if opts.catalog, err = flags.GetString("catalog"); err != nil {
		return opts, fmt.Errorf("failed to get catalog flag: %w", err)
	}
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.noMutations, err = flags.GetBool("no-mutations"); err != nil {
		return opts, fmt.Errorf("failed to get no-mutations flag: %w", err)
	}
	if opts.verbose, err = flags.GetBool("verbose"); err != nil {
		return opts, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	opts.color = colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	return opts, nil
}

func readQuery(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	return string(data), nil
}

// check builds the pipeline over a fresh connection and validates raw.
func check(ctx context.Context, opts checkOptions, raw string) (validate.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := sql.Open("duckdb", opts.db)
	if err != nil {
		return validate.Report{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	mgr := connection.NewManager(db)
	if opts.initSQL != "" {
		script, err := os.ReadFile(opts.initSQL)
		if err != nil {
			return validate.Report{}, fmt.Errorf("failed to read init SQL: %w", err)
		}
		err = mgr.ExecTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, string(script))
			return err
		})
		if err != nil {
			return validate.Report{}, fmt.Errorf("failed to run init SQL: %w", err)
		}
	}

	bundle, err := i18n.NewBundle(opts.lang)
	if err != nil {
		return validate.Report{}, err
	}
	if opts.catalog != "" {
		if err := bundle.LoadFile(opts.catalog); err != nil {
			return validate.Report{}, err
		}
	}

	logger := logging.Discard()
	if opts.verbose {
		logger = logging.New(logging.Options{Verbose: true, Writer: os.Stderr})
	}

	executor := query.NewExecutor(mgr, query.WithMutations(!opts.noMutations))
	v := validate.New(dsl.NewCompiler(), executor, bundle.Default(), validate.WithLogger(logger))
	return v.Validate(ctx, raw), nil
}
