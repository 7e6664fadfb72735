package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"baacprep/adapters/charts"
	"baacprep/adapters/tableio"
	"baacprep/domain/explode"
	"baacprep/domain/table"
	"baacprep/domain/temporal"
	"baacprep/domain/validate"
	"baacprep/internal"
	"baacprep/internal/config"
	apperrors "baacprep/internal/errors"
	"baacprep/internal/report"
)

var logger = internal.NewDefaultLogger()

func main() {
	// Optional .env, same as the server-side tooling
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	rootCmd := &cobra.Command{
		Use:   "baacprep",
		Short: "Preprocessing and exploratory charts for BAAC-style accident tables",
	}

	rootCmd.AddCommand(
		newInspectCmd(),
		newDetectCmd(),
		newExplodeCmd(),
		newPrepareCmd(),
		newChartsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadTable(path string) (*table.Table, error) {
	ds, err := tableio.NewDataReader(path).ReadData()
	if err != nil {
		return nil, apperrors.ReadFailed(path, err)
	}
	logger.Info("loaded %s: %d rows, %d columns, %.1f%% missing",
		path, ds.RecordCount, ds.FieldCount, ds.MissingRate*100)
	return ds.Table, nil
}

func newInspectCmd() *cobra.Command {
	var htmlOut string
	var checkSchema bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a per-column data quality report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(args[0])
			if err != nil {
				return err
			}
			if checkSchema {
				if err := validate.RequiredColumnsCheck(tbl); err != nil {
					return apperrors.Wrap(err, "schema check failed")
				}
				logger.Info("schema check passed: all required columns present")
			}
			rep := validate.QualityReport(tbl)
			if htmlOut != "" {
				if err := os.WriteFile(htmlOut, report.HTML(rep), 0o644); err != nil {
					return apperrors.WriteFailed(htmlOut, err)
				}
				logger.Info("HTML report written: %s", htmlOut)
				return nil
			}
			fmt.Print(report.Markdown(rep))
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlOut, "html", "", "write the report as HTML to this path")
	cmd.Flags().BoolVar(&checkSchema, "check-schema", false, "fail when required BAAC columns are missing")
	return cmd
}

func newDetectCmd() *cobra.Command {
	var sep string
	var minShare float64

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "List candidate multi-value columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sep") {
				sep = cfg.Explode.Separator
			}
			if !cmd.Flags().Changed("min-share") {
				minShare = cfg.Explode.MinShare
			}

			tbl, err := loadTable(args[0])
			if err != nil {
				return err
			}
			flagged, err := explode.DetectMultiValueColumns(tbl, nil, sep, minShare)
			if err != nil {
				return err
			}
			if len(flagged) == 0 {
				fmt.Println("no multi-value columns detected")
				return nil
			}
			for _, c := range flagged {
				fmt.Println(c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "sep", ",", "multi-value separator")
	cmd.Flags().Float64Var(&minShare, "min-share", 0.01, "minimum share of cells containing the separator")
	return cmd
}

func newExplodeCmd() *cobra.Command {
	var columns []string
	var sep, out string
	var strict bool

	cmd := &cobra.Command{
		Use:   "explode [file]",
		Short: "Jointly explode aligned multi-value columns",
		Long: `Jointly explode a set of aligned multi-value columns into one
row per token tuple.

Example: baacprep explode accidents.csv \
  --columns Security_measures,User_of_security_measures --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(args[0])
			if err != nil {
				return err
			}
			exploded, err := explode.AlignedColumns(tbl, columns, sep, strict)
			if err != nil {
				return apperrors.Wrap(err, "explosion failed")
			}
			logger.Info("exploded %d rows into %d rows", tbl.NumRows(), exploded.NumRows())
			if out == "" {
				out = derivedPath(args[0], "_exploded")
			}
			if err := tableio.WriteTable(exploded, out); err != nil {
				return apperrors.WriteFailed(out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "aligned columns to explode (at least two)")
	cmd.Flags().StringVar(&sep, "sep", ",", "multi-value separator")
	cmd.Flags().StringVar(&out, "out", "", "output file (.csv or .xlsx); default <input>_exploded.csv")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unequal token counts instead of padding")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}

func newPrepareCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "prepare [file]",
		Short: "Normalize IDs, parse datetimes and derive temporal features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tbl, err := loadTable(args[0])
			if err != nil {
				return err
			}
			prepared, err := prepareTable(tbl, cfg)
			if err != nil {
				return err
			}
			if out == "" {
				out = derivedPath(args[0], "_prepared")
			}
			if err := tableio.WriteTable(prepared, out); err != nil {
				return apperrors.WriteFailed(out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (.csv or .xlsx); default <input>_prepared.csv")
	return cmd
}

// prepareTable runs the standard preprocessing chain: ID cleanup,
// datetime parsing, time parts, temporal features, numeric coercion
// and age derivation.
func prepareTable(tbl *table.Table, cfg *config.Config) (*table.Table, error) {
	out := validate.NormalizeIDColumn(tbl, cfg.Data.IDColumn, false)
	out, err := temporal.ParseDatetimeColumn(out, cfg.Data.DateCol, "dt")
	if err != nil {
		return nil, apperrors.Wrap(err, "datetime parsing failed")
	}
	out, err = temporal.AddTimeParts(out, "dt")
	if err != nil {
		return nil, err
	}
	out, err = temporal.AddTemporalFeatures(out, "dt", "t_")
	if err != nil {
		return nil, err
	}
	out = validate.CoerceNumericColumns(out, validate.NumericSuggested)
	if out.HasColumn("Year_of_birth") {
		out = validate.CoerceNumericColumns(out, []string{"Year_of_birth"})
		out, err = temporal.DeriveAge(out, "Year_of_birth", temporal.ColAccidentYear, "Age", 0, 110)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func newChartsCmd() *cobra.Command {
	var outDir, sep string

	cmd := &cobra.Command{
		Use:   "charts [file]",
		Short: "Render the exploratory chart workbooks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.Output.ChartsDir
			}
			if !cmd.Flags().Changed("sep") {
				sep = cfg.Explode.Separator
			}

			tbl, err := loadTable(args[0])
			if err != nil {
				return err
			}
			prepared, err := prepareTable(tbl, cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return apperrors.WriteFailed(outDir, err)
			}
			return renderCharts(prepared, outDir, sep)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "plots", "output directory for chart workbooks")
	cmd.Flags().StringVar(&sep, "sep", ",", "multi-value separator")
	return cmd
}

// renderCharts writes one workbook per chart, in parallel. Charts whose
// source columns are absent are skipped with a warning, matching the
// tolerant behavior of the exploratory driver.
func renderCharts(tbl *table.Table, outDir, sep string) error {
	latCol := guessColumn(tbl, "Latitude", "latitude", "lat", "Lat", "LAT", "Y", "y")
	lonCol := guessColumn(tbl, "Longitude", "longitude", "lon", "Lon", "LON", "X", "x")

	type chartJob struct {
		name   string
		skip   string
		render func(w *charts.Workbook) error
	}
	jobs := []chartJob{
		{
			name: "weather_condition_top10.xlsx",
			skip: skipUnless(tbl.HasColumn("Weather_condition"), "Weather_condition not found"),
			render: func(w *charts.Workbook) error {
				return w.CategoryCounts(tbl, "Weather_condition", 10, false)
			},
		},
		{
			name:   "nulls_per_column.xlsx",
			render: func(w *charts.Workbook) error { return w.NullsBar(tbl) },
		},
		{
			name:   "events_per_month.xlsx",
			render: func(w *charts.Workbook) error { return w.TimeSeriesCounts(tbl, "dt", charts.FreqMonth) },
		},
		{
			name: "geo_scatter.xlsx",
			skip: skipUnless(latCol != "" && lonCol != "", "geo columns not found"),
			render: func(w *charts.Workbook) error {
				return w.GeoScatter(tbl, latCol, lonCol)
			},
		},
		{
			name: "security_measures_tokens.xlsx",
			skip: skipUnless(tbl.HasColumn("Security_measures"), "Security_measures not found"),
			render: func(w *charts.Workbook) error {
				return w.TokenCounts(tbl, "Security_measures", sep, 15, false)
			},
		},
	}

	var g errgroup.Group
	for _, job := range jobs {
		job := job
		if job.skip != "" {
			logger.Warn("%s - skipping %s", job.skip, job.name)
			continue
		}
		g.Go(func() error {
			w := charts.NewWorkbook()
			if err := job.render(w); err != nil {
				return apperrors.Wrapf(err, "chart %s failed", job.name)
			}
			path := filepath.Join(outDir, job.name)
			if err := w.Save(path); err != nil {
				return apperrors.WriteFailed(path, err)
			}
			logger.Info("saved: %s", path)
			return nil
		})
	}
	return g.Wait()
}

func guessColumn(tbl *table.Table, candidates ...string) string {
	for _, c := range candidates {
		if tbl.HasColumn(c) {
			return c
		}
	}
	return ""
}

func skipUnless(ok bool, reason string) string {
	if ok {
		return ""
	}
	return reason
}

func derivedPath(input, suffix string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext != ".csv" && ext != ".xlsx" {
		ext = ".csv"
	}
	return base + suffix + ext
}
