package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
)

var errEmptyExport = errors.New("export contains no dated points")

type rangeFlags struct {
	file  string
	start string
	end   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "JSON export ([{\"tanggal\": \"YYYY-MM-DD\", \"total\": n}]), - for stdin")
	cmd.Flags().StringVar(&f.start, "start", "", "first day (YYYY-MM-DD), defaults to the earliest point")
	cmd.Flags().StringVar(&f.end, "end", "", "last day (YYYY-MM-DD), defaults to the latest point")
	_ = cmd.MarkFlagRequired("file")
}

// load reads the export and resolves the range against it.
func (f *rangeFlags) load(cmd *cobra.Command) ([]domain.TimeSeriesPoint, domain.DateRange, error) {
	raw, err := readExport(cmd.InOrStdin(), f.file)
	if err != nil {
		return nil, domain.DateRange{}, err
	}

	series := analytics.SortSeries(analytics.ExtractSeries(raw))
	if len(series) == 0 {
		return nil, domain.DateRange{}, errEmptyExport
	}

	start, err := dateOr(f.start, series[0].Date)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	end, err := dateOr(f.end, analytics.LatestDate(series))
	if err != nil {
		return nil, domain.DateRange{}, err
	}

	r := domain.NewDateRange(start, end)
	if start.After(end) {
		return nil, domain.DateRange{}, domain.ErrInvalidRange
	}
	return series, r, nil
}

func readExport(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return raw, nil
}

func dateOr(value string, fallback civil.Date) (civil.Date, error) {
	if value == "" {
		return fallback, nil
	}
	return domain.ParseDate(value)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "metricsctl",
		Short:         "Inspect seller metric exports offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newBucketCmd(),
		newWeekdayCmd(),
		newGrowthCmd(),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}

func newBucketCmd() *cobra.Command {
	var (
		flags       rangeFlags
		granularity string
		aggregation string
	)

	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Group a daily export into calendar buckets with growth",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := domain.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			agg := domain.Aggregation(aggregation)
			if agg != domain.AggregationSum && agg != domain.AggregationAverage {
				return fmt.Errorf("invalid aggregation %q (must be sum or average)", aggregation)
			}

			series, r, err := flags.load(cmd)
			if err != nil {
				return err
			}

			buckets := analytics.Bucket(series, g, r.Start, r.End, agg)
			return printJSON(cmd.OutOrStdout(), domain.SeriesResult{
				Granularity:  g,
				Range:        r,
				Buckets:      buckets,
				Growth:       analytics.GrowthSeries(analytics.BucketValues(buckets)),
				FailedStores: []string{},
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(domain.GranularityWeekly), "daily, weekly, monthly or quarterly")
	cmd.Flags().StringVarP(&aggregation, "aggregation", "a", string(domain.AggregationSum), "sum or average")
	return cmd
}

func newWeekdayCmd() *cobra.Command {
	var flags rangeFlags

	cmd := &cobra.Command{
		Use:   "weekday",
		Short: "Totals and averages per day of week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			series, r, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if err := services.ValidateRange(r); err != nil {
				return err
			}

			buckets, err := analytics.AggregateByWeekday(analytics.FilterRange(series, r.Start, r.End), r.Start, r.End)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), buckets)
		},
	}
	flags.register(cmd)
	return cmd
}

func newGrowthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "growth VALUE VALUE...",
		Short: "Percent change between consecutive values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("value %d: %w", i+1, err)
				}
				values[i] = v
			}

			out := cmd.OutOrStdout()
			for i, g := range analytics.GrowthSeries(values) {
				if g == nil {
					fmt.Fprintf(out, "%s\t-\n", args[i])
					continue
				}
				fmt.Fprintf(out, "%s\t%.2f%%\n", args[i], *g)
			}
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		merchantID string
		secret     string
		issuer     string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a merchant bearer token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("SELLERMETRICS_JWT_SECRET")
			}
			if secret == "" {
				return errors.New("--secret or SELLERMETRICS_JWT_SECRET is required")
			}

			token, err := services.NewTokenService(secret, issuer, ttl).GenerateToken(merchantID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&merchantID, "merchant", "m", "", "merchant id (token subject)")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret, defaults to SELLERMETRICS_JWT_SECRET")
	cmd.Flags().StringVar(&issuer, "issuer", "sellermetrics", "token issuer")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("merchant")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the metricsctl version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
