package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"observerkit/internal/demo"
	"observerkit/pkg/observer"
)

func newRunCmd(st *state) *cobra.Command {
	var metrics bool
	cmd := &cobra.Command{
		Use:     "run [scenario...]",
		Short:   "Run demonstration scenarios (all by default)",
		Example: "  observerdemo run\n  observerdemo run smart-mouse-only --metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metrics") {
				metrics = st.cfg.Metrics
			}
			names := args
			if len(names) == 0 {
				names = st.cfg.Scenarios
			}
			opts := demo.RunOptions{
				Source: []observer.Option{observer.WithLogger(st.log)},
				Taps:   []demo.Tap{demo.NewLogObserver(st.log)},
			}
			var reg *prometheus.Registry
			if metrics {
				reg = prometheus.NewRegistry()
				m, err := demo.NewMetricsObserver(reg)
				if err != nil {
					return err
				}
				opts.Taps = append(opts.Taps, m)
			}
			out := cmd.OutOrStdout()
			if err := demo.Run(out, names, opts); err != nil {
				return err
			}
			if reg == nil {
				return nil
			}
			mfs, err := reg.Gather()
			if err != nil {
				return fmt.Errorf("gather metrics: %w", err)
			}
			fmt.Fprintln(out)
			for _, mf := range mfs {
				if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Count deliveries and print them in Prometheus text format")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range demo.Scenarios() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", s.Name, s.Title)
			}
			return nil
		},
	}
}
