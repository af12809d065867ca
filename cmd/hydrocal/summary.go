package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
)

// NewSummaryCommand returns the summary command, which prints calibration metadata.
func NewSummaryCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <calfile>",
		Short: "Print calibration metadata",
		Long: `Print the identifying metadata of a calibration file and its calibrated
frequency range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHydrophone(args[0])
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), h, v.GetString(keySummaryFormat))
		},
	}

	cmd.Flags().StringP("format", "o", defaultFormat, "output format (text, yaml, json)")
	mustBind(v, keySummaryFormat, cmd.Flags().Lookup("format"))

	return cmd
}

func writeSummary(w io.Writer, h *hydrophone.Hydrophone, format string) error {
	s := h.MetadataSummary()

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	case "json":
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text":
		return writeSummaryText(w, h, s)
	default:
		return fmt.Errorf("unknown format %q, want text, yaml or json", format)
	}
}

func writeSummaryText(w io.Writer, h *hydrophone.Hydrophone, s hydrophone.Summary) error {
	bold := color.New(color.Bold)
	bold.Fprintln(w, h.String())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range s.Fields {
		fmt.Fprintf(tw, "  %s\t%s\n", f.Key, f.Value)
	}
	if r := s.FrequencyRangeMHz; r != nil {
		fmt.Fprintf(tw, "  frequency_range\t%s - %s (%d points)\n", formatHz(r.Min*1e6), formatHz(r.Max*1e6), r.NPoints)
	}
	if m, ok := h.Model().(hydrophone.Unavailable); ok {
		fmt.Fprintf(tw, "  sensitivity\tunavailable: %s\n", m.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	curves := h.Curves()
	if len(curves) == 0 || h.Table().Len() == 0 {
		return nil
	}
	fmt.Fprintln(w)
	bold.Fprintln(w, "Calibration curves:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  field\tlabel\tunit\tmin\tmax")
	for _, c := range curves {
		lo, hi := c.Values[0], c.Values[0]
		for _, x := range c.Values {
			lo, hi = min(lo, x), max(hi, x)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%.4g\t%.4g\n", c.Field, c.Label, c.Unit, lo, hi)
	}
	return tw.Flush()
}
