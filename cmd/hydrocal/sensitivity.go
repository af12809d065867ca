package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
)

// NewSensitivityCommand returns the sensitivity command, which evaluates the
// sensitivity model at given frequencies.
func NewSensitivityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sensitivity <calfile> <frequency>...",
		Short: "Print sensitivity at the given frequencies",
		Long: `Print the interpolated sensitivity of a hydrophone at one or more
frequencies. Frequencies are in Hz and accept SI prefixes, e.g. 2e6, 2MHz or 500k.
Frequencies outside the calibrated range are extrapolated and marked.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			freqs := make([]float64, 0, len(args)-1)
			for _, a := range args[1:] {
				f, err := parseHz(a)
				if err != nil {
					return err
				}
				freqs = append(freqs, f)
			}

			h, err := loadHydrophone(args[0])
			if err != nil {
				return err
			}
			return writeSensitivity(cmd.OutOrStdout(), h, freqs)
		},
	}
}

func writeSensitivity(w io.Writer, h *hydrophone.Hydrophone, freqs []float64) error {
	resp, err := h.FrequencyResponse(freqs)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to evaluate sensitivity of %s", h)
	}
	model, _ := h.Model().(*hydrophone.Available)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "frequency\tPa/V\tV/Pa\t")
	for i, f := range freqs {
		note := ""
		if model != nil && !model.Calibrated(f) {
			note = color.YellowString("extrapolated")
			logrus.WithField("frequency", formatHz(f)).Debug("Frequency outside calibrated range")
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%s\n", formatHz(f), resp[i], 1/resp[i], note)
	}
	return tw.Flush()
}
