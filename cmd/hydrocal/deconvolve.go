package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openwaterhealth/lifu-hydrophone/internal/waveform"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
	"github.com/openwaterhealth/lifu-hydrophone/measure/pressure"
)

// NewDeconvolveCommand returns the deconvolve command, which converts a voltage
// trace to pressure and prints its metrics.
func NewDeconvolveCommand(v *viper.Viper) *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "deconvolve <calfile> --input FILE",
		Short: "Convert a voltage trace to pressure",
		Long: `Convert a recorded hydrophone voltage trace to pressure using the
calibration, optionally band-limited by a Butterworth bandpass around --center,
and print the pressure metrics. With --output the pressure trace is written as
time,value lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHydrophone(args[0])
			if err != nil {
				return err
			}
			trace, err := waveform.ReadFile(inputPath)
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to read input trace")
			}

			s := loadDeconvSettings(v)
			result, err := runDeconvolve(h, trace, s)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := waveform.WriteFile(outputPath, result.pressure, result.dt); err != nil {
					return pkgerrors.Wrapf(err, "failed to write pressure trace")
				}
				logrus.WithField("file", outputPath).Info("Wrote pressure trace")
			}
			return writeMetrics(cmd.OutOrStdout(), result.metrics)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "voltage trace to deconvolve")
	flags.StringVarP(&outputPath, "output", "O", "", "write the pressure trace to this file")
	flags.Float64("dt", 0, "sampling interval in seconds (default: from the trace time column)")
	flags.Float64("center", 0, "bandpass centre frequency in Hz (0 disables the bandpass)")
	flags.Float64("bandwidth", defaultBandwidth, "bandpass width as a fraction of the centre frequency")
	flags.Int("order", defaultOrder, "bandpass prototype order")
	flags.Int("grid-points", 0, "evaluate the bandpass on a grid of this many points instead of per bin")
	flags.Float64("impedance", defaultImpedance, "acoustic impedance in Rayl for intensity metrics")
	_ = cmd.MarkFlagRequired("input")

	mustBind(v, keyDt, flags.Lookup("dt"))
	mustBind(v, keyCenter, flags.Lookup("center"))
	mustBind(v, keyBandwidth, flags.Lookup("bandwidth"))
	mustBind(v, keyOrder, flags.Lookup("order"))
	mustBind(v, keyGridPoints, flags.Lookup("grid-points"))
	mustBind(v, keyImpedance, flags.Lookup("impedance"))

	return cmd
}

type deconvResult struct {
	pressure []float64
	dt       float64
	metrics  pressure.Metrics
}

func runDeconvolve(h *hydrophone.Hydrophone, trace waveform.Trace, s deconvSettings) (*deconvResult, error) {
	dt := s.Dt
	if dt == 0 {
		dt = trace.Interval
	}

	var opts []hydrophone.DeconvOption
	var metricOpts []pressure.Option
	if s.Center != 0 {
		opts = append(opts,
			hydrophone.WithBandpass(s.Center, s.Bandwidth),
			hydrophone.WithFilterOrder(s.Order),
		)
		if s.GridPoints > 0 {
			opts = append(opts, hydrophone.WithGridResponse(s.GridPoints))
		}
		metricOpts = append(metricOpts, pressure.WithCenterFrequency(s.Center))
	}
	metricOpts = append(metricOpts, pressure.WithImpedance(s.Impedance))

	logrus.WithFields(logrus.Fields{
		"samples":   len(trace.Samples),
		"dt":        dt,
		"center":    s.Center,
		"bandwidth": s.Bandwidth,
		"order":     s.Order,
	}).Debug("Deconvolving trace")

	p, err := h.Deconvolve(trace.Samples, dt, opts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to deconvolve trace")
	}
	m, err := pressure.Analyze(p, dt, metricOpts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to analyze pressure")
	}
	return &deconvResult{pressure: p, dt: dt, metrics: m}, nil
}

func writeMetrics(w io.Writer, m pressure.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "samples\t%d\n", m.Samples)
	fmt.Fprintf(tw, "peak positive pressure\t%s\n", formatPa(m.PeakPositive))
	fmt.Fprintf(tw, "peak negative pressure\t%s\n", formatPa(m.PeakNegative))
	fmt.Fprintf(tw, "peak-to-peak pressure\t%s\n", formatPa(m.PeakToPeak))
	fmt.Fprintf(tw, "rms pressure\t%s\n", formatPa(m.RMS))
	fmt.Fprintf(tw, "crest factor\t%.3f\n", m.CrestFactor)
	fmt.Fprintf(tw, "pulse intensity integral\t%.4g J/m²\n", m.PulseIntensityIntegral)
	if m.HasMechanicalIndex {
		fmt.Fprintf(tw, "mechanical index\t%.3f\n", m.MechanicalIndex)
	}
	return tw.Flush()
}
