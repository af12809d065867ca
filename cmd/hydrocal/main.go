// Command hydrocal inspects hydrophone calibrations and converts recorded
// voltage traces to pressure.
//
// Usage:
//
//	hydrocal summary <calfile> [--format text|yaml|json]
//	hydrocal sensitivity <calfile> <frequency>...
//	hydrocal deconvolve <calfile> --input FILE [--dt SECONDS] [--center HZ]
//
// Settings can also come from a YAML file given with --config or from
// HYDROCAL_* environment variables, e.g. HYDROCAL_DECONVOLVE_ORDER=6.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openwaterhealth/lifu-hydrophone/internal/waveform"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone/calfile"
	"github.com/openwaterhealth/lifu-hydrophone/measure/pressure"
)

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

// handleCmdError prints err and, for known failure classes, a hint on how to
// fix the input.
func handleCmdError(w io.Writer, err error) {
	red := color.New(color.Bold, color.FgRed)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	var hint string
	switch {
	case errors.Is(err, calfile.ErrNoFields):
		hint = "The calibration header declares no DATA_FIELD columns."
	case errors.Is(err, calfile.ErrFormat):
		hint = "The calibration file is malformed. Every data row needs one number per DATA_FIELD."
	case errors.Is(err, hydrophone.ErrInvalidCalibration):
		hint = "The calibration holds a zero or non-finite sensitivity, or a repeated frequency."
	case errors.Is(err, hydrophone.ErrModelUnavailable):
		hint = "Voltage conversion needs FREQ_MHz and SENS_VPERPA columns with at least one row."
	case errors.Is(err, hydrophone.ErrInvalidBandpass):
		hint = "Choose --center and --bandwidth so the band lies between DC and Nyquist (1/(2*dt))."
	case errors.Is(err, hydrophone.ErrInvalidSamplingInterval), errors.Is(err, pressure.ErrInvalidSamplingInterval):
		hint = "Pass a positive --dt or give the input trace a time column."
	case errors.Is(err, waveform.ErrFormat), errors.Is(err, waveform.ErrNonUniform):
		hint = "Input traces hold one value or one time,value pair per line, uniformly sampled."
	case errors.Is(err, os.ErrNotExist):
		hint = "Check the file path."
	}
	if hint != "" {
		color.New(color.FgYellow).Fprintln(w, "  "+hint)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand builds the root command with its own configuration registry.
func NewCommand() *cobra.Command {
	v := newConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "hydrocal",
		Short: "hydrocal works with hydrophone calibrations",
		Long: `hydrocal reads hydrophone calibration files, reports their metadata and
sensitivity, and deconvolves recorded voltage traces into pressure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigFile(v, configPath); err != nil {
				return err
			}
			return setupLogger(v.GetString(keyLogLevel))
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringP("log-level", "l", defaultLogLevel, "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", "", "YAML config file path")
	mustBind(v, keyLogLevel, globalFlags.Lookup("log-level"))

	cmd.AddCommand(
		NewSummaryCommand(v),
		NewSensitivityCommand(),
		NewDeconvolveCommand(v),
	)

	return cmd
}

func loadHydrophone(path string) (*hydrophone.Hydrophone, error) {
	h, err := hydrophone.Load(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to load calibration %s", path)
	}
	fields := logrus.Fields{"file": path, "hydrophone": h.String()}
	switch m := h.Model().(type) {
	case *hydrophone.Available:
		fields["points"] = m.Points()
		fields["range"] = formatHz(m.MinFrequencyHz()) + " - " + formatHz(m.MaxFrequencyHz())
	case hydrophone.Unavailable:
		fields["unavailable"] = m.Reason
	}
	logrus.WithFields(fields).Debug("Loaded calibration")
	return h, nil
}
