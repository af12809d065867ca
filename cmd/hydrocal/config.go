package main

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "HYDROCAL"

// Configuration keys. Nested keys map to sections of the YAML config file
// and to HYDROCAL_<SECTION>_<NAME> environment variables.
const (
	keyLogLevel      = "log-level"
	keySummaryFormat = "summary.format"
	keyCenter        = "deconvolve.center"
	keyBandwidth     = "deconvolve.bandwidth"
	keyOrder         = "deconvolve.order"
	keyGridPoints    = "deconvolve.grid-points"
	keyImpedance     = "deconvolve.impedance"
	keyDt            = "deconvolve.dt"
)

const (
	defaultLogLevel  = "info"
	defaultFormat    = "text"
	defaultBandwidth = 1.0
	defaultOrder     = 4
	defaultImpedance = 1.5e6
)

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keySummaryFormat, defaultFormat)
	v.SetDefault(keyCenter, 0.0)
	v.SetDefault(keyBandwidth, defaultBandwidth)
	v.SetDefault(keyOrder, defaultOrder)
	v.SetDefault(keyGridPoints, 0)
	v.SetDefault(keyImpedance, defaultImpedance)
	v.SetDefault(keyDt, 0.0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// readConfigFile merges the YAML file at path into v. An empty path is a
// no-op.
func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return pkgerrors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// mustBind binds a flag to a config key. Flags are registered by this
// package, so a missing flag is a programming error.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// deconvSettings are the resolved deconvolve parameters.
type deconvSettings struct {
	Dt         float64
	Center     float64
	Bandwidth  float64
	Order      int
	GridPoints int
	Impedance  float64
}

func loadDeconvSettings(v *viper.Viper) deconvSettings {
	return deconvSettings{
		Dt:         v.GetFloat64(keyDt),
		Center:     v.GetFloat64(keyCenter),
		Bandwidth:  v.GetFloat64(keyBandwidth),
		Order:      v.GetInt(keyOrder),
		GridPoints: v.GetInt(keyGridPoints),
		Impedance:  v.GetFloat64(keyImpedance),
	}
}
