package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultOutput = "workout.tcx"

type Config struct {
	// Output is the default TCX path, overridable with --output.
	Output string `env:"TCX_OUTPUT" envDefault:"workout.tcx"`
	// HRTolerance bounds how far a heart-rate sample may sit from a track
	// point and still be attached. The comparison is strict.
	HRTolerance time.Duration `env:"TCX_HR_TOLERANCE" envDefault:"5s"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
