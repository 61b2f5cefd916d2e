package flags

type ServerFlags struct {
	SkipConfig      bool `env:"SKIP_CONFIG"`
	SkipEnvConfig   bool `env:"SKIP_ENV_CONFIG"`
	DisableLogColor bool `env:"DISABLE_LOG_COLOR"`
}
