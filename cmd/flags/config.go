package flags

type GlobalFlags struct {
	Dev     bool   `env:"DEV"`
	LogStd  bool   `env:"LOG_STD"`
	DataDir string `env:"DATA_DIR"`
}
