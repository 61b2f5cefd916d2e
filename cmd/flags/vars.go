package flags

var (
	// Global
	EnvNoPrefix bool
	Global      GlobalFlags

	// Server
	Server ServerFlags
)

const (
	ENV_PREFIX = "SOCIALITE_"
)
