package config

// Version is the version of godoit. It can be set by the build system or manually.
// If not set, it will return "v0.0.0-none" by default
var Version string

// DefaultConfigPath is read when neither --config nor GODOIT_CONFIG_PATH is given
// and the file exists.
var DefaultConfigPath string = "./godoit.yaml"

// EnvPrefix is the prefix of environment variables read by LoadEnv.
var EnvPrefix string = "GODOIT"

// DotEnvFile is loaded into the process environment before LoadEnv reads it.
var DotEnvFile string = ".env"

// RPCRoute is where the mock endpoint accepts requests, as in a real i-doit install.
var RPCRoute string = "/src/jsonrpc.php"

func init() {
	if Version == "" {
		Version = "v0.0.0-none"
	}
}
