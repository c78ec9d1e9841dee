package config

// Model is the merged loader configuration, after defaults, file, and flag
// overrides are applied.
type Model struct {
	// InstancePattern and ScenarioPattern override the canonical filename
	// regexes when non-empty. Group contract is enforced by the loader.
	InstancePattern string
	ScenarioPattern string

	// Workers is the parse fan-out; 1 means sequential.
	Workers int

	LogLevel  string
	LogFormat string

	// S3 is set when entries should be read from object storage instead of
	// a local zip or directory. Credentials come from the environment, not
	// the config file.
	S3 *S3Settings
}

// S3Settings mirrors archive.S3Config minus the credentials.
type S3Settings struct {
	Endpoint string
	Region   string
	Bucket   string
	Prefix   string
	UseSSL   bool
}

// Default returns the configuration used when no file and no flags are
// given.
func Default() *Model {
	return &Model{
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}
