// Package config provides configuration management for the leaplint CLI.
//
// Configuration is layered, lowest precedence first: built-in defaults,
// config files found from the filesystem root down to the working directory
// (deeper files override shallower ones), LEAPLINT_ environment variables and
// finally flags set on the command line.
package config

// Config file names, in lookup order within one directory.
var configFileNames = []string{".leaplint.yaml", ".leaplint.yml", ".leaplint.toml"}

// Defaults.
const (
	DefaultDialect       = "ansi"
	DefaultTemplater     = "raw"
	DefaultMaxIterations = 10
	DefaultOutput        = "auto"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect   string         `koanf:"dialect"`
	Templater string         `koanf:"templater"`
	Vars      map[string]any `koanf:"vars"`

	// Rules selects rules by ID, name or group. Empty selects every rule.
	Rules        []string `koanf:"rules"`
	ExcludeRules []string `koanf:"exclude_rules"`
	// Severity overrides a rule's default severity, e.g. LT05: error.
	Severity    map[string]string         `koanf:"severity"`
	RuleOptions map[string]map[string]any `koanf:"rule_options"`
	IgnoreNoqa  bool                      `koanf:"ignore_noqa"`

	MaxIterations int `koanf:"max_iterations"`
	// Workers is the number of files processed at once; 0 uses every CPU.
	Workers int `koanf:"workers"`

	Cache    bool   `koanf:"cache"`
	CacheDir string `koanf:"cache_dir"`

	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`

	// Files lists the config files that were merged, outermost first.
	Files []string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"dialect":        DefaultDialect,
		"templater":      DefaultTemplater,
		"max_iterations": DefaultMaxIterations,
		"workers":        0,
		"cache":          true,
		"output":         DefaultOutput,
		"verbose":        false,
		"ignore_noqa":    false,
	}
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Dialect:       DefaultDialect,
		Templater:     DefaultTemplater,
		MaxIterations: DefaultMaxIterations,
		Cache:         true,
		Output:        DefaultOutput,
	}
}
