package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/deps/klib"
	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/manifest"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// configFileName is looked up in the working directory when --config is not
// given.
const configFileName = appName + ".toml"

// Config is the linkdiag.toml file.
type Config struct {
	Distribution    string `toml:"distribution"`     // Toolchain library directory
	CompilerVersion string `toml:"compiler_version"` // Version of distribution libraries
	Manifest        string `toml:"manifest"`         // External dependency manifest

	Ordering struct {
		StandardPrefixes []string `toml:"standard_prefixes"`
		StandardNames    []string `toml:"standard_names"`
	} `toml:"ordering"`

	Compression struct {
		PlatformPrefix string `toml:"platform_prefix"`
		Disabled       bool   `toml:"disabled"`
	} `toml:"compression"`
}

// WithDefaults returns a copy of Config with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.Compression.PlatformPrefix == "" {
		cfg.Compression.PlatformPrefix = klib.DefaultPlatformPrefix
	}
	return cfg
}

// merging reports whether the manifest-merging builder applies.
func (c Config) merging() bool {
	return c.Manifest != "" || c.Distribution != ""
}

// policy returns the configured ordering policy, or fallback if none is
// configured.
func (c Config) policy(fallback ordering.Policy) ordering.Policy {
	if len(c.Ordering.StandardPrefixes) == 0 && len(c.Ordering.StandardNames) == 0 {
		return fallback
	}
	return ordering.Policy{
		StandardPrefixes: c.Ordering.StandardPrefixes,
		StandardNames:    c.Ordering.StandardNames,
	}
}

// builder selects the graph builder for cfg. current names the module being
// compiled for the default builder; it is ignored by the merging builder,
// whose manifest already marks direct dependencies.
func (c Config) builder(current string, logger *log.Logger) deps.Builder {
	if !c.merging() {
		return &deps.DefaultBuilder{Current: current, Ordering: c.policy(ordering.Default())}
	}

	var loader deps.ManifestLoader
	if c.Manifest != "" {
		loader = manifest.File{Path: c.Manifest}
	}
	return klib.New(klib.Options{
		Distribution:       c.Distribution,
		CompilerVersion:    c.CompilerVersion,
		Manifest:           loader,
		OnMalformed:        func(msg string) { logger.Warn(msg) },
		PlatformPrefix:     c.Compression.PlatformPrefix,
		DisableCompression: c.Compression.Disabled,
		Policy:             c.policy(ordering.Distribution()),
	})
}

// loadConfig reads the config file at path. An empty path loads
// linkdiag.toml from the working directory if it exists, and an empty
// Config otherwise.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if _, err := os.Stat(configFileName); err != nil {
			return cfg, nil
		}
		path = configFileName
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
