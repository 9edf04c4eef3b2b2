package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/format"
	"github.com/signadot/haarprep/parse"
	"github.com/signadot/haarprep/unwrap"
)

// Well-known artifact names used when no path is given.
const (
	DefaultStagesFile   = "stages.json"
	DefaultFeaturesFile = "features.json"
	DefaultCombinedFile = "combined.json"
)

type Config struct {
	// Sentinel is the wrapper key removed by the unwrap stage.
	Sentinel string `yaml:"sentinel" json:"sentinel"`
	// Strict fails the coerce stage on partially numeric strings.
	Strict   bool `yaml:"strict" json:"strict"`
	MaxDepth int  `yaml:"maxDepth" json:"maxDepth"`

	Indent int `yaml:"indent" json:"indent"`
	// Format is the encoding for standard output and for paths without a
	// known extension, "json" or "yaml".
	Format format.Format `yaml:"format" json:"format"`

	StagesFile   string `yaml:"stagesFile" json:"stagesFile"`
	FeaturesFile string `yaml:"featuresFile" json:"featuresFile"`
	CombinedFile string `yaml:"combinedFile" json:"combinedFile"`
}

func DefaultConfig() Config {
	return Config{
		Sentinel:     unwrap.DefaultSentinel,
		MaxDepth:     parse.DefaultMaxDepth,
		Indent:       4,
		Format:       format.JSONFormat,
		StagesFile:   DefaultStagesFile,
		FeaturesFile: DefaultFeaturesFile,
		CombinedFile: DefaultCombinedFile,
	}
}

// LoadConfig reads a YAML config file. Fields it does not set keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	d, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := yaml.UnmarshalWithOptions(d, &cfg, yaml.DisallowUnknownField()); err != nil {
		return cfg, fmt.Errorf("could not decode config %q: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Patch applies a JSON merge patch (RFC 7386) to the config, as in
// `-set '{"indent": 2}'`.
func (c Config) Patch(mergePatch []byte) (Config, error) {
	d, err := json.Marshal(c)
	if err != nil {
		return c, err
	}
	patched, err := jsonpatch.MergePatch(d, mergePatch)
	if err != nil {
		return c, fmt.Errorf("invalid config patch %s: %w", mergePatch, err)
	}
	res := DefaultConfig()
	if err := json.Unmarshal(patched, &res); err != nil {
		return c, fmt.Errorf("invalid config patch %s: %w", mergePatch, err)
	}
	return res, res.Validate()
}

func (c Config) Validate() error {
	if _, err := c.Format.MarshalText(); err != nil {
		return fmt.Errorf("config format: %w", err)
	}
	if c.Indent < 0 {
		return fmt.Errorf("config indent must not be negative, got %d", c.Indent)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config maxDepth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// PathFormat is the encoding used for path. Standard output and paths
// without a known extension use the configured format.
func (c Config) PathFormat(path string) format.Format {
	if path == Stdio {
		return c.Format
	}
	return format.FromPathDefault(path, c.Format)
}

// EncodeOptions returns the encoder options for writing path. colors may be
// nil.
func (c Config) EncodeOptions(path string, colors *encode.Colors) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(c.PathFormat(path)),
		encode.Indent(c.Indent),
	}
	if colors != nil {
		res = append(res, encode.EncodeColors(colors))
	}
	return res
}
