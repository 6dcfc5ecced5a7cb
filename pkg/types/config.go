// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConverterBackend identifies how the external LaTeX-to-Markdown converter
// is invoked.
type ConverterBackend string

const (
	// BackendPandoc runs a local pandoc binary.
	BackendPandoc ConverterBackend = "pandoc"
	// BackendContainer runs pandoc inside a docker or podman container.
	BackendContainer ConverterBackend = "container"
)

// Defaults applied by ConverterConfig.WithDefaults.
const (
	DefaultPandocBinary = "pandoc"
	DefaultPandocImage  = "pandoc/core:latest"
	DefaultFromFormat   = "latex"
	DefaultToFormat     = "markdown"
)

// ConverterConfig holds settings for the external converter.
type ConverterConfig struct {
	// Backend selects the invocation: pandoc (local binary) or container.
	Backend ConverterBackend `json:"backend" yaml:"backend"`

	// Binary is the pandoc executable for the pandoc backend.
	Binary string `json:"binary" yaml:"binary"`

	// Image is the container image for the container backend.
	Image string `json:"image" yaml:"image"`

	// Runtime pins the container engine ("docker" or "podman"). Empty
	// tries docker, then podman.
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`

	// From is the reader format passed as -f (default latex).
	From string `json:"from" yaml:"from"`

	// To is the writer format passed as -t (default markdown).
	To string `json:"to" yaml:"to"`

	// ExtraArgs are appended to every pandoc invocation.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c ConverterConfig) WithDefaults() ConverterConfig {
	if c.Backend == "" {
		c.Backend = BackendPandoc
	}
	if c.Binary == "" {
		c.Binary = DefaultPandocBinary
	}
	if c.Image == "" {
		c.Image = DefaultPandocImage
	}
	if c.From == "" {
		c.From = DefaultFromFormat
	}
	if c.To == "" {
		c.To = DefaultToFormat
	}
	return c
}

// Args returns the pandoc command-line arguments for this configuration.
func (c ConverterConfig) Args() []string {
	c = c.WithDefaults()
	args := make([]string, 0, 4+len(c.ExtraArgs))
	args = append(args, "-f", c.From, "-t", c.To)
	return append(args, c.ExtraArgs...)
}

// ImageConfig holds settings applied to extracted image paths.
type ImageConfig struct {
	// Prefix is prepended verbatim to every image path (e.g. "assets/").
	Prefix string `json:"prefix" yaml:"prefix"`
}

// CacheConfig holds settings for the converter result cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `json:"path" yaml:"path"`
}

// OutputConfig holds settings for written Markdown files.
type OutputConfig struct {
	// Dir is the output directory for batch conversion (empty = beside input).
	Dir string `json:"dir" yaml:"dir"`

	// Overwrite replaces existing outputs instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// Manifest writes a YAML manifest of extracted constructs next to each output.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// Config groups all settings for a conversion run.
type Config struct {
	Converter ConverterConfig `json:"converter" yaml:"converter"`
	Images    ImageConfig     `json:"images" yaml:"images"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Output    OutputConfig    `json:"output" yaml:"output"`
}

// String returns the backend name.
func (b ConverterBackend) String() string { return string(b) }
