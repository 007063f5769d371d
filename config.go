package chatextract

import (
	"strconv"
	"strings"
)

// Config holds user-facing settings: where extracted conversations are
// written, how they are rendered, and extraction tuning knobs.
type Config struct {
	// OutputDir is the default directory for rendered conversations.
	OutputDir string `yaml:"output_dir"`

	// FilenameTemplate names output files. Supports {service} and
	// {timestamp} placeholders.
	FilenameTemplate string `yaml:"filename_template"`

	Styles     Styles            `yaml:"styles"`
	Colors     map[string]string `yaml:"colors"`
	Extraction Extraction        `yaml:"extraction"`
	Output     Output            `yaml:"output"`
}

// Styles controls chat-view rendering.
type Styles struct {
	// Header is the markdown heading level for titles ("h1".."h6").
	Header string `yaml:"header"`

	// MaxWidth is the chat-view message width percentage.
	MaxWidth int `yaml:"max_width"`

	ShowTimestamps bool `yaml:"show_timestamps"`
	ShowSequence   bool `yaml:"show_sequence"`
}

// Extraction holds extraction tuning knobs.
type Extraction struct {
	// MinMessageLength drops extracted entries shorter than this many
	// characters.
	MinMessageLength int `yaml:"min_message_length"`

	// MaxRetries bounds fetch retries.
	MaxRetries int `yaml:"max_retries"`

	// TimeoutSeconds bounds each fetch request.
	TimeoutSeconds int `yaml:"timeout"`
}

// Output controls what the rendered document includes.
type Output struct {
	IncludeMetadata  bool `yaml:"include_metadata"`
	IncludeSourceURL bool `yaml:"include_source_url"`
	AddExtractionLog bool `yaml:"add_extraction_log"`
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		OutputDir:        "~/Documents/Conversations",
		FilenameTemplate: "conversation_{service}_{timestamp}.md",
		Styles: Styles{
			Header:         "h3",
			MaxWidth:       75,
			ShowTimestamps: true,
			ShowSequence:   true,
		},
		Colors: map[string]string{
			"user":      "blue",
			"Grok":      "yellow",
			"ChatGPT":   "green",
			"Gemini":    "purple",
			"Claude":    "orange",
			"assistant": "gray",
			"system":    "red",
		},
		Extraction: Extraction{
			MinMessageLength: 1,
			MaxRetries:       3,
			TimeoutSeconds:   30,
		},
		Output: Output{
			IncludeMetadata:  true,
			IncludeSourceURL: true,
			AddExtractionLog: true,
		},
	}
}

// ApplyOverrides applies command-line style overrides in
// "key=value,key=value" form (e.g. "header=h2,mw=60") and returns the
// updated styles. Unknown keys are ignored; malformed values return
// EINVALID.
func (s Styles) ApplyOverrides(overrides string) (Styles, error) {
	if strings.TrimSpace(overrides) == "" {
		return s, nil
	}
	for _, pair := range strings.Split(overrides, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return s, Errorf(EINVALID, "malformed style override %q", pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "header":
			s.Header = value
		case "mw", "max_width":
			n, err := strconv.Atoi(value)
			if err != nil {
				return s, Errorf(EINVALID, "max width must be a number, got %q", value)
			}
			s.MaxWidth = n
		case "show_timestamps":
			s.ShowTimestamps = parseBool(value)
		case "show_sequence":
			s.ShowSequence = parseBool(value)
		}
	}
	return s, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
