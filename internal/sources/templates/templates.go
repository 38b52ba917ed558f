// Package templates loads the URL template file and expands a title into
// candidate links.
package templates

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"movielinks/internal/core/domain"
	"movielinks/internal/platform/errors"
	"movielinks/internal/platform/validator"
)

// Placeholder is replaced by the encoded title in every template.
const Placeholder = "{}"

// Set holds the movie and subtitle templates in file order.
type Set struct {
	Movies    []string `json:"movie_templates" yaml:"movie_templates"`
	Subtitles []string `json:"subtitle_templates" yaml:"subtitle_templates"`
}

// Format selects the decoder used by Parse.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension; anything other than
// .yaml/.yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates a template file.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, errors.Wrapf(errors.ErrTemplatesNotFound, "read %s", path)
		}
		return Set{}, errors.Wrapf(err, "read %s", path)
	}
	set, err := Parse(data, FormatFor(path))
	if err != nil {
		return Set{}, errors.Wrapf(err, "load %s", path)
	}
	return set, nil
}

// Parse decodes and validates template data.
func Parse(data []byte, format Format) (Set, error) {
	var set Set
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &set)
	default:
		err = json.Unmarshal(data, &set)
	}
	if err != nil {
		return Set{}, errors.Join(errors.ErrInvalidTemplates, err)
	}
	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// Validate rejects templates that cannot take a title.
func (s Set) Validate() error {
	check := func(key string, list []string) error {
		for i, tpl := range list {
			if !strings.Contains(tpl, Placeholder) {
				return errors.Wrapf(errors.ErrInvalidTemplates, "%s[%d] has no %s placeholder", key, i, Placeholder)
			}
		}
		return nil
	}
	return errors.Join(
		check("movie_templates", s.Movies),
		check("subtitle_templates", s.Subtitles),
	)
}

// Lint reports templates that would not expand to an absolute http(s) URL.
// They are kept: such links end up with an Error status when probed.
func (s Set) Lint() []string {
	var warnings []string
	check := func(key string, list []string) {
		for i, tpl := range list {
			sample := strings.ReplaceAll(tpl, Placeholder, "title")
			if !validator.IsHTTPURL(sample) {
				warnings = append(warnings, fmt.Sprintf("%s[%d] %q is not an absolute http(s) URL", key, i, tpl))
			}
		}
	}
	check("movie_templates", s.Movies)
	check("subtitle_templates", s.Subtitles)
	return warnings
}

// Len returns the total number of templates.
func (s Set) Len() int {
	return len(s.Movies) + len(s.Subtitles)
}

// Generate implements ports.LinkGenerator.
func (s Set) Generate(title string, category domain.Category) []string {
	switch category {
	case domain.CategoryMovie:
		return Expand(title, s.Movies)
	case domain.CategorySubtitle:
		return Expand(title, s.Subtitles)
	default:
		return nil
	}
}

// Expand substitutes the encoded title into each template, keeping order.
func Expand(title string, templates []string) []string {
	if len(templates) == 0 {
		return []string{}
	}
	encoded := EncodeTitle(title)
	out := make([]string, len(templates))
	for i, tpl := range templates {
		out[i] = strings.ReplaceAll(tpl, Placeholder, encoded)
	}
	return out
}

// EncodeTitle normalizes whitespace and query-escapes the title, so spaces
// become '+'.
func EncodeTitle(title string) string {
	return url.QueryEscape(domain.NormalizeTitle(title))
}
