package evergreen

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/G-Research/fuzzgen/internal/common/generrors"
)

type Format string

const (
	FormatJson Format = "json"
	FormatYaml Format = "yaml"
)

// ParseFormat accepts a format name case-insensitively; "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJson, nil
	case "yaml", "yml":
		return FormatYaml, nil
	default:
		return "", errors.WithStack(&generrors.ErrInvalidArgument{
			Name:    "format",
			Value:   s,
			Message: `must be one of "json", "yaml"`,
		})
	}
}

// Marshal encodes the configuration. The output always ends in a newline.
func Marshal(c *Configuration, format Format) ([]byte, error) {
	switch format {
	case FormatJson:
		b, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "error marshalling configuration to json")
		}
		return append(b, '\n'), nil
	case FormatYaml:
		b, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "error marshalling configuration to yaml")
		}
		return b, nil
	default:
		return nil, errors.WithStack(&generrors.ErrInvalidArgument{
			Name:    "format",
			Value:   format,
			Message: `must be one of "json", "yaml"`,
		})
	}
}
