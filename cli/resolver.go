package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// loadTOML is a [kong.ConfigurationLoader] for TOML configuration files.
//
// Top-level keys name flags, in either hyphenated or underscored form.
// Tables are flattened by joining keys with '-', so the two files below are
// equivalent:
//
//	log_level = "debug"
//	mem-limit = 65536
//
//	mem_limit = 65536
//	[log]
//	level = "debug"
//
// Command-line flags override config file values.
func loadTOML(r io.Reader) (kong.Resolver, error) {
	var data map[string]any

	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := make(config, len(data))
	cfg.flatten("", data)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration values.
type config map[string]any

func (c config) flatten(prefix string, data map[string]any) {
	for key, value := range data {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if table, ok := value.(map[string]any); ok {
			c.flatten(key, table)

			continue
		}

		c[key] = scalar(value)
	}
}

// scalar converts numbers to strings, which kong decodes into any
// numeric flag type.
func scalar(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	return nil, nil
}
