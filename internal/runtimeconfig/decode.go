package runtimeconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-accordion/internal/validation"
)

// LoadFile reads a YAML options file, layers it over DefaultConfig and validates
// the result.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("accordion config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON, which is valid YAML) options.
func Parse(data []byte) (Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("accordion config: parse yaml: %w", err)
	}
	return Decode(raw)
}

// Decode builds a Config from untyped options, checking value types before the
// structural validation in Config.Validate. Absent keys keep their defaults.
func Decode(raw map[string]any) (Config, error) {
	cfg := DefaultConfig()
	if raw == nil {
		return cfg, cfg.Validate()
	}

	if value, ok := raw["openAt"]; ok && value != nil {
		openAt, ok := validation.AsInteger(value)
		if !ok {
			return Config{}, validation.WrongType("openAt", "integer")
		}
		cfg.OpenAt = openAt
	}

	if value, ok := raw["multiple"]; ok && value != nil {
		multiple, ok := value.(bool)
		if !ok {
			return Config{}, validation.WrongType("multiple", "boolean")
		}
		cfg.Multiple = multiple
	}

	if value, ok := raw["entries"]; ok && value != nil {
		entries, err := validation.DecodeEntries(value)
		if err != nil {
			return Config{}, err
		}
		cfg.Entries = entries
	}

	if value, ok := raw["ajax"]; ok && value != nil {
		ajax, err := decodeAjax(value)
		if err != nil {
			return Config{}, err
		}
		cfg.Ajax = ajax
	}

	if value, ok := raw["classes"]; ok && value != nil {
		fields, ok := value.(map[string]any)
		if !ok {
			return Config{}, validation.WrongType("classes", "object")
		}
		targets := map[string]*string{
			"root":    &cfg.Classes.Root,
			"header":  &cfg.Classes.Header,
			"opened":  &cfg.Classes.Opened,
			"content": &cfg.Classes.Content,
		}
		for key, target := range targets {
			if err := assignString(fields, key, "classes."+key, target); err != nil {
				return Config{}, err
			}
		}
	}

	if value, ok := raw["logging"]; ok && value != nil {
		if err := remarshal(value, "logging", &cfg.Logging); err != nil {
			return Config{}, err
		}
	}

	if value, ok := raw["routes"]; ok && value != nil {
		if err := remarshal(value, "routes", &cfg.Routes); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeAjax(value any) (*AjaxConfig, error) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, validation.WrongType("ajax", "object")
	}
	ajax := &AjaxConfig{}
	if err := assignString(fields, "url", "ajax.url", &ajax.URL); err != nil {
		return nil, err
	}

	if route, ok := fields["route"]; ok && route != nil {
		ref := &RouteRef{}
		if err := remarshal(route, "ajax.route", ref); err != nil {
			return nil, err
		}
		ajax.Route = ref
	}

	switch shaper := fields["shaper"].(type) {
	case nil:
	case string:
		ajax.Shaper.Kind = shaper
	case map[string]any:
		if err := remarshal(shaper, "ajax.shaper", &ajax.Shaper); err != nil {
			return nil, err
		}
	default:
		return nil, validation.WrongType("ajax.shaper", "string or object")
	}

	if retry, ok := fields["retry"].(map[string]any); ok {
		if tries, ok := retry["maxTries"]; ok && tries != nil {
			n, ok := validation.AsInteger(tries)
			if !ok || n < 0 {
				return nil, validation.WrongType("ajax.retry.maxTries", "non-negative integer")
			}
			ajax.Retry.MaxTries = uint(n)
		}
		if err := assignDuration(retry, "initialInterval", "ajax.retry.initialInterval", &ajax.Retry.InitialInterval); err != nil {
			return nil, err
		}
		if err := assignDuration(retry, "maxElapsed", "ajax.retry.maxElapsed", &ajax.Retry.MaxElapsed); err != nil {
			return nil, err
		}
	}
	if err := assignDuration(fields, "timeout", "ajax.timeout", &ajax.Timeout); err != nil {
		return nil, err
	}
	return ajax, nil
}

func assignString(fields map[string]any, key, name string, target *string) error {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return validation.WrongType(name, "string")
	}
	*target = str
	return nil
}

func assignDuration(fields map[string]any, key, name string, target *time.Duration) error {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return validation.WrongType(name, "duration")
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(str))
	if err != nil {
		return validation.WrongType(name, "duration")
	}
	*target = parsed
	return nil
}

// remarshal routes a nested untyped section through yaml so struct tags drive the
// field mapping.
func remarshal(value any, name string, target any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return validation.WrongType(name, "object")
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return validation.WrongType(name, "object")
	}
	return nil
}
