// Package ldifcfg provides the configuration helpers the cmd/*
// frontends use next to their own flag parsing: an optional saved
// "--config file.json" overlay, read with github.com/buger/jsonparser
// rather than encoding/json, ConfigError-returning flag checks, and the
// shared logger.
package ldifcfg

import (
	"fmt"

	"github.com/buger/jsonparser"
)

// ConfigError reports a configuration mistake: mutually exclusive
// flags, or a required argument left unset.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// File is the shape of a "--config file.json" overlay shared by the
// frontends that accept one: a saved attribute list, an optional
// default value per attribute spec, and an optional filter string.
//
// Defaults holds each value as whatever Go type jsonparser decoded it
// to (string, float64, or bool) rather than coercing eagerly here; a
// caller that needs the default as text (attrspec.NewNullCoalesce)
// does that coercion with github.com/spf13/cast, since a JSON config
// author may reasonably write a bare number or boolean for a default
// ("employeeNumber": 0) and expect it rendered as the equivalent text.
type File struct {
	Attributes []string
	Defaults   map[string]interface{}
	Filter     string
}

// LoadFile parses a config-file overlay from raw JSON bytes.
// Unset fields keep their zero value rather than erroring: every field
// of File is optional.
func LoadFile(data []byte) (File, error) {
	var f File

	if v, _, _, err := jsonparser.Get(data, "attributes"); err == nil {
		err := jsonparserArrayEach(v, func(val []byte) error {
			f.Attributes = append(f.Attributes, string(val))
			return nil
		})
		if err != nil {
			return File{}, fmt.Errorf("ldifcfg: attributes: %w", err)
		}
	}

	if v, _, _, err := jsonparser.Get(data, "filter"); err == nil {
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return File{}, fmt.Errorf("ldifcfg: filter: %w", err)
		}
		f.Filter = s
	}

	if v, dt, _, err := jsonparser.Get(data, "defaults"); err == nil && dt == jsonparser.Object {
		f.Defaults = make(map[string]interface{})
		walkErr := jsonparser.ObjectEach(v, func(key, val []byte, dt jsonparser.ValueType, _ int) error {
			parsed, err := parseDefaultValue(val, dt)
			if err != nil {
				return err
			}
			f.Defaults[string(key)] = parsed
			return nil
		})
		if walkErr != nil {
			return File{}, fmt.Errorf("ldifcfg: defaults: %w", walkErr)
		}
	}

	return f, nil
}

// parseDefaultValue decodes one "defaults" object value into its
// natural Go type, so a later cast.ToStringE (attrspec.NewNullCoalesce)
// has a real type to coerce instead of a pre-flattened string.
func parseDefaultValue(val []byte, dt jsonparser.ValueType) (interface{}, error) {
	switch dt {
	case jsonparser.String:
		return jsonparser.ParseString(val)
	case jsonparser.Number:
		return jsonparser.ParseFloat(val)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(val)
	default:
		return string(val), nil
	}
}

// jsonparserArrayEach adapts jsonparser.ArrayEach's panic-style error
// propagation (via its ignorable last argument) into a plain error
// return.
func jsonparserArrayEach(data []byte, cb func(val []byte) error) (reterr error) {
	_, err := jsonparser.ArrayEach(data, func(val []byte, _ jsonparser.ValueType, _ int, entryErr error) {
		if entryErr != nil {
			reterr = entryErr
			return
		}
		if reterr == nil {
			reterr = cb(val)
		}
	})
	if reterr == nil {
		reterr = err
	}
	return reterr
}

// MutuallyExclusive returns a *ConfigError naming flag if more than one
// of set is true, nil otherwise.
func MutuallyExclusive(flag string, set ...bool) error {
	n := 0
	for _, b := range set {
		if b {
			n++
		}
	}
	if n > 1 {
		return &ConfigError{Msg: fmt.Sprintf("%s: mutually exclusive flags given together", flag)}
	}
	return nil
}

// Required returns a *ConfigError naming flag if it is empty.
func Required(flag, value string) error {
	if value == "" {
		return &ConfigError{Msg: fmt.Sprintf("%s: required argument missing", flag)}
	}
	return nil
}
