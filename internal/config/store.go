package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store is a minimal configuration store with dot-notation keys, YAML file
// loading, defaults, and explicit overrides. Lookup order: explicit values,
// then defaults.
type Store struct {
	data     map[string]interface{}
	defaults map[string]interface{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		data:     make(map[string]interface{}),
		defaults: make(map[string]interface{}),
	}
}

// LoadYAMLFile reads a YAML config file into the store.
func (s *Store) LoadYAMLFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.LoadYAML(raw); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// LoadYAML merges raw YAML content into the store.
func (s *Store) LoadYAML(raw []byte) error {
	var m map[string]interface{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return err
	}
	flattenInto(s.data, "", m)
	return nil
}

// Set stores a value under the given dot-notation key.
func (s *Store) Set(key string, value interface{}) {
	s.data[key] = value
}

// SetDefault sets a fallback value used when no explicit value exists.
func (s *Store) SetDefault(key string, value interface{}) {
	s.defaults[key] = value
}

// IsSet reports whether the key has an explicit (non-default) value.
func (s *Store) IsSet(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Get returns the raw value for a key, checking data then defaults.
func (s *Store) Get(key string) (interface{}, bool) {
	if v, ok := s.data[key]; ok {
		return v, true
	}
	if v, ok := s.defaults[key]; ok {
		return v, true
	}
	return nil, false
}

// GetString returns the string value for a key.
func (s *Store) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// GetInt returns the integer value for a key.
func (s *Store) GetInt(key string) int {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	default:
		return 0
	}
}

// GetBool returns the boolean value for a key.
func (s *Store) GetBool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	case int:
		return val != 0
	default:
		return false
	}
}

// GetDuration returns the duration value for a key. String values are parsed
// with time.ParseDuration; numbers are treated as seconds.
func (s *Store) GetDuration(key string) time.Duration {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case time.Duration:
		return val
	case string:
		d, _ := time.ParseDuration(val)
		return d
	case int:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val) * time.Second
	default:
		return 0
	}
}

// GetStringSlice returns a string slice for a key.
func (s *Store) GetStringSlice(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = fmt.Sprint(item)
		}
		return out
	default:
		return nil
	}
}

// Sub returns a new Store scoped to the given prefix, or nil when nothing is
// stored under it. Sub("providers.openai") maps "api_key" to the original
// "providers.openai.api_key".
func (s *Store) Sub(prefix string) *Store {
	sub := NewStore()
	dot := prefix + "."
	for k, v := range s.data {
		if strings.HasPrefix(k, dot) {
			sub.data[strings.TrimPrefix(k, dot)] = v
		}
	}
	for k, v := range s.defaults {
		if strings.HasPrefix(k, dot) {
			sub.defaults[strings.TrimPrefix(k, dot)] = v
		}
	}
	if len(sub.data) == 0 && len(sub.defaults) == 0 {
		return nil
	}
	return sub
}

// flattenInto writes a nested map into out using dot-notation keys.
func flattenInto(out map[string]interface{}, prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flattenInto(out, key, val)
		case map[interface{}]interface{}:
			// Older YAML decoders produce interface keys.
			converted := make(map[string]interface{}, len(val))
			for mk, mv := range val {
				converted[fmt.Sprint(mk)] = mv
			}
			flattenInto(out, key, converted)
		default:
			out[key] = v
		}
	}
}
