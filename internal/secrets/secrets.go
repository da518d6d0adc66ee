// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of files.
//
// A plain file holds one secret: the filename is the key and the trimmed
// contents are the value (e.g. watson-nlu-api-key). A .json file holding a
// flat object contributes one key per string field, named
// "<basename>.<field>", so a credentials file such as watson-nlu.json with
// {"apikey": "...", "url": "..."} yields watson-nlu.apikey and watson-nlu.url.
package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known keys.
const (
	WatsonAPIKey = "watson-nlu-api-key"
	WatsonURL    = "watson-nlu-url"
)

// aliases lists alternative keys accepted for a well-known key, in order.
var aliases = map[string][]string{
	WatsonAPIKey: {"watson-nlu.apikey"},
	WatsonURL:    {"watson-nlu.url"},
}

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable or malformed files produce a warning on
// stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if strings.HasSuffix(name, ".json") {
			if err := secrets.addJSON(strings.TrimSuffix(name, ".json"), data); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not parse secret %s: %v\n", name, err)
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

func (s Secrets) addJSON(base string, data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if str = strings.TrimSpace(str); str != "" {
			s[base+"."+k] = str
		}
	}
	return nil
}

// Lookup returns the value for key or one of its aliases.
func (s Secrets) Lookup(key string) (string, bool) {
	if v, ok := s[key]; ok {
		return v, true
	}
	for _, alias := range aliases[key] {
		if v, ok := s[alias]; ok {
			return v, true
		}
	}
	return "", false
}

// Default returns fallback when it is non-empty, otherwise the secret for
// key, otherwise "". Explicit flags and config win over secret files.
func (s Secrets) Default(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	v, _ := s.Lookup(key)
	return v
}

// Keys returns the loaded key names.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
