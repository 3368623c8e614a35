// Package frontmatter extracts the metadata header block from element
// markdown files. A header is a YAML document delimited by "---" lines at
// the very start of the file.
package frontmatter

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

const delimiter = "---"

// ErrNoHeader is wrapped into errors returned for files without a
// metadata header.
var ErrNoHeader = fmt.Errorf("no metadata header")

// Parse splits data into the decoded header mapping and the remaining
// body. It fails when the header is absent, unterminated, or not valid
// YAML.
func Parse(data []byte) (map[string]any, string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, delimiter+"\n") && text != delimiter {
		return nil, "", ErrNoHeader
	}

	rest := strings.TrimPrefix(text, delimiter+"\n")
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return nil, "", fmt.Errorf("%w: unterminated delimiter", ErrNoHeader)
	}

	block := rest[:end]
	body := rest[end+len("\n"+delimiter):]
	body = strings.TrimPrefix(body, "\n")

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return nil, "", fmt.Errorf("parsing metadata header: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	return fields, body, nil
}

// ParseFile reads path and returns its decoded header mapping.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	fields, _, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fields, nil
}

// String returns the header value for the first present key, coerced to a
// trimmed string. Missing keys and non-scalar values yield "".
func String(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case int, int64, float64, bool:
			return strings.TrimSpace(fmt.Sprintf("%v", val))
		}
	}
	return ""
}

// StringList returns the header value for the first present key as a list
// of strings. YAML sequences are taken element-wise; a scalar string is
// split on commas, matching the comma-separated convention used by
// allowed-tools style fields.
func StringList(fields map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case []any:
			var out []string
			for _, item := range val {
				if s, ok := item.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						out = append(out, s)
					}
				}
			}
			return out
		case string:
			var out []string
			for _, part := range strings.Split(val, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out
		}
	}
	return nil
}

// Bool returns the header value for key as a bool, or def when absent or
// not a bool.
func Bool(fields map[string]any, key string, def bool) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return def
}
