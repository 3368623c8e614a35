package entry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Field length limits for entry validation.
const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
)

// ValidationError reports a schema violation on an individual entry.
// Scanning skips the offending entry; a save-time read-back check aborts
// the whole save.
type ValidationError struct {
	Path   string // filesystem path of the offending element, if known
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid entry at %s: %s: %s", e.Path, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid entry: %s: %s", e.Field, e.Reason)
}

func invalid(path, field, reason string) *ValidationError {
	return &ValidationError{Path: path, Field: field, Reason: reason}
}

// Validate checks an entry against the model rules: name and description
// lengths, storable scope, absolute existing path, variant enums, and the
// leading-slash rule for command names. The path existence check anchors
// the invariant that an entry is only written to a catalog while its
// backing file or directory exists.
func Validate(e Entry) error {
	b := e.Base()

	if !ValidType(b.Type) {
		return invalid(b.Path, "element_type", fmt.Sprintf("unknown type %q", b.Type))
	}
	if b.Name == "" {
		return invalid(b.Path, "name", "must not be empty")
	}
	if len(b.Name) > MaxNameLen {
		return invalid(b.Path, "name", fmt.Sprintf("exceeds %d characters", MaxNameLen))
	}
	if b.Description == "" {
		return invalid(b.Path, "description", "must not be empty")
	}
	if len(b.Description) > MaxDescriptionLen {
		return invalid(b.Path, "description", fmt.Sprintf("exceeds %d characters", MaxDescriptionLen))
	}
	if b.Scope == "all" {
		return invalid(b.Path, "scope", `"all" is a filter value, not a storable scope`)
	}
	if b.Scope != "global" && b.Scope != "project" && b.Scope != "local" {
		return invalid(b.Path, "scope", fmt.Sprintf("unknown scope %q", b.Scope))
	}
	if b.Path == "" {
		return invalid(b.Path, "path", "must not be empty")
	}
	if !filepath.IsAbs(b.Path) {
		return invalid(b.Path, "path", "must be absolute")
	}
	if _, err := os.Stat(b.Path); err != nil {
		return invalid(b.Path, "path", "does not exist")
	}

	switch v := e.(type) {
	case *SkillEntry:
		if !validTemplate(v.Template) {
			return invalid(b.Path, "template", fmt.Sprintf("unknown template %q", v.Template))
		}
		if v.FileCount < 0 {
			return invalid(b.Path, "file_count", "must not be negative")
		}
	case *CommandEntry:
		if !strings.HasPrefix(b.Name, "/") {
			return invalid(b.Path, "name", `command names must begin with "/"`)
		}
	case *AgentEntry:
		if !validModel(v.Model) {
			return invalid(b.Path, "model", fmt.Sprintf("unknown model %q", v.Model))
		}
	}

	return nil
}

// NormalizeCommandName ensures a command name carries the leading slash.
func NormalizeCommandName(name string) string {
	if name == "" || strings.HasPrefix(name, "/") {
		return name
	}
	return "/" + name
}

func validTemplate(t SkillTemplate) bool {
	for _, known := range SkillTemplates {
		if t == known {
			return true
		}
	}
	return false
}

func validModel(m AgentModel) bool {
	for _, known := range AgentModels {
		if m == known {
			return true
		}
	}
	return false
}
