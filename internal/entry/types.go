package entry

import (
	"time"

	"github.com/elemdex-labs/elemdex/internal/scope"
)

// ElementType discriminates the entry variants.
type ElementType string

const (
	TypeSkill   ElementType = "skill"
	TypeCommand ElementType = "command"
	TypeAgent   ElementType = "agent"

	// TypeAll is a query filter value, never stored on an entry.
	TypeAll ElementType = "all"
)

// KnownTypes contains the storable element types.
var KnownTypes = []ElementType{TypeSkill, TypeCommand, TypeAgent}

// ValidType reports whether t names a storable element type.
func ValidType(t ElementType) bool {
	switch t {
	case TypeSkill, TypeCommand, TypeAgent:
		return true
	}
	return false
}

// ValidTypeFilter reports whether t is usable as a query filter.
func ValidTypeFilter(t ElementType) bool {
	return t == TypeAll || ValidType(t)
}

// SkillTemplate enumerates the skill authoring templates.
type SkillTemplate string

const (
	TemplateBasic          SkillTemplate = "basic"
	TemplateAnalysis       SkillTemplate = "analysis"
	TemplateImplementation SkillTemplate = "implementation"
	TemplateValidation     SkillTemplate = "validation"
)

// SkillTemplates contains all valid skill template values.
var SkillTemplates = []SkillTemplate{
	TemplateBasic,
	TemplateAnalysis,
	TemplateImplementation,
	TemplateValidation,
}

// AgentModel enumerates the known agent model identifiers.
type AgentModel string

const (
	ModelSonnet  AgentModel = "sonnet"
	ModelOpus    AgentModel = "opus"
	ModelHaiku   AgentModel = "haiku"
	ModelInherit AgentModel = "inherit"
)

// AgentModels contains all valid agent model values.
var AgentModels = []AgentModel{ModelSonnet, ModelOpus, ModelHaiku, ModelInherit}

// DefaultSpecialization is used when an agent declares no specialization.
const DefaultSpecialization = "general"

// BaseEntry contains fields shared by all entry variants.
//
// ID is an opaque surrogate key: the scanner mints a fresh one per pass and
// the merge step restores the previously persisted ID for entries
// rediscovered at the same (scope, path). CreatedAt is immutable after first
// persistence; UpdatedAt is refreshed whenever a rescan reconfirms the entry.
type BaseEntry struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Scope       scope.Scope    `json:"scope"`
	Path        string         `json:"path"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Type        ElementType    `json:"element_type"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Base returns the shared fields. It makes every variant satisfy Entry
// through embedding.
func (b *BaseEntry) Base() *BaseEntry { return b }

// Entry is the closed set of catalog entry variants. Downstream code
// operates on Base() fields and type-switches only when it needs a
// variant-specific attribute.
type Entry interface {
	Base() *BaseEntry
}

// SkillEntry describes a discovered skill directory.
type SkillEntry struct {
	BaseEntry
	Template     SkillTemplate `json:"template"`
	HasScripts   bool          `json:"has_scripts"`
	FileCount    int           `json:"file_count"`
	AllowedTools []string      `json:"allowed_tools,omitempty"`
}

// CommandEntry describes a discovered command file. Its Name always begins
// with "/".
type CommandEntry struct {
	BaseEntry
	Aliases       []string `json:"aliases,omitempty"`
	RequiresTools []string `json:"requires_tools,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// AgentEntry describes a discovered agent file.
type AgentEntry struct {
	BaseEntry
	Model          AgentModel `json:"model"`
	Specialization string     `json:"specialization"`
	RequiresSkills []string   `json:"requires_skills,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

// Tags returns the variant's tag list, or nil for variants without tags.
func Tags(e Entry) []string {
	switch v := e.(type) {
	case *CommandEntry:
		return v.Tags
	case *AgentEntry:
		return v.Tags
	}
	return nil
}

// Clone returns a deep-enough copy of e: the variant struct is copied and
// slice/map fields are duplicated so mutating the clone never aliases the
// original.
func Clone(e Entry) Entry {
	switch v := e.(type) {
	case *SkillEntry:
		c := *v
		c.AllowedTools = cloneStrings(v.AllowedTools)
		c.Metadata = cloneMetadata(v.Metadata)
		return &c
	case *CommandEntry:
		c := *v
		c.Aliases = cloneStrings(v.Aliases)
		c.RequiresTools = cloneStrings(v.RequiresTools)
		c.Tags = cloneStrings(v.Tags)
		c.Metadata = cloneMetadata(v.Metadata)
		return &c
	case *AgentEntry:
		c := *v
		c.RequiresSkills = cloneStrings(v.RequiresSkills)
		c.Tags = cloneStrings(v.Tags)
		c.Metadata = cloneMetadata(v.Metadata)
		return &c
	}
	return e
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
