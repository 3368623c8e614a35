package syncer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/elemdex-labs/elemdex/internal/entry"
)

// SchemaVersion is written into every saved manifest. Manifests whose
// major version differs are rejected at load time.
const SchemaVersion = "1.0.0"

// Catalog is the persisted container for one element type. Each (type,
// scope) pair is an independent unit of persistence.
type Catalog struct {
	SchemaVersion string
	LastSynced    time.Time
	Type          entry.ElementType
	Entries       []entry.Entry
}

// NewCatalog returns an empty catalog for t.
func NewCatalog(t entry.ElementType) *Catalog {
	return &Catalog{
		SchemaVersion: SchemaVersion,
		Type:          t,
	}
}

// manifestKey returns the JSON key (and file stem) for a type's entry list.
func manifestKey(t entry.ElementType) string {
	switch t {
	case entry.TypeSkill:
		return "skills"
	case entry.TypeCommand:
		return "commands"
	case entry.TypeAgent:
		return "agents"
	}
	return string(t)
}

type skillsDoc struct {
	SchemaVersion string              `json:"schema_version"`
	LastSynced    time.Time           `json:"last_synced"`
	Skills        []*entry.SkillEntry `json:"skills"`
}

type commandsDoc struct {
	SchemaVersion string                `json:"schema_version"`
	LastSynced    time.Time             `json:"last_synced"`
	Commands      []*entry.CommandEntry `json:"commands"`
}

type agentsDoc struct {
	SchemaVersion string              `json:"schema_version"`
	LastSynced    time.Time           `json:"last_synced"`
	Agents        []*entry.AgentEntry `json:"agents"`
}

// encode serializes the catalog as an indented manifest document.
func (c *Catalog) encode() ([]byte, error) {
	switch c.Type {
	case entry.TypeSkill:
		doc := skillsDoc{SchemaVersion: c.SchemaVersion, LastSynced: c.LastSynced, Skills: []*entry.SkillEntry{}}
		for _, e := range c.Entries {
			v, ok := e.(*entry.SkillEntry)
			if !ok {
				return nil, fmt.Errorf("catalog of type skill holds %T", e)
			}
			doc.Skills = append(doc.Skills, v)
		}
		return json.MarshalIndent(doc, "", "  ")
	case entry.TypeCommand:
		doc := commandsDoc{SchemaVersion: c.SchemaVersion, LastSynced: c.LastSynced, Commands: []*entry.CommandEntry{}}
		for _, e := range c.Entries {
			v, ok := e.(*entry.CommandEntry)
			if !ok {
				return nil, fmt.Errorf("catalog of type command holds %T", e)
			}
			doc.Commands = append(doc.Commands, v)
		}
		return json.MarshalIndent(doc, "", "  ")
	case entry.TypeAgent:
		doc := agentsDoc{SchemaVersion: c.SchemaVersion, LastSynced: c.LastSynced, Agents: []*entry.AgentEntry{}}
		for _, e := range c.Entries {
			v, ok := e.(*entry.AgentEntry)
			if !ok {
				return nil, fmt.Errorf("catalog of type agent holds %T", e)
			}
			doc.Agents = append(doc.Agents, v)
		}
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("cannot encode catalog of type %q", c.Type)
}

// decode fills the catalog from manifest bytes. c.Type selects the entry
// variant to decode into.
func (c *Catalog) decode(data []byte) error {
	switch c.Type {
	case entry.TypeSkill:
		var doc skillsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding skills manifest: %w", err)
		}
		c.SchemaVersion = doc.SchemaVersion
		c.LastSynced = doc.LastSynced
		c.Entries = nil
		for _, e := range doc.Skills {
			c.Entries = append(c.Entries, e)
		}
		return nil
	case entry.TypeCommand:
		var doc commandsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding commands manifest: %w", err)
		}
		c.SchemaVersion = doc.SchemaVersion
		c.LastSynced = doc.LastSynced
		c.Entries = nil
		for _, e := range doc.Commands {
			c.Entries = append(c.Entries, e)
		}
		return nil
	case entry.TypeAgent:
		var doc agentsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding agents manifest: %w", err)
		}
		c.SchemaVersion = doc.SchemaVersion
		c.LastSynced = doc.LastSynced
		c.Entries = nil
		for _, e := range doc.Agents {
			c.Entries = append(c.Entries, e)
		}
		return nil
	}
	return fmt.Errorf("cannot decode catalog of type %q", c.Type)
}
