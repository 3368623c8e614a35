package entry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testSkill returns a valid skill entry rooted in a real temp directory.
func testSkill(t *testing.T) *SkillEntry {
	t.Helper()
	dir := t.TempDir()
	now := time.Now()
	return &SkillEntry{
		BaseEntry: BaseEntry{
			ID:          "skill-1",
			Name:        "code-review",
			Description: "Reviews code changes",
			Scope:       "project",
			Path:        dir,
			CreatedAt:   now,
			UpdatedAt:   now,
			Type:        TypeSkill,
		},
		Template:  TemplateBasic,
		FileCount: 1,
	}
}

func TestValidate_ValidSkill(t *testing.T) {
	if err := Validate(testSkill(t)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_BaseFieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkillEntry)
		field  string
	}{
		{"empty name", func(e *SkillEntry) { e.Name = "" }, "name"},
		{"name too long", func(e *SkillEntry) { e.Name = strings.Repeat("x", 101) }, "name"},
		{"empty description", func(e *SkillEntry) { e.Description = "" }, "description"},
		{"description too long", func(e *SkillEntry) { e.Description = strings.Repeat("x", 501) }, "description"},
		{"scope all rejected", func(e *SkillEntry) { e.Scope = "all" }, "scope"},
		{"unknown scope", func(e *SkillEntry) { e.Scope = "workspace" }, "scope"},
		{"relative path", func(e *SkillEntry) { e.Path = "skills/foo" }, "path"},
		{"missing path", func(e *SkillEntry) { e.Path = filepath.Join(e.Path, "gone") }, "path"},
		{"unknown type", func(e *SkillEntry) { e.Type = "plugin" }, "element_type"},
		{"unknown template", func(e *SkillEntry) { e.Template = "fancy" }, "template"},
		{"negative file count", func(e *SkillEntry) { e.FileCount = -1 }, "file_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testSkill(t)
			tt.mutate(e)
			err := Validate(e)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidate_CommandNeedsLeadingSlash(t *testing.T) {
	file := filepath.Join(t.TempDir(), "deploy.md")
	if err := os.WriteFile(file, []byte("# deploy"), 0644); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	cmd := &CommandEntry{
		BaseEntry: BaseEntry{
			ID:          "cmd-1",
			Name:        "deploy",
			Description: "Deploys the service",
			Scope:       "global",
			Path:        file,
			CreatedAt:   now,
			UpdatedAt:   now,
			Type:        TypeCommand,
		},
	}

	if err := Validate(cmd); err == nil {
		t.Fatal("expected error for command name without slash, got nil")
	}

	cmd.Name = NormalizeCommandName(cmd.Name)
	if cmd.Name != "/deploy" {
		t.Fatalf("NormalizeCommandName = %q, want %q", cmd.Name, "/deploy")
	}
	if err := Validate(cmd); err != nil {
		t.Fatalf("Validate after normalize: %v", err)
	}
}

func TestValidate_AgentModelEnum(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reviewer.md")
	if err := os.WriteFile(file, []byte("# reviewer"), 0644); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	agent := &AgentEntry{
		BaseEntry: BaseEntry{
			ID:          "agent-1",
			Name:        "reviewer",
			Description: "Reviews pull requests",
			Scope:       "local",
			Path:        file,
			CreatedAt:   now,
			UpdatedAt:   now,
			Type:        TypeAgent,
		},
		Model:          "gpt-9",
		Specialization: DefaultSpecialization,
	}

	if err := Validate(agent); err == nil {
		t.Fatal("expected error for unknown model, got nil")
	}

	agent.Model = ModelSonnet
	if err := Validate(agent); err != nil {
		t.Fatalf("Validate with known model: %v", err)
	}
}

func TestTags(t *testing.T) {
	skill := testSkill(t)
	if got := Tags(skill); got != nil {
		t.Errorf("Tags(skill) = %v, want nil", got)
	}

	cmd := &CommandEntry{Tags: []string{"ops", "deploy"}}
	if got := Tags(cmd); len(got) != 2 || got[0] != "ops" {
		t.Errorf("Tags(command) = %v, want [ops deploy]", got)
	}

	agent := &AgentEntry{Tags: []string{"review"}}
	if got := Tags(agent); len(got) != 1 || got[0] != "review" {
		t.Errorf("Tags(agent) = %v, want [review]", got)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	orig := &CommandEntry{
		BaseEntry: BaseEntry{Name: "/deploy", Metadata: map[string]any{"k": "v"}},
		Tags:      []string{"ops"},
	}

	c := Clone(orig).(*CommandEntry)
	c.Tags[0] = "changed"
	c.Metadata["k"] = "changed"
	c.Name = "/other"

	if orig.Tags[0] != "ops" {
		t.Error("clone aliases Tags slice")
	}
	if orig.Metadata["k"] != "v" {
		t.Error("clone aliases Metadata map")
	}
	if orig.Name != "/deploy" {
		t.Error("clone aliases base fields")
	}
}
