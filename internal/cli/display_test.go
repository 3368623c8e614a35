package cli

import (
	"reflect"
	"testing"

	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/scope"
)

func TestParseTypeFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    entry.ElementType
		wantErr bool
	}{
		{"empty means all", "", entry.TypeAll, false},
		{"skill", "skill", entry.TypeSkill, false},
		{"command", "command", entry.TypeCommand, false},
		{"agent", "agent", entry.TypeAgent, false},
		{"explicit all", "all", entry.TypeAll, false},
		{"case insensitive", "SKILL", entry.TypeSkill, false},
		{"unknown", "widget", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTypeFilter(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTypeFilter(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTypeFilter(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseTypeFilter(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "git", []string{"git"}},
		{"multiple", "git,scm", []string{"git", "scm"}},
		{"whitespace trimmed", " git , scm ", []string{"git", "scm"}},
		{"empty segments dropped", "git,,scm,", []string{"git", "scm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTruncateDesc(t *testing.T) {
	tests := []struct {
		name string
		desc string
		max  int
		want string
	}{
		{"short untouched", "brief", 60, "brief"},
		{"exact length untouched", "1234567890", 10, "1234567890"},
		{"long truncated", "a very long description that keeps going", 20, "a very long descr..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateDesc(tt.desc, tt.max)
			if got != tt.want {
				t.Errorf("truncateDesc(%q, %d) = %q, want %q", tt.desc, tt.max, got, tt.want)
			}
			if len(got) > tt.max {
				t.Errorf("result length %d exceeds max %d", len(got), tt.max)
			}
		})
	}
}

func TestToDisplay(t *testing.T) {
	e := &entry.CommandEntry{
		BaseEntry: entry.BaseEntry{
			Name:        "/deploy",
			Description: "deploy the service",
			Scope:       scope.Global,
			Path:        "/home/u/.elemdex/commands/deploy.md",
			Type:        entry.TypeCommand,
		},
		Tags: []string{"ops"},
	}

	d := toDisplay(e)
	if d.Type != "command" || d.Name != "/deploy" || d.Scope != "global" {
		t.Errorf("toDisplay = %+v", d)
	}
	if !reflect.DeepEqual(d.Tags, []string{"ops"}) {
		t.Errorf("Tags = %v, want [ops]", d.Tags)
	}
}
