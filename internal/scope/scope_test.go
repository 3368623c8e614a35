package scope

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoot_GlobalEnvOverride(t *testing.T) {
	t.Setenv("ELEMDEX_GLOBAL_ROOT", "/tmp/test-global")
	root, err := Root(Global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/tmp/test-global" {
		t.Errorf("expected /tmp/test-global, got %s", root)
	}
}

func TestRoot_GlobalDefault(t *testing.T) {
	t.Setenv("ELEMDEX_GLOBAL_ROOT", "")
	root, err := Root(Global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".elemdex")
	if root != expected {
		t.Errorf("expected %s, got %s", expected, root)
	}
}

func TestRoot_ProjectEnvOverride(t *testing.T) {
	t.Setenv("ELEMDEX_PROJECT_ROOT", "/tmp/test-project")
	root, err := Root(Project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/tmp/test-project" {
		t.Errorf("expected /tmp/test-project, got %s", root)
	}
}

func TestRoot_ProjectFindsNearestMarker(t *testing.T) {
	t.Setenv("ELEMDEX_PROJECT_ROOT", "")
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, ".elemdex"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(tmp, "sub", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	root, err := Root(Project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// macOS reports TempDir through a symlink; compare resolved paths.
	want, _ := filepath.EvalSymlinks(filepath.Join(tmp, ".elemdex"))
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRoot_LocalSiblingOfProject(t *testing.T) {
	t.Setenv("ELEMDEX_LOCAL_ROOT", "")
	tmp := t.TempDir()
	t.Chdir(tmp)

	root, err := Root(Local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(root) != ".elemdex.local" {
		t.Errorf("expected .elemdex.local base, got %s", root)
	}
}

func TestRoot_AllHasNoDirectory(t *testing.T) {
	if _, err := Root(All); err == nil {
		t.Fatal("expected error for scope all, got nil")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		s        Scope
		valid    bool
		asFilter bool
	}{
		{Global, true, true},
		{Project, true, true},
		{Local, true, true},
		{All, false, true},
		{Scope("workspace"), false, false},
		{Scope(""), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.s), func(t *testing.T) {
			if got := Valid(tt.s); got != tt.valid {
				t.Errorf("Valid(%q) = %v, want %v", tt.s, got, tt.valid)
			}
			if got := ValidFilter(tt.s); got != tt.asFilter {
				t.Errorf("ValidFilter(%q) = %v, want %v", tt.s, got, tt.asFilter)
			}
		})
	}
}
