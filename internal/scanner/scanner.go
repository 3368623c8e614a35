package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/frontmatter"
	"github.com/elemdex-labs/elemdex/internal/scope"
)

// Directory names under a scope root, per element type.
const (
	skillsDir   = "skills"
	commandsDir = "commands"
	agentsDir   = "agents"

	skillManifestName = "SKILL.md"
	markdownExt       = ".md"
)

// Header keys lifted into typed entry fields. Everything else lands in the
// entry's open metadata map.
var (
	skillKeys   = []string{"name", "description", "template", "allowed_tools", "allowed-tools"}
	commandKeys = []string{"name", "description", "aliases", "requires_tools", "requires-tools", "tags"}
	agentKeys   = []string{"name", "description", "model", "specialization", "requires_skills", "requires-skills", "tags"}
)

// Scanner discovers elements across scope roots.
type Scanner struct{}

// New returns a Scanner.
func New() *Scanner {
	return &Scanner{}
}

// Scan discovers elements of the given type. When sc is scope.All, every
// storable scope is scanned. Returned entries carry freshly minted IDs and
// timestamps; per-file problems are collected as warnings.
func (s *Scanner) Scan(t entry.ElementType, sc scope.Scope) ([]entry.Entry, []string, error) {
	scopes := []scope.Scope{sc}
	if sc == scope.All {
		scopes = scope.Known()
	}

	var entries []entry.Entry
	var warnings []string
	for _, current := range scopes {
		root, err := scope.Root(current)
		if err != nil {
			return nil, warnings, &ScanError{Scope: string(current), Err: err}
		}

		found, warns := s.scanScope(t, current, root)
		entries = append(entries, found...)
		warnings = append(warnings, warns...)
	}

	return entries, warnings, nil
}

// scanScope dispatches to the type-specific walk for one scope root.
func (s *Scanner) scanScope(t entry.ElementType, sc scope.Scope, root string) ([]entry.Entry, []string) {
	switch t {
	case entry.TypeSkill:
		return s.scanSkills(sc, root)
	case entry.TypeCommand:
		return s.scanCommands(sc, root)
	case entry.TypeAgent:
		return s.scanAgents(sc, root)
	}
	return nil, []string{fmt.Sprintf("unknown element type %q", t)}
}

// scanSkills walks <root>/skills/<name>/ directories. Each skill is a
// directory whose metadata comes from SKILL.md, or from the first markdown
// file with a parseable header.
func (s *Scanner) scanSkills(sc scope.Scope, root string) ([]entry.Entry, []string) {
	dir := filepath.Join(root, skillsDir)
	dirents, warnings := readDir(dir)

	var entries []entry.Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		skillDir := filepath.Join(dir, d.Name())

		fields, ok, warn := skillHeader(skillDir)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if !ok {
			continue
		}

		absPath, err := filepath.Abs(skillDir)
		if err != nil {
			warnings = append(warnings, warnf(skillDir, "resolving path", err))
			continue
		}

		template := frontmatter.String(fields, "template")
		if template == "" {
			template = string(entry.TemplateBasic)
		}

		hasScripts, fileCount := skillContents(skillDir)

		now := time.Now()
		e := &entry.SkillEntry{
			BaseEntry: entry.BaseEntry{
				ID:          uuid.NewString(),
				Name:        nameOrDefault(fields, d.Name()),
				Description: frontmatter.String(fields, "description"),
				Scope:       sc,
				Path:        absPath,
				CreatedAt:   now,
				UpdatedAt:   now,
				Type:        entry.TypeSkill,
				Metadata:    extraFields(fields, skillKeys),
			},
			Template:     entry.SkillTemplate(template),
			HasScripts:   hasScripts,
			FileCount:    fileCount,
			AllowedTools: frontmatter.StringList(fields, "allowed_tools", "allowed-tools"),
		}

		if err := entry.Validate(e); err != nil {
			warnings = append(warnings, warnf(skillDir, "invalid metadata", err))
			continue
		}
		entries = append(entries, e)
	}

	return entries, warnings
}

// scanCommands walks <root>/commands/<name>.md files. Command names are
// normalized to begin with "/".
func (s *Scanner) scanCommands(sc scope.Scope, root string) ([]entry.Entry, []string) {
	dir := filepath.Join(root, commandsDir)
	files, warnings := markdownFiles(dir)

	var entries []entry.Entry
	for _, file := range files {
		fields, warn := fileHeader(file)
		if warn != "" {
			warnings = append(warnings, warn)
			continue
		}

		absPath, err := filepath.Abs(file)
		if err != nil {
			warnings = append(warnings, warnf(file, "resolving path", err))
			continue
		}

		base := strings.TrimSuffix(filepath.Base(file), markdownExt)
		now := time.Now()
		e := &entry.CommandEntry{
			BaseEntry: entry.BaseEntry{
				ID:          uuid.NewString(),
				Name:        entry.NormalizeCommandName(nameOrDefault(fields, base)),
				Description: frontmatter.String(fields, "description"),
				Scope:       sc,
				Path:        absPath,
				CreatedAt:   now,
				UpdatedAt:   now,
				Type:        entry.TypeCommand,
				Metadata:    extraFields(fields, commandKeys),
			},
			Aliases:       frontmatter.StringList(fields, "aliases"),
			RequiresTools: frontmatter.StringList(fields, "requires_tools", "requires-tools"),
			Tags:          frontmatter.StringList(fields, "tags"),
		}

		if err := entry.Validate(e); err != nil {
			warnings = append(warnings, warnf(file, "invalid metadata", err))
			continue
		}
		entries = append(entries, e)
	}

	return entries, warnings
}

// scanAgents walks <root>/agents/<name>.md files.
func (s *Scanner) scanAgents(sc scope.Scope, root string) ([]entry.Entry, []string) {
	dir := filepath.Join(root, agentsDir)
	files, warnings := markdownFiles(dir)

	var entries []entry.Entry
	for _, file := range files {
		fields, warn := fileHeader(file)
		if warn != "" {
			warnings = append(warnings, warn)
			continue
		}

		absPath, err := filepath.Abs(file)
		if err != nil {
			warnings = append(warnings, warnf(file, "resolving path", err))
			continue
		}

		model := frontmatter.String(fields, "model")
		if model == "" {
			model = string(entry.ModelInherit)
		}
		specialization := frontmatter.String(fields, "specialization")
		if specialization == "" {
			specialization = entry.DefaultSpecialization
		}

		base := strings.TrimSuffix(filepath.Base(file), markdownExt)
		now := time.Now()
		e := &entry.AgentEntry{
			BaseEntry: entry.BaseEntry{
				ID:          uuid.NewString(),
				Name:        nameOrDefault(fields, base),
				Description: frontmatter.String(fields, "description"),
				Scope:       sc,
				Path:        absPath,
				CreatedAt:   now,
				UpdatedAt:   now,
				Type:        entry.TypeAgent,
				Metadata:    extraFields(fields, agentKeys),
			},
			Model:          entry.AgentModel(model),
			Specialization: specialization,
			RequiresSkills: frontmatter.StringList(fields, "requires_skills", "requires-skills"),
			Tags:           frontmatter.StringList(fields, "tags"),
		}

		if err := entry.Validate(e); err != nil {
			warnings = append(warnings, warnf(file, "invalid metadata", err))
			continue
		}
		entries = append(entries, e)
	}

	return entries, warnings
}

// skillHeader locates the metadata header for a skill directory. SKILL.md
// is preferred; otherwise the first markdown file (lexicographic) with a
// parseable header wins. A directory without markdown files is skipped
// silently; markdown without any parseable header produces a warning.
func skillHeader(skillDir string) (map[string]any, bool, string) {
	preferred := filepath.Join(skillDir, skillManifestName)
	if fields, err := frontmatter.ParseFile(preferred); err == nil {
		return fields, true, ""
	}

	dirents, err := os.ReadDir(skillDir)
	if err != nil {
		return nil, false, warnf(skillDir, "reading directory", err)
	}

	sawMarkdown := false
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), markdownExt) {
			continue
		}
		sawMarkdown = true
		fields, err := frontmatter.ParseFile(filepath.Join(skillDir, d.Name()))
		if err == nil {
			return fields, true, ""
		}
	}

	if !sawMarkdown {
		return nil, false, ""
	}
	return nil, false, warnf(skillDir, "no parseable metadata header", nil)
}

// fileHeader parses one element file's metadata header, returning a
// warning string on failure.
func fileHeader(file string) (map[string]any, string) {
	fields, err := frontmatter.ParseFile(file)
	if err != nil {
		return nil, warnf(file, "no parseable metadata header", err)
	}
	return fields, ""
}

// skillContents inspects a skill directory for script presence and counts
// its regular files.
func skillContents(skillDir string) (hasScripts bool, fileCount int) {
	_ = filepath.WalkDir(skillDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "scripts" && path != skillDir {
				hasScripts = true
			}
			return nil
		}
		fileCount++
		switch filepath.Ext(d.Name()) {
		case ".sh", ".py", ".js":
			hasScripts = true
		}
		return nil
	})
	return hasScripts, fileCount
}

// readDir lists a type directory. A missing directory is not a problem (the
// scope simply has no elements of this type); an unreadable one is a warning.
func readDir(dir string) ([]os.DirEntry, []string) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []string{warnf(dir, "reading directory", err)}
	}
	return dirents, nil
}

// markdownFiles lists the markdown files directly under dir.
func markdownFiles(dir string) ([]string, []string) {
	dirents, warnings := readDir(dir)

	var files []string
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), markdownExt) {
			continue
		}
		files = append(files, filepath.Join(dir, d.Name()))
	}
	return files, warnings
}

// nameOrDefault returns the header name field, falling back to the
// filesystem-derived name.
func nameOrDefault(fields map[string]any, def string) string {
	if name := frontmatter.String(fields, "name"); name != "" {
		return name
	}
	return def
}

// extraFields collects header keys that were not lifted into typed fields.
func extraFields(fields map[string]any, lifted []string) map[string]any {
	known := make(map[string]bool, len(lifted))
	for _, k := range lifted {
		known[k] = true
	}

	var extra map[string]any
	for k, v := range fields {
		if known[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

// warnf formats a skip warning and logs it.
func warnf(path, msg string, err error) string {
	w := fmt.Sprintf("skipping %s: %s", path, msg)
	if err != nil {
		w = fmt.Sprintf("%s: %v", w, err)
	}
	log.Warn("scan skip", "path", path, "reason", msg, "err", err)
	return w
}
