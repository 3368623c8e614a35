package entry

import (
	"testing"
)

const validCatalogJSON = `{
  "schema_version": "1.0.0",
  "last_synced": "2026-01-10T12:00:00Z",
  "skills": [
    {
      "id": "a1",
      "name": "code-review",
      "description": "Reviews code changes",
      "scope": "project",
      "path": "/tmp/skills/code-review",
      "created_at": "2026-01-10T12:00:00Z",
      "updated_at": "2026-01-10T12:00:00Z",
      "element_type": "skill",
      "template": "analysis",
      "has_scripts": false,
      "file_count": 2
    }
  ]
}`

func TestValidateCatalogJSON_Valid(t *testing.T) {
	result, err := ValidateCatalogJSON([]byte(validCatalogJSON))
	if err != nil {
		t.Fatalf("ValidateCatalogJSON: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid document, issues: %+v", result.Issues)
	}
}

func TestValidateCatalogJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"missing schema_version",
			`{"last_synced": "2026-01-10T12:00:00Z"}`,
		},
		{
			"bad scope enum",
			`{
				"schema_version": "1.0.0",
				"last_synced": "2026-01-10T12:00:00Z",
				"agents": [{
					"id": "a", "name": "reviewer", "description": "d",
					"scope": "everywhere", "path": "/tmp/a.md",
					"created_at": "2026-01-10T12:00:00Z", "updated_at": "2026-01-10T12:00:00Z",
					"element_type": "agent", "model": "sonnet", "specialization": "general"
				}]
			}`,
		},
		{
			"bad model enum",
			`{
				"schema_version": "1.0.0",
				"last_synced": "2026-01-10T12:00:00Z",
				"agents": [{
					"id": "a", "name": "reviewer", "description": "d",
					"scope": "global", "path": "/tmp/a.md",
					"created_at": "2026-01-10T12:00:00Z", "updated_at": "2026-01-10T12:00:00Z",
					"element_type": "agent", "model": "gpt-9", "specialization": "general"
				}]
			}`,
		},
		{
			"command without leading slash",
			`{
				"schema_version": "1.0.0",
				"last_synced": "2026-01-10T12:00:00Z",
				"commands": [{
					"id": "c", "name": "deploy", "description": "d",
					"scope": "global", "path": "/tmp/deploy.md",
					"created_at": "2026-01-10T12:00:00Z", "updated_at": "2026-01-10T12:00:00Z",
					"element_type": "command"
				}]
			}`,
		},
		{
			"unexpected top-level key",
			`{"schema_version": "1.0.0", "last_synced": "2026-01-10T12:00:00Z", "widgets": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateCatalogJSON([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ValidateCatalogJSON: %v", err)
			}
			if result.Valid {
				t.Fatal("expected schema violation, document reported valid")
			}
			if len(result.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}
}

func TestValidateCatalogJSON_MalformedJSON(t *testing.T) {
	if _, err := ValidateCatalogJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}
