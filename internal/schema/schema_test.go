package schema

import (
	"strings"
	"testing"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "pattern": "^[a-z]+$"},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func TestValidate(t *testing.T) {
	v := MustCompile("test.schema.json", []byte(testSchema))

	tests := []struct {
		name    string
		doc     string
		valid   bool
		keyword string
	}{
		{"valid", `{"name":"api","tags":["x"]}`, true, ""},
		{"missing name", `{"tags":[]}`, false, "required"},
		{"bad pattern", `{"name":"API"}`, false, "pattern"},
		{"wrong item type", `{"name":"api","tags":[1]}`, false, "type"},
		{"not an object", `[]`, false, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (%s)", result.Valid, tt.valid, result.Summary())
			}
			if tt.valid {
				return
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue %+v has empty message", issue)
				}
			}
			if !found {
				t.Errorf("no issue with keyword %q in %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidateNotJSON(t *testing.T) {
	v := MustCompile("test.schema.json", []byte(testSchema))
	if _, err := v.Validate([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestCompileInvalidSchema(t *testing.T) {
	if _, err := Compile("bad.json", []byte(`{"type": 12}`)); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestSummary(t *testing.T) {
	r := &Result{Issues: []Issue{
		{Path: "/projects/api", Message: "got number, want string"},
		{Message: "missing property 'version'"},
	}}
	got := r.Summary()
	if !strings.Contains(got, "/projects/api: got number") || !strings.Contains(got, "missing property") {
		t.Errorf("Summary() = %q", got)
	}
}
