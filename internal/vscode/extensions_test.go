package vscode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

const ext = "KnisterPeter.vscode-commitizen"

func TestMergeRecommendation(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		want        []string
		wantChanged bool
	}{
		{"empty document", "", []string{ext}, true},
		{"empty object", "{}", []string{ext}, true},
		{"null recommendations", `{"recommendations": null}`, []string{ext}, true},
		{
			name:        "appends",
			doc:         `{"recommendations": ["nrwl.angular-console", "esbenp.prettier-vscode"]}`,
			want:        []string{"nrwl.angular-console", "esbenp.prettier-vscode", ext},
			wantChanged: true,
		},
		{"already present", `{"recommendations": ["` + ext + `"]}`, []string{ext}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := MergeRecommendation([]byte(tt.doc), ext)
			if err != nil {
				t.Fatalf("MergeRecommendation() error: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if diff := cmp.Diff(tt.want, Recommendations(out)); diff != "" {
				t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeRecommendationKeepsOtherKeys(t *testing.T) {
	doc := `{"recommendations": [], "unwantedRecommendations": ["ms-vscode.vscode-typescript-tslint-plugin"]}`
	out, _, err := MergeRecommendation([]byte(doc), ext)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(out, "unwantedRecommendations.0").String(); got != "ms-vscode.vscode-typescript-tslint-plugin" {
		t.Errorf("unwantedRecommendations lost: %s", out)
	}
}

func TestMergeRecommendationNonArrayUntouched(t *testing.T) {
	doc := `{"recommendations": "nrwl.angular-console"}`
	out, changed, err := MergeRecommendation([]byte(doc), ext)
	if err != nil {
		t.Fatal(err)
	}
	if changed || string(out) != doc {
		t.Errorf("non-array recommendations modified: %s", out)
	}
}

func TestMergeRecommendationIsIdempotent(t *testing.T) {
	once, _, err := MergeRecommendation([]byte("{}"), ext)
	if err != nil {
		t.Fatal(err)
	}
	twice, changed, err := MergeRecommendation(once, ext)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second merge reported a change")
	}
	if n := len(Recommendations(twice)); n != 1 {
		t.Errorf("len(recommendations) = %d, want 1", n)
	}
}

func TestMergeRecommendationMalformed(t *testing.T) {
	for _, doc := range []string{`[]`, `{"recommendations": [`, `"text"`} {
		if _, _, err := MergeRecommendation([]byte(doc), ext); !errors.Is(err, ErrMalformedExtensions) {
			t.Errorf("MergeRecommendation(%q) error = %v, want ErrMalformedExtensions", doc, err)
		}
	}
}
