package vscode

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ExtensionsFile is the recommendations file, relative to the workspace root.
const ExtensionsFile = ".vscode/extensions.json"

const keyRecommendations = "recommendations"

// ErrMalformedExtensions is returned when extensions.json is not a JSON object.
var ErrMalformedExtensions = errors.New("malformed extensions.json")

// MergeRecommendation adds id to the recommendations array of an
// extensions.json document. A missing or null array is created; a
// recommendations value of any other type is left untouched. The returned
// flag reports whether the document changed.
func MergeRecommendation(doc []byte, id string) ([]byte, bool, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, false, ErrMalformedExtensions
	}

	recs := gjson.GetBytes(doc, keyRecommendations)
	switch {
	case !recs.Exists() || recs.Type == gjson.Null:
		out, err := sjson.SetBytes(doc, keyRecommendations, []string{id})
		if err != nil {
			return nil, false, fmt.Errorf("setting %s: %w", keyRecommendations, err)
		}
		return out, true, nil
	case !recs.IsArray():
		return doc, false, nil
	}

	for _, r := range recs.Array() {
		if r.String() == id {
			return doc, false, nil
		}
	}
	out, err := sjson.SetBytes(doc, keyRecommendations+".-1", id)
	if err != nil {
		return nil, false, fmt.Errorf("appending to %s: %w", keyRecommendations, err)
	}
	return out, true, nil
}

// Recommendations returns the string entries of the recommendations array.
func Recommendations(doc []byte) []string {
	var out []string
	for _, r := range gjson.GetBytes(doc, keyRecommendations).Array() {
		if r.Type == gjson.String {
			out = append(out, r.String())
		}
	}
	return out
}
