package logfields

import (
	"errors"
	"testing"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
	}{
		{"RunID", KeyRunID, "r1"},
		{"Section", KeySection, "Demos"},
		{"Page", KeyPage, "poisson"},
		{"Label", KeyLabel, "shenfun"},
		{"URL", KeyURL, "https://example.com"},
		{"Path", KeyPath, "/tmp/x"},
		{"IndexFile", KeyIndex, "navigation.yaml"},
	}

	attrs := []struct {
		key string
		val string
	}{
		{RunID("r1").Key, RunID("r1").Value.String()},
		{Section("Demos").Key, Section("Demos").Value.String()},
		{Page("poisson").Key, Page("poisson").Value.String()},
		{Label("shenfun").Key, Label("shenfun").Value.String()},
		{URL("https://example.com").Key, URL("https://example.com").Value.String()},
		{Path("/tmp/x").Key, Path("/tmp/x").Value.String()},
		{IndexFile("navigation.yaml").Key, IndexFile("navigation.yaml").Value.String()},
	}

	for i, c := range cases {
		if attrs[i].key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, attrs[i].key, c.attrKey)
		}
		if attrs[i].val != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, attrs[i].val, c.attrVal)
		}
	}
}

func TestError_NilAndNonNil(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) = %q, want empty", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error = %q, want boom", got)
	}
}
