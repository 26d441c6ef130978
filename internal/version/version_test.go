// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"
)

func TestVersionDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestProductDefined(t *testing.T) {
	if Product == "" {
		t.Error("Product should not be empty")
	}
}

func TestVersionFormat(t *testing.T) {
	if Version != "dev" && !strings.Contains(Version, ".") {
		t.Errorf("unexpected version format: %s", Version)
	}
}
