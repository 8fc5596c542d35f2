//go:build !fastunion

package fastsolid

import "testing"

func TestNewWithoutBuildTagErrors(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected an error when fastunion build tag is not set")
	}
}
