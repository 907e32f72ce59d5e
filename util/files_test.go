package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocateFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "model.b64"), []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	if location, found := LocateFile("model.b64", []string{"missing", dir}); !found || location != filepath.Join(dir, "model.b64") {
		t.Errorf("Got %s %v", location, found)
	}
	if _, found := LocateFile(filepath.Join(dir, "other.b64"), []string{dir}); found {
		t.Error("Absolute missing path should not be found")
	}
	if _, found := LocateFile("", []string{dir}); found {
		t.Error("Empty name should not be found")
	}
	sum, err := MD5File(filepath.Join(dir, "model.b64"))
	if err != nil {
		t.Fatal(err)
	}
	if sum != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("Got md5 %s", sum)
	}
}
