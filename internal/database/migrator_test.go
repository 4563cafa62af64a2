package database

import (
	"testing"
	"testing/fstest"

	"staffing-backend/migrations"
)

func TestPendingFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_firms.sql": {Data: []byte("SELECT 1")},
		"001_initial.sql":   {Data: []byte("SELECT 1")},
		"999_reset_all.sql": {Data: []byte("DROP TABLE users")},
		"README.md":         {Data: []byte("notes")},
		"003_inquiries.sql": {Data: []byte("SELECT 1")},
	}

	files, err := PendingFiles(fsys, map[string]bool{"002_add_firms.sql": true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"001_initial.sql", "003_inquiries.sql"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files = %v, want %v", files, want)
		}
	}
}

func TestEmbeddedSchemaIsPending(t *testing.T) {
	files, err := PendingFiles(migrations.FS, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 || files[0] != "001_initial_schema.sql" {
		t.Fatalf("embedded migrations = %v", files)
	}
}
