package instaexport

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "messages/inbox/ana/message_1.json", `{"messages":[]}`)
	writeFile(t, root, "ai_conversations.json", `{"secret":true}`)
	writeFile(t, root, "media/photo.jpg", "binary")
	writeFile(t, root, "security/login_activity.json", `{}`)

	docs, err := ReadDir(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2: %+v", len(docs), docs)
	}
	for _, d := range docs {
		if Skipped(d.Name) {
			t.Fatalf("skip-listed document leaked: %q", d.Name)
		}
		if filepath.IsAbs(d.Name) {
			t.Fatalf("document name not relative: %q", d.Name)
		}
	}
}

func TestReadDir_MissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := ReadDir(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestReadZipBytes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"messages/inbox/ana/message_1.json": `{"messages":[]}`,
		"secret_conversations.json":         `{}`,
		"readme.txt":                        "hi",
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	docs, err := ReadZipBytes(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Name != "messages/inbox/ana/message_1.json" {
		t.Fatalf("docs = %+v", docs)
	}
}

func TestReadZipBytes_NotAnArchive(t *testing.T) {
	t.Parallel()

	if _, err := ReadZipBytes(context.Background(), []byte("not a zip")); err == nil {
		t.Fatal("expected error for junk input")
	}
}

func TestSkipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"ai_conversations.json", true},
		{"messages/ai_conversations.json", true},
		{"Secret_Conversations.json", true},
		{"message_1.json", false},
	}
	for _, tc := range tests {
		if got := Skipped(tc.name); got != tc.want {
			t.Fatalf("Skipped(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
