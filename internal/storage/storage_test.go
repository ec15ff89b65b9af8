package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const libraryDoc = `---
id: revisao-clareza
name: Revisão de Clareza
category: revisao-texto
inputs:
  - id: texto
    type: textarea
    label: Texto para revisão
    required: true
---
Revise o texto a seguir buscando clareza.
<texto>
{{texto}}
</texto>`

func TestLoadMissingDirectoryIsEmpty(t *testing.T) {
	lib, err := NewLibrary(filepath.Join(t.TempDir(), "nao-existe"))
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	docs, err := lib.Load(context.Background())
	if err != nil {
		t.Fatalf("a missing library directory must not error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestLoadReadsOnlyMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", libraryDoc)
	writeFile(t, dir, "b.md", strings.Replace(libraryDoc, "revisao-clareza", "revisao-outro", 1))
	writeFile(t, dir, "notas.txt", "not a template")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	lib, _ := NewLibrary(dir)
	docs, err := lib.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	// Sorted by path for stable registration order.
	if !strings.HasSuffix(docs[0].Path, "a.md") || !strings.HasSuffix(docs[1].Path, "b.md") {
		t.Errorf("documents should be sorted by path, got %q then %q", docs[0].Path, docs[1].Path)
	}
}

func TestInstallAndRemove(t *testing.T) {
	lib, _ := NewLibrary(t.TempDir())

	path, err := lib.Install(libraryDoc, false)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !strings.HasSuffix(path, "revisao-clareza.md") {
		t.Errorf("file should be named after the template id, got %q", path)
	}

	if _, err := lib.Install(libraryDoc, false); err == nil {
		t.Error("installing over an existing template without overwrite must fail")
	}
	if _, err := lib.Install(libraryDoc, true); err != nil {
		t.Errorf("overwrite install should succeed: %v", err)
	}

	if err := lib.Remove("revisao-clareza"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := lib.Remove("revisao-clareza"); err == nil {
		t.Error("removing an absent template must fail")
	}
}

func TestInstallRejectsMalformedDocument(t *testing.T) {
	lib, _ := NewLibrary(t.TempDir())
	if _, err := lib.Install("sem frontmatter", false); err == nil {
		t.Error("a malformed document must never land in the library")
	}

	docs, err := lib.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("library should stay empty, got %d documents", len(docs))
	}
}

func TestResponseCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache := NewResponseCache(dir)
	if err := cache.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := cache.Set("uid-123", []byte(`{"pontos":10}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh instance must see the persisted entry.
	again := NewResponseCache(dir)
	if err := again.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	entry, ok := again.Get("uid-123")
	if !ok {
		t.Fatal("persisted entry should survive a reload")
	}
	if string(entry.Payload) != `{"pontos":10}` {
		t.Errorf("unexpected payload %s", entry.Payload)
	}
	if entry.FetchedAt.IsZero() {
		t.Error("fetch time should be recorded")
	}

	again.Invalidate("uid-123")
	if _, ok := again.Get("uid-123"); ok {
		t.Error("invalidated entry should be gone")
	}
}

func TestCacheFileNamesDoNotLeakKeys(t *testing.T) {
	dir := t.TempDir()
	cache := NewResponseCache(dir)
	if err := cache.Set("usuario@exemplo.com", []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cache", "responses.json"))
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if strings.Contains(string(data), "usuario@exemplo.com") {
		t.Error("raw principal identifiers must not be stored")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
