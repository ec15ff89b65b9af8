package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/parser"
)

func doc(id, category string) Document {
	return Document{
		Path: id + ".md",
		Content: "---\n" +
			"id: " + id + "\n" +
			"name: Template " + id + "\n" +
			"category: " + category + "\n" +
			"inputs: []\n" +
			"---\nCorpo de " + id,
	}
}

func staticSource(docs ...Document) Source {
	return SourceFunc(func(ctx context.Context) ([]Document, error) {
		return docs, nil
	})
}

func parseAll(t *testing.T, docs ...Document) []*models.Template {
	t.Helper()
	out := make([]*models.Template, 0, len(docs))
	for _, d := range docs {
		tmpl, err := parser.Parse(d.Content)
		if err != nil {
			t.Fatalf("parse %s: %v", d.Path, err)
		}
		out = append(out, tmpl)
	}
	return out
}

func TestInitializeAndLookup(t *testing.T) {
	r := New(staticSource(doc("a", "revisao-texto"), doc("b", "revisao-prova")))
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if got := len(r.GetAll()); got != 2 {
		t.Fatalf("expected 2 templates, got %d", got)
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("template 'a' should be registered")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestGetByCategoryIsExactMatch(t *testing.T) {
	r := New(staticSource(doc("a", "revisao-texto"), doc("b", "revisao-prova")))
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	prova := r.GetByCategory("revisao-prova")
	if len(prova) != 1 || prova[0].ID != "b" {
		t.Errorf("expected exactly template 'b', got %v", prova)
	}

	none := r.GetByCategory("nonexistent")
	if none == nil || len(none) != 0 {
		t.Errorf("unknown category must yield an empty slice, got %v", none)
	}

	// No fuzzy or prefix matching.
	if got := r.GetByCategory("revisao"); len(got) != 0 {
		t.Errorf("category match must be exact, got %v", got)
	}
}

func TestLastRegistrationWins(t *testing.T) {
	r := New(nil)
	first := doc("dup", "one")
	second := doc("dup", "two")
	r.RegisterBulk(parseAll(t, first, second))

	tmpl, ok := r.Get("dup")
	if !ok || tmpl.Category != "two" {
		t.Errorf("later registration should overwrite earlier one, got %+v", tmpl)
	}
	if len(r.GetAll()) != 1 {
		t.Errorf("overwriting must not duplicate entries")
	}
}

func TestMalformedDocumentIsIsolated(t *testing.T) {
	bad := Document{Path: "bad.md", Content: "not a template"}
	r := New(staticSource(bad, doc("good", "revisao-texto")))
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if _, ok := r.Get("good"); !ok {
		t.Error("a malformed sibling must not abort loading of good documents")
	}
	if got := len(r.GetAll()); got != 1 {
		t.Errorf("expected 1 template, got %d", got)
	}
}

func TestFallbackOnSourceFailure(t *testing.T) {
	failing := SourceFunc(func(ctx context.Context) ([]Document, error) {
		return nil, errors.New("network down")
	})

	r := New(failing)
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize should degrade to fallback, got error: %v", err)
	}
	if len(r.GetAll()) == 0 {
		t.Error("fallback templates should be registered when the source fails")
	}
	if got := r.GetByCategory("revisao-texto"); len(got) == 0 {
		t.Error("built-in templates should cover the revisao-texto category")
	}
}

func TestFallbackOnEmptySource(t *testing.T) {
	r := New(staticSource())
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if len(r.GetAll()) == 0 {
		t.Error("an empty source should fall back to built-in templates")
	}
}

func TestWithoutFallbackYieldsEmptyRegistry(t *testing.T) {
	failing := SourceFunc(func(ctx context.Context) ([]Document, error) {
		return nil, errors.New("network down")
	})

	r := New(failing, WithoutFallback())
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("no-fallback initialize must not error: %v", err)
	}
	if got := len(r.GetAll()); got != 0 {
		t.Errorf("expected an empty registry, got %d templates", got)
	}
	if got := r.GetByCategory("revisao-texto"); len(got) != 0 {
		t.Error("empty category must be a normal, renderable state")
	}
}

func TestConcurrentInitializeLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	src := SourceFunc(func(ctx context.Context) ([]Document, error) {
		loads.Add(1)
		return []Document{doc("a", "revisao-texto")}, nil
	})

	r := New(src)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Initialize(context.Background()); err != nil {
				t.Errorf("Initialize failed: %v", err)
			}
			if _, ok := r.Get("a"); !ok {
				t.Error("every caller must observe the loaded contents")
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Errorf("expected exactly one load, got %d", got)
	}
}

func TestCategories(t *testing.T) {
	r := New(staticSource(doc("a", "x"), doc("b", "y"), doc("c", "x")))
	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	cats := r.Categories()
	if len(cats) != 2 || cats[0] != "x" || cats[1] != "y" {
		t.Errorf("expected [x y], got %v", cats)
	}
}
