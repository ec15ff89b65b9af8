// Package storage handles the on-disk template library.
//
// A Library is a flat directory of .md template documents. It implements
// the registry source contract, so the registry never knows whether its
// documents came from disk, the built-in set or a test fixture.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/parser"
	"github.com/criatividade-digital/revisa/internal/registry"
)

// Library reads and writes template documents under a root directory.
type Library struct {
	rootPath string
}

// NewLibrary creates a library rooted at rootPath. An empty rootPath
// defaults to ~/.revisa/templates.
func NewLibrary(rootPath string) (*Library, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.StorageError("resolve home directory", err)
		}
		rootPath = filepath.Join(homeDir, ".revisa", "templates")
	}
	return &Library{rootPath: rootPath}, nil
}

// BaseDir returns the library's root directory.
func (l *Library) BaseDir() string {
	return l.rootPath
}

// Init creates the library directory if it does not exist.
func (l *Library) Init() error {
	if err := os.MkdirAll(l.rootPath, 0755); err != nil {
		return apperrors.StorageError("create library directory", err)
	}
	return nil
}

// Load reads every .md document in the library. Files are read
// concurrently; a missing library directory is an empty library, not an
// error. The result is sorted by path so registration order is stable
// across runs.
func (l *Library) Load(ctx context.Context) ([]registry.Document, error) {
	entries, err := os.ReadDir(l.rootPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.StorageError("read library directory", err)
	}

	var (
		mu   sync.Mutex
		docs []registry.Document
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(l.rootPath, name)
			data, err := os.ReadFile(path)
			if err != nil {
				return apperrors.StorageError(fmt.Sprintf("read template %s", name), err)
			}
			mu.Lock()
			docs = append(docs, registry.Document{Path: path, Content: string(data)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Install parses and writes a template document into the library, named
// after the template's id. The document is parsed first so a malformed
// file never lands in the library.
func (l *Library) Install(raw string, overwrite bool) (string, error) {
	tmpl, err := parser.Parse(raw)
	if err != nil {
		return "", err
	}

	if err := l.Init(); err != nil {
		return "", err
	}

	path := filepath.Join(l.rootPath, tmpl.ID+".md")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", apperrors.NewAppError(apperrors.ErrCodeAlreadyExists,
				fmt.Sprintf("template %s already exists", tmpl.ID)).
				WithContext("path", path)
		}
	}

	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		return "", apperrors.StorageError("write template file", err)
	}
	return path, nil
}

// Remove deletes a template document by id.
func (l *Library) Remove(id string) error {
	path := filepath.Join(l.rootPath, id+".md")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperrors.NotFoundError(fmt.Sprintf("template %s", id))
	}
	if err := os.Remove(path); err != nil {
		return apperrors.StorageError("delete template file", err)
	}
	return nil
}
