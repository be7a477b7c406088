package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"

	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// FSCatalog serves files under a root directory as file:// resources.
// Traversal outside the root is rejected. A generation counter is bumped on
// every filesystem change so listings can be re-fetched cheaply.
type FSCatalog struct {
	root    string // absolute
	baseURI string
	gen     atomic.Uint64
}

// NewFSCatalog builds a catalog over root, which must be an existing
// directory.
func NewFSCatalog(root string) (*FSCatalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve resource root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat resource root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource root %s is not a directory", abs)
	}
	return &FSCatalog{root: abs, baseURI: "file://"}, nil
}

// BaseURI returns the URI prefix of resources served from this catalog.
func (f *FSCatalog) BaseURI() string { return f.baseURI }

// Generation returns a counter that increases whenever the watched tree
// changes. Equal values mean an unchanged listing.
func (f *FSCatalog) Generation() uint64 { return f.gen.Load() }

// Watch observes the root directory for changes until ctx is canceled,
// bumping the generation counter on every event. Subdirectories created
// after the watch starts are picked up as they appear.
func (f *FSCatalog) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start resource watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch resource root: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			f.gen.Add(1)
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			slog.DebugContext(ctx, "catalog.fs.changed",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()))
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "catalog.fs.watch_error", slog.String("err", werr.Error()))
		}
	}
}

// Resources walks the root and lists every regular file as a resource,
// sorted by path for a stable order.
func (f *FSCatalog) Resources() []mcp.Resource {
	var out []mcp.Resource
	_ = filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		out = append(out, mcp.Resource{
			URI:      f.baseURI + rel,
			Name:     rel,
			MimeType: mimeFor(rel),
		})
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Read resolves a file:// URI inside the root and returns its contents.
// Text files are returned inline; anything else is base64-encoded.
func (f *FSCatalog) Read(uri string) (*mcp.ResourceContents, error) {
	rel, ok := strings.CutPrefix(uri, f.baseURI)
	if !ok {
		return nil, &mcperr.NotFoundError{Kind: "resource", ID: uri}
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return nil, mcperr.Validationf("uri", "path escapes the resource root")
	}

	body, err := os.ReadFile(filepath.Join(f.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &mcperr.NotFoundError{Kind: "resource", ID: uri}
		}
		return nil, fmt.Errorf("read resource %s: %w", uri, err)
	}

	rc := &mcp.ResourceContents{URI: uri, MimeType: mimeFor(rel)}
	if utf8.Valid(body) {
		rc.Text = string(body)
	} else {
		rc.Blob = base64.StdEncoding.EncodeToString(body)
	}
	return rc, nil
}

func mimeFor(rel string) string {
	ext := filepath.Ext(rel)
	if ext == ".md" {
		return "text/markdown"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
