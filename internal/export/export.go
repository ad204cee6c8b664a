// Package export writes the site as a tree of static HTML files.
package export

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/errors"
	"github.com/anoonan/folio/internal/logging"
	"github.com/anoonan/folio/internal/render"
	"github.com/anoonan/folio/internal/view"
	"github.com/anoonan/folio/internal/web"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Dir     string // required; created if missing
	Force   bool   // allow writing into a non-empty directory
	Version string // shown in the page footer
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Dir     string   `json:"dir"`
	Pages   []string `json:"pages"`
	Assets  int      `json:"assets"`
	Skipped []string `json:"skipped,omitempty"` // symlinked assets left out
}

// page is one HTML file of the export.
type page struct {
	path  string
	state view.State
}

// Export renders every reachable unfiltered view to HTML, writes the
// stylesheet, and copies the assets selected by cfg.ExportPatterns.
func Export(cat *content.Catalog, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	dir, err := ValidateOutputDir(input.Dir, input.Force)
	if err != nil {
		return nil, err
	}

	// Select assets before writing anything so a bad pattern leaves no pages behind.
	assets, skipped, err := selectAssets(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}

	renderer := web.NewRenderer(web.Templates(), logging.Discard())
	root := &web.Pages{
		Catalog:   cat,
		Blocks:    render.New("assets/"),
		Links:     FileLinker{},
		Version:   input.Version,
		StyleHref: "static/style.css",
	}
	nested := &web.Pages{
		Catalog:   cat,
		Blocks:    render.New("../assets/"),
		Links:     FileLinker{Prefix: "../"},
		Version:   input.Version,
		StyleHref: "../static/style.css",
	}

	written := make([]string, 0)
	for _, p := range sitePages(cat) {
		pages := root
		if path.Dir(p.path) != "." {
			pages = nested
		}

		name, data, err := pages.Build(p.state)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := renderer.Execute(&buf, name, data); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("render %s: %w", p.path, err))
		}
		if err := writeFile(dir, p.path, buf.Bytes()); err != nil {
			return nil, err
		}
		written = append(written, p.path)
	}

	if err := copyStatic(dir); err != nil {
		return nil, err
	}

	for _, rel := range assets {
		if err := copyAsset(dir, cfg.AssetsDir, rel); err != nil {
			return nil, err
		}
	}

	return &ExportOutput{
		Dir:     dir,
		Pages:   written,
		Assets:  len(assets),
		Skipped: skipped,
	}, nil
}

// sitePages lists every page of the export: the four tabs, then one page
// per project and experience. Detail pages are opened from the Projects
// tab so their back links lead there.
func sitePages(cat *content.Catalog) []page {
	var pages []page
	for _, tab := range view.Tabs {
		s := view.Main(tab)
		p, _ := pagePath(s)
		pages = append(pages, page{path: p, state: s})
	}

	from := view.Main(view.TabProjects)
	for _, proj := range cat.Projects() {
		s := view.Apply(from, view.OpenProject{ID: proj.ID})
		p, _ := pagePath(s)
		pages = append(pages, page{path: p, state: s})
	}
	for _, e := range cat.Experiences() {
		s := view.Apply(from, view.OpenExperience{ID: e.ID})
		p, _ := pagePath(s)
		pages = append(pages, page{path: p, state: s})
	}
	return pages
}

// copyStatic writes the embedded stylesheet tree under static/.
func copyStatic(dir string) error {
	static := web.Static()
	return fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(static, p)
		if err != nil {
			return errors.NewInternal(err)
		}
		return writeFile(dir, path.Join("static", p), data)
	})
}

// selectAssets lists the files under cfg.AssetsDir matching any export
// pattern, sorted and without duplicates. Symlinks are returned separately
// and never copied. A missing assets directory selects nothing.
func selectAssets(cfg *config.Config) (files, skipped []string, err error) {
	for _, pattern := range cfg.ExportPatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, errors.NewInvalidRequest(fmt.Sprintf("invalid export pattern: %q", pattern))
		}
	}

	info, err := os.Stat(cfg.AssetsDir)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("failed to stat assets directory: %w", err))
	}
	if !info.IsDir() {
		return nil, nil, errors.NewInvalidRequest(fmt.Sprintf("assets path is not a directory: %s", cfg.AssetsDir))
	}

	fsys := os.DirFS(cfg.AssetsDir)
	var matches []string
	for _, pattern := range cfg.ExportPatterns {
		found, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, errors.NewInternal(fmt.Errorf("glob %q: %w", pattern, err))
		}
		matches = append(matches, found...)
	}
	slices.Sort(matches)
	matches = slices.Compact(matches)

	for _, rel := range matches {
		fi, err := os.Lstat(filepath.Join(cfg.AssetsDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, nil, errors.NewInternal(fmt.Errorf("stat asset %s: %w", rel, err))
		}
		if fi.Mode()&fs.ModeSymlink != 0 {
			skipped = append(skipped, rel)
			continue
		}
		files = append(files, rel)
	}
	return files, skipped, nil
}

func copyAsset(dir, assetsDir, rel string) error {
	src, err := openFileNoFollowRead(filepath.Join(assetsDir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("read asset %s: %w", rel, err))
	}
	return writeFile(dir, path.Join("assets", rel), data)
}

// writeFile writes data to rel (slash-separated) under dir. The data goes to
// a temp file first and is renamed into place, so a failed export never
// leaves a truncated page behind.
func writeFile(dir, rel string, data []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create directory for %s: %w", rel, err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := target + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create %s: %w", rel, err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close %s: %w", rel, err))
	}
	file = nil

	// Refuse to replace a symlink planted at the destination
	if info, err := os.Lstat(target); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest(fmt.Sprintf("export target is a symlink: %s", rel))
	}

	if err := os.Rename(tempPath, target); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to finalize %s: %w", rel, err))
	}

	success = true
	return nil
}
