package desktopentry

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// Discover walks root for .desktop files.
func (s *Source) Discover(ctx context.Context, root string) ([]ports.FileRef, error) {
	var refs []ports.FileRef
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".desktop") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		refs = append(refs, ports.FileRef{Path: path, ModTime: info.ModTime(), Size: info.Size()})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, entities.NewError(entities.KindFile, "discover-desktop", root, err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

// Parse reads one discovered .desktop file and returns the Component it
// describes, or no components when the entry marks itself ignored and
// RetainIgnored is false. Desktop entries never carry merge operations.
func (s *Source) Parse(ctx context.Context, ref ports.FileRef, pctx *entities.Context) ([]*entities.Component, []entities.MergeOp, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, nil, entities.NewError(entities.KindFile, "parse-desktop", ref.Path, err)
	}
	return s.ParseBytes(ctx, data, pctx, ref.Path)
}

// ParseBytes decodes one .desktop file's [Desktop Entry] group into a
// Component.
func (s *Source) ParseBytes(ctx context.Context, data []byte, pctx *entities.Context, path string) ([]*entities.Component, []entities.MergeOp, error) {
	e, err := parseEntry(bufio.NewScanner(bytes.NewReader(data)))
	if err != nil {
		return nil, nil, entities.NewError(entities.KindParse, "parse-desktop", path, err)
	}

	basename := filepath.Base(path)
	if e.ignored() && !s.RetainIgnored {
		s.logDebug("desktopentry: skipping ignored entry", "path", path)
		return nil, nil, nil
	}

	c := entities.NewComponent(entities.DesktopIDToComponentID(basename), pctx)
	c.Kind = entities.KindDesktopApplication

	for key, vals := range e.localized("Name") {
		c.Name.Set(key, s.sanitize(path, vals))
	}
	for key, vals := range e.localized("Comment") {
		c.Summary.Set(key, s.sanitize(path, vals))
	}
	for _, cat := range filterCategories(splitList(e.value("Categories"))) {
		c.AddCategory(cat)
	}
	for locale, list := range e.localizedLists("Keywords") {
		for _, kw := range list {
			c.Keywords.Add(locale, s.sanitize(path, kw))
		}
	}
	for _, mime := range splitList(e.value("MimeType")) {
		c.Provides = append(c.Provides, entities.ProvidedItem{Kind: entities.ProvidedMediaType, Value: mime})
	}
	if icon := e.value("Icon"); icon != "" {
		c.Icons = append(c.Icons, decodeIcon(icon))
	}

	c.Launchables = append(c.Launchables, entities.Launchable{Kind: entities.LaunchableDesktopID, Entry: basename})

	return []*entities.Component{c}, nil, nil
}

func decodeIcon(value string) entities.Icon {
	if filepath.IsAbs(value) {
		return entities.Icon{Kind: entities.IconKindLocal, Name: filepath.Base(value), URL: value, Scale: 1}
	}
	return entities.Icon{Kind: entities.IconKindStock, Name: value, Scale: 1}
}

// filterCategories drops toolkit/desktop-environment markers that are not
// meaningful AppStream categories.
func filterCategories(cats []string) []string {
	var out []string
	for _, cat := range cats {
		switch cat {
		case "GTK", "Qt", "GNOME", "KDE", "GUI", "Application":
			continue
		}
		if strings.HasPrefix(cat, "X-") {
			continue
		}
		out = append(out, cat)
	}
	return out
}

func splitList(raw string) []string {
	raw = strings.TrimSuffix(raw, ";")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Source) sanitize(path, text string) string {
	clean, changed := sanitizeText(text)
	if changed {
		s.logWarn("desktopentry: replaced non-UTF-8/non-printable characters", "path", path)
	}
	return clean
}
