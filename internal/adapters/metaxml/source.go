package metaxml

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
	"github.com/ulikunitz/xz"
)

// Discover walks root for .xml, .xml.gz, and .xml.xz files, the on-disk
// forms a metainfo or collection document may take.
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
		name := d.Name()
		if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".xml.gz") && !strings.HasSuffix(name, ".xml.xz") {
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
		return nil, entities.NewError(entities.KindFile, "discover-xml", root, err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

// Parse reads one discovered file, decompressing .xml.gz/.xml.xz
// transparently, and decodes its component(s) and any merge operations,
// bound to pctx.
func (s *Source) Parse(ctx context.Context, ref ports.FileRef, pctx *entities.Context) ([]*entities.Component, []entities.MergeOp, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, nil, entities.NewError(entities.KindFile, "parse-xml", ref.Path, err)
	}
	switch {
	case strings.HasSuffix(ref.Path, ".gz"):
		data, err = gunzip(data)
		if err != nil {
			return nil, nil, entities.NewError(entities.KindFile, "gunzip-xml", ref.Path, err)
		}
	case strings.HasSuffix(ref.Path, ".xz"):
		data, err = unxz(data)
		if err != nil {
			return nil, nil, entities.NewError(entities.KindFile, "unxz-xml", ref.Path, err)
		}
	}
	return s.ParseBytes(ctx, data, pctx, ref.Path)
}

// ParseBytes decodes a single in-memory XML document. Exposed separately
// from Parse so callers (and tests) can decode bytes without touching the
// filesystem.
func (s *Source) ParseBytes(ctx context.Context, data []byte, pctx *entities.Context, path string) ([]*entities.Component, []entities.MergeOp, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	tok, err := nextStart(dec)
	if err != nil {
		return nil, nil, entities.NewError(entities.KindParse, "parse-xml", path, err)
	}
	if tok == nil {
		return nil, nil, entities.NewError(entities.KindParse, "parse-xml", path, io.ErrUnexpectedEOF)
	}

	switch tok.Name.Local {
	case "components":
		return s.decodeCollection(dec, *tok, pctx, path)
	case "component":
		docCtx := *pctx
		docCtx.Style = entities.FormatStyleMetaInfo
		comp, merge, err := s.decodeComponent(dec, *tok, &docCtx, 0)
		if err != nil {
			return nil, nil, err
		}
		if merge != nil {
			return nil, []entities.MergeOp{*merge}, nil
		}
		return []*entities.Component{comp}, nil, nil
	default:
		return nil, nil, entities.NewError(entities.KindParse, "parse-xml", path,
			errUnknownRoot(tok.Name.Local))
	}
}

func (s *Source) decodeCollection(dec *xml.Decoder, start xml.StartElement, pctx *entities.Context, path string) ([]*entities.Component, []entities.MergeOp, error) {
	docCtx := *pctx
	docCtx.Style = entities.FormatStyleCollection
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "origin":
			docCtx.Origin = a.Value
		case "version":
			docCtx.FormatVersion = a.Value
		case "architecture":
			docCtx.Architecture = a.Value
		case "media_baseurl":
			docCtx.MediaBaseURL = a.Value
		case "priority":
			if p, err := strconv.Atoi(a.Value); err == nil {
				docCtx.DefaultPriority = p
			}
		}
	}

	var components []*entities.Component
	var merges []entities.MergeOp
	order := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, entities.NewError(entities.KindParse, "parse-xml", path, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			if _, ok := tok.(xml.EndElement); ok {
				continue
			}
			continue
		}
		if se.Name.Local != "component" {
			s.logDebug("metaxml: skipping unexpected collection child", "element", se.Name.Local)
			if err := dec.Skip(); err != nil {
				return nil, nil, entities.NewError(entities.KindParse, "parse-xml", path, err)
			}
			continue
		}
		comp, merge, err := s.decodeComponent(dec, se, &docCtx, order)
		if err != nil {
			return nil, nil, err
		}
		order++
		if merge != nil {
			merges = append(merges, *merge)
			continue
		}
		components = append(components, comp)
	}
	return components, merges, nil
}

// nextStart advances dec to the document's root start element, skipping
// any leading ProcInst/Directive/chardata tokens.
func nextStart(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return &se, nil
		}
	}
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func unxz(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

type unknownRootError struct{ name string }

func (e *unknownRootError) Error() string {
	return "document root is neither <component> nor <components>, got <" + e.name + ">"
}

func errUnknownRoot(name string) error { return &unknownRootError{name: name} }
