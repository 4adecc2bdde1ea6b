package metayaml

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
	"github.com/ulikunitz/xz"
)

// Discover walks root for .yml, .yaml, and their .gz/.xz variants.
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
		if !isYAMLFile(d.Name()) {
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
		return nil, entities.NewError(entities.KindFile, "discover-yaml", root, err)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

func isYAMLFile(name string) bool {
	for _, suf := range []string{".yml", ".yaml", ".yml.gz", ".yaml.gz", ".yml.xz", ".yaml.xz"} {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// Parse reads one discovered DEP-11 stream, decompressing .gz/.xz
// transparently.
func (s *Source) Parse(ctx context.Context, ref ports.FileRef, pctx *entities.Context) ([]*entities.Component, []entities.MergeOp, error) {
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, nil, entities.NewError(entities.KindFile, "parse-yaml", ref.Path, err)
	}
	switch {
	case strings.HasSuffix(ref.Path, ".gz"):
		data, err = gunzip(data)
		if err != nil {
			return nil, nil, entities.NewError(entities.KindFile, "gunzip-yaml", ref.Path, err)
		}
	case strings.HasSuffix(ref.Path, ".xz"):
		data, err = unxz(data)
		if err != nil {
			return nil, nil, entities.NewError(entities.KindFile, "unxz-yaml", ref.Path, err)
		}
	}
	return s.ParseBytes(ctx, data, pctx, ref.Path)
}

// ParseBytes decodes a complete DEP-11 stream: a header document followed
// by one document per component.
func (s *Source) ParseBytes(ctx context.Context, data []byte, pctx *entities.Context, path string) ([]*entities.Component, []entities.MergeOp, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var header yaml.Node
	if err := dec.Decode(&header); err != nil {
		return nil, nil, entities.NewError(entities.KindParse, "parse-yaml-header", path, err)
	}

	docCtx, err := decodeHeader(&header, pctx)
	if err != nil {
		return nil, nil, entities.NewError(entities.KindParse, "parse-yaml-header", path, err)
	}

	var components []*entities.Component
	var merges []entities.MergeOp
	order := 0

	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, entities.NewError(entities.KindParse, "parse-yaml", path, err)
		}
		comp, merge, err := s.decodeComponentDocument(&doc, docCtx, order)
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

// decodeHeader reads the DEP-11 "File: DEP-11" document and returns a
// Context copy with its fields applied.
func decodeHeader(doc *yaml.Node, pctx *entities.Context) (*entities.Context, error) {
	docCtx := *pctx
	docCtx.Style = entities.FormatStyleCollection

	root := documentRoot(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errMalformedHeader
	}

	var sawFileTag bool
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		switch key {
		case "File":
			sawFileTag = val.Value == "DEP-11"
		case "Version":
			docCtx.FormatVersion = val.Value
		case "Origin":
			docCtx.Origin = val.Value
		case "MediaBaseUrl":
			docCtx.MediaBaseURL = val.Value
		case "Architecture":
			docCtx.Architecture = val.Value
		case "Priority":
			if p, err := strconv.Atoi(val.Value); err == nil {
				docCtx.DefaultPriority = p
			}
		}
	}
	if !sawFileTag {
		return nil, errMalformedHeader
	}
	return &docCtx, nil
}

// documentRoot unwraps a yaml.Node decoded at document scope: the
// DocumentNode wrapper if present, or the node itself.
func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
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

type malformedHeaderError struct{}

func (malformedHeaderError) Error() string {
	return `DEP-11 stream must begin with a header document ("File: DEP-11")`
}

var errMalformedHeader = malformedHeaderError{}
