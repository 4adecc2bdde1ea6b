package metayaml

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// Encode writes a complete DEP-11 stream: a header document built from
// ctx, followed by one document per component.
func Encode(w io.Writer, components []*entities.Component, ctx *entities.Context) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(buildHeader(ctx)); err != nil {
		return err
	}
	for _, c := range components {
		if err := enc.Encode(buildComponentNode(c, ctx)); err != nil {
			return err
		}
	}
	return nil
}

func buildHeader(ctx *entities.Context) *yaml.Node {
	return mappingNode(
		"File", "DEP-11",
		"Version", ctx.FormatVersion,
		"Origin", ctx.Origin,
		"MediaBaseUrl", ctx.MediaBaseURL,
		"Architecture", ctx.Architecture,
		"Priority", strconv.Itoa(ctx.DefaultPriority),
	)
}

func buildComponentNode(c *entities.Component, ctx *entities.Context) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, val *yaml.Node) {
		n.Content = append(n.Content, scalarKey(key), val)
	}

	add("Type", scalarValue(c.Kind.String()))
	add("ID", scalarValue(c.ID))
	if c.Scope != entities.ScopeSystem {
		add("Scope", scalarValue(c.Scope.String()))
	}
	addLocalized(&n.Content, "Name", c.Name)
	addLocalized(&n.Content, "Summary", c.Summary)
	addLocalized(&n.Content, "Description", c.Description)
	addLocalized(&n.Content, "DeveloperName", c.DeveloperName)

	if len(c.Categories) > 0 {
		add("Categories", sequenceOfScalars(c.Categories))
	}
	if len(c.Keywords) > 0 {
		kw := &yaml.Node{Kind: yaml.MappingNode}
		for _, locale := range sortedStringKeys(c.Keywords) {
			kw.Content = append(kw.Content, scalarKey(locale), sequenceOfScalars(c.Keywords[locale]))
		}
		add("Keywords", kw)
	}
	if len(c.URLs) > 0 {
		urls := &yaml.Node{Kind: yaml.MappingNode}
		for _, role := range sortedStringMapKeys(c.URLs) {
			urls.Content = append(urls.Content, scalarKey(role), scalarValue(ctx.StripMediaURL(c.URLs[role])))
		}
		add("Url", urls)
	}
	if len(c.Icons) > 0 {
		add("Icon", buildIconNode(c.Icons, ctx))
	}
	if len(c.Launchables) > 0 {
		byKind := map[string][]string{}
		for _, l := range c.Launchables {
			byKind[l.Kind.String()] = append(byKind[l.Kind.String()], l.Entry)
		}
		lau := &yaml.Node{Kind: yaml.MappingNode}
		for kind, entries := range byKind {
			lau.Content = append(lau.Content, scalarKey(kind), sequenceOfScalars(entries))
		}
		add("Launchable", lau)
	}
	if len(c.Provides) > 0 {
		add("Provides", buildProvidesNode(c.Provides))
	}
	if len(c.Bundles) > 0 {
		bundles := &yaml.Node{Kind: yaml.MappingNode}
		for _, b := range c.Bundles {
			obj := mappingNode("value", b.Reference)
			if b.RuntimeID != "" {
				obj.Content = append(obj.Content, scalarKey("runtime"), scalarValue(b.RuntimeID))
			}
			bundles.Content = append(bundles.Content, scalarKey(b.Kind), obj)
		}
		add("Bundle", bundles)
	}
	if len(c.Releases) > 0 {
		add("Releases", buildReleasesNode(c.Releases))
	}
	if len(c.BinaryPackages) > 0 {
		bp := sequenceOfScalars(c.BinaryPackages)
		if len(c.BinaryPackages) == 1 {
			add("Pkgname", scalarValue(c.BinaryPackages[0]))
		} else {
			add("Pkgname", bp)
		}
	}
	if c.SourcePackage != "" {
		add("SourcePackage", scalarValue(c.SourcePackage))
	}
	if c.Branch != "" {
		add("Branch", scalarValue(c.Branch))
	}
	if len(c.Extends) > 0 {
		add("Extends", sequenceOfScalars(c.Extends))
	}
	if len(c.Replaces) > 0 {
		add("Replaces", sequenceOfScalars(c.Replaces))
	}

	return n
}

func buildIconNode(icons []entities.Icon, ctx *entities.Context) *yaml.Node {
	byKind := map[entities.IconKind][]*yaml.Node{}
	order := []entities.IconKind{}
	for _, icon := range icons {
		if _, seen := byKind[icon.Kind]; !seen {
			order = append(order, icon.Kind)
		}
		if icon.Kind == entities.IconKindStock {
			byKind[icon.Kind] = append(byKind[icon.Kind], scalarValue(icon.Name))
			continue
		}
		obj := mappingNode("name", icon.Name)
		obj.Content = append(obj.Content,
			scalarKey("width"), scalarValue(strconv.Itoa(icon.Width)),
			scalarKey("height"), scalarValue(strconv.Itoa(icon.Height)),
			scalarKey("scale"), scalarValue(strconv.Itoa(icon.Scale)),
		)
		byKind[icon.Kind] = append(byKind[icon.Kind], obj)
	}

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, kind := range order {
		entries := byKind[kind]
		if len(entries) == 1 && kind == entities.IconKindStock {
			n.Content = append(n.Content, scalarKey(kind.String()), entries[0])
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Content: entries}
		n.Content = append(n.Content, scalarKey(kind.String()), seq)
	}
	return n
}

func buildProvidesNode(items []entities.ProvidedItem) *yaml.Node {
	byKind := map[entities.ProvidedKind][]string{}
	var order []entities.ProvidedKind
	for _, p := range items {
		if _, ok := byKind[p.Kind]; !ok {
			order = append(order, p.Kind)
		}
		byKind[p.Kind] = append(byKind[p.Kind], p.Value)
	}
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, kind := range order {
		n.Content = append(n.Content, scalarKey(provideYAMLKeyByKind(kind)), sequenceOfScalars(byKind[kind]))
	}
	return n
}

func buildReleasesNode(releases []entities.Release) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range releases {
		obj := mappingNode("version", r.Version)
		kind := "stable"
		if r.Kind == entities.ReleaseKindDevelopment {
			kind = "development"
		}
		obj.Content = append(obj.Content, scalarKey("type"), scalarValue(kind))
		obj.Content = append(obj.Content, scalarKey("unix-timestamp"), scalarValue(strconv.FormatInt(r.Timestamp, 10)))
		if len(r.Description) > 0 {
			descNode := &yaml.Node{Kind: yaml.MappingNode}
			for _, locale := range sortedStringMapKeys(r.Description) {
				descNode.Content = append(descNode.Content, scalarKey(locale), scalarValue(r.Description[locale]))
			}
			obj.Content = append(obj.Content, scalarKey("description"), descNode)
		}
		seq.Content = append(seq.Content, obj)
	}
	return seq
}

func addLocalized(content *[]*yaml.Node, key string, t entities.LocalizedText) {
	if len(t) == 0 {
		return
	}
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, locale := range sortedStringMapKeys(t) {
		n.Content = append(n.Content, scalarKey(locale), scalarValue(t[locale]))
	}
	*content = append(*content, scalarKey(key), n)
}

// scalarKey builds a mapping key node, quoting values that would parse as
// a YAML boolean (e.g. "no", "yes") so they round-trip as strings.
func scalarKey(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if looksLikeBool(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func scalarValue(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func sequenceOfScalars(items []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range items {
		seq.Content = append(seq.Content, scalarValue(v))
	}
	return seq
}

func mappingNode(pairs ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Content = append(n.Content, scalarKey(pairs[i]), scalarValue(pairs[i+1]))
	}
	return n
}

func looksLikeBool(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes", "YES", "n", "N", "no", "No", "NO",
		"true", "True", "TRUE", "false", "False", "FALSE",
		"on", "On", "ON", "off", "Off", "OFF":
		return true
	default:
		return false
	}
}

func sortedStringKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortedStringMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
