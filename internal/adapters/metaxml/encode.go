package metaxml

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// EncodeMetaInfo writes c as a standalone <component> metainfo document.
func EncodeMetaInfo(w io.Writer, c *entities.Component) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeComponent(&b, c, "  ", nil)
	_, err := io.WriteString(w, b.String())
	return err
}

// EncodeCollection writes components as a <components> collection
// document, with origin/version/architecture/media-baseurl/priority
// drawn from ctx and applied to the root element.
func EncodeCollection(w io.Writer, components []*entities.Component, ctx *entities.Context) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<components origin=%q version=%q architecture=%q media_baseurl=%q priority="%d">`+"\n",
		ctx.Origin, ctx.FormatVersion, ctx.Architecture, ctx.MediaBaseURL, ctx.DefaultPriority)
	for _, c := range components {
		writeComponent(&b, c, "  ", ctx)
	}
	b.WriteString("</components>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeComponent(b *strings.Builder, c *entities.Component, indent string, collectionCtx *entities.Context) {
	fmt.Fprintf(b, "%s<component type=%q scope=%q>\n", indent, c.Kind.String(), c.Scope.String())
	inner := indent + "  "

	fmt.Fprintf(b, "%s<id>%s</id>\n", inner, escape(c.ID))
	writeLocalized(b, inner, "name", c.Name)
	writeLocalized(b, inner, "summary", c.Summary)
	writeLocalized(b, inner, "description", c.Description)
	writeLocalized(b, inner, "developer_name", c.DeveloperName)

	if len(c.Categories) > 0 {
		fmt.Fprintf(b, "%s<categories>\n", inner)
		for _, cat := range c.Categories {
			fmt.Fprintf(b, "%s  <category>%s</category>\n", inner, escape(cat))
		}
		fmt.Fprintf(b, "%s</categories>\n", inner)
	}

	for locale, kws := range c.Keywords {
		fmt.Fprintf(b, "%s<keywords lang=%q>\n", inner, locale)
		for _, k := range kws {
			fmt.Fprintf(b, "%s  <keyword>%s</keyword>\n", inner, escape(k))
		}
		fmt.Fprintf(b, "%s</keywords>\n", inner)
	}

	roles := sortedKeys(c.URLs)
	for _, role := range roles {
		fmt.Fprintf(b, "%s<url type=%q>%s</url>\n", inner, role, escape(mediaRelative(c.URLs[role], collectionCtx)))
	}

	for _, icon := range c.Icons {
		fmt.Fprintf(b, "%s<icon type=%q width=\"%d\" height=\"%d\" scale=\"%d\">%s</icon>\n",
			inner, icon.Kind.String(), icon.Width, icon.Height, icon.Scale, escape(iconValue(icon, collectionCtx)))
	}

	for _, l := range c.Launchables {
		fmt.Fprintf(b, "%s<launchable type=%q>%s</launchable>\n", inner, l.Kind.String(), escape(l.Entry))
	}

	if len(c.Provides) > 0 {
		fmt.Fprintf(b, "%s<provides>\n", inner)
		for _, p := range c.Provides {
			fmt.Fprintf(b, "%s  <%s>%s</%s>\n", inner, p.Kind.String(), escape(p.Value), p.Kind.String())
		}
		fmt.Fprintf(b, "%s</provides>\n", inner)
	}

	for _, bundle := range c.Bundles {
		fmt.Fprintf(b, "%s<bundle type=%q runtime=%q>%s</bundle>\n", inner, bundle.Kind, bundle.RuntimeID, escape(bundle.Reference))
	}

	if len(c.Releases) > 0 {
		fmt.Fprintf(b, "%s<releases>\n", inner)
		for _, r := range c.Releases {
			writeRelease(b, inner+"  ", r)
		}
		fmt.Fprintf(b, "%s</releases>\n", inner)
	}

	if len(c.Screenshots) > 0 {
		fmt.Fprintf(b, "%s<screenshots>\n", inner)
		for _, shot := range c.Screenshots {
			writeScreenshot(b, inner+"  ", shot, collectionCtx)
		}
		fmt.Fprintf(b, "%s</screenshots>\n", inner)
	}

	for _, cr := range c.ContentRatings {
		fmt.Fprintf(b, "%s<content_rating type=%q>\n", inner, cr.Scheme)
		for _, e := range cr.Entries {
			fmt.Fprintf(b, "%s  <content_attribute id=%q>%s</content_attribute>\n", inner, e.ID, escape(e.Severity))
		}
		fmt.Fprintf(b, "%s</content_rating>\n", inner)
	}

	for _, rel := range c.Relations {
		writeRelation(b, inner, rel)
	}

	if len(c.Replaces) > 0 {
		fmt.Fprintf(b, "%s<replaces>\n", inner)
		for _, id := range c.Replaces {
			fmt.Fprintf(b, "%s  <id>%s</id>\n", inner, escape(id))
		}
		fmt.Fprintf(b, "%s</replaces>\n", inner)
	}
	for _, id := range c.Extends {
		fmt.Fprintf(b, "%s<extends>%s</extends>\n", inner, escape(id))
	}
	if c.Branch != "" {
		fmt.Fprintf(b, "%s<branch>%s</branch>\n", inner, escape(c.Branch))
	}
	if c.SourcePackage != "" {
		fmt.Fprintf(b, "%s<source_package>%s</source_package>\n", inner, escape(c.SourcePackage))
	}
	for _, pkg := range c.BinaryPackages {
		fmt.Fprintf(b, "%s<pkgname>%s</pkgname>\n", inner, escape(pkg))
	}

	fmt.Fprintf(b, "%s</component>\n", indent)
}

func writeLocalized(b *strings.Builder, indent, tag string, t entities.LocalizedText) {
	locales := sortedKeys(t)
	for _, locale := range locales {
		if locale == "C" {
			fmt.Fprintf(b, "%s<%s>%s</%s>\n", indent, tag, escape(t[locale]), tag)
			continue
		}
		fmt.Fprintf(b, "%s<%s lang=%q>%s</%s>\n", indent, tag, locale, escape(t[locale]), tag)
	}
}

func writeRelease(b *strings.Builder, indent string, r entities.Release) {
	kind := "stable"
	if r.Kind == entities.ReleaseKindDevelopment {
		kind = "development"
	}
	fmt.Fprintf(b, "%s<release version=%q type=%q timestamp=\"%d\">\n", indent, r.Version, kind, r.Timestamp)
	writeLocalized(b, indent+"  ", "description", r.Description)
	for _, role := range sortedKeys(r.URL) {
		fmt.Fprintf(b, "%s  <url type=%q>%s</url>\n", indent, role, escape(r.URL[role]))
	}
	if len(r.Artifacts) > 0 {
		fmt.Fprintf(b, "%s  <artifacts>\n", indent)
		for _, a := range r.Artifacts {
			fmt.Fprintf(b, "%s    <artifact type=%q platform=%q>\n", indent, a.Kind, a.Platform)
			fmt.Fprintf(b, "%s      <location>%s</location>\n", indent, escape(a.URL))
			for _, alg := range sortedKeys(a.Checksum) {
				fmt.Fprintf(b, "%s      <checksum type=%q>%s</checksum>\n", indent, alg, a.Checksum[alg])
			}
			for _, k := range sortedKeys(a.SizeKind) {
				fmt.Fprintf(b, "%s      <size type=%q>%d</size>\n", indent, k, a.SizeKind[k])
			}
			fmt.Fprintf(b, "%s    </artifact>\n", indent)
		}
		fmt.Fprintf(b, "%s  </artifacts>\n", indent)
	}
	fmt.Fprintf(b, "%s</release>\n", indent)
}

func writeScreenshot(b *strings.Builder, indent string, shot entities.Screenshot, ctx *entities.Context) {
	typ := "normal"
	if shot.Default {
		typ = "default"
	}
	fmt.Fprintf(b, "%s<screenshot type=%q>\n", indent, typ)
	writeLocalized(b, indent+"  ", "caption", shot.Caption)
	for _, img := range shot.Images {
		fmt.Fprintf(b, "%s  <image width=\"%d\" height=\"%d\" scale=\"%d\">%s</image>\n",
			indent, img.Width, img.Height, img.Scale, escape(mediaRelative(img.URL, ctx)))
	}
	if shot.Video != nil {
		fmt.Fprintf(b, "%s  <video codec=%q container=%q width=\"%d\" height=\"%d\">%s</video>\n",
			indent, shot.Video.Codec, shot.Video.Container, shot.Video.Width, shot.Video.Height,
			escape(mediaRelative(shot.Video.URL, ctx)))
	}
	fmt.Fprintf(b, "%s</screenshot>\n", indent)
}

func writeRelation(b *strings.Builder, indent string, rel entities.Relation) {
	fmt.Fprintf(b, "%s<%s>\n", indent, rel.Role.String())
	for _, item := range rel.Items {
		name := relationElementName(item.Kind)
		if item.Kind == entities.RelationItemID {
			fmt.Fprintf(b, "%s  <%s compare=%q version=%q>%s</%s>\n",
				indent, name, comparatorName(item.Comparator), item.Version, escape(item.Value), name)
			continue
		}
		fmt.Fprintf(b, "%s  <%s>%s</%s>\n", indent, name, escape(item.Value), name)
	}
	fmt.Fprintf(b, "%s</%s>\n", indent, rel.Role.String())
}

func relationElementName(kind entities.RelationKind) string {
	switch kind {
	case entities.RelationItemModalias:
		return "modalias"
	case entities.RelationItemKernel:
		return "kernel"
	case entities.RelationItemMemory:
		return "memory"
	case entities.RelationItemFirmware:
		return "firmware"
	case entities.RelationItemHardware:
		return "hardware"
	case entities.RelationItemInternet:
		return "internet"
	default:
		return "id"
	}
}

func comparatorName(c entities.VersionComparator) string {
	switch c {
	case entities.CompareNe:
		return "ne"
	case entities.CompareLt:
		return "lt"
	case entities.CompareLe:
		return "le"
	case entities.CompareGt:
		return "gt"
	case entities.CompareGe:
		return "ge"
	default:
		return "eq"
	}
}

func iconValue(icon entities.Icon, ctx *entities.Context) string {
	if ctx == nil || icon.URL == "" {
		return icon.Name
	}
	return ctx.StripMediaURL(icon.URL)
}

func mediaRelative(value string, ctx *entities.Context) string {
	if ctx == nil {
		return value
	}
	return ctx.StripMediaURL(value)
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
