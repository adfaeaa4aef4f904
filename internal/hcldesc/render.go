package hcldesc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/dxmodel/internal/descriptor"
)

// renderDescriptor formats d as an HCL descriptor document. It is a plain
// string builder rather than hclwrite because the output only ever needs
// to be re-read by this package's own Read, not hand-edited afterward.
func renderDescriptor(d *descriptor.Descriptor) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "descriptor \"project\" {\n")
	writeAttr(&b, 1, "group_id", d.GroupID)
	writeAttr(&b, 1, "artifact_id", d.ArtifactID)
	writeAttr(&b, 1, "version", d.Version)
	writeAttr(&b, 1, "packaging", d.Packaging)

	if d.Parent != nil {
		fmt.Fprintf(&b, "  parent {\n")
		writeAttr(&b, 2, "group_id", d.Parent.GroupID)
		writeAttr(&b, 2, "artifact_id", d.Parent.ArtifactID)
		writeAttr(&b, 2, "version", d.Parent.Version)
		writeAttr(&b, 2, "relative_path", d.Parent.RelativePath)
		fmt.Fprintf(&b, "  }\n")
	}

	writeProperties(&b, 1, d.Properties)

	for _, dep := range d.Dependencies {
		writeDependency(&b, 1, dep)
	}

	if d.DependencyManagement != nil {
		fmt.Fprintf(&b, "  dependency_management {\n")
		for _, dep := range d.DependencyManagement.Dependencies {
			writeDependency(&b, 2, dep)
		}
		fmt.Fprintf(&b, "  }\n")
	}

	if d.Build != nil {
		fmt.Fprintf(&b, "  build {\n")
		for _, p := range d.Build.Plugins {
			writePlugin(&b, 2, p)
		}
		if d.Build.PluginManagement != nil {
			fmt.Fprintf(&b, "    plugin_management {\n")
			for _, p := range d.Build.PluginManagement.Plugins {
				writePlugin(&b, 3, p)
			}
			fmt.Fprintf(&b, "    }\n")
		}
		fmt.Fprintf(&b, "  }\n")
	}

	for _, r := range d.Repositories {
		writeRepository(&b, 1, r)
	}

	fmt.Fprintf(&b, "}\n")
	return []byte(b.String())
}

func indent(n int) string {
	return strings.Repeat("  ", n)
}

func writeAttr(b *strings.Builder, depth int, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s%s = %q\n", indent(depth), name, value)
}

func writeProperties(b *strings.Builder, depth int, props map[string]string) {
	if len(props) == 0 {
		return
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "%sproperties = {\n", indent(depth))
	for _, k := range keys {
		fmt.Fprintf(b, "%s%q = %q\n", indent(depth+1), k, props[k])
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func writeDependency(b *strings.Builder, depth int, dep *descriptor.Dependency) {
	fmt.Fprintf(b, "%sdependency {\n", indent(depth))
	writeAttr(b, depth+1, "group_id", dep.GroupID)
	writeAttr(b, depth+1, "artifact_id", dep.ArtifactID)
	writeAttr(b, depth+1, "version", dep.Version)
	writeAttr(b, depth+1, "type", dep.Type)
	writeAttr(b, depth+1, "scope", dep.Scope)
	if dep.Optional {
		fmt.Fprintf(b, "%soptional = true\n", indent(depth+1))
	}
	for _, ex := range dep.Exclusions {
		fmt.Fprintf(b, "%sexclusion {\n", indent(depth+1))
		writeAttr(b, depth+2, "group_id", ex.GroupID)
		writeAttr(b, depth+2, "artifact_id", ex.ArtifactID)
		fmt.Fprintf(b, "%s}\n", indent(depth+1))
	}
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func writePlugin(b *strings.Builder, depth int, p *descriptor.Plugin) {
	fmt.Fprintf(b, "%splugin {\n", indent(depth))
	writeAttr(b, depth+1, "group_id", p.GroupID)
	writeAttr(b, depth+1, "artifact_id", p.ArtifactID)
	writeAttr(b, depth+1, "version", p.Version)
	fmt.Fprintf(b, "%s}\n", indent(depth))
}

func writeRepository(b *strings.Builder, depth int, r *descriptor.Repository) {
	fmt.Fprintf(b, "%srepository %q {\n", indent(depth), r.ID)
	writeAttr(b, depth+1, "url", r.URL)
	writeAttr(b, depth+1, "layout", r.Layout)
	fmt.Fprintf(b, "%s}\n", indent(depth))
}
