package effective

import "github.com/vk/dxmodel/internal/descriptor"

// PluginConfigurationExpander is the default
// descriptor.PluginConfigurationExpander.
type PluginConfigurationExpander struct{}

// NewPluginConfigurationExpander returns a PluginConfigurationExpander.
func NewPluginConfigurationExpander() *PluginConfigurationExpander {
	return &PluginConfigurationExpander{}
}

// ExpandPluginConfiguration ensures every plugin has a non-nil
// Configuration map, so downstream consumers never need a nil check.
func (e *PluginConfigurationExpander) ExpandPluginConfiguration(d *descriptor.Descriptor) {
	if d.Build == nil {
		return
	}
	for _, p := range d.Build.Plugins {
		if p.Configuration == nil {
			p.Configuration = map[string]any{}
		}
	}
}

var _ descriptor.PluginConfigurationExpander = (*PluginConfigurationExpander)(nil)

// ReportConfigurationExpander is the default
// descriptor.ReportConfigurationExpander. This module's Descriptor has no
// reporting section at all, so there is nothing to expand; the type exists
// to keep the interface satisfied by a concrete, wired collaborator rather
// than leaving the seam unfilled.
type ReportConfigurationExpander struct{}

// NewReportConfigurationExpander returns a ReportConfigurationExpander.
func NewReportConfigurationExpander() *ReportConfigurationExpander {
	return &ReportConfigurationExpander{}
}

// ExpandReportConfiguration is a no-op: the Descriptor carries no
// reporting section to expand.
func (e *ReportConfigurationExpander) ExpandReportConfiguration(d *descriptor.Descriptor) {}

var _ descriptor.ReportConfigurationExpander = (*ReportConfigurationExpander)(nil)

// ReportingConverter is the default descriptor.ReportingConverter.
type ReportingConverter struct{}

// NewReportingConverter returns a ReportingConverter.
func NewReportingConverter() *ReportingConverter {
	return &ReportingConverter{}
}

// ConvertReporting is a no-op: this module's data model never carried a
// legacy <reporting> section to begin with (see SPEC_FULL.md's data
// model), so there is nothing to fold into <build>. Kept as a wired
// collaborator rather than dropped, since a future descriptor schema
// revision could reintroduce a reporting block without touching any
// caller of this interface.
func (c *ReportingConverter) ConvertReporting(d *descriptor.Descriptor) {}

var _ descriptor.ReportingConverter = (*ReportingConverter)(nil)
