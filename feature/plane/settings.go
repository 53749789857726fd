package plane

import (
	"cellular/core/structure"
)

// DefaultName is the plane name used when the configuration does not set one.
const DefaultName = "cellular"

// Settings is the plane configuration read from the configuration resource.
type Settings struct {
	// Name is the display name of the plane.
	Name string
	// Source is the resource the settings came from. Empty means defaults.
	Source string
	// UIEnabled reports whether the UI router should be loaded.
	UIEnabled bool
	// Resources maps aliases to the resource names exposed for inspection.
	Resources map[string]string
	// Value is the raw configuration value.
	Value structure.Value
}

// DefaultSettings returns the settings used when no configuration resource exists.
func DefaultSettings() Settings {
	return Settings{
		Name:      DefaultName,
		UIEnabled: true,
		Resources: map[string]string{},
		Value:     structure.Absent(),
	}
}

// ParseSettings reads plane settings from a configuration value. Missing
// fields keep their defaults.
//
// The plane name comes from the name field, or from the @plane attribute when
// name is not set. resources may hold slots (alias: name) or bare names.
func ParseSettings(v structure.Value) Settings {
	s := DefaultSettings()
	s.Value = v

	if name := v.Get("name").StringValue(""); name != "" {
		s.Name = name
	} else if tag := v.Tag(); tag == "plane" {
		if attr := v.Index(0).Value().StringValue(""); attr != "" {
			s.Name = attr
		}
	}

	if enabled := v.Path("ui", "enabled"); enabled.IsDefined() {
		s.UIEnabled = enabled.BoolValue(s.UIEnabled)
	}

	for _, item := range v.Get("resources").Items() {
		switch {
		case item.IsSlot():
			alias := item.Key().StringValue("")
			name := item.Value().StringValue("")
			if alias != "" && name != "" {
				s.Resources[alias] = name
			}
		case item.IsElem():
			if name := item.Value().StringValue(""); name != "" {
				s.Resources[name] = name
			}
		}
	}

	return s
}

// ResourceName resolves an alias to its resource name. Names that are not
// aliases are returned unchanged.
func (s Settings) ResourceName(alias string) string {
	if name, ok := s.Resources[alias]; ok {
		return name
	}
	return alias
}
