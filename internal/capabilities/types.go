package capabilities

// ParameterSpec describes one tool input parameter
type ParameterSpec struct {
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description,omitempty"`
	Required    bool   `yaml:"required" json:"-"`
}

// ToolSpec is the definition of one tool as advertised to a session framework
type ToolSpec struct {
	Name        string                   `yaml:"name" json:"name"`
	Description string                   `yaml:"description" json:"description"`
	Parameters  map[string]ParameterSpec `yaml:"parameters" json:"-"`
}

// toolFile is the layout of config/tools.yaml
type toolFile struct {
	Tools []ToolSpec `yaml:"tools"`
}

// JSONSchema returns the parameters as a JSON-schema object, with
// required parameters listed in sorted order.
func (t *ToolSpec) JSONSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(t.Parameters))
	required := make([]string, 0)
	for _, name := range t.ParameterNames() {
		p := t.Parameters[name]
		prop := map[string]interface{}{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[name] = prop
		if p.Required {
			required = append(required, name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// RequiredParameters returns the sorted names of required parameters.
func (t *ToolSpec) RequiredParameters() []string {
	var out []string
	for _, name := range t.ParameterNames() {
		if t.Parameters[name].Required {
			out = append(out, name)
		}
	}
	return out
}
