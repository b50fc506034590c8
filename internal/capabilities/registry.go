package capabilities

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	llmprovider "github.com/haowjy/meridian-llm-go"
	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the tool definitions loaded from the embedded YAML
type Registry struct {
	tools []ToolSpec
	index map[string]int
	mu    sync.RWMutex
}

// NewRegistry creates a new tool definition registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{index: make(map[string]int)}

	if err := r.loadFile("tools"); err != nil {
		return nil, fmt.Errorf("failed to load tool definitions: %w", err)
	}

	return r, nil
}

// loadFile loads one tool definition YAML file
func (r *Registry) loadFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return r.load(filename, data)
}

func (r *Registry) load(filename string, data []byte) error {
	var file toolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range file.Tools {
		if spec.Name == "" {
			return fmt.Errorf("%s: tool without a name", filename)
		}
		if _, dup := r.index[spec.Name]; dup {
			return fmt.Errorf("%s: duplicate tool %s", filename, spec.Name)
		}
		r.index[spec.Name] = len(r.tools)
		r.tools = append(r.tools, spec)
	}
	return nil
}

// Tools returns every definition (ordered as defined in YAML)
func (r *Registry) Tools() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolSpec, len(r.tools))
	copy(out, r.tools)
	return out
}

// Get returns the definition of a tool
func (r *Registry) Get(name string) (*ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	spec := r.tools[i]
	return &spec, nil
}

// ProviderTools converts the definitions into LLM provider custom tools
func (r *Registry) ProviderTools() ([]llmprovider.Tool, error) {
	specs := r.Tools()
	out := make([]llmprovider.Tool, 0, len(specs))
	for i := range specs {
		tool, err := llmprovider.NewCustomTool(specs[i].Name, specs[i].Description, specs[i].JSONSchema())
		if err != nil {
			return nil, fmt.Errorf("failed to create custom tool '%s': %w", specs[i].Name, err)
		}
		out = append(out, *tool)
	}
	return out, nil
}

// ParameterNames returns the tool's parameter names in sorted order
func (t *ToolSpec) ParameterNames() []string {
	names := make([]string, 0, len(t.Parameters))
	for name := range t.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
