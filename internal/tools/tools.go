package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	model "github.com/egobogo/freshagent/internal/model"
)

// Tool is one callable function exposed to the model.
type Tool struct {
	Name        string
	Description string
	// Parameters is a sample value of the argument struct; its JSON schema
	// is generated by reflection.
	Parameters interface{}
	Func       func(ctx context.Context, args json.RawMessage) (map[string]interface{}, error)
}

// Registry holds the available tools by name.
type Registry map[string]Tool

// Add registers a tool under its name.
func (r Registry) Add(t Tool) {
	r[t.Name] = t
}

// Names returns the registered tool names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToSpecs converts the registry into the function-calling wire format.
func (r Registry) ToSpecs() []model.ToolSpec {
	specs := make([]model.ToolSpec, 0, len(r))
	for _, name := range r.Names() {
		t := r[name]
		schema, err := SchemaFor(t.Parameters)
		if err != nil {
			// A tool whose schema cannot be reflected is left without
			// parameters rather than dropped.
			schema = map[string]interface{}{"type": "object"}
		}
		specs = append(specs, model.ToolSpec{
			Type: "function",
			Function: model.FunctionSpec{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  schema,
			},
		})
	}
	return specs
}

// Invoke runs a tool and folds failures into an {ok:false, error:...} result
// so the model always receives a well-formed tool reply.
func (r Registry) Invoke(ctx context.Context, name string, args json.RawMessage) map[string]interface{} {
	t, ok := r[name]
	if !ok {
		return map[string]interface{}{"ok": false, "error": fmt.Sprintf("unknown tool %q", name)}
	}
	out, err := t.Func(ctx, args)
	if err != nil {
		return map[string]interface{}{"ok": false, "error": err.Error()}
	}
	if out == nil {
		out = map[string]interface{}{"ok": true}
	}
	return out
}

// SchemaFor generates a JSON schema object for the given argument struct
// using the jsonschema Reflector, without $id or $ref indirection.
func SchemaFor(sample interface{}) (map[string]interface{}, error) {
	if sample == nil {
		return map[string]interface{}{"type": "object"}, nil
	}
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(sample)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema into object: %w", err)
	}
	delete(obj, "$schema")
	return obj, nil
}
