package engine

import (
	"fmt"
	"strings"

	"github.com/ftahirops/connstat/model"
)

// OutputMode selects how the output field list is built.
type OutputMode int

const (
	OutputDefault OutputMode = iota
	OutputAll
	OutputList
)

func (m OutputMode) String() string {
	switch m {
	case OutputDefault:
		return "default"
	case OutputAll:
		return "all"
	case OutputList:
		return "list"
	}
	return "unknown"
}

// OutputRequest is the user's field selection before it meets a schema.
type OutputRequest struct {
	Mode  OutputMode
	Names []string // OutputList only, in caller order
}

// ParseOutputRequest parses the -o argument. An empty argument means the
// default set. Names are checked against the registry here; whether the
// kernel emits them is checked by ResolveOutput.
func ParseOutputRequest(arg string) (OutputRequest, error) {
	arg = strings.TrimSpace(arg)
	switch arg {
	case "":
		return OutputRequest{Mode: OutputDefault}, nil
	case "all":
		return OutputRequest{Mode: OutputAll}, nil
	}
	var names []string
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return OutputRequest{}, Configf("-o", "empty field name in %q", arg)
		}
		if _, ok := model.LookupField(name); !ok {
			return OutputRequest{}, NewConfigError("-o", fmt.Errorf("%w: %q", ErrUnknownField, name))
		}
		names = append(names, name)
	}
	return OutputRequest{Mode: OutputList, Names: names}, nil
}

// ResolveOutput maps a request onto the schema, producing the ordered list
// of fields to render.
func ResolveOutput(req OutputRequest, schema *model.Schema) ([]model.Binding, error) {
	switch req.Mode {
	case OutputAll:
		var out []model.Binding
		for _, def := range model.Registry() {
			if b, ok := schema.Lookup(def.Name); ok {
				out = append(out, b)
			}
		}
		return out, nil
	case OutputDefault:
		return resolveNames(model.DefaultFields, schema)
	case OutputList:
		return resolveNames(req.Names, schema)
	}
	return nil, Configf("-o", "unknown output mode %v", req.Mode)
}

func resolveNames(names []string, schema *model.Schema) ([]model.Binding, error) {
	out := make([]model.Binding, 0, len(names))
	for _, name := range names {
		if _, known := model.LookupField(name); !known {
			return nil, NewConfigError("-o", fmt.Errorf("%w: %q", ErrUnknownField, name))
		}
		b, ok := schema.Lookup(name)
		if !ok {
			return nil, NewConfigError("-o", fmt.Errorf("%w: %q", ErrUnsupportedField, name))
		}
		out = append(out, b)
	}
	return out, nil
}
