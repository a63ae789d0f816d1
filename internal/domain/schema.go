package domain

import "strings"

// TypeSpec is the declared "type" of a schema property: a single tag or a
// list of allowed tags.
type TypeSpec struct {
	Tags []Tag
	List bool
}

// Single returns the only tag of a non-list spec.
func (t TypeSpec) Single() Tag {
	if len(t.Tags) == 0 {
		return TagUnknown
	}
	return t.Tags[0]
}

// Allows reports whether tag is one of the declared tags.
func (t TypeSpec) Allows(tag Tag) bool {
	for _, allowed := range t.Tags {
		if allowed == tag {
			return true
		}
	}
	return false
}

func (t TypeSpec) String() string {
	if !t.List {
		return string(t.Single())
	}
	names := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		names[i] = string(tag)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Property is one entry of a schema's properties map.
type Property struct {
	Type TypeSpec
	// Typed is false when the property declares no usable type constraint.
	Typed bool
}

// Schema is the flat subset of JSON Schema the validator understands.
type Schema struct {
	Properties map[string]Property
	Required   []string
	order      []string
}

// Property looks up a declared property.
func (s *Schema) Property(name string) (Property, bool) {
	if s == nil {
		return Property{}, false
	}
	p, ok := s.Properties[name]
	return p, ok
}

// PropertyNames returns declared property names in declaration order.
func (s *Schema) PropertyNames() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// ExpectedType renders the declared type of a property, or "unknown".
func (s *Schema) ExpectedType(name string) string {
	p, ok := s.Property(name)
	if !ok || !p.Typed {
		return string(TagUnknown)
	}
	return p.Type.String()
}

// Normalized renders the schema back as a JSON Schema object holding only
// what the validator understood.
func (s *Schema) Normalized() Value {
	if s == nil {
		return Null{}
	}
	props := NewObject()
	for _, name := range s.order {
		prop := NewObject()
		if p := s.Properties[name]; p.Typed {
			if p.Type.List {
				tags := make(Array, len(p.Type.Tags))
				for i, t := range p.Type.Tags {
					tags[i] = String(t)
				}
				prop.Set("type", tags)
			} else {
				prop.Set("type", String(p.Type.Single()))
			}
		}
		props.Set(name, prop)
	}

	out := NewObject()
	out.Set("type", String(TagObject))
	out.Set("properties", props)
	if len(s.Required) > 0 {
		req := make(Array, len(s.Required))
		for i, name := range s.Required {
			req[i] = String(name)
		}
		out.Set("required", req)
	}
	return out
}

// ParseSchema reads a schema from a decoded JSON value. Anything it does not
// recognise is ignored. A non-object or empty object yields nil, meaning
// "no schema".
func ParseSchema(v Value) *Schema {
	obj, ok := v.(*Object)
	if !ok || obj.Len() == 0 {
		return nil
	}

	s := &Schema{Properties: make(map[string]Property)}

	if props, ok := obj.Get("properties"); ok {
		if propsObj, ok := props.(*Object); ok {
			for _, name := range propsObj.Keys() {
				raw, _ := propsObj.Get(name)
				s.Properties[name] = parseProperty(raw)
				s.order = append(s.order, name)
			}
		}
	}

	if req, ok := obj.Get("required"); ok {
		if arr, ok := req.(Array); ok {
			for _, e := range arr {
				if name, ok := e.(String); ok {
					s.Required = append(s.Required, string(name))
				}
			}
		}
	}

	return s
}

// SchemaFromMap parses a schema held as Go-native maps (YAML config, MCP
// tool definitions).
func SchemaFromMap(m map[string]any) *Schema {
	if m == nil {
		return nil
	}
	return ParseSchema(FromAny(m))
}

func parseProperty(v Value) Property {
	obj, ok := v.(*Object)
	if !ok {
		return Property{}
	}
	raw, ok := obj.Get("type")
	if !ok {
		return Property{}
	}
	switch t := raw.(type) {
	case String:
		if t == "" {
			return Property{}
		}
		return Property{Type: TypeSpec{Tags: []Tag{Tag(t)}}, Typed: true}
	case Array:
		spec := TypeSpec{List: true}
		for _, e := range t {
			if name, ok := e.(String); ok {
				spec.Tags = append(spec.Tags, Tag(name))
			}
		}
		if len(spec.Tags) == 0 {
			return Property{}
		}
		return Property{Type: spec, Typed: true}
	default:
		return Property{}
	}
}
