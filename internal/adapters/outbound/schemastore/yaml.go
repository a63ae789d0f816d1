package schemastore

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/openkraft/typeguard/internal/domain"
)

// decodeYAML walks the node tree so mapping keys keep their file order.
func decodeYAML(data []byte) (domain.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return domain.Null{}, nil
	}
	return nodeValue(&root)
}

func nodeValue(n *yaml.Node) (domain.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Null{}, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		arr := make(domain.Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := domain.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, errors.Wrapf(err, "line %d: mapping key", n.Content[i].Line)
			}
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return domain.FromAny(v), nil
	}
	return nil, errors.Newf("line %d: unsupported YAML node", n.Line)
}
