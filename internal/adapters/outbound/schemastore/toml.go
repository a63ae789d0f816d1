package schemastore

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/openkraft/typeguard/internal/domain"
)

// decodeTOML reads a TOML schema. TOML tables decode to Go maps, so
// property order is alphabetical rather than file order.
func decodeTOML(data []byte) (domain.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return domain.FromAny(doc), nil
}
