package world

import (
	"fmt"
	"strings"

	"github.com/emberwild/worldcore/internal/core/ecs"
)

// EntityName renders id for logs, e.g. "Tree #12" or "Oak Tree #7" for a
// type ID of "oak_tree". Dead handles print as the raw handle.
func (s *State) EntityName(id ecs.EntityID) string {
	ident, ok := s.Identities.Get(id)
	if !ok {
		return id.String()
	}
	name := strings.NewReplacer("_", " ", "-", " ").Replace(ident.TypeID)
	return fmt.Sprintf("%s #%d", s.title.String(name), id.Index())
}
