package scene

import (
	"fmt"
	"strconv"
)

// The Mode selects the scene set being rendered and, with it, the naming
// scheme of its scene ids.
type Mode uint8

const (
	// Primitive-based scenes are named by their index.
	Primitive Mode = iota

	// Paired scenes come in two variants per index and are named
	// "{variant}-{index}".
	Paired
)

// Number of scene indices available in each mode.
const (
	PrimitiveSceneCount = 2000
	PairedSceneCount    = 1000
)

// Number of variants emitted per index in paired mode.
const PairedVariants = 2

// Default number of camera views rendered per scene.
const DefaultViewCount = 21

func (m Mode) String() string {
	switch m {
	case Primitive:
		return "primitive"
	case Paired:
		return "paired"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// TotalScenes returns the number of scene indices in the mode's catalog.
func (m Mode) TotalScenes() int {
	if m == Primitive {
		return PrimitiveSceneCount
	}
	return PairedSceneCount
}

// An ID identifies one renderable scene.
type ID string

// IDs returns the scene ids generated for a scene index, in render order.
func (m Mode) IDs(index int) []ID {
	if m == Primitive {
		return []ID{ID(strconv.Itoa(index))}
	}

	ids := make([]ID, PairedVariants)
	for variant := range ids {
		ids[variant] = ID(fmt.Sprintf("%d-%d", variant, index))
	}
	return ids
}

// View returns the name of the per-view output directory for this scene.
func (id ID) View(view int) string {
	return fmt.Sprintf("%s-%d", id, view)
}
