package input

import (
	"dongne/internal/domain"
	"dongne/internal/town"
	"dongne/internal/ui/input/types"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Screen   types.Screen
	Index    int
	Total    int
	Slot     domain.Slot
	Snapshot town.Snapshot
}

// CurrentScreen returns the screen the key arrived on
func (c *ModelContext) CurrentScreen() types.Screen {
	return c.Screen
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of rows in the focused list
func (c *ModelContext) TotalItems() int {
	return c.Total
}

// FocusedSlot returns the slot button under the cursor
func (c *ModelContext) FocusedSlot() domain.Slot {
	return c.Slot
}

func (c *ModelContext) CanAddSecond() bool {
	return c.Snapshot.CanAddSecond()
}
