package grid

import "gridselect/internal/domain"

// Key is a key code as reported by the host
type Key int

// Key codes understood by the grid and its plugins
const (
	KeyBackspace Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyPageUp    Key = 33
	KeyPageDown  Key = 34
	KeyEnd       Key = 35
	KeyHome      Key = 36
	KeyLeft      Key = 37
	KeyUp        Key = 38
	KeyRight     Key = 39
	KeyDown      Key = 40
	KeyDelete    Key = 46
)

// IsArrow reports whether k is one of the four arrow keys
func (k Key) IsArrow() bool {
	return k == KeyLeft || k == KeyUp || k == KeyRight || k == KeyDown
}

// Modifiers holds the modifier keys held during an input event
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// None reports whether no modifier is held
func (m Modifiers) None() bool {
	return !m.Shift && !m.Ctrl && !m.Alt && !m.Meta
}

// KeyEvent is a key-down notification
type KeyEvent struct {
	Which Key
	Modifiers
}

// ClickArgs is a click notification resolved to a cell
type ClickArgs struct {
	Row  int
	Cell int
	Modifiers
}

// ActiveCellArgs is an active-cell-changed notification.
// Row and Cell are nil when the grid has no active cell.
type ActiveCellArgs struct {
	Row  *int
	Cell *int
}

// DragArgs is a drag gesture notification resolved to the cell under the pointer
type DragArgs struct {
	Row  int
	Cell int
}

// RangeArgs carries a candidate range from a drag gesture
type RangeArgs struct {
	Range domain.Range
}

// SelectionChangedArgs carries a published selection and the caller that produced it
type SelectionChangedArgs struct {
	Ranges []domain.Range
	Caller string
}

// ScrollArgs describes a scroll-into-view request. Cell is -1 for row-only requests.
type ScrollArgs struct {
	Row  int
	Cell int
}
