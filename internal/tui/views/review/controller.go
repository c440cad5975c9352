// Package review implements the suggestion review TUI: the view-state
// controller, the string diff highlighter, and the Bubble Tea table view.
package review

import (
	"github.com/prooflab/redline/internal/core/suggest"
)

// ViewMode is the presentation of the highlighted correction.
type ViewMode int

const (
	// ViewInline renders original→corrected inside the sentence.
	ViewInline ViewMode = iota
	// ViewStacked renders before and after lines on top of each other.
	ViewStacked
	// ViewSide renders before and after side by side.
	ViewSide
)

func (v ViewMode) String() string {
	switch v {
	case ViewStacked:
		return "stacked"
	case ViewSide:
		return "side"
	default:
		return "inline"
	}
}

// Controller owns the review view state: search query, document filter, view
// mode, and the multi-select set. Selection membership is only legal for
// rows that are pending and pass the active filters; every state change
// prunes the set back to that invariant.
type Controller struct {
	rows     []suggest.Row
	query    string
	document string
	view     ViewMode
	selected map[string]struct{}
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{selected: make(map[string]struct{})}
}

// SetRows replaces the row collection, e.g. after a server refetch, and
// prunes stale selections.
func (c *Controller) SetRows(rows []suggest.Row) {
	c.rows = rows
	c.prune()
}

// Rows returns the full, unfiltered collection.
func (c *Controller) Rows() []suggest.Row { return c.rows }

// Query returns the active search filter text.
func (c *Controller) Query() string { return c.query }

// SetQuery updates the search filter and prunes selections that fell out of
// view.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.prune()
}

// Document returns the active document filter ("" = all documents).
func (c *Controller) Document() string { return c.document }

// SetDocument updates the document filter. Both filters compose (AND).
func (c *Controller) SetDocument(d string) {
	c.document = d
	c.prune()
}

// View returns the current presentation mode.
func (c *Controller) View() ViewMode { return c.view }

// CycleView advances inline → stacked → side → inline.
func (c *Controller) CycleView() {
	c.view = (c.view + 1) % 3
}

// Visible returns the rows passing both filters, in original order.
func (c *Controller) Visible() []suggest.Row {
	return suggest.Filter(suggest.FilterDocument(c.rows, c.document), c.query)
}

// Selectable returns ids of visible rows still pending review.
func (c *Controller) Selectable() []string {
	var ids []string
	for _, r := range c.Visible() {
		if r.Pending() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// IsSelected reports whether the id is in the selection set.
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// ToggleSelect flips one id's membership. Ids outside the selectable set are
// rejected.
func (c *Controller) ToggleSelect(id string) bool {
	if !c.selectable(id) {
		return false
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
	return true
}

// ToggleAll clears the selection if every selectable id is already selected;
// otherwise it selects exactly the selectable set, discarding anything else.
func (c *Controller) ToggleAll() {
	ids := c.Selectable()
	all := len(ids) > 0
	for _, id := range ids {
		if _, ok := c.selected[id]; !ok {
			all = false
			break
		}
	}

	c.selected = make(map[string]struct{}, len(ids))
	if all {
		return
	}
	for _, id := range ids {
		c.selected[id] = struct{}{}
	}
}

// Selected returns the selected ids in visible-row order.
func (c *Controller) Selected() []string {
	var ids []string
	for _, r := range c.Visible() {
		if _, ok := c.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// SelectedCount returns the size of the selection set.
func (c *Controller) SelectedCount() int { return len(c.selected) }

// ClearSelection empties the selection set. Called after every accept/
// reject/bulk action.
func (c *Controller) ClearSelection() {
	c.selected = make(map[string]struct{})
}

// Stats recomputes review counts over the full collection.
func (c *Controller) Stats() suggest.Stats {
	return suggest.Compute(c.rows)
}

// Documents returns the distinct document tags of the collection.
func (c *Controller) Documents() []string {
	return suggest.Documents(c.rows)
}

func (c *Controller) selectable(id string) bool {
	for _, sid := range c.Selectable() {
		if sid == id {
			return true
		}
	}
	return false
}

func (c *Controller) prune() {
	if len(c.selected) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(c.selected))
	for _, id := range c.Selectable() {
		if _, ok := c.selected[id]; ok {
			keep[id] = struct{}{}
		}
	}
	c.selected = keep
}
