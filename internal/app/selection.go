package app

// NoSelection is the cursor value when no route is selected
const NoSelection = -1

// Advance moves the cursor one row down a list of n entries, wrapping to the top.
// An empty list yields NoSelection; no selection yields the first row.
func Advance(sel, n int) int {
	if n <= 0 {
		return NoSelection
	}
	if sel < 0 || sel >= n-1 {
		return 0
	}
	return sel + 1
}

// Retreat moves the cursor one row up a list of n entries, wrapping to the bottom.
// An empty list yields NoSelection; no selection yields the first row.
func Retreat(sel, n int) int {
	if n <= 0 {
		return NoSelection
	}
	if sel < 0 {
		return 0
	}
	if sel == 0 || sel >= n {
		return n - 1
	}
	return sel - 1
}

// Clamp returns a cursor valid for a list of n entries
func Clamp(sel, n int) int {
	switch {
	case n <= 0 || sel < 0:
		return NoSelection
	case sel >= n:
		return n - 1
	default:
		return sel
	}
}
