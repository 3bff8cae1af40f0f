package paging

// DefaultScreensAhead is how many viewport heights before the end of the
// content a page load is requested.
const DefaultScreensAhead = 2.5

// ShouldTriggerLoad reports whether the projected scroll position is close
// enough to the end of the content to request the next page. Callers pass the
// offset the scroll will settle at, not the current one.
func ShouldTriggerLoad(viewportHeight, contentHeight, projectedOffsetY, screensAhead float64) bool {
	remaining := contentHeight - viewportHeight - projectedOffsetY
	return remaining <= viewportHeight*screensAhead
}
