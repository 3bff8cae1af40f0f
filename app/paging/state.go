package paging

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 20

// ListState is the single source of truth for loaded rows and loading status.
type ListState struct {
	Items      []RowItem // append-only, in page order
	Offset     int       // grows by Limit per successful page
	Limit      int
	TotalCount int
	IsLoading  bool
	ShouldLoad bool
}

func initialState(limit int) ListState {
	return ListState{
		Limit:      limit,
		ShouldLoad: true,
	}
}

// Loaded returns the offset clamped to the collection size.
func (s ListState) Loaded() int {
	return min(s.Offset, s.TotalCount)
}

// Exhausted reports whether every page of a known collection has been applied.
func (s ListState) Exhausted() bool {
	return !s.ShouldLoad && !s.IsLoading && s.Offset >= s.TotalCount && s.Offset > 0
}

func (s ListState) clone() ListState {
	out := s
	out.Items = make([]RowItem, len(s.Items))
	for i, it := range s.Items {
		out.Items[i] = it.clone()
	}
	return out
}
