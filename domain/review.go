package domain

// Review is a single user review as decoded from a review source.
type Review struct {
	FirstName string
	LastName  string
	AvatarURL string   // Empty when the reviewer has no avatar.
	PhotoURLs []string // Nil when the review carries no photos.
	Rating    int
	Text      string
	Created   string // Display string, not parsed.
}

// FullName joins first and last name.
func (r Review) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// ReviewsPage is one fetched batch plus the size of the whole collection.
type ReviewsPage struct {
	Items []Review
	Count int
}
