package domain

// Kind is the outcome of classifying one remote entry.
type Kind string

const (
	KindDirectory    Kind = "directory"
	KindFile         Kind = "file"
	KindInaccessible Kind = "inaccessible"
	KindUnknown      Kind = "unknown"
)

// CandidateLink is one anchor kept from a directory listing.
type CandidateLink struct {
	Text string
	Href string
}

// Classification is what a classifier decided about a URL.
//
// StatusCode is set for Inaccessible. Err explains Unknown. Page holds the
// directory response when the classifier already fetched it, so the crawler
// does not have to request the listing twice.
type Classification struct {
	URL        string
	Kind       Kind
	StatusCode int
	Err        error
	Page       *Response
}

// Skipped reports whether the entry is excluded from both result lists.
func (c Classification) Skipped() bool {
	return c.Kind == KindInaccessible || c.Kind == KindUnknown
}

// Skip records an entry that was left out of the tree and why.
type Skip struct {
	URL        string
	Kind       Kind
	StatusCode int
	Reason     string
}
