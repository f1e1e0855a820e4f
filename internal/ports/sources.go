package ports

import "context"

// FetchResult is a fetched remote document
type FetchResult struct {
	// FinalURL is the URL after redirects
	FinalURL    string
	ContentType string
	Body        []byte
}

// URLFetcher downloads remote text for import
type URLFetcher interface {
	Fetch(ctx context.Context, rawURL string, maxBytes int64) (*FetchResult, error)
}

// ClipboardReader reads the system clipboard
type ClipboardReader interface {
	ReadText() (string, error)
}
