package model

// URLMapping is a persisted association between a short code and its target URL.
type URLMapping struct {
	ID       int64
	ShortURL string
	LongURL  string
}

// ShortenResponse is returned by POST / on success.
type ShortenResponse struct {
	ShortenedURL string `json:"shortened_url"`
	Link         string `json:"link"`
}

// ListItem is the external representation of a mapping in /list-urls.
type ListItem struct {
	ID           int64  `json:"id"`
	ShortenedURL string `json:"shortened_url"`
	LongURL      string `json:"long_url"`
}

// ListResponse wraps all mappings returned by /list-urls.
type ListResponse struct {
	URLs []ListItem `json:"urls"`
}

// DeleteResponse is returned by DELETE /delete/{id}.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// URLRecord is a single line of the file storage log.
type URLRecord struct {
	ID        int64  `json:"id"`
	ShortURL  string `json:"short_url,omitempty"`
	LongURL   string `json:"long_url,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}
