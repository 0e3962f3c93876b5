package models

// Article is the normalized shape served to clients regardless of which
// news provider produced it.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	PublishedAt string `json:"publishedAt"`
	SourceName  string `json:"sourceName"`
}
