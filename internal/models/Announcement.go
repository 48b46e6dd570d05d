package models

// Announcement is a platform-neutral release notice. The chat adapter turns it into a rich message.
type Announcement struct {
	Title      string
	URL        string
	SeriesName string
	StoreDate  string
	ImageURL   string
	Footer     string
	Mentions   []string
}
