package scrapRepo

// ScrapRepository defines data access for notice bookmarks.
type ScrapRepository interface {
	// IsScraped reports whether the user has bookmarked the notice.
	IsScraped(userID, noticeID string) (bool, error)
	// Insert records a bookmark.
	Insert(userID, noticeID string) error
	// Delete removes a bookmark.
	Delete(userID, noticeID string) error
	// ListScrapers returns the ids of users who bookmarked the notice.
	ListScrapers(noticeID string) ([]string, error)
	// ListByUser returns the notice ids the user has bookmarked,
	// newest bookmark first.
	ListByUser(userID string) ([]string, error)
}
