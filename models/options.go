package models

// Option label sets for the seven multi-select fields shared by
// conditions and notices. Bit i of a stored mask corresponds to index i
// of the label slice, so the order of each slice is a persisted
// contract: reordering labels without a data migration reinterprets
// every mask already in the database.
var (
	Locations = []string{
		"Seoul", "Gyeonggi", "Incheon", "Daejeon/Chungcheong", "Daegu/Gyeongbuk",
		"Busan/Ulsan/Gyeongnam", "Gwangju/Jeolla", "Gangwon", "Jeju",
	}
	Ages = []string{
		"Under20", "20s", "30s", "40s", "50sAndOver",
	}
	Periods = []string{
		"Preliminary", "Under1Year", "1To3Years", "3To5Years", "5To7Years", "Over7Years",
	}
	BusinessTypes = []string{
		"Individual", "Corporation",
	}
	Categories = []string{
		"Funding", "Facilities", "Education", "Mentoring", "Networking", "Events",
	}
	Fields = []string{
		"Manufacturing", "KnowledgeService", "CultureContents", "FoodAndBeverage", "Etc",
	}
	Advantages = []string{
		"Women", "Youth", "Senior", "University", "Researcher",
	}
)

// EncodeOptions folds a set of selected option indices into a bitmask.
// Negative indices are ignored.
func EncodeOptions(selected []int) int {
	mask := 0
	for _, i := range selected {
		if i < 0 {
			continue
		}
		mask |= 1 << uint(i)
	}
	return mask
}

// DecodeOptions expands a stored mask against its label set, yielding
// one boolean per label. Bits beyond the enumeration width are dropped.
func DecodeOptions(mask int, labels []string) map[string]bool {
	out := make(map[string]bool, len(labels))
	for i, label := range labels {
		out[label] = mask&(1<<uint(i)) != 0
	}
	return out
}

// TrimMask masks a raw value down to the enumeration's bit width.
func TrimMask(mask int, labels []string) int {
	return mask & (1<<uint(len(labels)) - 1)
}
