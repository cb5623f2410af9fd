package models

import "time"

// Notice is one published support-program announcement. Its seven
// option fields use the same bitmask scheme as Condition, with one
// twist: a mask of 0 on the notice side means "applies to every
// option" (wildcard). NotFit marks administrative catch-all notices
// that never enter matching; Valid flips to false once the end date
// has passed.
type Notice struct {
	ID           string    `json:"id" bson:"id"`
	Title        string    `json:"title" bson:"title"`
	Institution  string    `json:"institution" bson:"institution"`
	Part         string    `json:"part" bson:"part"`
	Phone        string    `json:"phone" bson:"phone"`
	RegDate      time.Time `json:"regDate" bson:"regDate"`
	StartDate    time.Time `json:"startDate" bson:"startDate"`
	EndDate      time.Time `json:"endDate" bson:"endDate"`
	ReferURL     string    `json:"referUrl" bson:"referUrl"`
	OriginURL    string    `json:"originUrl" bson:"originUrl"`
	DetailOne    string    `json:"detailOne" bson:"detailOne"`
	DetailTwo    string    `json:"detailTwo" bson:"detailTwo"`
	DetailThree  string    `json:"detailThree" bson:"detailThree"`
	ReadCount    int       `json:"readCount" bson:"readCount"`
	Location     int       `json:"location" bson:"location"`
	Age          int       `json:"age" bson:"age"`
	Period       int       `json:"period" bson:"period"`
	BusinessType int       `json:"businessType" bson:"businessType"`
	Category     int       `json:"category" bson:"category"`
	Field        int       `json:"field" bson:"field"`
	Advantage    int       `json:"advantage" bson:"advantage"`
	NotFit       bool      `json:"notFit" bson:"notFit"`
	Valid        bool      `json:"valid" bson:"valid"`
}

// DaysLeft reports the number of whole days between now and the
// notice's end date, at date (not time-of-day) granularity.
func (n Notice) DaysLeft(now time.Time) int {
	end := truncateToDay(n.EndDate)
	today := truncateToDay(now)
	return int(end.Sub(today).Hours() / 24)
}

// Expired reports whether the notice's end date lies strictly before
// today.
func (n Notice) Expired(now time.Time) bool {
	return truncateToDay(n.EndDate).Before(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NoticeInput is the admin-side payload for publishing a notice. The
// option fields arrive as selected indices, like ConditionInput; empty
// selections are stored as 0 and act as wildcards.
type NoticeInput struct {
	Title        string `json:"title" binding:"required"`
	Institution  string `json:"institution"`
	Part         string `json:"part"`
	Phone        string `json:"phone"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate" binding:"required"`
	ReferURL     string `json:"referUrl"`
	OriginURL    string `json:"originUrl"`
	DetailOne    string `json:"detailOne"`
	DetailTwo    string `json:"detailTwo"`
	DetailThree  string `json:"detailThree"`
	Location     []int  `json:"location"`
	Age          []int  `json:"age"`
	Period       []int  `json:"period"`
	BusinessType []int  `json:"businessType"`
	Category     []int  `json:"category"`
	Field        []int  `json:"field"`
	Advantage    []int  `json:"advantage"`
	NotFit       bool   `json:"notFit"`
}

// Encode turns the input selections into a Notice with bitmask fields.
// Dates and bookkeeping fields are left for the service to fill.
func (in NoticeInput) Encode() Notice {
	return Notice{
		Title:        in.Title,
		Institution:  in.Institution,
		Part:         in.Part,
		Phone:        in.Phone,
		ReferURL:     in.ReferURL,
		OriginURL:    in.OriginURL,
		DetailOne:    in.DetailOne,
		DetailTwo:    in.DetailTwo,
		DetailThree:  in.DetailThree,
		Location:     TrimMask(EncodeOptions(in.Location), Locations),
		Age:          TrimMask(EncodeOptions(in.Age), Ages),
		Period:       TrimMask(EncodeOptions(in.Period), Periods),
		BusinessType: TrimMask(EncodeOptions(in.BusinessType), BusinessTypes),
		Category:     TrimMask(EncodeOptions(in.Category), Categories),
		Field:        TrimMask(EncodeOptions(in.Field), Fields),
		Advantage:    TrimMask(EncodeOptions(in.Advantage), Advantages),
		NotFit:       in.NotFit,
	}
}

// NoticeSummary is one row of a notice list: enough to render a card,
// plus whether the requesting user has scraped it.
type NoticeSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Institution string    `json:"institution"`
	RegDate     time.Time `json:"regDate"`
	EndDate     time.Time `json:"endDate"`
	DDay        int       `json:"dday"`
	Scraped     bool      `json:"scraped"`
}

// Summary projects the notice into its list form.
func (n Notice) Summary(now time.Time, scraped bool) NoticeSummary {
	return NoticeSummary{
		ID:          n.ID,
		Title:       n.Title,
		Institution: n.Institution,
		RegDate:     n.RegDate,
		EndDate:     n.EndDate,
		DDay:        n.DaysLeft(now),
		Scraped:     scraped,
	}
}
