package models

import "time"

// Condition is one user's saved matching criteria. Each of the seven
// option fields is a bitmask over the corresponding label set in
// options.go. AlertOn obeys the exclusivity rule: at most one of a
// user's conditions carries it at any time.
type Condition struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"userId" bson:"userId"`
	Name         string    `json:"name" bson:"name"`
	Location     int       `json:"location" bson:"location"`
	Age          int       `json:"age" bson:"age"`
	Period       int       `json:"period" bson:"period"`
	BusinessType int       `json:"businessType" bson:"businessType"`
	Category     int       `json:"category" bson:"category"`
	Field        int       `json:"field" bson:"field"`
	Advantage    int       `json:"advantage" bson:"advantage"`
	AlertOn      bool      `json:"alertOn" bson:"alertOn"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ConditionInput is the client-side shape of a condition: a name plus
// the selected option indices per field. The service encodes each
// selection into a bitmask on the way in.
type ConditionInput struct {
	Name         string `json:"name" binding:"required"`
	Location     []int  `json:"location"`
	Age          []int  `json:"age"`
	Period       []int  `json:"period"`
	BusinessType []int  `json:"businessType"`
	Category     []int  `json:"category"`
	Field        []int  `json:"field"`
	Advantage    []int  `json:"advantage"`
}

// Encode turns the input selections into a Condition with bitmask
// fields, trimmed to each enumeration's width.
func (in ConditionInput) Encode() Condition {
	return Condition{
		Name:         in.Name,
		Location:     TrimMask(EncodeOptions(in.Location), Locations),
		Age:          TrimMask(EncodeOptions(in.Age), Ages),
		Period:       TrimMask(EncodeOptions(in.Period), Periods),
		BusinessType: TrimMask(EncodeOptions(in.BusinessType), BusinessTypes),
		Category:     TrimMask(EncodeOptions(in.Category), Categories),
		Field:        TrimMask(EncodeOptions(in.Field), Fields),
		Advantage:    TrimMask(EncodeOptions(in.Advantage), Advantages),
	}
}

// ConditionDetail is the decoded, display-ready form of a condition:
// per-field label-to-selected maps instead of raw masks.
type ConditionDetail struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	AlertOn      bool            `json:"alertOn"`
	Location     map[string]bool `json:"location"`
	Age          map[string]bool `json:"age"`
	Period       map[string]bool `json:"period"`
	BusinessType map[string]bool `json:"businessType"`
	Category     map[string]bool `json:"category"`
	Field        map[string]bool `json:"field"`
	Advantage    map[string]bool `json:"advantage"`
}

// Detail decodes the condition's masks against the option label sets.
func (c Condition) Detail() ConditionDetail {
	return ConditionDetail{
		ID:           c.ID,
		Name:         c.Name,
		AlertOn:      c.AlertOn,
		Location:     DecodeOptions(c.Location, Locations),
		Age:          DecodeOptions(c.Age, Ages),
		Period:       DecodeOptions(c.Period, Periods),
		BusinessType: DecodeOptions(c.BusinessType, BusinessTypes),
		Category:     DecodeOptions(c.Category, Categories),
		Field:        DecodeOptions(c.Field, Fields),
		Advantage:    DecodeOptions(c.Advantage, Advantages),
	}
}

// ConditionSummary is one row of the "my conditions" overview: the
// condition plus how many notices currently match it.
type ConditionSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AlertOn   bool   `json:"alertOn"`
	NoticeCnt int    `json:"noticeCnt"`
}

// UserConditions is the response for the conditions overview screen.
type UserConditions struct {
	Nickname   string             `json:"nickname"`
	Conditions []ConditionSummary `json:"conditions"`
}
