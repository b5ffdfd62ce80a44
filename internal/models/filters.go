package models

// SegmentFilter represents filter parameters for querying segment records
type SegmentFilter struct {
	StreetID string `form:"streetId"`
	Tier     string `form:"tier"` // discovered, mastered, legendary
	Mine     string `form:"mine"` // "true" -> only locally walked segments
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// OnlyMine reports whether the filter restricts results to segments the
// local player has walked.
func (f *SegmentFilter) OnlyMine() bool {
	return f.Mine == "true" || f.Mine == "1"
}
