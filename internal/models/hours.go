package models

// DaySchedule is one weekday row of the Hours sheet. Open and Close are
// wall-clock "HH:MM" values; a day whose Status is not "aberto" is closed all
// day regardless of the times.
type DaySchedule struct {
	Weekday int    `json:"weekday"` // 0=Sunday .. 6=Saturday
	Status  string `json:"status"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// OpenToday reports whether the row records an open day.
func (d DaySchedule) OpenToday() bool {
	return d.Status == "aberto"
}

// WeekSchedule maps weekday number to its schedule row.
type WeekSchedule map[int]DaySchedule
