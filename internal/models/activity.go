package models

import "encoding/json"

// Activity is one planner action parsed from a line of the form
// `<start>: (<action> <args>) [<duration>]`. Times are in seconds.
type Activity struct {
	ID             int     `json:"id"`
	RawDescription string  `json:"raw_description"` // parenthesized term exactly as it appeared
	ActionName     string  `json:"action_name"`     // first token of the term, used as the color key
	StartTime      float64 `json:"start_time"`
	Duration       float64 `json:"duration"`
}

// EndTime returns StartTime + Duration.
func (a Activity) EndTime() float64 {
	return a.StartTime + a.Duration
}

// StartMillis returns the start time scaled to milliseconds for display.
func (a Activity) StartMillis() float64 {
	return 1000 * a.StartTime
}

// EndMillis returns the end time in milliseconds, computed as the scaled
// duration added to the scaled start.
func (a Activity) EndMillis() float64 {
	return 1000*a.Duration + a.StartMillis()
}

// MarshalJSON includes the derived end time and encodes non-finite times as null.
func (a Activity) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID             int      `json:"id"`
		RawDescription string   `json:"raw_description"`
		ActionName     string   `json:"action_name"`
		StartTime      *float64 `json:"start_time"`
		Duration       *float64 `json:"duration"`
		EndTime        *float64 `json:"end_time"`
	}
	return json.Marshal(wire{
		ID:             a.ID,
		RawDescription: a.RawDescription,
		ActionName:     a.ActionName,
		StartTime:      finiteOrNil(a.StartTime),
		Duration:       finiteOrNil(a.Duration),
		EndTime:        finiteOrNil(a.EndTime()),
	})
}
