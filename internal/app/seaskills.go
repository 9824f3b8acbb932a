package app

import "encoding/json"

const (
	ActivityPending  = "pending"
	ActivityFinished = "finished"
)

// SeaSkillsActivity is one per-user lesson record. Status is
// server-authoritative; the client only aggregates over the in-memory list.
type SeaSkillsActivity struct {
	ActivityID    int       `json:"activity_id"`
	WeekNumber    int       `json:"week_number"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	CompletedAt   *string   `json:"completed_at"`
	MinutesSpent  *int      `json:"minutes_spent"`
	AutoCompleted LooseBool `json:"auto_completed"`
	Status        string    `json:"status"`
}

// LooseBool tolerates the API sending a bool, a number, or null.
type LooseBool bool

func (b *LooseBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = LooseBool(v)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = n != 0
		return nil
	}
	// null or anything else degrades to false
	*b = false
	return nil
}

// ActivityTotals is the derived summary shown above the activity list.
type ActivityTotals struct {
	Finished int
	Pending  int
	Minutes  int
}

// SummarizeActivities reduces the current list: finished count, remainder as
// pending, minutes with absent values treated as zero. Never persisted.
func SummarizeActivities(activities []SeaSkillsActivity) ActivityTotals {
	var t ActivityTotals
	for _, a := range activities {
		if a.Status == ActivityFinished {
			t.Finished++
		} else {
			t.Pending++
		}
		if a.MinutesSpent != nil {
			t.Minutes += *a.MinutesSpent
		}
	}
	return t
}

// SeaSkillsStatusResponse is the payload of the per-user status endpoint.
type SeaSkillsStatusResponse struct {
	User struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Activities []SeaSkillsActivity `json:"activities"`
}
