package domain

// ResourceKind tags the two schedulable resource variants.
type ResourceKind string

const (
	KindTable ResourceKind = "table"
	KindQuest ResourceKind = "quest"
)

func (k ResourceKind) Valid() bool {
	return k == KindTable || k == KindQuest
}

type Branch struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Zone is a named group of tables inside a branch hall.
type Zone struct {
	ID       int64  `json:"id"`
	BranchID int64  `json:"branch_id"`
	Title    string `json:"title"`
}

type TableResource struct {
	ID       int64  `json:"id"`
	ZoneID   int64  `json:"zone_id"`
	Title    string `json:"title"`
	Capacity int    `json:"capacity"`
}

// QuestResource is a fixed-duration activity. Every reservation on it runs
// FixedDurationMin minutes unless an explicit duration is given at booking
// time.
type QuestResource struct {
	ID               int64  `json:"id"`
	BranchID         int64  `json:"branch_id"`
	Title            string `json:"title"`
	FixedDurationMin int    `json:"fixed_duration_minutes"`
}
