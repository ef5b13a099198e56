package models

import "time"

type Category string

const (
	CategoryProduct Category = "Product"
	CategoryService Category = "Service"
	CategorySupport Category = "Support"
)

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	return []Category{CategoryProduct, CategoryService, CategorySupport}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryProduct, CategoryService, CategorySupport:
		return true
	}
	return false
}

// Status is the triage state of a submission. Any status may move to any other.
type Status string

const (
	StatusNew      Status = "New"
	StatusRead     Status = "Read"
	StatusResolved Status = "Resolved"
)

func Statuses() []Status {
	return []Status{StatusNew, StatusRead, StatusResolved}
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusResolved:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5

	// RecentLimit is how many of the newest records Stats.Recent carries.
	RecentLimit = 5
)

// Feedback is one customer submission plus its triage metadata.
// The JSON layout is the persisted format, so tags must not change.
type Feedback struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Rating       int       `json:"rating"`
	Category     Category  `json:"category"`
	Comments     string    `json:"comments"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateInput is a submission before the store assigns id, status and createdAt.
type CreateInput struct {
	CustomerName string   `json:"customerName"`
	Email        string   `json:"email"`
	Rating       int      `json:"rating"`
	Category     Category `json:"category"`
	Comments     string   `json:"comments"`
}

// FilterCriteria fields are independent; a zero value imposes no constraint.
type FilterCriteria struct {
	Rating   int      `json:"rating,omitempty"`
	Category Category `json:"category,omitempty"`
	Search   string   `json:"search,omitempty"`
}

func (c FilterCriteria) IsEmpty() bool {
	return c.Rating == 0 && c.Category == "" && c.Search == ""
}

type Stats struct {
	Total      int              `json:"total"`
	AvgRating  float64          `json:"avgRating"`
	ByCategory map[Category]int `json:"byCategory"`
	ByRating   map[int]int      `json:"byRating"`
	ByStatus   map[Status]int   `json:"byStatus"`
	Recent     []Feedback       `json:"recent"`
}

// NewStats returns empty stats with every bucket present at zero.
func NewStats() *Stats {
	s := &Stats{
		ByCategory: make(map[Category]int, 3),
		ByRating:   make(map[int]int, MaxRating),
		ByStatus:   make(map[Status]int, 3),
		Recent:     []Feedback{},
	}
	for _, c := range Categories() {
		s.ByCategory[c] = 0
	}
	for r := MinRating; r <= MaxRating; r++ {
		s.ByRating[r] = 0
	}
	for _, st := range Statuses() {
		s.ByStatus[st] = 0
	}
	return s
}
