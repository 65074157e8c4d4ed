package models

import "time"

type GoalStatus string

const (
	GoalActive   GoalStatus = "active"
	GoalAchieved GoalStatus = "achieved"
	GoalDropped  GoalStatus = "dropped"
)

type Goal struct {
	GoalID      int        `json:"goal_id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"target_date"`
	Progress    int        `json:"progress"` // 0-100
	Status      GoalStatus `json:"status"`
	Tags        string     `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (g *Goal) IsAchieved() bool {
	return g.Status == GoalAchieved || g.Progress >= 100
}
