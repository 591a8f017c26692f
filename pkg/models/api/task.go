package api

import "time"

type Task struct {
	ID               string         `json:"id"`
	RecommendationID string         `json:"recommendation_id"`
	PillarID         string         `json:"pillar_id"`
	Name             string         `json:"name"`
	Phase            string         `json:"phase"`
	Status           string         `json:"status"`
	BaseHours        float64        `json:"base_hours"`
	AdjustedHours    float64        `json:"adjusted_hours"`
	Owner            string         `json:"owner,omitempty"`
	Evidence         []string       `json:"evidence,omitempty"`
	History          []StatusChange `json:"history,omitempty"`
}

type StatusChange struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
	User    string    `json:"user,omitempty"`
	Comment string    `json:"comment,omitempty"`
}

type StatusUpdate struct {
	Status  string `json:"status"`
	User    string `json:"user,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type EvidenceUpload struct {
	FileName string `json:"file_name"`
	User     string `json:"user,omitempty"`
}
