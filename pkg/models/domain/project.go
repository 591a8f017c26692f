package domain

import "time"

// Project is the aggregate holding one assessment's full state.
type Project struct {
	ID           string
	Name         string
	Organization OrgProfile
	SessionID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Pillars      []Pillar
	Responses    map[string]Response
	Baseline     *Baseline
	Plan         *Plan
}

// Pillar returns the pillar with the given id, or nil.
func (p *Project) Pillar(id string) *Pillar {
	for i := range p.Pillars {
		if p.Pillars[i].ID == id {
			return &p.Pillars[i]
		}
	}
	return nil
}

// Question finds a question by id across all pillars.
func (p *Project) Question(id string) *Question {
	for i := range p.Pillars {
		for j := range p.Pillars[i].Questions {
			if p.Pillars[i].Questions[j].ID == id {
				return &p.Pillars[i].Questions[j]
			}
		}
	}
	return nil
}

// Task finds a plan task by id, or nil when no plan exists.
func (p *Project) Task(id string) *Task {
	if p.Plan == nil {
		return nil
	}
	for i := range p.Plan.Tasks {
		if p.Plan.Tasks[i].ID == id {
			return &p.Plan.Tasks[i]
		}
	}
	return nil
}
