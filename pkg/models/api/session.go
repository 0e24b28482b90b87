package api

import "time"

type CreateSessionRequest struct {
	Kind     string `json:"kind,omitempty"`
	Location string `json:"location,omitempty"`
	Schema   string `json:"schema,omitempty"`
	Profile  string `json:"profile,omitempty"`
}

type Session struct {
	Id        string        `json:"id"`
	Source    string        `json:"source"`
	Profile   string        `json:"profile"`
	CreatedAt time.Time     `json:"created_at"`
	Quality   QualityReport `json:"quality"`
	Kpis      KPISnapshot   `json:"kpis"`
}

type Filter struct {
	From    string   `json:"from,omitempty"`
	To      string   `json:"to,omitempty"`
	Regions []string `json:"regions,omitempty"`
	Modes   []string `json:"modes,omitempty"`
}

type SourceProfile struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Schema   string `json:"schema,omitempty"`
}
