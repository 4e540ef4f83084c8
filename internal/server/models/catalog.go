package models

import "time"

type Movie struct {
	ID          string
	Title       string
	Director    string
	Hero        string
	ReleaseYear int
	CreatedBy   string
	CreatedAt   time.Time
}

type Review struct {
	ID           string
	MovieID      string
	Reviewer     string
	ReviewerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
