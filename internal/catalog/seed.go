package catalog

import "time"

// Seed loads the demo catalog.
func Seed(c *Catalog) {
	base := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)

	for _, in := range []Instructor{
		{ID: "ada", Name: "Ada Brandt", Bio: "Distributed systems and Go.", UpdatedAt: base},
		{ID: "kofi", Name: "Kofi Mensah", Bio: "HTTP, caching and CDNs.", UpdatedAt: base},
	} {
		c.PutInstructor(in)
	}

	for _, co := range []Course{
		{ID: "go-101", Title: "Go Fundamentals", Summary: "Types, interfaces and the standard library.",
			InstructorID: "ada", Level: LevelBeginner, DurationMin: 240, UpdatedAt: base.Add(24 * time.Hour)},
		{ID: "go-concurrency", Title: "Concurrency in Go", Summary: "Goroutines, channels and sync.",
			InstructorID: "ada", Level: LevelIntermediate, DurationMin: 180, UpdatedAt: base.Add(48 * time.Hour)},
		{ID: "http-caching", Title: "HTTP Caching in Practice", Summary: "Cache-Control, ETags and revalidation.",
			InstructorID: "kofi", Level: LevelAdvanced, DurationMin: 120, UpdatedAt: base.Add(72 * time.Hour)},
	} {
		c.PutCourse(co)
	}
}
