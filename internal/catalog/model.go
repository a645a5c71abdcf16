// Package catalog is the in-memory course catalog served by the academy API.
package catalog

import "time"

// Level is a course difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Course is a published course.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	InstructorID string    `json:"instructorId"`
	Level        Level     `json:"level"`
	DurationMin  int       `json:"durationMinutes"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourseList is the payload of the course listing. UpdatedAt is the newest
// course timestamp and drives Last-Modified.
type CourseList struct {
	Courses   []Course  `json:"courses"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Instructor teaches courses.
type Instructor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Enrollment links a user to a course.
type Enrollment struct {
	CourseID   string    `json:"courseId"`
	UserID     string    `json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// CourseStats is the aggregate computed per course. It is memoized in the
// secondary store, so every field must survive a msgpack round trip.
type CourseStats struct {
	CourseID    string         `json:"courseId" msgpack:"course_id"`
	Enrollments int            `json:"enrollments" msgpack:"enrollments"`
	ByLevel     map[string]int `json:"learnersByLevel" msgpack:"by_level"`
	ComputedAt  string         `json:"computedAt" msgpack:"computed_at"`
}
