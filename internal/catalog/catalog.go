package catalog

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCourseNotFound is returned for unknown course IDs.
	ErrCourseNotFound = errors.New("course not found")

	// ErrAlreadyEnrolled is returned when a user enrolls twice.
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

// Catalog stores courses, instructors and enrollments. It is safe for
// concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	courses     map[string]Course
	instructors map[string]Instructor
	enrollments []Enrollment

	now               func() time.Time
	statsComputations atomic.Int64
}

// New creates an empty catalog. A nil clock uses time.Now.
func New(now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{
		courses:     make(map[string]Course),
		instructors: make(map[string]Instructor),
		now:         now,
	}
}

// PutCourse inserts or replaces a course.
func (c *Catalog) PutCourse(course Course) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.courses[course.ID] = course
}

// PutInstructor inserts or replaces an instructor.
func (c *Catalog) PutInstructor(instructor Instructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instructors[instructor.ID] = instructor
}

// Courses returns all courses ordered by ID.
func (c *Catalog) Courses() CourseList {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := CourseList{Courses: make([]Course, 0, len(c.courses))}
	for _, course := range c.courses {
		list.Courses = append(list.Courses, course)
		if course.UpdatedAt.After(list.UpdatedAt) {
			list.UpdatedAt = course.UpdatedAt
		}
	}
	sort.Slice(list.Courses, func(i, j int) bool { return list.Courses[i].ID < list.Courses[j].ID })
	list.Total = len(list.Courses)
	return list
}

// Course returns the course with id.
func (c *Catalog) Course(id string) (Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	course, ok := c.courses[id]
	if !ok {
		return Course{}, errors.Wrapf(ErrCourseNotFound, "course %q", id)
	}
	return course, nil
}

// Instructors returns all instructors ordered by ID.
func (c *Catalog) Instructors() []Instructor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Instructor, 0, len(c.instructors))
	for _, instructor := range c.instructors {
		out = append(out, instructor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enrollments returns the enrollments of userID in enrollment order.
func (c *Catalog) Enrollments(userID string) []Enrollment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Enrollment, 0)
	for _, e := range c.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Enroll adds userID to courseID.
func (c *Catalog) Enroll(courseID, userID string) (Enrollment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.courses[courseID]; !ok {
		return Enrollment{}, errors.Wrapf(ErrCourseNotFound, "course %q", courseID)
	}
	for _, e := range c.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			return Enrollment{}, errors.Wrapf(ErrAlreadyEnrolled, "user %q in course %q", userID, courseID)
		}
	}

	e := Enrollment{CourseID: courseID, UserID: userID, EnrolledAt: c.now().UTC()}
	c.enrollments = append(c.enrollments, e)
	return e, nil
}

// Stats aggregates enrollments for courseID. Each call is a full scan; callers
// memoize the result.
func (c *Catalog) Stats(courseID string) (CourseStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.courses[courseID]; !ok {
		return CourseStats{}, errors.Wrapf(ErrCourseNotFound, "course %q", courseID)
	}
	c.statsComputations.Add(1)

	learners := make(map[string]struct{})
	for _, e := range c.enrollments {
		if e.CourseID == courseID {
			learners[e.UserID] = struct{}{}
		}
	}

	byLevel := make(map[string]int)
	for userID := range learners {
		byLevel[string(c.levelOf(userID))]++
	}

	return CourseStats{
		CourseID:    courseID,
		Enrollments: len(learners),
		ByLevel:     byLevel,
		ComputedAt:  c.now().UTC().Format(time.RFC3339),
	}, nil
}

// StatsComputations returns how many times Stats aggregated.
func (c *Catalog) StatsComputations() int64 {
	return c.statsComputations.Load()
}

var levelRank = map[Level]int{LevelBeginner: 1, LevelIntermediate: 2, LevelAdvanced: 3}

// levelOf is the highest level among the courses a user is enrolled in.
// Caller holds mu.
func (c *Catalog) levelOf(userID string) Level {
	best := LevelBeginner
	for _, e := range c.enrollments {
		if e.UserID != userID {
			continue
		}
		if lvl := c.courses[e.CourseID].Level; levelRank[lvl] > levelRank[best] {
			best = lvl
		}
	}
	return best
}
