// Package syllabus exposes the static course-syllabus reference data used by
// chapter selectors, exports and AI prompt building. The catalog is built
// once at process start and is read-only afterwards, so it is safe for any
// number of concurrent readers.
package syllabus

import (
	"sort"

	"github.com/campusbridge/portal-api/internal/models"
)

// Catalog is a keyed, immutable table of course syllabi.
type Catalog struct {
	courses map[string]models.CourseSyllabus
}

// NewCatalog builds a catalog from the given syllabi. Duplicate codes keep
// the first occurrence.
func NewCatalog(courses []models.CourseSyllabus) *Catalog {
	byCode := make(map[string]models.CourseSyllabus, len(courses))
	for _, course := range courses {
		if _, exists := byCode[course.Code]; exists {
			continue
		}
		byCode[course.Code] = course
	}
	return &Catalog{courses: byCode}
}

// Default returns the catalog of built-in course syllabi.
func Default() *Catalog {
	return NewCatalog(builtinCourses)
}

// Lookup returns the syllabus for the code, if known.
func (c *Catalog) Lookup(code string) (models.CourseSyllabus, bool) {
	course, ok := c.courses[code]
	return course, ok
}

// Units returns the ordered units for the code. Unknown codes fall back to
// the fixed generic unit sequence; that fallback is a documented policy for
// courses without a curated syllabus, not an error.
func (c *Catalog) Units(code string) []models.CourseUnit {
	if course, ok := c.courses[code]; ok {
		return course.Units
	}
	return GenericUnits()
}

// UnitTitles projects Units onto the ordered title strings.
func (c *Catalog) UnitTitles(code string) []string {
	units := c.Units(code)
	titles := make([]string, len(units))
	for i, unit := range units {
		titles[i] = unit.Title
	}
	return titles
}

// Codes returns the known course codes in sorted order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.courses))
	for code := range c.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GenericUnits returns a copy of the 5-unit placeholder sequence used for
// courses without a curated syllabus.
func GenericUnits() []models.CourseUnit {
	units := make([]models.CourseUnit, len(genericUnits))
	copy(units, genericUnits)
	return units
}

var genericUnits = []models.CourseUnit{
	{Number: 1, Title: "Introduction & Fundamentals"},
	{Number: 2, Title: "Core Concepts"},
	{Number: 3, Title: "Advanced Topics"},
	{Number: 4, Title: "Practical Applications"},
	{Number: 5, Title: "Final Review"},
}
