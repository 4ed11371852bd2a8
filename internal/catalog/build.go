package catalog

import "go.uber.org/zap"

// Builder assembles a Catalog incrementally, handling the one data-quality
// wrinkle the original source leaves ambiguous (spec.md §9 Open Question):
// two entries for the same (course, req) key. This repo's policy — decided
// in DESIGN.md — is to union duplicate prereq entries with And rather than
// let insertion order pick a winner or hard-error, and to log every merge so
// it's never silent.
type Builder struct {
	programs []Program
	geneds   []GenEd
	prereqs  map[CourseCode]CourseReq
	courses  map[CourseCode]CourseRecord
	lowYear  int
	log      *zap.Logger
}

// NewBuilder creates an empty Builder. A nil logger is replaced with a
// no-op one so callers never need a nil check.
func NewBuilder(lowYear int, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		prereqs: make(map[CourseCode]CourseReq),
		courses: make(map[CourseCode]CourseRecord),
		lowYear: lowYear,
		log:     log,
	}
}

// AddProgram registers a declared program.
func (b *Builder) AddProgram(p Program) *Builder {
	b.programs = append(b.programs, p)
	return b
}

// AddGenEd registers a general-education requirement.
func (b *Builder) AddGenEd(g GenEd) *Builder {
	b.geneds = append(b.geneds, g)
	return b
}

// AddCourse registers a course's catalog record. A later call for the same
// code overwrites the record — course metadata, unlike prereqs, has no
// meaningful union.
func (b *Builder) AddCourse(code CourseCode, rec CourseRecord) *Builder {
	b.courses[code] = rec
	return b
}

// AddPrereq registers code's prerequisite expression. If code already has a
// prereq entry, the two are unioned under And and the merge is logged.
func (b *Builder) AddPrereq(code CourseCode, req CourseReq) *Builder {
	if existing, ok := b.prereqs[code]; ok {
		b.log.Warn("duplicate prereq entry for course code, unioning with And",
			zap.String("course", code.String()))
		b.prereqs[code] = And(existing, req)
		return b
	}
	b.prereqs[code] = req
	return b
}

// Build finalizes the Catalog.
func (b *Builder) Build() Catalog {
	return Catalog{
		Programs: b.programs,
		GenEds:   b.geneds,
		Prereqs:  b.prereqs,
		Courses:  b.courses,
		LowYear:  b.lowYear,
	}
}
