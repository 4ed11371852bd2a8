// Package closure computes the candidate-set closure (spec.md §4.D): the
// universe of course codes the model builder is allowed to place.
package closure

import (
	"coursesched/internal/catalog"
	"coursesched/internal/schedule"

	"go.uber.org/zap"
)

// Compute returns the least set of CourseCodes containing: every code in
// Incoming, every code in the seed Courses, every code transitively
// referenced by a prereq of a code already in the set, every code named in
// any catalog GenEdReq, and every code named in any declared program's
// ElectiveReq. Termination is guaranteed because the set is bounded by the
// catalog's total known codes — grounded on
// original_source/src/model/context.rs's ModelBuilderContext::new
// worklist, whose println!("[DIAG] ...") diagnostics become a single
// structured debug log line here (spec.md §1 excludes verbose diagnostic
// printing from core scope).
func Compute(s *schedule.Schedule, log *zap.Logger) []catalog.CourseCode {
	if log == nil {
		log = zap.NewNop()
	}
	all := make(map[catalog.CourseCode]bool)
	var queue []catalog.CourseCode

	enqueue := func(c catalog.CourseCode) {
		if !all[c] {
			all[c] = true
			queue = append(queue, c)
		}
	}

	for _, c := range s.Incoming {
		enqueue(c)
	}
	for _, sem := range s.Courses {
		for _, c := range sem {
			enqueue(c)
		}
	}

	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		req, ok := s.Catalog.Prereqs[code]
		if !ok {
			continue
		}
		for _, ref := range catalog.AllCourseCodes(req) {
			enqueue(ref)
		}
	}

	for _, ge := range s.Catalog.GenEds {
		for _, c := range ge.Req.AllPoolCodes() {
			enqueue(c)
		}
	}

	for _, progName := range s.Programs {
		prog, ok := s.Catalog.ProgramByName(progName)
		if !ok {
			continue
		}
		for _, elective := range prog.Electives {
			for _, c := range elective.Req.AllPoolCodes() {
				enqueue(c)
			}
		}
	}

	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		req, ok := s.Catalog.Prereqs[code]
		if !ok {
			continue
		}
		for _, ref := range catalog.AllCourseCodes(req) {
			enqueue(ref)
		}
	}

	out := make([]catalog.CourseCode, 0, len(all))
	for c := range all {
		out = append(out, c)
	}
	log.Debug("computed candidate-set closure",
		zap.Int("candidate_count", len(out)),
		zap.Int("incoming_count", len(s.Incoming)),
		zap.Int("program_count", len(s.Programs)))
	return out
}
