// Package gened evaluates GenEdReq/ElectiveReq shapes against a placed set
// of course codes — spec.md §3's Set/SetOpts/Courses/Credits forms.
package gened

import "coursesched/internal/catalog"

// CreditLookup resolves a course code to its credit value, needed by the
// Credits{num, pool} shape.
type CreditLookup func(catalog.CourseCode) int

// Fulfilled reports whether req is satisfied by allCodes (the set of every
// course code placed anywhere in the schedule), and if so, the subset of
// allCodes that counts toward it — mirroring the original's
// fulfilled_courses(all_codes) -> Option<HashSet>.
func Fulfilled(req catalog.GenEdReq, allCodes map[catalog.CourseCode]bool, credits CreditLookup) (fulfilling []catalog.CourseCode, ok bool) {
	switch req.Kind {
	case catalog.ReqSet:
		var have []catalog.CourseCode
		for _, c := range req.Codes {
			if allCodes[c] {
				have = append(have, c)
			}
		}
		if len(have) == len(req.Codes) {
			return have, true
		}
		return nil, false

	case catalog.ReqSetOpts:
		for _, opt := range req.Options {
			var have []catalog.CourseCode
			for _, c := range opt {
				if allCodes[c] {
					have = append(have, c)
				}
			}
			if len(have) == len(opt) {
				return have, true
			}
		}
		return nil, false

	case catalog.ReqCourseCount:
		var have []catalog.CourseCode
		for _, c := range req.Pool {
			if allCodes[c] {
				have = append(have, c)
			}
		}
		if len(have) >= req.Num {
			return have, true
		}
		return nil, false

	case catalog.ReqCreditCount:
		var have []catalog.CourseCode
		total := 0
		for _, c := range req.Pool {
			if allCodes[c] {
				have = append(have, c)
				total += credits(c)
			}
		}
		if total >= req.Num {
			return have, true
		}
		return nil, false

	default:
		return nil, false
	}
}
