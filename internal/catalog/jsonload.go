package catalog

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// jsonCatalog is Catalog's on-disk shape. Course-code map keys are
// "STEM-1300" or "STEM-COMP" strings, parsed back into the stem/suffix pair.
type jsonCatalog struct {
	LowYear  int                         `json:"low_year"`
	Programs []Program                   `json:"programs"`
	GenEds   []GenEd                     `json:"geneds"`
	Courses  map[string]CourseRecord     `json:"courses"`
	Prereqs  map[string]CourseReq        `json:"prereqs"`
}

// LoadJSON reads a Catalog from the declarative JSON schema spec.md §3
// describes (the default in-process loader; an optional Postgres-backed
// alternative lives in internal/catalogstore). Course-code map keys are
// "STEM-SUFFIX" strings, parsed via ParseCourseCode.
func LoadJSON(r io.Reader) (Catalog, error) {
	var doc jsonCatalog
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Catalog{}, errors.Wrap(err, "catalog: decode JSON")
	}

	cat := Catalog{
		LowYear:  doc.LowYear,
		Programs: doc.Programs,
		GenEds:   doc.GenEds,
		Courses:  make(map[CourseCode]CourseRecord, len(doc.Courses)),
		Prereqs:  make(map[CourseCode]CourseReq, len(doc.Prereqs)),
	}
	for raw, rec := range doc.Courses {
		code, err := ParseCourseCode(raw)
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "catalog: course key %q", raw)
		}
		cat.Courses[code] = rec
	}
	for raw, req := range doc.Prereqs {
		code, err := ParseCourseCode(raw)
		if err != nil {
			return Catalog{}, errors.Wrapf(err, "catalog: prereq key %q", raw)
		}
		cat.Prereqs[code] = req
	}
	return cat, nil
}

// LoadJSONFile opens path and reads a Catalog from it.
func LoadJSONFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "catalog: open")
	}
	defer f.Close()
	return LoadJSON(f)
}

// ParseCourseCode parses a "STEM-SUFFIX" string into a CourseCode,
// treating a purely-numeric suffix as numeric and anything else as
// symbolic.
func ParseCourseCode(s string) (CourseCode, error) {
	idx := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' {
			idx = i
			break
		}
	}
	if idx <= 0 || idx == len(s)-1 {
		return CourseCode{}, errors.Errorf("malformed course code %q", s)
	}
	stem, suffix := s[:idx], s[idx+1:]
	if n, ok := allDigits(suffix); ok {
		return NewCourseCode(stem, n), nil
	}
	return NewSymbolicCode(stem, suffix), nil
}

func allDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
