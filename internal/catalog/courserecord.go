package catalog

// CourseRecord is the catalog's description of one course: its display
// name, credit value, and which terms it's offered in. A missing Credits
// value (Credits == nil) is treated as zero credits for optimization
// purposes, but the course is still placeable — spec.md §3.
type CourseRecord struct {
	Name     string
	Credits  *int
	Offering TermOffering
}

// CreditsOrZero returns the course's credit value, defaulting to 0 when the
// catalog doesn't record one.
func (r CourseRecord) CreditsOrZero() int {
	if r.Credits == nil {
		return 0
	}
	return *r.Credits
}
