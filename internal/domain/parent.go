package domain

// ParentMilestone is a display-only aggregate of milestones sharing one
// conceptual event. MinAge and MaxAge span its children's resolved ages.
type ParentMilestone struct {
	ID     string
	Name   string
	MinAge int
	MaxAge int
}

// IsPoint reports whether the group spans a single age.
func (p *ParentMilestone) IsPoint() bool {
	return p.MinAge == p.MaxAge
}
