package taxonomy

// Selection is the ordered set of tags a user has picked. Codenames are unique.
type Selection struct {
	tags []Tag
}

// NewSelection builds a selection from tags, keeping the first of any
// duplicate codenames.
func NewSelection(tags ...Tag) Selection {
	var s Selection
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

// Len returns the number of selected tags.
func (s Selection) Len() int {
	return len(s.tags)
}

// Contains reports whether codename is selected.
func (s Selection) Contains(codename string) bool {
	for _, tag := range s.tags {
		if tag.Codename == codename {
			return true
		}
	}
	return false
}

// Add appends tag unless its codename is already selected.
func (s *Selection) Add(tag Tag) bool {
	if s.Contains(tag.Codename) {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

// Remove drops the tag with the given codename.
func (s *Selection) Remove(codename string) bool {
	for i, tag := range s.tags {
		if tag.Codename != codename {
			continue
		}
		next := make([]Tag, 0, len(s.tags)-1)
		next = append(next, s.tags[:i]...)
		s.tags = append(next, s.tags[i+1:]...)
		return true
	}
	return false
}

// Tags returns a copy of the selected tags in selection order.
func (s Selection) Tags() []Tag {
	return append([]Tag(nil), s.tags...)
}

// Codenames returns the selected codenames in selection order.
func (s Selection) Codenames() []string {
	return Codenames(s.tags)
}

// Reconcile matches saved codenames against a freshly loaded universe. The
// result follows the universe order; codenames with no matching tag are
// dropped.
func Reconcile(codenames []string, universe []Tag) Selection {
	wanted := make(map[string]struct{}, len(codenames))
	for _, c := range codenames {
		wanted[c] = struct{}{}
	}
	var s Selection
	for _, tag := range universe {
		if _, ok := wanted[tag.Codename]; ok {
			s.Add(tag)
		}
	}
	return s
}
