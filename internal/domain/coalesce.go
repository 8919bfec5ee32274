package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// NonEmptyPtr returns nil for a nil or empty string pointer, otherwise the pointer.
// Link and parent references treat "" the same as unset.
func NonEmptyPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// StrValue dereferences s, returning "" for nil.
func StrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
