package reconcile

// Resolver maps canonical field names onto the attribute names a booking
// schema actually exposes. Matching is exact string equality on attribute
// names; fuzzy logic applies to values, never to names.
type Resolver struct {
	synonyms map[string][]string
}

// NewResolver creates a resolver from a canonical-field to synonym-list
// mapping. Synonym order is priority order: callers control precedence by
// putting the preferred attribute names first.
func NewResolver(synonyms map[string][]string) *Resolver {
	return &Resolver{synonyms: synonyms}
}

// Resolve returns the first synonym for the canonical field that is present
// among the given attribute names, or false when none is. Resolution is
// deterministic and has no side effects.
func (r *Resolver) Resolve(canonical string, attrs map[string]any) (string, bool) {
	return FirstPresent(r.synonyms[canonical], attrs)
}

// FirstPresent walks the candidate names in order and returns the first one
// present in the attribute map. It is exposed for callers that resolve
// ad-hoc name lists outside a configured canonical field, such as trade
// identifier discovery in booking loaders.
func FirstPresent(candidates []string, attrs map[string]any) (string, bool) {
	for _, name := range candidates {
		if _, ok := attrs[name]; ok {
			return name, true
		}
	}
	return "", false
}
