package overpass

// Merge concatenates the elements of results, keeping only the first
// occurrence of each (type, id) pair. Nil results are skipped. The returned
// result is never nil.
//
// Tiles overlap, so the same node or way is usually returned by several
// queries; which copy wins does not matter for a consistent snapshot.
func Merge(results ...*Result) *Result {
	merged := &Result{Elements: []Element{}}
	seen := make(map[Key]struct{})

	for _, r := range results {
		if r == nil {
			continue
		}
		for _, el := range r.Elements {
			if el == nil {
				continue
			}
			k := el.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged.Elements = append(merged.Elements, el)
		}
	}
	return merged
}
