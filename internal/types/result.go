package types

// Result is the outcome of extracting metadata from one file.
//
// Artist, Album and Title are independent; each is either a non-empty,
// trimmed string or "" when no source produced it. Extraction never fails:
// every problem encountered on the way is recorded in Warnings instead.
type Result struct {
	Fields

	// Path of the file the result was extracted from
	Path string

	// Warnings collects absorbed failures, in the order they occurred
	Warnings []Warning

	sources [len(AllFields)]Source
}

// Source returns where f was resolved from.
func (r *Result) Source(f Field) Source {
	if int(f) < 0 || int(f) >= len(r.sources) {
		return SourceNone
	}
	return r.sources[f]
}

// Fill copies every field that is set in from but still missing in r and
// records src as its source. Fields r already has are never overwritten.
// It returns the number of fields filled.
func (r *Result) Fill(from Fields, src Source) int {
	filled := 0
	for _, f := range AllFields {
		if r.Has(f) {
			continue
		}
		if v := from.Get(f); v != "" {
			r.Set(f, v)
			r.sources[f] = src
			filled++
		}
	}
	return filled
}

// Warn appends a warning.
func (r *Result) Warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}
