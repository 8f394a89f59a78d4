package domain

// Source identifies the lookup stage that produced a match
type Source string

const (
	SourceInternalCatalog Source = "database"
	SourceUPCItemDB       Source = "upcitemdb"
	SourceOpenFoodFacts   Source = "openfoodfacts"
)

// External reports whether the match is a heuristic reconstruction rather than a curated record
func (s Source) External() bool {
	return s != SourceInternalCatalog
}

// ResolutionResult is the outcome of resolving one scan code.
// When Found is false every other field is zero.
type ResolutionResult struct {
	Found     bool              `json:"found"`
	Source    Source            `json:"source,omitempty"`
	External  bool              `json:"external"`
	Candidate *ProductCandidate `json:"whiskey"`
}

// Found builds a match produced by the given stage
func Found(source Source, candidate ProductCandidate) ResolutionResult {
	return ResolutionResult{
		Found:     true,
		Source:    source,
		External:  source.External(),
		Candidate: &candidate,
	}
}

// NotFound is the result of an exhausted resolution chain
func NotFound() ResolutionResult {
	return ResolutionResult{}
}
