// Package render produces the final output text of a resolution run.
//
// Two independent strategies consume the inclusion graph:
//
//   - [Flat] emits every distinct document once, in first-encounter order,
//     wrapped in boundary markers, with directives left as written.
//   - [Hierarchical] substitutes each directive occurrence in place with
//     the target's own fully rendered content, wrapped in import markers,
//     without deduplication.
//
// Hierarchical output size is the sum over every reachable directive
// occurrence of the target's rendered size; nested duplicate references
// can make it exponential in graph depth. That is an accepted
// characteristic of the mode, not a defect - callers needing bounded
// output must use flat mode.
package render

// Mode names for the two rendering strategies.
const (
	ModeFlat         = "flat"
	ModeHierarchical = "hierarchical"
)

// ValidModes is the set of supported rendering modes.
var ValidModes = map[string]bool{
	ModeFlat:         true,
	ModeHierarchical: true,
}
