package evaluator

// Budget holds the resource limits for an evaluation.
type Budget struct {
	// MaxDepth bounds how deeply evaluation may nest. Zero means unlimited.
	MaxDepth int
}
