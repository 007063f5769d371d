package chatextract

// ExtractionResult holds the messages recovered by a single strategy
// run, along with metadata used to rank strategies against each other.
type ExtractionResult struct {
	// Messages in conversation order, sequences 1..N.
	Messages []Message

	// Title of the conversation, if one could be recovered.
	Title string

	// Method tags which strategy produced the result ("json", "dom",
	// "text").
	Method string

	// Confidence is a heuristic score in [0,1] used only to rank
	// strategies against each other, not a calibrated probability.
	Confidence float64
}

// Success reports whether the result carries any messages.
func (r *ExtractionResult) Success() bool {
	return r != nil && len(r.Messages) > 0
}

// Strategy is one self-contained extraction algorithm paired with its
// own confidence estimator. Strategies are stateless with respect to
// documents: the same strategy value may be reused across extractions.
type Strategy interface {
	// Name returns the strategy's method tag ("json", "dom", "text").
	Name() string

	// Confidence estimates, before extraction, how likely this
	// strategy is to succeed on the document. Used by the
	// orchestrator to skip low-yield strategies once a good result
	// exists.
	Confidence(doc *Document) float64

	// Extract runs the strategy against the document. A strategy that
	// finds nothing returns an empty result, not an error; errors are
	// reserved for malformed input the strategy could not work around.
	Extract(doc *Document) (*ExtractionResult, error)
}

// Attempt records one strategy run for diagnostics.
type Attempt struct {
	Strategy   string  `json:"strategy"`
	Success    bool    `json:"success"`
	Messages   int     `json:"messages"`
	Confidence float64 `json:"confidence"`
	Err        string  `json:"error,omitempty"`
}

// Report is the per-extraction diagnostics log: every strategy attempt
// in order, successful or not. It is returned as a first-class value
// so callers can render troubleshooting guidance without capturing log
// output.
type Report struct {
	Attempts []Attempt `json:"attempts"`
}

// Successes returns the number of successful attempts.
func (r *Report) Successes() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Success {
			n++
		}
	}
	return n
}

// BestConfidence returns the highest confidence recorded across all
// attempts, or 0 if none were made.
func (r *Report) BestConfidence() float64 {
	best := 0.0
	for _, a := range r.Attempts {
		if a.Confidence > best {
			best = a.Confidence
		}
	}
	return best
}
