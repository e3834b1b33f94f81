package models

// CompletionResult is the outcome of running the generative fallback chain.
// Text is always non-empty. Model is the identifier that produced the text,
// or "" when every model in the chain failed and Text is the canned
// explanatory message.
type CompletionResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Exhausted reports whether the fallback chain ran out of models
func (r *CompletionResult) Exhausted() bool {
	return r.Model == ""
}
