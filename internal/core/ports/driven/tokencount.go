package driven

// TokenCounter estimates the token cost of a piece of text.
// The context assembler consults it when enforcing the token budget, so a
// real tokenizer can replace the character heuristic without touching the
// assembler's control flow.
type TokenCounter interface {
	// Count returns the estimated number of tokens in text.
	Count(text string) int
}
