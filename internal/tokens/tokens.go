// Package tokens estimates how many model tokens a piece of text will
// consume. The estimate is deliberately rough: English legal prose
// averages about four bytes per token, which is close enough for
// budget warnings.
package tokens

import "math"

const bytesPerToken = 4

// ContextBudget is the number of tokens a single document may occupy
// before analysis quality is likely to degrade. It leaves headroom for
// prompt scaffolding and the model's response inside a 200k context.
const ContextBudget = 150_000

// Estimate approximates the token count of text.
func Estimate(text string) int {
	return int(math.Ceil(float64(len(text)) / bytesPerToken))
}

// ExceedsBudget reports whether text likely overflows the context budget.
func ExceedsBudget(text string) bool {
	return Estimate(text) > ContextBudget
}
