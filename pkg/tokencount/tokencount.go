// Package tokencount estimates how many language-model tokens a text
// artifact will consume.
package tokencount

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncodingName = "cl100k_base"

// Estimate returns the token count of the input under the default encoding.
// Initialization may fetch the encoding definition on first use; callers
// should treat a failure as a missing nicety, not an error condition.
func Estimate(input string) (int, error) {
	encoding, err := tiktoken.GetEncoding(defaultEncodingName)
	if err != nil {
		return 0, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return len(encoding.Encode(input, nil, nil)), nil
}
