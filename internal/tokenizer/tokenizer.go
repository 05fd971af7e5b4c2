// internal/tokenizer/tokenizer.go
package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter counts tokens in a piece of text.
type Counter interface {
	Count(text string) int
}

// Tiktoken counts tokens with the BPE encoding matching an OpenAI model.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken resolves the encoding for model, falling back to cl100k_base
// when the model is unknown.
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("load tokenizer encoding: %w", err)
		}
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.EncodeOrdinary(text))
}
