package mock

import (
	"context"

	"github.com/otalvaro/escrutinio"
)

var _ escrutinio.Recognizer = (*Recognizer)(nil)

// Recognizer is a mock implementation of escrutinio.Recognizer.
type Recognizer struct {
	RecognizeFn func(ctx context.Context, image []byte) (string, error)
}

func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return r.RecognizeFn(ctx, image)
}
