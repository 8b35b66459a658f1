// Package tesseract provides local text recognition via the Tesseract OCR
// engine. It requires the tesseract library and the Spanish language pack to
// be installed on the system.
package tesseract

import (
	"context"
	"strings"

	"github.com/otalvaro/escrutinio"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language code used when none is
// configured. Tally sheets are printed and filled in Spanish.
const DefaultLanguage = "spa"

// Ensure Recognizer implements escrutinio.Recognizer.
var _ escrutinio.Recognizer = (*Recognizer)(nil)

// Recognizer performs OCR using a local Tesseract installation. A fresh
// gosseract client is created per call; the client is not safe for
// concurrent use.
type Recognizer struct {
	language string
}

// NewRecognizer creates a Recognizer for the given language code. Multiple
// languages can be combined with "+" (for example "spa+eng"). An empty
// language selects DefaultLanguage.
func NewRecognizer(language string) *Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{language: language}
}

// Recognize extracts text from image bytes (PNG, JPEG, TIFF).
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", escrutinio.Errorf(escrutinio.EINVALID, "image data required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", escrutinio.Errorf(escrutinio.EINTERNAL, "set language %q: %v", r.language, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", escrutinio.Errorf(escrutinio.EINVALID, "set image: %v", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", escrutinio.Errorf(escrutinio.EINTERNAL, "recognize text: %v", err)
	}

	return strings.TrimSpace(text), nil
}
