// Package gemini provides text recognition using Google Gemini vision
// models. It is the hosted alternative to the local tesseract recognizer and
// tends to handle degraded scans and handwritten digits better.
package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/otalvaro/escrutinio"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Recognizer implements escrutinio.Recognizer at compile time.
var _ escrutinio.Recognizer = (*Recognizer)(nil)

// Recognizer implements escrutinio.Recognizer using Google Gemini.
type Recognizer struct {
	client *genai.Client
}

// NewRecognizer creates a new Recognizer.
func NewRecognizer(client *genai.Client) *Recognizer {
	return &Recognizer{client: client}
}

// Recognize transcribes the text of a scanned tally-sheet image.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", escrutinio.Errorf(escrutinio.EINVALID, "image data required")
	}

	result, err := r.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{
				{Text: TranscriptionPrompt},
				{InlineData: &genai.Blob{
					MIMEType: http.DetectContentType(image),
					Data:     image,
				}},
			},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", escrutinio.Errorf(escrutinio.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// TranscriptionPrompt instructs the model to transcribe rather than
// interpret. Layout is preserved because the downstream parser depends on
// line order and column separators.
const TranscriptionPrompt = "Transcribe all text visible in this scanned electoral form exactly as it appears. Preserve the line structure: output one line of text per line on the form, top to bottom. Use | to separate table columns. Transcribe handwritten digits as digits. Do not interpret, summarize, or correct anything; if a value is illegible, transcribe the marks you see."

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a document transcription engine. Output only the transcribed text, with no commentary.",
			}},
		},
		Temperature: &temp,
	}
}
