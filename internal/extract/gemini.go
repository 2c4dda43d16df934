package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const tablePrompt = "Transcreva todo o texto visível nesta imagem de tabela, " +
	"linha por linha, na ordem em que aparece. Responda apenas com o texto, " +
	"sem comentários e sem formatação Markdown."

const pdfOCRPrompt = "Transcreva todo o texto visível neste documento PDF, " +
	"na ordem de leitura. Responda apenas com o texto, sem comentários e sem " +
	"formatação Markdown."

// GeminiExtractor performs OCR through the Gemini API. It implements
// TableExtractor and serves as the OCR fallback for image-only PDFs.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates a Gemini-backed extractor. The model name comes
// from configuration (GEMINI_MODEL).
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// ExtractTableText transcribes the reference-table image.
func (g *GeminiExtractor) ExtractTableText(ctx context.Context, image []byte, mimeType string) (string, error) {
	text, err := g.transcribe(ctx, tablePrompt, image, mimeType)
	if err != nil {
		return "", fmt.Errorf("table OCR: %w", err)
	}
	return text, nil
}

// OCRPDF transcribes a PDF whose text layer is missing or too short.
func (g *GeminiExtractor) OCRPDF(ctx context.Context, pdfBytes []byte) (string, error) {
	text, err := g.transcribe(ctx, pdfOCRPrompt, pdfBytes, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("pdf OCR: %w", err)
	}
	return text, nil
}

func (g *GeminiExtractor) transcribe(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     data,
					},
				},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
