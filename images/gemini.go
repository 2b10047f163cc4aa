package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	// Decoders for whatever raster format the model returns; output is
	// always re-encoded as PNG.
	_ "image/gif"
	_ "image/jpeg"
)

const (
	defaultModel    = "gemini-2.5-flash-image"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/" + defaultModel + ":generateContent"
)

// Generator produces 16:9 blog header images through the Gemini
// generateContent API and stores them locally as <dir>/<slug>.png.
type Generator struct {
	apiKey     string
	endpoint   string
	dir        string
	httpClient *http.Client
}

// NewGenerator creates a Generator writing into dir. An empty endpoint
// selects the public API.
func NewGenerator(apiKey, endpoint, dir string) *Generator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Generator{
		apiKey:     apiKey,
		endpoint:   endpoint,
		dir:        dir,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// geminiResponse mirrors the candidate/part envelope of generateContent.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns the local path of the header image for slug. An existing
// image for the same slug is reused. Any non-image outcome (refusal, no
// candidates, decode failure) yields an empty path without an error; image
// absence never blocks publishing.
func (g *Generator) Generate(ctx context.Context, prompt, slug string) (string, error) {
	path := filepath.Join(g.dir, slug+".png")
	if _, err := os.Stat(path); err == nil {
		log.Printf("Using existing image: %s", path)
		return path, nil
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"IMAGE"},
			"imageConfig":        map[string]string{"aspectRatio": "16:9"},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return "", fmt.Errorf("gemini returned %d: %v", resp.StatusCode, errBody)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		log.Println("No candidates in image response")
		return "", nil
	}

	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			log.Printf("Image model text response: %s", part.Text)
			continue
		}
		if part.InlineData == nil {
			continue
		}

		raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			log.Printf("Warning: inline image data is not valid base64: %v", err)
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			log.Printf("Warning: inline image data is not decodable: %v", err)
			continue
		}
		if err := writePNG(path, img); err != nil {
			return "", err
		}
		log.Printf("Saved image as %s", path)
		return path, nil
	}

	return "", nil
}

// Regenerate discards any existing image for slug and generates a fresh one.
func (g *Generator) Regenerate(ctx context.Context, prompt, slug string) (string, error) {
	path := filepath.Join(g.dir, slug+".png")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove existing image: %w", err)
	}
	return g.Generate(ctx, prompt, slug)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
