// Package gemini recognizes food photos through the Gemini generateContent
// API. One call per user action, bounded timeout, no retry: a failure is an
// error outcome for the caller to present, never something to retry here.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.0-flash"

	// DefaultTimeout bounds the one network-bound call the app makes.
	DefaultTimeout = 30 * time.Second
)

// Sentinel errors for the user-facing failure taxonomy.
var (
	ErrNoInternet   = errors.New("could not reach the vision service")
	ErrRateLimited  = errors.New("vision service rate limit exceeded")
	ErrUnrecognized = errors.New("could not recognize food in the photo")
)

// FoodAnalysis is the structured recognition result. It mirrors the JSON the
// model is instructed to produce.
type FoodAnalysis struct {
	DishName   string   `json:"dishName"`
	Calories   float64  `json:"calories"`
	Protein    *float64 `json:"protein,omitempty"`
	Fat        *float64 `json:"fat,omitempty"`
	Carbs      *float64 `json:"carbs,omitempty"`
	WeightG    *float64 `json:"weight,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Valid reports whether the result is usable: no error reported and a
// positive calorie estimate. Anything else counts as a failed recognition.
func (r FoodAnalysis) Valid() bool {
	return strings.TrimSpace(r.Error) == "" && r.Calories > 0
}

// Client calls the Gemini REST API. The API key travels in the URL query,
// per the service's auth scheme.
type Client struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeFile reads an image from disk and analyzes it.
func (c *Client) AnalyzeFile(ctx context.Context, path string) (FoodAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("read photo file: %w", err)
	}
	return c.AnalyzeImage(ctx, data)
}

// AnalyzeImage sends the image bytes for recognition and parses the model's
// JSON answer.
func (c *Client) AnalyzeImage(ctx context.Context, imageBytes []byte) (FoodAnalysis, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return FoodAnalysis{}, fmt.Errorf("missing Gemini API key")
	}
	if len(imageBytes) == 0 {
		return FoodAnalysis{}, fmt.Errorf("photo data is empty")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: analysisPrompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:     c.Temperature,
			TopK:            32,
			TopP:            1,
			MaxOutputTokens: maxTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, modelName, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("%w: %v", ErrNoInternet, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return FoodAnalysis{}, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FoodAnalysis{}, fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return FoodAnalysis{}, fmt.Errorf("decode Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return FoodAnalysis{}, fmt.Errorf("%w: empty answer from the model", ErrUnrecognized)
	}

	text := cleanJSONResponse(parsed.Candidates[0].Content.Parts[0].Text)
	var result FoodAnalysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return FoodAnalysis{}, fmt.Errorf("%w: model returned malformed data", ErrUnrecognized)
	}
	if !result.Valid() {
		if strings.TrimSpace(result.Error) != "" {
			return result, fmt.Errorf("%w: %s", ErrUnrecognized, result.Error)
		}
		return result, ErrUnrecognized
	}
	return result, nil
}

// analysisPrompt instructs the model to answer with bare JSON. Calories are
// for the whole portion in the photo, not per 100 g.
const analysisPrompt = `Analyze this food photo and return precise calorie information.

IMPORTANT: Return ONLY JSON, with no extra text and no markdown formatting.

Response format:
{
  "dishName": "name of the dish",
  "calories": calories_for_the_whole_portion,
  "protein": grams_of_protein,
  "fat": grams_of_fat,
  "carbs": grams_of_carbs,
  "weight": approximate_portion_weight_in_grams,
  "confidence": confidence_between_0_and_1
}

If the photo contains no food or cannot be recognized:
{
  "error": "no food detected in the photo"
}

RULES:
1. Report calories for the WHOLE portion in the photo
2. Be as precise as possible in the estimates
3. When in doubt, report confidence below 0.7`

// cleanJSONResponse strips the markdown code fences the model sometimes
// wraps its JSON in.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = response[len("```json"):]
	} else if strings.HasPrefix(response, "```") {
		response = response[len("```"):]
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
