package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/htnguyen/mathtutor/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const problemSystemInstruction = `You are a math teacher creating word problems for Primary 5 (Grade 5) students. ` +
	`Generate a single math word problem and provide the answer. Return your response as a JSON object with exactly two fields: ` +
	`"problem_text" (the word problem) and "final_answer" (the numerical answer as a number, not a string). ` +
	`The problem should involve operations like addition, subtraction, multiplication, division, or fractions appropriate for Primary 5 level.`

const feedbackSystemInstruction = `You are a supportive and encouraging math tutor for Primary 5 students. ` +
	`Provide personalized feedback based on whether the student got the answer correct or incorrect. ` +
	`If correct, praise them and explain briefly why their answer is right. ` +
	`If incorrect, gently explain the mistake and guide them toward the correct answer without giving it away completely. ` +
	`Keep your feedback concise, friendly, and age-appropriate.`

// GeneratedProblem is the parsed payload of one problem-generation call.
type GeneratedProblem struct {
	ProblemText string  `json:"problem_text"`
	FinalAnswer float64 `json:"final_answer"`
}

// GeminiLLMService is the model gateway. Neither call is idempotent and
// neither is retried; a failure is terminal for the request.
type GeminiLLMService interface {
	GenerateProblem(ctx context.Context) (*GeneratedProblem, error)
	GenerateFeedback(ctx context.Context, problemText string, correctAnswer, userAnswer float64, isCorrect bool) (string, error)
}

type geminiLLMService struct {
	problemModel  *genai.GenerativeModel
	feedbackModel *genai.GenerativeModel
	cfg           *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	problemModel := client.GenerativeModel(cfg.Gemini.Model)
	problemModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(problemSystemInstruction)}}
	problemModel.ResponseMIMEType = "application/json"
	problemModel.SetTemperature(0.8)

	feedbackModel := client.GenerativeModel(cfg.Gemini.Model)
	feedbackModel.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(feedbackSystemInstruction)}}
	feedbackModel.SetTemperature(0.7)

	return &geminiLLMService{problemModel: problemModel, feedbackModel: feedbackModel, cfg: cfg}, nil
}

func (s *geminiLLMService) GenerateProblem(ctx context.Context) (*GeneratedProblem, error) {
	if s.problemModel == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", ErrUpstream)
	}

	resp, err := s.problemModel.GenerateContent(ctx, genai.Text("Generate a new math word problem for a Primary 5 student."))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during problem generation")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	raw, err := candidateText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	problem, err := parseGeneratedProblem(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated problem from Gemini response")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return problem, nil
}

func (s *geminiLLMService) GenerateFeedback(ctx context.Context, problemText string, correctAnswer, userAnswer float64, isCorrect bool) (string, error) {
	if s.feedbackModel == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrUpstream)
	}

	prompt := fmt.Sprintf(
		"Problem: %s\n\nCorrect answer: %g\nStudent's answer: %g\nIs correct: %t\n\nProvide feedback for this student.",
		problemText, correctAnswer, userAnswer, isCorrect,
	)

	resp, err := s.feedbackModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Bool("isCorrect", isCorrect).Msg("Gemini API error during feedback generation")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	feedback, err := candidateText(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return strings.TrimSpace(feedback), nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return fullResponseText, nil
}

// parseGeneratedProblem decodes the two-field JSON payload. Models sometimes
// wrap JSON in markdown fences even when asked not to, so fences are stripped
// before decoding. Both fields are required; the insert is only attempted with
// a fully parsed payload in hand.
func parseGeneratedProblem(raw string) (*GeneratedProblem, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var payload struct {
		ProblemText *string  `json:"problem_text"`
		FinalAnswer *float64 `json:"final_answer"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v", err)
	}
	if payload.ProblemText == nil || strings.TrimSpace(*payload.ProblemText) == "" {
		return nil, fmt.Errorf("response is missing problem_text")
	}
	if payload.FinalAnswer == nil {
		return nil, fmt.Errorf("response is missing final_answer")
	}

	return &GeneratedProblem{
		ProblemText: strings.TrimSpace(*payload.ProblemText),
		FinalAnswer: *payload.FinalAnswer,
	}, nil
}
