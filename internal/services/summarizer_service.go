package services

import (
	"context"
	"math"
	"strings"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const (
	summaryMaxTokens   = 1500
	summaryTemperature = 0.5
)

type SummarizerService struct {
	ai        CompletionClient
	prompts   *PromptBuilder
	summaries SummaryRepository
	extractor TextExtractor
	minChars  int
	log       zerolog.Logger
}

func NewSummarizerService(ai CompletionClient, prompts *PromptBuilder, summaries SummaryRepository, extractor TextExtractor, minChars int, log zerolog.Logger) *SummarizerService {
	return &SummarizerService{
		ai:        ai,
		prompts:   prompts,
		summaries: summaries,
		extractor: extractor,
		minChars:  minChars,
		log:       log,
	}
}

type SummarizeRequest struct {
	Text    string
	Title   string
	Subject string
	Style   string
	Length  string
}

// SummarizeText validates, summarizes and persists. The compression ratio is
// computed here, at creation, and never recomputed on later reads.
func (s *SummarizerService) SummarizeText(ctx context.Context, userID uuid.UUID, req SummarizeRequest) (*models.Summary, error) {
	return s.summarize(ctx, userID, req, models.SourceTypeText, "")
}

// SummarizePDF extracts text from an uploaded document and summarizes it. The
// page count travels back to the handler through the returned summary's
// metadata sidecar.
func (s *SummarizerService) SummarizePDF(ctx context.Context, userID uuid.UUID, path, originalName string, req SummarizeRequest) (*models.Summary, int, error) {
	text, pages, err := s.extractor.Extract(path)
	if err != nil {
		return nil, 0, err
	}
	if len(strings.TrimSpace(text)) < s.minChars {
		return nil, 0, apperrors.NewValidationError("Could not extract enough text from the document")
	}

	req.Text = text
	if req.Title == "" {
		req.Title = originalName
	}
	summary, err := s.summarize(ctx, userID, req, models.SourceTypePDF, originalName)
	if err != nil {
		return nil, 0, err
	}
	return summary, pages, nil
}

func (s *SummarizerService) summarize(ctx context.Context, userID uuid.UUID, req SummarizeRequest, sourceType, originalName string) (*models.Summary, error) {
	messages, err := s.prompts.Build(BuildInput{
		Feature: FeatureSummarize,
		Input:   req.Text,
		Summary: SummaryOptions{Style: req.Style, Length: req.Length},
	})
	if err != nil {
		return nil, err
	}

	response, err := s.ai.Complete(ctx, messages, summaryMaxTokens, summaryTemperature)
	if err != nil {
		return nil, err
	}

	summaryText, keyPoints := splitKeyPoints(response)

	originalWords := len(strings.Fields(req.Text))
	summaryWords := len(strings.Fields(summaryText))
	ratio := compressionRatio(originalWords, summaryWords)

	title := req.Title
	if title == "" {
		title = "Untitled Summary"
	}

	summary := &models.Summary{
		UserID:            userID,
		Title:             title,
		OriginalText:      req.Text,
		SummarizedText:    summaryText,
		KeyPoints:         datatypes.NewJSONSlice(keyPoints),
		SourceType:        sourceType,
		OriginalFileName:  originalName,
		WordCountOriginal: originalWords,
		WordCountSummary:  summaryWords,
		CompressionRatio:  ratio,
		Subject:           req.Subject,
	}
	if err := s.summaries.Create(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *SummarizerService) List(userID uuid.UUID, filter SummaryFilter) ([]models.Summary, int64, error) {
	return s.summaries.List(userID, filter)
}

func (s *SummarizerService) Get(userID uuid.UUID, id uint) (*models.Summary, error) {
	return s.summaries.Get(userID, id)
}

func (s *SummarizerService) Delete(userID uuid.UUID, id uint) error {
	return s.summaries.Delete(userID, id)
}

// compressionRatio is round(100 * (1 - summaryWords/originalWords)). Callers
// must reject empty input before this point; a zero denominator yields 0.
func compressionRatio(originalWords, summaryWords int) int {
	if originalWords == 0 {
		return 0
	}
	return int(math.Round(100 * (1 - float64(summaryWords)/float64(originalWords))))
}

// splitKeyPoints separates the "KEY POINTS:" trailer the summarize prompt asks
// for from the summary body. A response without the trailer is kept whole.
func splitKeyPoints(response string) (string, []string) {
	idx := strings.LastIndex(response, "KEY POINTS:")
	if idx == -1 {
		return strings.TrimSpace(response), nil
	}

	body := strings.TrimSpace(response[:idx])
	var points []string
	for _, line := range strings.Split(response[idx+len("KEY POINTS:"):], "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			points = append(points, strings.TrimSpace(strings.TrimPrefix(line, "- ")))
		}
	}
	return body, points
}
