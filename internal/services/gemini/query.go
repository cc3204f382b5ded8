package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/filter"
	"google.golang.org/genai"
)

// Query runs a question against one or more File Search stores and returns
// the generated answer with grounding metadata. The request is validated,
// including the optional metadata filter, before any network call.
func (c *Client) Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, models.NewValidationError("Question is required", nil)
	}
	if len(req.Question) > models.MaxQuestionLength {
		return nil, models.NewValidationError(fmt.Sprintf("Question too long (max %d characters)", models.MaxQuestionLength), nil)
	}
	if len(req.StoreNames) == 0 {
		return nil, models.NewValidationError("At least one store name is required", nil)
	}
	if !filter.IsValid(req.MetadataFilter) {
		return nil, models.NewValidationError("Invalid metadata filter syntax", nil)
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	storeNames := make([]string, 0, len(req.StoreNames))
	for _, name := range req.StoreNames {
		storeNames = append(storeNames, NormalizeStoreName(name))
	}

	fileSearch := &genai.FileSearch{
		FileSearchStoreNames: storeNames,
	}
	if trimmed := strings.TrimSpace(req.MetadataFilter); trimmed != "" {
		fileSearch.MetadataFilter = trimmed
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FileSearch: fileSearch},
		},
	}

	startTime := time.Now()
	if c.logger != nil {
		c.logger.Debug().
			Str("model", model).
			Int("stores", len(storeNames)).
			Msg("Starting File Search query")
	}

	resp, err := c.genaiClient.Models.GenerateContent(ctx, model, genai.Text(req.Question), config)
	if err != nil {
		if IsRateLimitError(err) {
			return nil, models.NewQuotaExceededError(quotaMessage(err.Error()), nil)
		}
		return nil, models.NewUpstreamError(fmt.Sprintf("Failed to query stores: %s", err.Error()), 500, nil)
	}

	// An empty answer is still a valid reply (the model may have retrieved
	// nothing); the dashboard decides how to render it.
	answer := resp.Text()

	var grounding *genai.GroundingMetadata
	if len(resp.Candidates) > 0 {
		grounding = resp.Candidates[0].GroundingMetadata
	}

	result := &models.QueryResponse{
		Answer:    answer,
		Model:     model,
		Citations: ExtractCitations(grounding),
	}
	if grounding != nil {
		result.GroundingMetadata = grounding
	}

	if c.logger != nil {
		c.logger.Info().
			Str("model", model).
			Int("answer_length", len(answer)).
			Int("citations", len(result.Citations)).
			Dur("duration", time.Since(startTime)).
			Msg("File Search query completed")
	}

	return result, nil
}

// ExtractCitations flattens grounding chunks into the citation list the
// dashboard renders. Chunks without retrieved context still get an entry so
// citation indices stay aligned with grounding supports.
func ExtractCitations(grounding *genai.GroundingMetadata) []models.Citation {
	if grounding == nil || len(grounding.GroundingChunks) == 0 {
		return nil
	}

	citations := make([]models.Citation, 0, len(grounding.GroundingChunks))
	for i, chunk := range grounding.GroundingChunks {
		citation := models.Citation{
			ID:    i,
			Title: "Untitled",
		}
		if chunk.RetrievedContext != nil {
			if chunk.RetrievedContext.Title != "" {
				citation.Title = chunk.RetrievedContext.Title
			}
			citation.Text = chunk.RetrievedContext.Text
			citation.URI = chunk.RetrievedContext.URI
		}
		citations = append(citations, citation)
	}
	return citations
}
