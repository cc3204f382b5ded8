package models

import "fmt"

// Chunking limits enforced before any network call. The API accepts chunks
// up to 800 tokens; the dashboard presets stay within 512.
const (
	MinTokensPerChunk = 200
	MaxTokensPerChunk = 800
	MinOverlapTokens  = 20
	MaxOverlapTokens  = 50
)

// WhiteSpaceConfig bounds token-based whitespace chunking.
type WhiteSpaceConfig struct {
	MaxTokensPerChunk int `json:"maxTokensPerChunk" validate:"min=200,max=800"`
	MaxOverlapTokens  int `json:"maxOverlapTokens" validate:"min=20,max=50"`
}

// ChunkingConfig wraps the whitespace chunking settings in the shape the
// upstream API expects.
type ChunkingConfig struct {
	WhiteSpaceConfig WhiteSpaceConfig `json:"whiteSpaceConfig"`
}

// UploadConfig is the per-upload configuration carried in the multipart
// "config" field as JSON.
type UploadConfig struct {
	DisplayName    string               `json:"displayName" validate:"required,min=1"`
	ChunkingConfig *ChunkingConfig      `json:"chunkingConfig,omitempty"`
	CustomMetadata []CustomMetadataItem `json:"customMetadata,omitempty"`
}

// Validate applies the cross-field rules the validator tags cannot express:
// overlap strictly below chunk size, metadata value exclusivity and key
// uniqueness.
func (c *UploadConfig) Validate() error {
	if c.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if c.ChunkingConfig != nil {
		ws := c.ChunkingConfig.WhiteSpaceConfig
		if ws.MaxTokensPerChunk < MinTokensPerChunk || ws.MaxTokensPerChunk > MaxTokensPerChunk {
			return fmt.Errorf("maxTokensPerChunk must be between %d and %d", MinTokensPerChunk, MaxTokensPerChunk)
		}
		if ws.MaxOverlapTokens < MinOverlapTokens || ws.MaxOverlapTokens > MaxOverlapTokens {
			return fmt.Errorf("maxOverlapTokens must be between %d and %d", MinOverlapTokens, MaxOverlapTokens)
		}
		if ws.MaxOverlapTokens >= ws.MaxTokensPerChunk {
			return fmt.Errorf("maxOverlapTokens must be less than maxTokensPerChunk")
		}
	}
	if err := ValidateCustomMetadata(c.CustomMetadata); err != nil {
		return err
	}
	return nil
}

// ChunkingPreset is a named chunking configuration offered by the dashboard.
// Presets stay within the [200, 512] band even though the API allows 800.
type ChunkingPreset struct {
	Name              string `json:"name"`
	MaxTokensPerChunk int    `json:"maxTokensPerChunk"`
	MaxOverlapTokens  int    `json:"maxOverlapTokens"`
	Description       string `json:"description"`
}

// ChunkingPresets returns the dashboard preset catalog.
func ChunkingPresets() []ChunkingPreset {
	return []ChunkingPreset{
		{
			Name:              "small",
			MaxTokensPerChunk: 200,
			MaxOverlapTokens:  20,
			Description:       "Precise retrieval with smaller context windows",
		},
		{
			Name:              "medium",
			MaxTokensPerChunk: 400,
			MaxOverlapTokens:  30,
			Description:       "Balanced approach (recommended)",
		},
		{
			Name:              "large",
			MaxTokensPerChunk: 512,
			MaxOverlapTokens:  50,
			Description:       "Maximum context per chunk (API limit)",
		},
	}
}
