package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunking(tokens, overlap int) *ChunkingConfig {
	return &ChunkingConfig{
		WhiteSpaceConfig: WhiteSpaceConfig{
			MaxTokensPerChunk: tokens,
			MaxOverlapTokens:  overlap,
		},
	}
}

func TestUploadConfig_Validate(t *testing.T) {
	t.Run("Minimal config is valid", func(t *testing.T) {
		cfg := &UploadConfig{DisplayName: "report.pdf"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Display name is required", func(t *testing.T) {
		cfg := &UploadConfig{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Chunk size boundaries", func(t *testing.T) {
		cases := []struct {
			tokens  int
			overlap int
			ok      bool
		}{
			{199, 20, false},
			{200, 20, true},
			{800, 50, true},
			{801, 50, false},
		}
		for _, tc := range cases {
			cfg := &UploadConfig{DisplayName: "f", ChunkingConfig: chunking(tc.tokens, tc.overlap)}
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err, "tokens=%d overlap=%d", tc.tokens, tc.overlap)
			} else {
				assert.Error(t, err, "tokens=%d overlap=%d", tc.tokens, tc.overlap)
			}
		}
	})

	t.Run("Overlap boundaries", func(t *testing.T) {
		cases := []struct {
			overlap int
			ok      bool
		}{
			{19, false},
			{20, true},
			{50, true},
			{51, false},
		}
		for _, tc := range cases {
			cfg := &UploadConfig{DisplayName: "f", ChunkingConfig: chunking(400, tc.overlap)}
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err, "overlap=%d", tc.overlap)
			} else {
				assert.Error(t, err, "overlap=%d", tc.overlap)
			}
		}
	})

	t.Run("Overlap must stay below chunk size", func(t *testing.T) {
		// 200/50 is within both ranges but overlap would reach a quarter of
		// the chunk; only overlap >= chunk is rejected.
		cfg := &UploadConfig{DisplayName: "f", ChunkingConfig: chunking(200, 50)}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Invalid metadata rejects the config", func(t *testing.T) {
		cfg := &UploadConfig{
			DisplayName:    "f",
			CustomMetadata: []CustomMetadataItem{{Key: "author"}},
		}
		assert.Error(t, cfg.Validate())
	})
}

func TestCustomMetadataItem_Validate(t *testing.T) {
	str := "alice"
	num := 42.0

	t.Run("String value only", func(t *testing.T) {
		item := CustomMetadataItem{Key: "author", StringValue: &str}
		assert.NoError(t, item.Validate())
	})

	t.Run("Numeric value only", func(t *testing.T) {
		item := CustomMetadataItem{Key: "year", NumericValue: &num}
		assert.NoError(t, item.Validate())
	})

	t.Run("Both values rejected", func(t *testing.T) {
		item := CustomMetadataItem{Key: "author", StringValue: &str, NumericValue: &num}
		assert.Error(t, item.Validate())
	})

	t.Run("Neither value rejected", func(t *testing.T) {
		item := CustomMetadataItem{Key: "author"}
		assert.Error(t, item.Validate())
	})

	t.Run("Missing key rejected", func(t *testing.T) {
		item := CustomMetadataItem{StringValue: &str}
		assert.Error(t, item.Validate())
	})
}

func TestValidateCustomMetadata(t *testing.T) {
	str := "a"
	num := 1.0

	t.Run("Unique keys pass", func(t *testing.T) {
		items := []CustomMetadataItem{
			{Key: "author", StringValue: &str},
			{Key: "year", NumericValue: &num},
		}
		assert.NoError(t, ValidateCustomMetadata(items))
	})

	t.Run("Duplicate keys rejected", func(t *testing.T) {
		items := []CustomMetadataItem{
			{Key: "author", StringValue: &str},
			{Key: "author", StringValue: &str},
		}
		err := ValidateCustomMetadata(items)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("Empty list passes", func(t *testing.T) {
		assert.NoError(t, ValidateCustomMetadata(nil))
	})
}

func TestChunkingPresets(t *testing.T) {
	presets := ChunkingPresets()
	require.Len(t, presets, 3)

	// Every preset must itself pass upload validation.
	for _, preset := range presets {
		cfg := &UploadConfig{
			DisplayName:    "f",
			ChunkingConfig: chunking(preset.MaxTokensPerChunk, preset.MaxOverlapTokens),
		}
		assert.NoError(t, cfg.Validate(), "preset %s", preset.Name)
	}
}
