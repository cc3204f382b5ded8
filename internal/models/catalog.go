package models

// GeminiModel describes one model offered by the dashboard for File Search
// queries. Only models with File Search support belong in the catalog.
type GeminiModel struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Tier        string `json:"tier"`        // "stable" or "experimental"
	PricingTier string `json:"pricingTier"` // "free", "paid" or "experimental"
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// DefaultModel is used when a query does not name a model.
const DefaultModel = "gemini-2.5-flash"

// GeminiModels returns the supported model catalog. The UI picks this list up
// from GET /api/models, so adding a model here is the only change needed.
func GeminiModels() []GeminiModel {
	return []GeminiModel{
		{
			Value:       "gemini-2.5-flash",
			Label:       "Gemini 2.5 Flash",
			Description: "Fast, balanced quality",
			Tier:        "stable",
			PricingTier: "free",
			IsDefault:   true,
		},
		{
			Value:       "gemini-2.5-pro",
			Label:       "Gemini 2.5 Pro",
			Description: "High quality, production-ready",
			Tier:        "stable",
			PricingTier: "free",
		},
		{
			Value:       "gemini-2.5-flash-lite",
			Label:       "Gemini 2.5 Flash Lite",
			Description: "Fastest, lightweight",
			Tier:        "stable",
			PricingTier: "free",
		},
		{
			Value:       "gemini-3-pro-preview",
			Label:       "Gemini 3 Pro Preview",
			Description: "Most capable (requires paid API)",
			Tier:        "experimental",
			PricingTier: "paid",
		},
		{
			Value:       "gemini-2.0-flash-exp",
			Label:       "Gemini 2.0 Flash Experimental",
			Description: "Experimental",
			Tier:        "experimental",
			PricingTier: "experimental",
		},
	}
}

// IsKnownModel reports whether value appears in the catalog.
func IsKnownModel(value string) bool {
	for _, m := range GeminiModels() {
		if m.Value == value {
			return true
		}
	}
	return false
}
