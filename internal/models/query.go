package models

// MaxQuestionLength caps the question size accepted by the query endpoint.
const MaxQuestionLength = 10000

// QueryRequest is the payload for POST /api/queries. StoreNames selects one
// or more File Search stores; MetadataFilter is validated against the flat
// filter grammar before any network call.
type QueryRequest struct {
	Question       string   `json:"question" validate:"required,min=1,max=10000"`
	StoreNames     []string `json:"storeNames" validate:"required,min=1,dive,required"`
	MetadataFilter string   `json:"metadataFilter,omitempty"`
	Model          string   `json:"model,omitempty"`
}

// RetrievedContext is the retrieved text excerpt behind a citation.
type RetrievedContext struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Citation pairs a citation index with its retrieved context, flattened from
// the grounding chunks for easy rendering.
type Citation struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URI   string `json:"uri"`
}

// QueryResponse is the immutable result of one query: the generated answer,
// the raw grounding metadata as returned by the model, the flattened citation
// list, and the model that produced the answer.
type QueryResponse struct {
	Answer            string      `json:"answer"`
	GroundingMetadata interface{} `json:"groundingMetadata,omitempty"`
	Citations         []Citation  `json:"citations,omitempty"`
	Model             string      `json:"model"`
}
