package models

// Store is a File Search store: a remote, persistent container for uploaded
// documents and their derived embeddings. Name is the server-assigned
// resource id ("fileSearchStores/{id}") and is never mutated client-side.
type Store struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	CreateTime  string `json:"createTime,omitempty"`
	UpdateTime  string `json:"updateTime,omitempty"`
}

// CreateStoreRequest is the payload for POST /api/stores.
type CreateStoreRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
}
