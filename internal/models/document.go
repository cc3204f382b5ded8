package models

import "fmt"

// DocumentState tracks a document through remote ingestion.
type DocumentState string

const (
	DocumentStatePending DocumentState = "PENDING"
	DocumentStateActive  DocumentState = "ACTIVE"
	DocumentStateFailed  DocumentState = "FAILED"
)

// Document represents one ingested file within a File Search store. It is
// created PENDING by an upload operation, transitions to ACTIVE or FAILED on
// the remote side, and is only observed through polling or a fresh list call.
type Document struct {
	Name           string               `json:"name"`
	DisplayName    string               `json:"displayName"`
	State          DocumentState        `json:"state"`
	SizeBytes      uint64               `json:"sizeBytes,omitempty,string"`
	MimeType       string               `json:"mimeType,omitempty"`
	CreateTime     string               `json:"createTime,omitempty"`
	UpdateTime     string               `json:"updateTime,omitempty"`
	CustomMetadata []CustomMetadataItem `json:"customMetadata,omitempty"`
}

// IsDeletable reports whether the UI allows deleting the document. Policy:
// only FAILED documents may be removed from the dashboard; the gateway itself
// issues deletes unconditionally since the remote API is the final authority.
func (d *Document) IsDeletable() bool {
	return d.State == DocumentStateFailed
}

// CustomMetadataItem carries exactly one of StringValue/NumericValue.
// Pointers distinguish "absent" from zero values.
type CustomMetadataItem struct {
	Key          string   `json:"key"`
	StringValue  *string  `json:"stringValue,omitempty"`
	NumericValue *float64 `json:"numericValue,omitempty"`
}

// Validate enforces the exactly-one-value invariant for a single item.
func (m *CustomMetadataItem) Validate() error {
	if m.Key == "" {
		return fmt.Errorf("metadata key is required")
	}
	hasString := m.StringValue != nil
	hasNumeric := m.NumericValue != nil
	if hasString && hasNumeric {
		return fmt.Errorf("metadata key %q cannot have both string and numeric values", m.Key)
	}
	if !hasString && !hasNumeric {
		return fmt.Errorf("metadata key %q must have either a string or numeric value", m.Key)
	}
	return nil
}

// ValidateCustomMetadata validates a metadata list: each entry carries exactly
// one value and keys are unique within the request. A duplicate key is a
// validation failure, not a silent overwrite.
func ValidateCustomMetadata(items []CustomMetadataItem) error {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
		if seen[items[i].Key] {
			return fmt.Errorf("duplicate metadata key: %s", items[i].Key)
		}
		seen[items[i].Key] = true
	}
	return nil
}
