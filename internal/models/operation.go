package models

// OperationError is the error payload of a failed long-running operation.
type OperationError struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Details []interface{} `json:"details,omitempty"`
}

// Operation is a read-only snapshot of an asynchronous remote task (e.g. a
// file ingestion). It is created implicitly by an upload call and mutated
// only by the remote service; the client refreshes its view by polling.
// Terminal when Done is true: success carries a response, failure an error.
type Operation struct {
	Name     string                 `json:"name"`
	Done     bool                   `json:"done"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Response map[string]interface{} `json:"response,omitempty"`
	Error    *OperationError        `json:"error,omitempty"`
}

// Succeeded reports whether the operation reached a successful terminal state.
func (o *Operation) Succeeded() bool {
	return o.Done && o.Error == nil
}

// Failed reports whether the operation reached a failed terminal state.
func (o *Operation) Failed() bool {
	return o.Done && o.Error != nil
}

// OperationStatus is the shape returned by GET /api/operations/{id}: the raw
// operation plus a derived progress value. Progress is null when a single
// snapshot carries no progress information (only a polling sequence can
// estimate it from elapsed time).
type OperationStatus struct {
	Operation *Operation `json:"operation"`
	Progress  *int       `json:"progress"`
	IsDone    bool       `json:"isDone"`
	HasError  bool       `json:"hasError"`
}
