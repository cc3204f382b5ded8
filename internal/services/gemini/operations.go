package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/reperio/internal/models"
)

const operationsPrefix = "operations/"

// GetOperation fetches a single read-only snapshot of a long-running
// operation. The snapshot is terminal when Done is true; success carries a
// response, failure an error.
func (c *Client) GetOperation(ctx context.Context, name string) (*models.Operation, error) {
	if name == "" {
		return nil, models.NewValidationError("Operation name is required", nil)
	}

	var operation models.Operation
	if err := c.do(ctx, http.MethodGet, NormalizeOperationName(name), nil, nil, &operation); err != nil {
		return nil, c.wrapError("get operation", err)
	}
	return &operation, nil
}

// NormalizeOperationName accepts a bare operation id, an "operations/{id}"
// name, or a store-scoped operation resource name, and returns a path the
// REST surface accepts.
func NormalizeOperationName(name string) string {
	if strings.HasPrefix(name, operationsPrefix) || strings.HasPrefix(name, storesPath+"/") {
		return name
	}
	return fmt.Sprintf("%s%s", operationsPrefix, name)
}
