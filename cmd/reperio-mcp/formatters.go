package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/reperio/internal/models"
)

// formatQueryResponse formats a grounded answer as markdown
func formatQueryResponse(question string, resp *models.QueryResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Answer (model: %s)\n\n", resp.Model))
	sb.WriteString(resp.Answer)
	sb.WriteString("\n")

	if len(resp.Citations) > 0 {
		sb.WriteString("\n### Citations\n\n")
		for _, c := range resp.Citations {
			sb.WriteString(fmt.Sprintf("%d. **%s**", c.ID, c.Title))
			if c.URI != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", c.URI))
			}
			sb.WriteString("\n")
			if c.Text != "" {
				excerpt := c.Text
				if len(excerpt) > 300 {
					excerpt = excerpt[:300] + "..."
				}
				sb.WriteString(fmt.Sprintf("   > %s\n", excerpt))
			}
		}
	}

	return sb.String()
}

// formatStores formats the store list as markdown
func formatStores(stores []models.Store) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## File Search Stores (%d)\n\n", len(stores)))

	if len(stores) == 0 {
		sb.WriteString("No stores found.\n")
		return sb.String()
	}

	for _, store := range stores {
		sb.WriteString(fmt.Sprintf("- **%s** (`%s`)", store.DisplayName, store.Name))
		if store.CreateTime != "" {
			sb.WriteString(fmt.Sprintf(" created %s", store.CreateTime))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatOperation formats a terminal operation snapshot as markdown
func formatOperation(operation *models.Operation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Operation `%s`\n\n", operation.Name))
	if operation.Succeeded() {
		sb.WriteString("Completed successfully.\n")
	} else if operation.Failed() {
		sb.WriteString(fmt.Sprintf("Failed: %s\n", operation.Error.Message))
	} else {
		sb.WriteString("Still running.\n")
	}
	return sb.String()
}

// formatDocuments formats a store's document list as markdown
func formatDocuments(storeID string, documents []models.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Documents in %s (%d)\n\n", storeID, len(documents)))

	if len(documents) == 0 {
		sb.WriteString("No documents found.\n")
		return sb.String()
	}

	for _, doc := range documents {
		sb.WriteString(fmt.Sprintf("- **%s** [%s]", doc.DisplayName, doc.State))
		if doc.SizeBytes > 0 {
			sb.WriteString(fmt.Sprintf(" %d bytes", doc.SizeBytes))
		}
		sb.WriteString(fmt.Sprintf("\n  `%s`\n", doc.Name))
	}

	return sb.String()
}
