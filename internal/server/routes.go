package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Store management
	mux.HandleFunc("/api/stores", s.handleStoresRoute)  // GET (list), POST (create)
	mux.HandleFunc("/api/stores/", s.handleStoreRoutes) // /{id}, /{id}/documents, /{id}/upload

	// API routes - Operations (long-running upload status)
	mux.HandleFunc("/api/operations/", s.handleOperationRoutes) // GET /{id}

	// API routes - Queries
	mux.HandleFunc("/api/queries", s.app.QueryHandler.QueryHandler)                          // POST
	mux.HandleFunc("/api/queries/validate-filter", s.app.QueryHandler.ValidateFilterHandler) // POST

	// API routes - Catalog
	mux.HandleFunc("/api/models", s.app.APIHandler.ModelsHandler)
	mux.HandleFunc("/api/presets", s.app.APIHandler.PresetsHandler)

	// WebSocket route - operation progress streaming
	mux.HandleFunc("/ws/operations/", s.handleOperationSocket)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleStoresRoute routes /api/stores requests (list and create)
func (s *Server) handleStoresRoute(w http.ResponseWriter, r *http.Request) {
	RouteResourceCollection(w, r,
		s.app.StoreHandler.ListStoresHandler,
		s.app.StoreHandler.CreateStoreHandler)
}

// handleStoreRoutes routes /api/stores/{id} requests and subpaths
func (s *Server) handleStoreRoutes(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/api/stores/")
	if len(segments) == 0 || segments[0] == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	storeID := segments[0]

	// /api/stores/{id}
	if len(segments) == 1 {
		switch r.Method {
		case "GET":
			s.app.StoreHandler.GetStoreHandler(w, r, storeID)
		case "DELETE":
			s.app.StoreHandler.DeleteStoreHandler(w, r, storeID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch segments[1] {
	case "documents":
		s.handleDocumentRoutes(w, r, storeID, segments[2:])
	case "upload":
		if len(segments) != 2 {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.UploadHandler.UploadHandler(w, r, storeID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleDocumentRoutes routes /api/stores/{id}/documents and /{docId}
func (s *Server) handleDocumentRoutes(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	// /api/stores/{id}/documents
	if len(rest) == 0 {
		if r.Method != "GET" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.DocumentHandler.ListDocumentsHandler(w, r, storeID)
		return
	}

	// /api/stores/{id}/documents/{docId}
	if len(rest) == 1 && rest[0] != "" {
		switch r.Method {
		case "GET":
			s.app.DocumentHandler.GetDocumentHandler(w, r, storeID, rest[0])
		case "DELETE":
			s.app.DocumentHandler.DeleteDocumentHandler(w, r, storeID, rest[0])
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, "Not found", http.StatusNotFound)
}

// handleOperationRoutes routes /api/operations/{id} requests
func (s *Server) handleOperationRoutes(w http.ResponseWriter, r *http.Request) {
	operationID := strings.TrimPrefix(r.URL.Path, "/api/operations/")
	if operationID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.app.OperationHandler.GetOperationHandler(w, r, operationID)
}

// handleOperationSocket routes /ws/operations/{id} upgrade requests
func (s *Server) handleOperationSocket(w http.ResponseWriter, r *http.Request) {
	operationID := strings.TrimPrefix(r.URL.Path, "/ws/operations/")
	if operationID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.app.SocketHandler.HandleOperationSocket(w, r, operationID)
}

// pathSegments splits the path remainder after prefix into clean segments.
// Trailing slashes are ignored so /api/stores/{id}/ matches /api/stores/{id}.
func pathSegments(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
