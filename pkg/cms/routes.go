package cms

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the site is mounted at under basePath.
func MountPath(basePath string) string {
	return mountPath(basePath)
}

// RegisterRoutes mounts the site handler under basePath on mux. Page slugs
// are resolved relative to basePath.
func (s *Site) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("cms: missing mux")
	}
	pattern := mountPath(basePath)
	handler := s.Handler()
	if prefix := strings.TrimSuffix(pattern, "/"); prefix != "" {
		handler = http.StripPrefix(prefix, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}

func mountPath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + "/"
}
