package server

import (
	"embed"
	"net/http"
)

//go:embed assets/index.html
var embeddedAssets embed.FS

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := embeddedAssets.ReadFile("assets/index.html")
	if err != nil {
		http.Error(w, "missing index.html", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data) //nolint:errcheck
}
