package parthttp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Parts      int   `json:"parts"`
	TotalBytes int64 `json:"total_bytes"`
}

// health возвращает агрегированную статистику по каталогу частей.
func (a *Server) health(w http.ResponseWriter, _ *http.Request) {
	var stats healthStats

	entries, err := os.ReadDir(a.dataDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Parts++
		stats.TotalBytes += info.Size()
	}
	stats.OK = true

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
