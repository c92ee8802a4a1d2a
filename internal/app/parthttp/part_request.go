package parthttp

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/wasm_merge/internal/models"
)

// partRequest содержит имя части и путь до неё на диске.
type partRequest struct {
	name string
	path string
}

// newPartRequest валидирует имя из URL и рассчитывает путь на диске.
// Имя не может выходить за пределы каталога данных.
func newPartRequest(root string, r *http.Request) (*partRequest, error) {
	name := chi.URLParam(r, "name")
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPartName, name)
	}

	return &partRequest{
		name: name,
		path: filepath.Join(root, name),
	}, nil
}
