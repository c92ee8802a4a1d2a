package httperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sir_venger/wasm_merge/internal/models"
)

func TestStatus(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("x: %w", models.ErrPartNotFound):    http.StatusNotFound,
		fmt.Errorf("%w: ..", models.ErrInvalidPartName): http.StatusBadRequest,
		errors.New("disk on fire"):                       http.StatusInternalServerError,
	}
	for err, want := range cases {
		rec := httptest.NewRecorder()
		if got := Write(rec, err); got != want || rec.Code != want {
			t.Fatalf("%v: got %d/%d want %d", err, got, rec.Code, want)
		}
	}
}
