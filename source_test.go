package iconbadge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Dir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "user.svg"), []byte(squareIcon), 0644)
	assert.NoError(t, err)

	src := DirSource{Dir: dir}
	text, err := src.Outline(context.Background(), "user")
	assert.NoError(t, err)
	assert.Equal(t, squareIcon, text)

	_, err = src.Outline(context.Background(), "house")
	assert.ErrorIs(t, err, ErrOutlineUnavailable)

	for _, name := range []string{"", "..", "../user", `a\b`} {
		_, err = src.Outline(context.Background(), name)
		assert.ErrorIs(t, err, ErrOutlineUnavailable, name)
	}
}

func TestSource_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/solid/user.svg" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, squareIcon)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/solid/{name}.svg")
	src.Client = srv.Client()

	text, err := src.Outline(context.Background(), "user")
	assert.NoError(t, err)
	assert.Equal(t, squareIcon, text)

	_, err = src.Outline(context.Background(), "house")
	assert.ErrorIs(t, err, ErrOutlineUnavailable)
}

func TestSource_New(t *testing.T) {
	src, err := NewSource("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultURLTemplate, src.(*HTTPSource).URLTemplate)

	src, err = NewSource("http://localhost:8080/{name}.svg")
	assert.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	dir := t.TempDir()
	src, err = NewSource(dir)
	assert.NoError(t, err)
	assert.Equal(t, DirSource{Dir: dir}, src)

	file := filepath.Join(dir, "icons.txt")
	assert.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewSource(file)
	assert.Error(t, err)

	_, err = NewSource(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
