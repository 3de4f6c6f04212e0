package iconbadge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/iconbadge/utils"
)

// DefaultURLTemplate points to the Font Awesome solid icon set.
// The {name} placeholder is replaced with the icon name.
const DefaultURLTemplate = "https://raw.githubusercontent.com/FortAwesome/Font-Awesome/refs/heads/7.x/svgs/solid/{name}.svg"

// DefaultFetchTimeout is the time limit of a single outline download.
const DefaultFetchTimeout = 30 * time.Second

// OutlineSource provides the outline document of an icon, given its name.
type OutlineSource interface {
	Outline(ctx context.Context, name string) (string, error)
}

// HTTPSource downloads outlines from an url template.
type HTTPSource struct {
	URLTemplate string
	Client      *http.Client
	Timeout     time.Duration
}

// NewHTTPSource returns a source downloading from the url template.
// An empty template falls back to DefaultURLTemplate.
func NewHTTPSource(tmpl string) *HTTPSource {
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}
	return &HTTPSource{
		URLTemplate: tmpl,
		Client:      http.DefaultClient,
		Timeout:     DefaultFetchTimeout,
	}
}

// Outline implements OutlineSource.
func (s *HTTPSource) Outline(ctx context.Context, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	url := strings.ReplaceAll(s.URLTemplate, "{name}", name)
	text, err := utils.FetchText(ctx, s.Client, url)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutlineUnavailable, name, err)
	}
	return text, nil
}

// DirSource reads outlines from <Dir>/<name>.svg files.
type DirSource struct {
	Dir string
}

// Outline implements OutlineSource.
func (s DirSource) Outline(ctx context.Context, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutlineUnavailable, name, err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name+".svg"))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutlineUnavailable, name, err)
	}
	return string(data), nil
}

// validName rejects the names which would escape the icon set location.
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid icon name %q", ErrOutlineUnavailable, name)
	}
	return nil
}

// NewSource returns a DirSource for a local directory and an HTTPSource otherwise.
func NewSource(location string) (OutlineSource, error) {
	if location == "" || utils.IsValidUrl(location) {
		return NewHTTPSource(location), nil
	}
	fi, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("unable to open the icon source: %w", err)
	}
	if !fi.IsDir() {
		return nil, errors.New("the icon source should be an url template or a directory")
	}
	return DirSource{Dir: location}, nil
}
