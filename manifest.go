package iconbadge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IconTypeFontAwesome is the only icon type the renderer knows how to fetch.
const IconTypeFontAwesome = "font-awesome"

// Manifest enumerates the node types of a graph model and their icons.
type Manifest struct {
	CustomTypes map[string]NodeType `json:"custom_types"`
}

// NodeType is a single node type definition of the manifest.
type NodeType struct {
	Icon IconInfo `json:"icon"`
}

// IconInfo describes the icon of a node type.
type IconInfo struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Job is a single icon of the batch. A job with a non empty Skip reason is not rendered.
type Job struct {
	Node  string
	Icon  string
	Color string
	Skip  string
}

// LoadManifest reads the manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the manifest: %w", err)
	}
	defer f.Close()

	return ParseManifest(f)
}

// ParseManifest decodes a manifest document.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("unable to decode the manifest: %w", err)
	}
	return &m, nil
}

// Jobs returns one job per node type, ordered by node name. Nodes whose name
// cannot be used as a file name, or whose icon cannot be fetched, are returned as skipped jobs.
func (m *Manifest) Jobs() ([]Job, error) {
	if len(m.CustomTypes) == 0 {
		return nil, errors.New("no custom_types found in the manifest")
	}

	nodes := maps.Keys(m.CustomTypes)
	slices.Sort(nodes)

	jobs := make([]Job, 0, len(nodes))
	for _, node := range nodes {
		icon := m.CustomTypes[node].Icon
		job := Job{
			Node:  node,
			Icon:  icon.Name,
			Color: icon.Color,
		}
		if job.Color == "" {
			job.Color = DefaultFillColor
		}
		switch {
		case validName(node) != nil:
			// The node name becomes the output file name.
			job.Skip = fmt.Sprintf("invalid node name %q", node)
		case icon.Type != IconTypeFontAwesome:
			job.Skip = fmt.Sprintf("unsupported icon type %q", icon.Type)
		case icon.Name == "":
			job.Skip = "missing icon name"
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
