package catalog

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/registry"
)

//go:embed data/*.yaml
var dataFS embed.FS

// fileData mirrors the layout of a category data file.
type fileData struct {
	ID         string               `yaml:"id"`
	Title      string               `yaml:"title"`
	Kind       string               `yaml:"kind"`
	Questions  []questionData       `yaml:"questions"`
	Dimensions []dimensionData      `yaml:"dimensions"`
	References []core.ReferenceItem `yaml:"references"`
}

type questionData struct {
	ID          string          `yaml:"id"`
	Difficulty  core.Difficulty `yaml:"difficulty"`
	Prompt      string          `yaml:"prompt"`
	Answer      float64         `yaml:"answer"`
	Unit        string          `yaml:"unit"`
	Hint        string          `yaml:"hint"`
	Explanation string          `yaml:"explanation"`
	Country     string          `yaml:"country"`
}

type dimensionData struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// fileSource is a registry.Source backed by an embedded YAML file.
type fileSource struct {
	category   core.Category
	questions  []core.Question
	references []core.ReferenceItem
	dims       []string
	labels     map[string]string
}

func (s *fileSource) Category() core.Category          { return s.category }
func (s *fileSource) Questions() []core.Question       { return s.questions }
func (s *fileSource) References() []core.ReferenceItem { return s.references }
func (s *fileSource) Dimensions() []string             { return s.dims }

// Label returns the display label of a comparison dimension.
func (s *fileSource) Label(dim string) string {
	if l, ok := s.labels[dim]; ok {
		return l
	}
	return dim
}

// parseSource decodes one category data file.
func parseSource(data []byte) (*fileSource, error) {
	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse data: %w", err)
	}
	if fd.ID == "" {
		return nil, fmt.Errorf("catalog: data file has no id")
	}

	kind := core.KindNumeric
	switch strings.ToLower(fd.Kind) {
	case "", "numeric":
	case "name-match", "name_match":
		kind = core.KindNameMatch
	default:
		return nil, fmt.Errorf("catalog: %s: unknown kind %q", fd.ID, fd.Kind)
	}

	src := &fileSource{
		category:   core.Category{ID: fd.ID, Title: fd.Title, Kind: kind},
		references: fd.References,
		labels:     make(map[string]string, len(fd.Dimensions)),
	}
	for _, d := range fd.Dimensions {
		src.dims = append(src.dims, d.Key)
		src.labels[d.Key] = d.Label
	}
	if kind == core.KindNameMatch && (len(src.references) == 0 || len(src.dims) == 0) {
		return nil, fmt.Errorf("catalog: %s: name-match category needs references and dimensions", fd.ID)
	}

	for _, q := range fd.Questions {
		src.questions = append(src.questions, core.Question{
			ID:          q.ID,
			Category:    fd.ID,
			Kind:        kind,
			Difficulty:  q.Difficulty,
			Prompt:      q.Prompt,
			Answer:      q.Answer,
			Unit:        q.Unit,
			Hint:        q.Hint,
			Explanation: q.Explanation,
			Country:     q.Country,
		})
	}
	return src, nil
}

func init() {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		panic(fmt.Sprintf("catalog: cannot read embedded data: %v", err))
	}
	for _, e := range entries {
		raw, err := dataFS.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("catalog: cannot read %s: %v", e.Name(), err))
		}
		src, err := parseSource(raw)
		if err != nil {
			panic(err.Error())
		}
		registry.Register(src.category.ID, func() registry.Source { return src })
	}
}
