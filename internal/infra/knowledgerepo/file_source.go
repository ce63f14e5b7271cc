package knowledgerepo

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	apperrors "github.com/yanqian/cafebui-chatbot/pkg/errors"
)

//go:embed data/cafebui.yaml
var embeddedCafe []byte

// FileSource reads the knowledge document from a YAML file. An empty path
// selects the document compiled into the binary.
type FileSource struct {
	path string
}

// NewFileSource constructs a YAML backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: strings.TrimSpace(path)}
}

// Load implements knowledge.Source.
func (s *FileSource) Load(_ context.Context) (knowledge.Document, error) {
	if s.path == "" {
		return ParseDocument(embeddedCafe)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "read knowledge file", err)
	}
	return ParseDocument(data)
}

// Describe names the source for startup logs.
func (s *FileSource) Describe() string {
	if s.path == "" {
		return "embedded"
	}
	return "file:" + s.path
}

// ParseDocument decodes a YAML knowledge document.
func ParseDocument(data []byte) (knowledge.Document, error) {
	var doc knowledge.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, "parse knowledge yaml", err)
	}
	if len(doc.Entries) == 0 {
		return knowledge.Document{}, apperrors.Wrap(apperrors.CodeKnowledgeLoadFailed, fmt.Sprintf("knowledge document %q has no entries", doc.Name), nil)
	}
	return doc, nil
}

var _ knowledge.Source = (*FileSource)(nil)
