package knowledge

import "context"

// Entry pairs a topic keyword with its canned answer.
type Entry struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Answer  string `yaml:"answer" json:"answer"`
}

// Document is the loadable form of the café knowledge: the ordered keyword
// table, the free-text prompt block handed to the remote model and the
// default replies used when no keyword matches.
type Document struct {
	Name     string   `yaml:"name" json:"name"`
	Entries  []Entry  `yaml:"entries" json:"entries"`
	Prompt   string   `yaml:"prompt" json:"prompt"`
	Defaults []string `yaml:"defaults" json:"defaults"`
}

// Source loads a knowledge Document at startup.
type Source interface {
	Load(ctx context.Context) (Document, error)
}
