// Package parser wraps go-tree-sitter parsers behind a small registry,
// pooling one *sitter.Parser per registered language so concurrent workers
// reuse parsers instead of allocating one per file.
package parser

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Service provides tree-sitter parsing for the languages registered with it.
type Service struct {
	languages   map[string]*sitter.Language
	mu          sync.RWMutex
	parserPools map[string]*sync.Pool // one pool per language for parser reuse
}

// NewService creates an empty Service; callers register the languages they
// need via RegisterLanguage.
func NewService() *Service {
	return &Service{
		languages:   make(map[string]*sitter.Language),
		parserPools: make(map[string]*sync.Pool),
	}
}

// RegisterLanguage registers a language's grammar under name, along with the
// *sync.Pool of parsers reused across ParseWithTree calls for that language.
func (s *Service) RegisterLanguage(name string, lang *sitter.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[name] = lang

	langRef := lang
	s.parserPools[name] = &sync.Pool{
		New: func() interface{} {
			p := sitter.NewParser()
			if p != nil {
				p.SetLanguage(langRef)
			}
			return p
		},
	}
}

func (s *Service) getParserFromPool(language string) *sitter.Parser {
	s.mu.RLock()
	pool := s.parserPools[language]
	s.mu.RUnlock()

	if pool == nil {
		return nil
	}
	p := pool.Get()
	if p == nil {
		return nil
	}
	return p.(*sitter.Parser)
}

func (s *Service) returnParserToPool(language string, parser *sitter.Parser) {
	if parser == nil {
		return
	}
	s.mu.RLock()
	pool := s.parserPools[language]
	s.mu.RUnlock()
	if pool != nil {
		pool.Put(parser)
	}
}

// ParseWithTree parses source under the given registered language name and
// returns both the tree (the caller must Close it) and its root node. Returns
// a nil tree/root with no error if language was never registered.
func (s *Service) ParseWithTree(source []byte, language string) (*sitter.Tree, *sitter.Node, error) {
	s.mu.RLock()
	lang := s.languages[language]
	s.mu.RUnlock()
	if lang == nil {
		return nil, nil, nil
	}

	parser := s.getParserFromPool(language)
	if parser == nil {
		parser = sitter.NewParser()
		if parser == nil {
			return nil, nil, nil
		}
		parser.SetLanguage(lang)
	}
	defer s.returnParserToPool(language, parser)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, nil, err
	}
	if tree == nil {
		return nil, nil, nil
	}
	return tree, tree.RootNode(), nil
}
