// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package lexicon

import (
	"io"
	"log/slog"

	"github.com/poiesic/lexicon/ai"
	"github.com/poiesic/lexicon/ai/openai"
	"github.com/poiesic/lexicon/enrich"
	"github.com/poiesic/lexicon/search"
	"github.com/poiesic/lexicon/storage"
	"github.com/poiesic/lexicon/storage/badger"
)

// Database bundles the storage backend, its repositories and the dictionary
// lookup provider.
type Database struct {
	backend   *badger.Backend
	entryRepo *badger.EntryRepository
	tagRepo   *badger.TagRepository
	provider  ai.AIProvider
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration of the default OpenAI-compatible
// provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider replaces the default provider. The Database takes
// ownership and closes it on Close.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger. Nil uses slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens (creating if needed) the lexicon stored at filePath.
func Open(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	entryRepo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	tagRepo := badger.NewTagRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			tagRepo.Close()
			entryRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:   backend,
		entryRepo: entryRepo,
		tagRepo:   tagRepo,
		provider:  provider,
		logger:    options.logger,
	}, nil
}

// Close releases the provider, the repositories and the backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.tagRepo.Close(); err != nil {
		db.logger.Error("error closing tag repository", "err", err)
		return err
	}
	if err := db.entryRepo.Close(); err != nil {
		db.logger.Error("error closing entry repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) EntryRepository() storage.EntryRepository {
	return db.entryRepo
}

func (db *Database) TagRepository() storage.TagRepository {
	return db.tagRepo
}

func (db *Database) Definer() ai.Definer {
	return db.provider.Definer()
}

// NewSearcher returns a searcher over this database's entries. The caller
// must Close it.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.entryRepo, append([]search.Option{search.WithLogger(db.logger)}, opts...)...)
}

// NewEnricher returns an enricher that fills definitions using this
// database's provider.
func (db *Database) NewEnricher(config *enrich.Config, progress io.Writer) (*enrich.Enricher, error) {
	return enrich.NewEnricher(db.entryRepo, db.provider.Definer(), config, progress)
}
