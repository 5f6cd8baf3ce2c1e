package dataloader

import (
	"context"
	"fmt"

	"github.com/rx3lixir/event-explorer/internal/db"
	"github.com/rx3lixir/event-explorer/internal/opensearch/indexing"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
	"github.com/rx3lixir/event-explorer/pkg/logger"
)

// Loader переносит каталог событий из PostgreSQL в поисковый индекс
type Loader struct {
	storer   db.EventStore
	indexer  *indexing.Manager
	searcher *search.Searcher
	logger   logger.Logger
}

func NewLoader(storer db.EventStore, indexer *indexing.Manager, searcher *search.Searcher, logger logger.Logger) *Loader {
	return &Loader{
		storer:   storer,
		indexer:  indexer,
		searcher: searcher,
		logger:   logger,
	}
}

// InitializeOpenSearchData синхронизирует данные между PostgreSQL и OpenSearch.
// Если индекс уже наполнен, загрузка пропускается.
func (l *Loader) InitializeOpenSearchData(ctx context.Context) error {
	l.logger.Info("Initializing OpenSearch data from PostgreSQL...")

	// Получаем все события из PostgreSQL
	events, err := l.storer.GetEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to get events from PostgreSQL: %w", err)
	}

	if len(events) == 0 {
		l.logger.Info("No events found in PostgreSQL, skipping OpenSearch initialization")
		return nil
	}

	// Проверяем, есть ли уже данные в OpenSearch
	existingCount, err := l.searcher.CountDocuments(ctx)
	if err != nil {
		l.logger.Warn("Failed to check existing OpenSearch data, proceeding with initialization", "error", err)
	} else if existingCount > 0 {
		l.logger.Info("OpenSearch already contains data, skipping bulk initialization",
			"existing_count", existingCount)
		return nil
	}

	if err := l.indexer.BulkIndexEvents(ctx, events); err != nil {
		return fmt.Errorf("failed to bulk index events: %w", err)
	}

	l.logger.Info("OpenSearch initialization completed",
		"indexed_events", len(events),
	)

	return nil
}
