package session

import (
	"context"
	"sync"
	"time"

	"github.com/rx3lixir/event-explorer/internal/filterstate"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
	"github.com/rx3lixir/event-explorer/pkg/logger"
)

const defaultFetchTimeout = 10 * time.Second

// Orchestrator связывает состояние фильтров с загрузками данных.
// На каждый переход состояния уходит ровно один запрос за результатами;
// фасеты загружаются один раз на старте по всему корпусу.
//
// Гонки ответов разрешаются порядковым номером запроса: применяется
// только ответ последнего выданного запроса, опоздавшие отбрасываются
// (последний выданный побеждает, а не последний пришедший).
type Orchestrator struct {
	fetcher Fetcher
	log     logger.Logger
	timeout time.Duration
	onError func(error)

	mu       sync.Mutex
	snapshot Snapshot
	seq      uint64
	inflight sync.WaitGroup
}

// Option настраивает Orchestrator
type Option func(*Orchestrator)

// WithFetchTimeout задает предел ожидания одной загрузки
func WithFetchTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithErrorHandler задает обработчик ошибок загрузки.
// Ошибка не очищает прежние результаты - они остаются на экране.
func WithErrorHandler(fn func(error)) Option {
	return func(o *Orchestrator) {
		o.onError = fn
	}
}

func NewOrchestrator(fetcher Fetcher, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher: fetcher,
		log:     log,
		timeout: defaultFetchTimeout,
		snapshot: Snapshot{
			State:  filterstate.Default(),
			Badges: filterstate.Badges(filterstate.Default()),
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Start выполняет загрузки первого показа: один запрос за фасетами
// (без фильтров) и один за результатами для состояния по умолчанию.
// Фасеты в дальнейшем не перезапрашиваются.
func (o *Orchestrator) Start(ctx context.Context) {
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		o.fetchFacets(ctx)
	}()

	o.mu.Lock()
	o.seq++
	seq := o.seq
	filter := FilterFromState(o.snapshot.State)
	o.mu.Unlock()

	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		o.fetchResults(ctx, seq, filter)
	}()
}

// Dispatch применяет действие к состоянию и выдает ровно один
// запрос за результатами для нового состояния
func (o *Orchestrator) Dispatch(ctx context.Context, action filterstate.Action) {
	o.mu.Lock()
	o.snapshot.State = filterstate.Apply(o.snapshot.State, action)
	o.snapshot.Badges = filterstate.Badges(o.snapshot.State)
	o.seq++
	seq := o.seq
	filter := FilterFromState(o.snapshot.State)
	o.mu.Unlock()

	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		o.fetchResults(ctx, seq, filter)
	}()
}

// Snapshot возвращает текущий срез сессии
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := o.snapshot
	snap.Badges = append([]filterstate.Badge{}, o.snapshot.Badges...)
	return snap
}

// Wait дожидается завершения всех выданных загрузок (для тестов)
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

func (o *Orchestrator) fetchResults(parentCtx context.Context, seq uint64, filter *search.Filter) {
	ctx, cancel := context.WithTimeout(parentCtx, o.timeout)
	defer cancel()

	result, err := o.fetcher.SearchEvents(ctx, filter)

	o.mu.Lock()

	// Уже выдан более новый запрос - этот ответ устарел
	if seq != o.seq {
		latest := o.seq
		o.mu.Unlock()
		o.log.Debug("Discarding stale search response",
			"response_seq", seq,
			"latest_seq", latest,
		)
		return
	}

	if err != nil {
		o.snapshot.LastErr = err
		o.mu.Unlock()
		o.log.Error("Results fetch failed", "error", err, "seq", seq)
		// Обработчик зовем без мьютекса: ему можно читать Snapshot
		o.reportError(err)
		return
	}

	o.snapshot.Results = result
	o.snapshot.LastErr = nil
	o.mu.Unlock()
}

func (o *Orchestrator) fetchFacets(parentCtx context.Context) {
	ctx, cancel := context.WithTimeout(parentCtx, o.timeout)
	defer cancel()

	facets, err := o.fetcher.FetchFacets(ctx)

	o.mu.Lock()

	if err != nil {
		o.snapshot.FacetsErr = err
		o.mu.Unlock()
		o.log.Error("Facets fetch failed", "error", err)
		o.reportError(err)
		return
	}

	o.snapshot.Facets = facets
	o.snapshot.FacetsErr = nil
	o.mu.Unlock()
}

func (o *Orchestrator) reportError(err error) {
	if o.onError != nil {
		o.onError(err)
	}
}
