package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

// Stats for ad-hoc queries are tracked under this key instead of a file name.
const adHocStatsKey = "ad-hoc"

// Histogram cutoffs for per-script latency tracking.
const (
	histMin = time.Millisecond
	histMax = 5 * time.Minute
)

// ScriptUseCase lists, reads and executes the SQL scripts in the scripts
// directory, plus ad-hoc queries posted by clients. Every execution is
// read-only guarded and recorded in a latency histogram per script.
type ScriptUseCase interface {
	ListScripts() ([]domain.ScriptInfo, error)
	GetScript(name string) (string, error)
	RunScript(ctx context.Context, name string) (*domain.QueryResult, error)
	RunQuery(ctx context.Context, query string) (*domain.QueryResult, error)
	RunStats() []domain.RunStats
}

type sharedHistogram struct {
	sync.Mutex
	*hdrhistogram.Histogram
	numOps uint64
}

type scriptUseCase struct {
	store    domain.ScriptStore
	executor domain.QueryExecutor
	timeout  time.Duration
	limiter  *rate.Limiter
	log      *logrus.Logger

	mu         sync.Mutex
	histograms map[string]*sharedHistogram
}

// NewScriptUseCase wires the script store and query executor together.
// maxRate throttles executions per second across all callers; 0 disables
// throttling.
func NewScriptUseCase(store domain.ScriptStore, executor domain.QueryExecutor, timeout time.Duration, maxRate float64, logger *logrus.Logger) ScriptUseCase {
	var limiter *rate.Limiter
	if maxRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(maxRate), 1)
	}
	return &scriptUseCase{
		store:      store,
		executor:   executor,
		timeout:    timeout,
		limiter:    limiter,
		log:        logger,
		histograms: make(map[string]*sharedHistogram),
	}
}

func validateScriptName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("script name cannot be empty")
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid script name %q", name)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".sql") {
		return fmt.Errorf("invalid script name %q: only .sql files can be run", name)
	}
	return nil
}

// cleanStatement strips blank lines and full-line comments, collapses the
// rest into a single statement and makes sure it ends with a semicolon.
func cleanStatement(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 1 || trimmed[0] == '#' || strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, trimmed)
	}
	stmt := strings.TrimSpace(strings.Join(kept, " "))
	if stmt == "" {
		return ""
	}
	if stmt[len(stmt)-1] != ';' {
		stmt += ";"
	}
	return stmt
}

func validateReadOnly(stmt string) error {
	upper := strings.ToUpper(stmt)
	if strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH") {
		return nil
	}
	return fmt.Errorf("invalid query: only SELECT or WITH statements can be executed")
}

func (uc *scriptUseCase) ListScripts() ([]domain.ScriptInfo, error) {
	uc.log.Info("Use Case: listing SQL scripts")
	return uc.store.ListScripts()
}

func (uc *scriptUseCase) GetScript(name string) (string, error) {
	uc.log.Infof("Use Case: reading script %s", name)
	if err := validateScriptName(name); err != nil {
		return "", err
	}
	return uc.store.ReadScript(name)
}

func (uc *scriptUseCase) RunScript(ctx context.Context, name string) (*domain.QueryResult, error) {
	uc.log.Infof("Use Case: running script %s", name)
	if err := validateScriptName(name); err != nil {
		return nil, err
	}
	content, err := uc.store.ReadScript(name)
	if err != nil {
		return nil, err
	}
	return uc.run(ctx, name, content)
}

func (uc *scriptUseCase) RunQuery(ctx context.Context, query string) (*domain.QueryResult, error) {
	uc.log.Info("Use Case: running ad-hoc query")
	return uc.run(ctx, adHocStatsKey, query)
}

func (uc *scriptUseCase) run(ctx context.Context, key, content string) (*domain.QueryResult, error) {
	stmt := cleanStatement(content)
	if stmt == "" {
		return nil, fmt.Errorf("invalid query: no executable SQL found")
	}
	if err := validateReadOnly(stmt); err != nil {
		return nil, err
	}

	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("could not wait for rate limiter: %w", err)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	result, err := uc.executor.ExecuteQuery(runCtx, stmt)
	if err != nil {
		return nil, err
	}
	uc.recordLatency(key, time.Since(start))
	return result, nil
}

func (uc *scriptUseCase) recordLatency(key string, elapsed time.Duration) {
	uc.mu.Lock()
	h, ok := uc.histograms[key]
	if !ok {
		h = &sharedHistogram{Histogram: hdrhistogram.New(histMin.Nanoseconds(), histMax.Nanoseconds(), 1 /* sigfig */)}
		uc.histograms[key] = h
	}
	uc.mu.Unlock()

	h.Lock()
	if err := h.RecordValue(elapsed.Nanoseconds()); err != nil {
		uc.log.Warnf("Could not record latency %s for %s: %v", elapsed, key, err)
	}
	h.numOps++
	h.Unlock()
}

func (uc *scriptUseCase) RunStats() []domain.RunStats {
	uc.mu.Lock()
	names := make([]string, 0, len(uc.histograms))
	for name := range uc.histograms {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]domain.RunStats, 0, len(names))
	for _, name := range names {
		h := uc.histograms[name]
		h.Lock()
		stats = append(stats, domain.RunStats{
			Script: name,
			NumOps: int64(h.numOps),
			P50:    time.Duration(h.ValueAtQuantile(50)).String(),
			P95:    time.Duration(h.ValueAtQuantile(95)).String(),
			P99:    time.Duration(h.ValueAtQuantile(99)).String(),
			P100:   time.Duration(h.ValueAtQuantile(100)).String(),
		})
		h.Unlock()
	}
	uc.mu.Unlock()
	return stats
}
