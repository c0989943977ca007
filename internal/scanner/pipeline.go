package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/regexle/regexle-go/internal/analyze"
	"github.com/regexle/regexle-go/internal/cache"
	"github.com/regexle/regexle-go/internal/logging"
	"github.com/regexle/regexle-go/internal/report"
)

// Pipeline defaults.
const (
	DefaultWorkers     = 4
	DefaultMaxFileSize = 10 << 20 // 10 MiB
	cacheMaxAge        = 24 * time.Hour
)

// Scanner runs the analysis pipeline over file trees:
// discover → filter → read → prefilter → analyze → report.
// A Scanner holds no per-scan state; Scan may be called concurrently.
type Scanner struct {
	opts      AnalysisOptions
	workers   int
	maxSize   int64
	filter    *FileFilter
	prefilter *Prefilter
	cache     cache.Cache
	logger    *logging.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the number of concurrent analysis workers.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxFileSize sets the largest file the pipeline will read.
func WithMaxFileSize(limit int64) Option {
	return func(s *Scanner) {
		if limit > 0 {
			s.maxSize = limit
		}
	}
}

// WithFilter replaces the default file filter.
func WithFilter(f *FileFilter) Option {
	return func(s *Scanner) { s.filter = f }
}

// WithCache enables report caching.
func WithCache(c cache.Cache) Option {
	return func(s *Scanner) { s.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner with the given analysis options.
func New(opts AnalysisOptions, options ...Option) *Scanner {
	s := &Scanner{
		opts:      opts,
		workers:   DefaultWorkers,
		maxSize:   DefaultMaxFileSize,
		filter:    DefaultFilter(),
		prefilter: NewPrefilter(),
		cache:     cache.NoOpCache{},
		logger:    logging.New(logging.LevelInfo),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Scan walks paths, analyzes every matching file and returns the combined
// report with files ordered by path. The context cancels discovery and
// skips queued work; files already being analyzed finish.
func (s *Scanner) Scan(ctx context.Context, paths ...string) (*report.Report, error) {
	if len(paths) == 0 {
		return nil, NewAnalysisError(ErrCodeValidation, "", "scan", "no paths to scan", nil)
	}

	start := time.Now()
	files := make(chan string, 100)
	results := make(chan report.FileReport, 100)

	var (
		walkErr error
		skipped int
	)
	go func() {
		defer close(files)
		skipped, walkErr = s.discover(ctx, paths, files)
	}()

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range files {
				select {
				case <-ctx.Done():
					continue // drain; discovery stops on its own
				default:
				}
				results <- s.analyzeFile(path)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	rep := &report.Report{}
	for fr := range results {
		rep.Files = append(rep.Files, fr)
	}
	sort.Slice(rep.Files, func(i, j int) bool { return rep.Files[i].Path < rep.Files[j].Path })

	s.collectStats(rep, time.Since(start))
	rep.Stats.FilesSkipped = skipped

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return rep, walkErr
	}
	if err := ctx.Err(); err != nil {
		return rep, ErrCancelled("", err)
	}
	return rep, nil
}

// discover walks the given paths and feeds matching files to the channel,
// returning how many regular files the filter rejected. Unreadable entries
// are logged and skipped rather than aborting the walk.
func (s *Scanner) discover(ctx context.Context, paths []string, files chan<- string) (int, error) {
	skipped := 0
	visited := make(map[string]bool)

	send := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if visited[abs] {
			return
		}
		visited[abs] = true
		select {
		case files <- path:
		case <-ctx.Done():
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			s.logger.Warning("Cannot access path %s: %v", root, err)
			continue
		}
		if !info.IsDir() {
			// Explicitly named files bypass the extension filter.
			send(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				s.logger.Warning("Error accessing %s: %v", path, err)
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !s.filter.Filter(path) {
				skipped++
				return nil
			}
			send(path)
			return nil
		})
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

// analyzeFile runs the full per-file analysis: size guard, read, cache
// lookup, candidate prefilter, then the four-component core.
func (s *Scanner) analyzeFile(path string) report.FileReport {
	fr := report.FileReport{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		fr.Error = ErrFileAccess(path, err).Error()
		return fr
	}
	if info.Size() > s.maxSize {
		fr.Error = ErrFileTooLarge(path, info.Size(), s.maxSize).Error()
		return fr
	}

	content, err := os.ReadFile(path) //nolint:gosec // paths come from the caller's scan roots
	if err != nil {
		fr.Error = ErrFileRead(path, err).Error()
		return fr
	}
	fr.Bytes = int64(len(content))

	key := s.cacheKey(content)
	if data, err := s.cache.Get(key, cacheMaxAge); err == nil {
		var cached report.FileReport
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.Path = path
			cached.Bytes = fr.Bytes
			cached.Cached = true
			return cached
		}
		s.logger.Debug("Discarding unreadable cache entry for %s", path)
	}

	text := string(content)
	if !s.prefilter.HasCandidates(text) {
		fr.NoPatterns = true
		return fr
	}

	fr.Patterns = AnalyzeText(text, s.opts)
	fr.NoPatterns = len(fr.Patterns) == 0

	if data, err := json.Marshal(fr); err == nil {
		if err := s.cache.Put(key, data); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			s.logger.Debug("Cache write failed for %s: %v", path, err)
		}
	}

	return fr
}

// cacheKey derives the report cache key from content and the options that
// shape the report, so changed settings never serve stale reports.
func (s *Scanner) cacheKey(content []byte) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|%d|%d|%t|%t", s.opts.MaxMatches, s.opts.MatchTimeout, s.opts.RiskDetection, s.opts.Scoring)
	return "report:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// collectStats fills the report summary.
func (s *Scanner) collectStats(rep *report.Report, elapsed time.Duration) {
	st := &rep.Stats
	st.DurationMS = elapsed.Milliseconds()
	for i := range rep.Files {
		fr := &rep.Files[i]
		if fr.Error != "" {
			st.FilesErrored++
		} else {
			st.FilesScanned++
		}
		if fr.Cached {
			st.FilesFromCache++
		}
		st.PatternsFound += len(fr.Patterns)
		st.BytesScanned += fr.Bytes
		for _, p := range fr.Patterns {
			if !p.Risk.Detected {
				continue
			}
			switch p.Risk.Severity {
			case analyze.SeverityHigh:
				st.HighRiskCount++
			case analyze.SeverityMedium:
				st.MediumRiskCount++
			}
		}
	}
}
