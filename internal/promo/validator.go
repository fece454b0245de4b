// Package promo validates checkout promo codes against one or more code lists.
package promo

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"golang.org/x/sync/errgroup"
)

const (
	minCodeLength = 8
	maxCodeLength = 10
	// falsePositiveRate trades memory for the chance of accepting an unknown code
	falsePositiveRate = 0.0001
)

// Validator checks promo codes against several code lists
type Validator struct {
	mu     sync.RWMutex
	sets   []*codeSet
	client *http.Client
}

// codeSet is one loaded list, held as a bloom filter
type codeSet struct {
	source string
	count  int
	filter *bloom.BloomFilter
}

// NewValidator creates a validator with no lists loaded
func NewValidator() *Validator {
	return &Validator{
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Load reads every source concurrently and replaces the loaded lists.
// A source is an http(s) URL or a local path; names ending in .gz are gunzipped.
// Returns error if any source fails to load
func (v *Validator) Load(ctx context.Context, sources []string) error {
	if len(sources) == 0 {
		return fmt.Errorf("no promo sources provided")
	}

	sets := make([]*codeSet, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			set, err := v.loadSource(gctx, src)
			if err != nil {
				return fmt.Errorf("failed to load promo source %d: %w", i+1, err)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sets = sets
	return nil
}

func (v *Validator) loadSource(ctx context.Context, source string) (*codeSet, error) {
	rc, err := v.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(source), ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	codes, err := parseCodes(r)
	if err != nil {
		return nil, err
	}

	filter := bloom.NewWithEstimates(uint(max(len(codes), 1)), falsePositiveRate)
	for _, code := range codes {
		filter.AddString(code)
	}
	return &codeSet{source: source, count: len(codes), filter: filter}, nil
}

func (v *Validator) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseCodes reads one code per line, skipping blanks
func parseCodes(r io.Reader) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if code := normalize(scanner.Text()); code != "" {
			codes = append(codes, code)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return codes, nil
}

// IsValid checks if a promo code is valid
// A code is valid if:
// 1. It has 8-10 characters
// 2. It appears in at least 2 of the loaded lists (or the only list, when one is loaded)
func (v *Validator) IsValid(ctx context.Context, code string) bool {
	code = normalize(code)
	if len(code) < minCodeLength || len(code) > maxCodeLength {
		return false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.sets) == 0 {
		return false
	}
	quorum := min(2, len(v.sets))

	found := 0
	for _, set := range v.sets {
		if ctx.Err() != nil {
			return false
		}
		if set.filter.TestString(code) {
			found++
			if found >= quorum {
				return true
			}
		}
	}
	return false
}

// normalize makes matching case and whitespace insensitive
func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Enabled reports whether any list is loaded
func (v *Validator) Enabled() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.sets) > 0
}

// GetStats returns statistics about loaded lists
func (v *Validator) GetStats() map[string]interface{} {
	v.mu.RLock()
	defer v.mu.RUnlock()

	sizes := make([]int, len(v.sets))
	sources := make([]string, len(v.sets))
	total := 0
	for i, set := range v.sets {
		sizes[i] = set.count
		sources[i] = set.source
		total += set.count
	}

	return map[string]interface{}{
		"total_files": len(v.sets),
		"file_paths":  sources,
		"file_sizes":  sizes,
		"total_codes": total,
	}
}
