package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/vocabdrill/internal/api"
	"github.com/abhisek/vocabdrill/internal/store"
)

const (
	// MaxRandom is the largest count the backend serves per request.
	MaxRandom = 100
	// byIDsChunk is the backend's per-request id limit for by-ids.
	byIDsChunk = 100
)

// Requester performs JSON requests against the backend.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, body, out any) error
}

// FailureJournal records swallowed fetch failures.
type FailureJournal interface {
	AppendSyncFailure(ctx context.Context, data store.SyncFailureData) error
}

// Provider fetches word batches. Failures never escape: they are logged,
// journaled and turned into an empty result.
type Provider struct {
	api     Requester
	log     *slog.Logger
	journal FailureJournal
}

// NewProvider creates a Provider. journal may be nil.
func NewProvider(requester Requester, log *slog.Logger, journal FailureJournal) *Provider {
	return &Provider{api: requester, log: log, journal: journal}
}

// FetchRandom returns up to count words not in exclude. The backend decides
// which words qualify; fewer than count is not an error.
func (p *Provider) FetchRandom(ctx context.Context, count int, exclude []int64) []Word {
	if count <= 0 {
		return []Word{}
	}
	count = min(count, MaxRandom)

	endpoint := fmt.Sprintf("/words/random/%d", count)
	if len(exclude) > 0 {
		endpoint += "?exclude=" + joinIDs(exclude)
	}

	var out []Word
	if err := p.api.Request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		p.fail(ctx, "fetch_random", err)
		return []Word{}
	}
	if out == nil {
		out = []Word{}
	}
	return out
}

type byIDsRequest struct {
	IDs []int64 `json:"ids"`
}

// FetchByIDs returns the words with the given ids, in no particular order.
// A chunk that fails is skipped; the words from other chunks are kept.
func (p *Provider) FetchByIDs(ctx context.Context, ids []int64) []Word {
	out := []Word{}
	seen := make(map[int64]bool, len(ids))
	for start := 0; start < len(ids); start += byIDsChunk {
		chunk := ids[start:min(start+byIDsChunk, len(ids))]
		var got []Word
		if err := p.api.Request(ctx, http.MethodPost, "/words/by-ids", byIDsRequest{IDs: chunk}, &got); err != nil {
			p.fail(ctx, "fetch_by_ids", err)
			continue
		}
		for _, w := range got {
			if !seen[w.ID] {
				seen[w.ID] = true
				out = append(out, w)
			}
		}
	}
	return out
}

func (p *Provider) fail(ctx context.Context, op string, err error) {
	p.log.Warn("word fetch failed", "op", op, "err", err)
	if p.journal == nil {
		return
	}
	data := store.SyncFailureData{Operation: op, ErrorMessage: err.Error()}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		data.Status = netErr.Status
	}
	if jerr := p.journal.AppendSyncFailure(ctx, data); jerr != nil {
		p.log.Debug("journal fetch failure", "err", jerr)
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
