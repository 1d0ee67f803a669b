package finder

import (
	"context"
	"sync"

	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
)

// Session sequences searches from one interactive client.
// Searches are numbered by Begin, in the order the caller hands them in;
// beginning a new search cancels the one in flight and only the latest
// search's response is delivered.
type Session struct {
	finder interfaces.FinderService

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Ticket is a search slot handed out by Begin
type Ticket struct {
	session *Session
	ctx     context.Context
	cancel  context.CancelFunc
	seq     uint64
}

// NewSession creates a session backed by finder
func NewSession(finder interfaces.FinderService) *Session {
	return &Session{finder: finder}
}

// Begin claims the newest slot and cancels the search in flight.
// Call it synchronously where requests arrive so arrival order decides which
// search is newest; the returned ticket can then run on any goroutine.
func (s *Session) Begin(ctx context.Context) *Ticket {
	searchCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel

	return &Ticket{session: s, ctx: searchCtx, cancel: cancel, seq: s.seq}
}

// Run performs the search for address. The boolean is false when a later
// Begin (or Close) superseded this ticket; the response is then discarded.
func (t *Ticket) Run(address string) (*models.SearchResponse, bool) {
	defer t.cancel()

	if t.ctx.Err() != nil {
		return nil, false
	}

	resp := t.session.finder.Respond(t.ctx, address)
	return resp, t.session.finish(t.seq)
}

// Submit begins and runs a search in one call
func (s *Session) Submit(ctx context.Context, address string) (*models.SearchResponse, bool) {
	return s.Begin(ctx).Run(address)
}

// finish reports whether seq is still the newest search and frees its slot
func (s *Session) finish(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.cancel = nil
	return true
}

// Close cancels the search in flight, if any
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
