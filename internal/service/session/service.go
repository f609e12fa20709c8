package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexalis-roi/internal/metrics"
	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/roi"
)

var (
	ErrNotFound         = errors.New("session not found")
	ErrInvalidSessionID = errors.New("invalid session id")
)

type InsightRequester interface {
	RequestInsight(ctx context.Context, in roi.Inputs, res roi.Result) narrative.Narrative
}

type slot struct {
	state   State
	cancel  context.CancelFunc
	touched time.Time
}

// Service keeps one current submission per session and runs the
// narrative request of the latest submission in the background.
type Service struct {
	log         *slog.Logger
	requester   InsightRequester
	now         func() time.Time
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*slot
	baseCtx  context.Context
	stop     context.CancelFunc
	wg       sync.WaitGroup
}

// NewService keeps at most maxSessions sessions, dropping the least
// recently used one to make room. Zero or less means no limit.
func NewService(log *slog.Logger, requester InsightRequester, maxSessions int) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		log:         log,
		requester:   requester,
		now:         time.Now,
		maxSessions: maxSessions,
		sessions:    make(map[string]*slot),
		baseCtx:     ctx,
		stop:        cancel,
	}
}

// Submit computes the result, makes it the session's current submission
// and only then starts the narrative request. An empty sessionID opens a
// new session.
func (s *Service) Submit(ctx context.Context, sessionID string, in roi.Inputs) (string, Submission, error) {
	const op = "service.session.Submit"

	if err := ctx.Err(); err != nil {
		return "", Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		return "", Submission{}, fmt.Errorf("%s: %w", op, ErrInvalidSessionID)
	}

	res := roi.Compute(in)
	metrics.Calculations.WithLabelValues(string(in.Industry)).Inc()

	s.mu.Lock()
	sl, ok := s.sessions[sessionID]
	if !ok {
		if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
			s.dropLeastRecent()
		}
		sl = &slot{state: State{SessionID: sessionID}}
		s.sessions[sessionID] = sl
		metrics.ActiveSessions.Inc()
	}

	sub := Submission{
		ID:          sl.state.LatestID + 1,
		Inputs:      in,
		Result:      res,
		Chart:       roi.Chart(res),
		SubmittedAt: s.now(),
	}
	sl.state, _ = sl.state.Apply(Submitted{Submission: sub})
	sl.touched = sub.SubmittedAt

	if sl.cancel != nil {
		sl.cancel()
	}
	taskCtx, cancel := context.WithCancel(s.baseCtx)
	sl.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go s.fetchInsight(taskCtx, cancel, sl, sub)

	return sessionID, sub, nil
}

func (s *Service) fetchInsight(ctx context.Context, cancel context.CancelFunc, owner *slot, sub Submission) {
	const op = "service.session.fetchInsight"
	defer s.wg.Done()
	defer cancel()

	n := s.requester.RequestInsight(ctx, sub.Inputs, sub.Result)

	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := owner.state.SessionID
	sl, ok := s.sessions[sessionID]
	if !ok || sl != owner {
		// evicted, possibly recreated under the same id
		return
	}

	next, applied := sl.state.Apply(InsightArrived{SubmissionID: sub.ID, Narrative: n})
	if !applied {
		metrics.NarrativesSuperseded.Inc()
		s.log.Debug("discarding superseded narrative",
			slog.String("op", op),
			slog.String("session", sessionID),
			slog.Uint64("submission", sub.ID),
			slog.Uint64("latest", sl.state.LatestID),
		)
		return
	}
	sl.state = next
}

func (s *Service) Current(sessionID string) (Submission, error) {
	const op = "service.session.Current"

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.sessions[sessionID]
	if !ok || sl.state.Current == nil {
		return Submission{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	sl.touched = s.now()

	return *sl.state.Current, nil
}

// dropLeastRecent must be called with mu held.
func (s *Service) dropLeastRecent() {
	var (
		oldestID string
		oldest   *slot
	)
	for id, sl := range s.sessions {
		if oldest == nil || sl.touched.Before(oldest.touched) {
			oldestID, oldest = id, sl
		}
	}
	if oldest == nil {
		return
	}

	if oldest.cancel != nil {
		oldest.cancel()
	}
	delete(s.sessions, oldestID)
	metrics.ActiveSessions.Dec()
	metrics.SessionsDropped.Inc()

	s.log.Warn("session limit reached, dropped least recent session",
		slog.String("session", oldestID),
		slog.Int("limit", s.maxSessions),
	)
}

// Evict drops sessions idle since before the cutoff and cancels their
// pending narrative requests.
func (s *Service) Evict(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sl := range s.sessions {
		if sl.touched.Before(before) {
			if sl.cancel != nil {
				sl.cancel()
			}
			delete(s.sessions, id)
			evicted++
		}
	}
	metrics.ActiveSessions.Sub(float64(evicted))

	return evicted
}

// Sweep evicts idle sessions every interval until ctx is done.
func (s *Service) Sweep(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(s.now().Add(-ttl)); n > 0 {
				s.log.Info("evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}

// Close cancels every pending narrative request and waits for them.
func (s *Service) Close() {
	s.stop()
	s.wg.Wait()
}
