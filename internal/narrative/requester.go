package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nexalis-roi/internal/metrics"
	"nexalis-roi/internal/roi"
)

var (
	ErrRelayStatus    = errors.New("relay returned non-success status")
	ErrEmptyNarrative = errors.New("relay returned empty text")
)

const maxReplyBytes = 1 << 20

// Requester sends one best-effort request per submission to the relay.
// It never retries and never returns an error to its caller.
type Requester struct {
	log      *slog.Logger
	client   *http.Client
	relayURL string
	timeout  time.Duration
}

func NewRequester(log *slog.Logger, relayURL string, timeout time.Duration) *Requester {
	return &Requester{
		log:      log,
		client:   &http.Client{},
		relayURL: relayURL,
		timeout:  timeout,
	}
}

func (r *Requester) RequestInsight(ctx context.Context, in roi.Inputs, res roi.Result) Narrative {
	const op = "narrative.Requester.RequestInsight"

	start := time.Now()
	reply, err := r.request(ctx, in, res)
	metrics.NarrativeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		level := slog.LevelError
		if errors.Is(ctx.Err(), context.Canceled) {
			// superseded or shutting down
			level = slog.LevelDebug
		}
		r.log.Log(ctx, level, "insight request failed",
			slog.String("op", op),
			slog.String("industry", string(in.Industry)),
			slog.String("error", err.Error()),
		)
		metrics.NarrativeRequests.WithLabelValues(metrics.OutcomeFallback).Inc()
		return Fallback()
	}

	metrics.NarrativeRequests.WithLabelValues(metrics.OutcomeOK).Inc()

	text := CleanMarkdown(reply.Text)
	return Narrative{
		Text:    text,
		HTML:    RenderHTML(text),
		Insight: reply.Insight,
	}
}

func (r *Requester) request(ctx context.Context, in roi.Inputs, res roi.Result) (*RelayReply, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	body, err := json.Marshal(RelayRequest{Inputs: &in, Results: &res})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.relayURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var relayErr RelayError
		if json.Unmarshal(payload, &relayErr) == nil && relayErr.Error != "" {
			return nil, fmt.Errorf("%w: %d: %s", ErrRelayStatus, resp.StatusCode, relayErr.Error)
		}
		return nil, fmt.Errorf("%w: %d", ErrRelayStatus, resp.StatusCode)
	}

	var reply RelayReply
	if err := json.Unmarshal(payload, &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	if strings.TrimSpace(reply.Text) == "" {
		if reply.Insight == nil {
			return nil, ErrEmptyNarrative
		}
		reply.Text = reply.Insight.Markdown()
	}

	return &reply, nil
}
