// Package scoreapi talks to the live-score feed. The feed serves one
// scoreboard document per matchup; this client turns that document into a
// game snapshot the grid engine can consume.
package scoreapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/boxpool/boxpool/internal/domain/game"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/platform/logging"
	"github.com/boxpool/boxpool/internal/platform/resilience"
	"github.com/boxpool/boxpool/internal/usecase"
)

const defaultBaseURL = "https://api.scorefeed.dev/v1/nfl"

var errScoreAPITransient = crerr.New("score feed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// scoreboardEnvelope is the feed's wire shape. Line scores are per-quarter
// points, not running totals.
type scoreboardEnvelope struct {
	Event struct {
		Status  string `json:"status"`
		Quarter int    `json:"quarter"`
		Clock   string `json:"clock"`
		Home    struct {
			Abbreviation string `json:"abbreviation"`
			Score        int    `json:"score"`
			LineScores   []int  `json:"line_scores"`
		} `json:"home"`
		Away struct {
			Abbreviation string `json:"abbreviation"`
			Score        int    `json:"score"`
			LineScores   []int  `json:"line_scores"`
		} `json:"away"`
	} `json:"event"`
}

func (c *Client) FetchScore(ctx context.Context, home, away team.Team) (game.Score, error) {
	if home.Abbreviation == "" || away.Abbreviation == "" {
		return game.Score{}, fmt.Errorf("both team abbreviations are required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score feed circuit breaker rejected request", "state", c.breaker.State())
			return game.Score{}, fmt.Errorf("%w: score feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildScoreboardURL(home.Abbreviation, away.Abbreviation)
	key := "scoreboard:" + home.Abbreviation + ":" + away.Abbreviation

	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errScoreAPITransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return game.Score{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return game.Score{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return game.Score{}, fmt.Errorf("decode scoreboard payload: %w", err)
	}

	return mapEnvelopeToScore(envelope, home, away), nil
}

func (c *Client) buildScoreboardURL(homeAbbr, awayAbbr string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/scoreboard?home=")
	_, _ = buf.WriteString(homeAbbr)
	_, _ = buf.WriteString("&away=")
	_, _ = buf.WriteString(awayAbbr)
	if c.token != "" {
		_, _ = buf.WriteString("&api_token=")
		_, _ = buf.WriteString(c.token)
	}

	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.sendOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !stderrors.Is(err, errScoreAPITransient) {
			return nil, err
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("score feed request failed")
	}
	c.logger.WarnContext(ctx, "score feed request failed", "url", redactTokenURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) sendOnce(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errScoreAPITransient, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return body, nil
	}
	if isRetryableStatus(status) {
		return nil, fmt.Errorf("%w: feed status=%d body=%s", errScoreAPITransient, status, abbreviateBody(body))
	}
	return nil, fmt.Errorf("feed status=%d body=%s", status, abbreviateBody(body))
}

// mapEnvelopeToScore converts line scores to the frozen cumulative pairs the
// grid engine expects. Only completed quarters freeze: everything before the
// current quarter while live, all of them once final.
func mapEnvelopeToScore(envelope scoreboardEnvelope, home, away team.Team) game.Score {
	event := envelope.Event
	status := strings.ToLower(strings.TrimSpace(event.Status))

	score := game.Score{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: event.Home.Score,
		AwayScore: event.Away.Score,
		Quarter:   event.Quarter,
		Clock:     event.Clock,
		IsActive:  status == "in_progress" || status == "halftime",
		IsOver:    status == "final",
	}

	frozen := event.Quarter - 1
	if score.IsOver {
		frozen = 4
	}
	if status == "halftime" && event.Quarter <= 2 {
		frozen = 2
	}
	if frozen > len(event.Home.LineScores) {
		frozen = len(event.Home.LineScores)
	}
	if frozen > len(event.Away.LineScores) {
		frozen = len(event.Away.LineScores)
	}

	if frozen > 0 {
		quarters := make(game.QuarterScores, frozen)
		homeTotal, awayTotal := 0, 0
		for q := 1; q <= frozen; q++ {
			homeTotal += event.Home.LineScores[q-1]
			awayTotal += event.Away.LineScores[q-1]
			quarters[q] = game.QuarterLine{Home: homeTotal, Away: awayTotal}
		}
		score.Quarters = quarters
	}

	return score
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func redactTokenURL(fullURL string) string {
	if idx := strings.Index(fullURL, "api_token="); idx >= 0 {
		return fullURL[:idx] + "api_token=***"
	}
	return fullURL
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
