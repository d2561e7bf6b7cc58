// internal/service/listening/collector.go

package listening

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/sirupsen/logrus"

	"nichescout/internal/domain/market"
)

// TweetCounter is the slice of the Twitter v2 client the collector needs
type TweetCounter interface {
	TweetRecentCounts(ctx context.Context, query string, opts twitter.TweetRecentCountsOpts) (*twitter.TweetRecentCountsResponse, error)
}

// bearerAuthorizer adds app-only bearer authentication to API requests
type bearerAuthorizer struct {
	Token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.Token)
}

// NewTwitterClient creates a Twitter v2 API client with bearer authentication
func NewTwitterClient(bearerToken string) *twitter.Client {
	return &twitter.Client{
		Authorizer: bearerAuthorizer{Token: bearerToken},
		Client: &http.Client{
			Timeout: time.Second * 10,
		},
		Host: "https://api.twitter.com",
	}
}

// CollectorConfig contains configuration for the collector
type CollectorConfig struct {
	// Topics are the candidate market segments to observe
	Topics []string

	// Window is the observation window; mention counts are compared between
	// the current window and the one before it
	Window time.Duration
}

// Collector implements market.DataCollector by sampling recent tweet volume
// for each configured topic
type Collector struct {
	counts TweetCounter
	config CollectorConfig
	logger logrus.FieldLogger
}

// NewCollector creates a new Twitter-backed collector
func NewCollector(counts TweetCounter, config CollectorConfig, logger logrus.FieldLogger) *Collector {
	if config.Window <= 0 {
		config.Window = 24 * time.Hour
	}
	return &Collector{
		counts: counts,
		config: config,
		logger: logger,
	}
}

// CollectData fetches mention volume for every configured topic over the
// current and previous observation windows
func (c *Collector) CollectData(ctx context.Context) (*market.Dataset, error) {
	if len(c.config.Topics) == 0 {
		return nil, errors.New("no topics configured")
	}

	now := time.Now().UTC()
	windowStart := now.Add(-c.config.Window)
	previousStart := now.Add(-2 * c.config.Window)

	signals := make([]market.Signal, 0, len(c.config.Topics))
	for _, topic := range c.config.Topics {
		current, err := c.countWindow(ctx, topic, windowStart, now)
		if err != nil {
			return nil, fmt.Errorf("counting current mentions for %q: %w", topic, err)
		}

		previous, err := c.countWindow(ctx, topic, previousStart, windowStart)
		if err != nil {
			return nil, fmt.Errorf("counting previous mentions for %q: %w", topic, err)
		}

		c.logger.WithFields(logrus.Fields{
			"topic":    topic,
			"current":  current,
			"previous": previous,
		}).Debug("collected topic signal")

		signals = append(signals, market.Signal{
			Topic:            topic,
			Mentions:         current,
			PreviousMentions: previous,
			Sources:          []string{"twitter"},
			ObservedAt:       now,
		})
	}

	return &market.Dataset{
		Signals:     signals,
		CollectedAt: now,
	}, nil
}

// countWindow sums tweet counts for a topic between start and end
func (c *Collector) countWindow(ctx context.Context, topic string, start, end time.Time) (int, error) {
	resp, err := c.counts.TweetRecentCounts(ctx, topic, twitter.TweetRecentCountsOpts{
		StartTime:   start,
		EndTime:     end,
		Granularity: "day",
	})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, bucket := range resp.TweetCounts {
		total += bucket.TweetCount
	}
	return total, nil
}
