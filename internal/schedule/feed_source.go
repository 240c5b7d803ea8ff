package schedule

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/schedule/interfaces"
	"agendad/internal/structures"
)

const maxFeedBodySize = 8 << 20 // 8 MB

type HTTPFeedSource struct {
	client      *http.Client
	urlTemplate string
	logger      providers.Logger
}

func NewFeedSource(conf *structures.Config, logger providers.Logger) interfaces.FeedSourceInterface {
	timeout := conf.Feed.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFeedSource{
		client:      &http.Client{Timeout: timeout},
		urlTemplate: conf.Feed.URLTemplate,
		logger:      logger,
	}
}

func (fs *HTTPFeedSource) Fetch(cohort models.Cohort) (string, error) {
	url := fmt.Sprintf(fs.urlTemplate, cohort.Course, cohort.Stream)

	resp, err := fs.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("feed fetch %s: %w", cohort, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("feed fetch %s: unexpected status %d", cohort, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodySize))
	if err != nil {
		return "", fmt.Errorf("feed fetch %s: %w", cohort, err)
	}

	fs.logger.Debugf(providers.TypeApp, "Fetched feed for %s: %d bytes", cohort, len(body))
	return string(body), nil
}
