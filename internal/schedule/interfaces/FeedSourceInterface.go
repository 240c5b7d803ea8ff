package interfaces

import "agendad/internal/models"

// FeedSourceInterface is the upstream feed boundary. Retry and backoff are
// the transport's concern; the pipeline only sees raw text or an error.
type FeedSourceInterface interface {
	Fetch(cohort models.Cohort) (string, error)
}
