package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkLimit caps concurrent requests of one bulk operation when the
// caller does not configure a limit.
const DefaultBulkLimit = 8

type BulkFailure struct {
	ItemGUID string `json:"itemGuid"`
	Error    string `json:"error"`
}

type BulkResult struct {
	SuccessCount int           `json:"successCount"`
	FailCount    int           `json:"failCount"`
	Failed       []BulkFailure `json:"failed"`
}

// runBulk calls do once per key with at most limit calls in flight. Each call
// writes only its own slot, so a failing item never cancels or rolls back the
// others.
func runBulk(ctx context.Context, limit int, keys []string, do func(ctx context.Context, i int) error) BulkResult {
	if limit <= 0 {
		limit = DefaultBulkLimit
	}

	errs := make([]error, len(keys))
	var g errgroup.Group
	g.SetLimit(limit)
	for i := range keys {
		g.Go(func() error {
			errs[i] = do(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	res := BulkResult{Failed: []BulkFailure{}}
	for i, err := range errs {
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{ItemGUID: keys[i], Error: err.Error()})
			continue
		}
		res.SuccessCount++
	}
	res.FailCount = len(res.Failed)
	return res
}
