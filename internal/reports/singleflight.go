package reports

import (
	"context"

	"golang.org/x/sync/singleflight"
)

func singleflightDo(ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	resultChan := group.DoChan(key, func() (any, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}
