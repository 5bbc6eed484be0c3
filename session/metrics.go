package session

import (
	"github.com/rcrowley/go-metrics"
)

var (
	connectSuccess  = metrics.GetOrRegisterCounter("lotto/connect/success", nil)
	connectFailure  = metrics.GetOrRegisterCounter("lotto/connect/failure", nil)
	refreshTimer    = metrics.GetOrRegisterTimer("lotto/refresh", nil)
	refreshPartial  = metrics.GetOrRegisterCounter("lotto/refresh/partial", nil)
	enterSuccess    = metrics.GetOrRegisterCounter("lotto/enter/success", nil)
	enterFailure    = metrics.GetOrRegisterCounter("lotto/enter/failure", nil)
	pickWinnerCount = metrics.GetOrRegisterCounter("lotto/pickwinner/success", nil)
	pickWinnerFail  = metrics.GetOrRegisterCounter("lotto/pickwinner/failure", nil)
	rejectedActions = metrics.GetOrRegisterCounter("lotto/action/rejected", nil)
)

// Stats - a point in time copy of the session metrics, keyed by metric name
func Stats() map[string]int64 {
	stats := make(map[string]int64)
	metrics.DefaultRegistry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case metrics.Counter:
			stats[name] = m.Count()
		case metrics.Timer:
			stats[name] = m.Count()
		}
	})

	return stats
}
