/*
Package observability turns machine lifecycle events into logs and Prometheus metrics.

Both are plain domain.LifecycleHooks, so they compose with Merge:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.LogHooks(logger).Merge(metrics.Hooks())
	eng, err := automata.New("machines/flip.tm", automata.WithLifecycleHooks(hooks))
*/
package observability
