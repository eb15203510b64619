// Package metrics provides constants used across metric definitions.
package metrics

// Operation label values.
const (
	// OpTrain is a full training run.
	OpTrain = "train"
	// OpIdentify is one identification request.
	OpIdentify = "identify"
	// OpEvaluate is a held-out evaluation run.
	OpEvaluate = "evaluate"
	// OpCorpusLoad is reading a corpus from disk.
	OpCorpusLoad = "corpus_load"
	// OpCacheGet is a result cache lookup.
	OpCacheGet = "cache_get"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusHit     = "hit"
	StatusMiss    = "miss"
)

// LabelEnsemble is the model label for the combined distribution.
const LabelEnsemble = "ensemble"

// Histogram bucket configuration.
const (
	// BucketStart1ms is the starting bucket for 1ms histograms (1ms to ~30s range).
	BucketStart1ms = 0.001
	// BucketStart10ms is the starting bucket for 10ms histograms (10ms to ~10min range).
	BucketStart10ms = 0.01

	// BucketFactor2 is the common exponential growth factor for histogram buckets.
	BucketFactor2 = 2

	// BucketCount15 defines 15 exponential buckets.
	BucketCount15 = 15
	// BucketCount16 defines 16 exponential buckets.
	BucketCount16 = 16
)
