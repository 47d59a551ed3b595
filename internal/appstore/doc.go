// Package appstore persists generated apps and their metadata index.
//
// Layout in the durable store:
//
//	factory_app_<uuid>  → full HTML of one app
//	factory_app_index   → JSON array of IndexEntry, most-recent-first, ≤50
//
// The index enables gallery-style listing without loading full HTML. Index
// eviction past the cap does NOT delete the evicted app's full record: the
// app stays recoverable by ID at the cost of unbounded record growth. This
// mirrors the upstream behavior; callers who care can Delete explicitly.
package appstore
