// Package reconcile keeps the thumbnail and rescaled caches consistent with
// the wallpapers directory.
//
// A pass is a two-phase mark and sweep with no persisted index:
//
//   - Mark: every regular file in the source directory contributes one live
//     thumbnail key (<stem>.jpg) and one live rescaled key (<name>). Missing
//     thumbnails are generated; a missing rescaled copy triggers a resolution
//     probe and is generated only when the native resolution differs from the
//     target.
//   - Sweep: after the mark phase completes, every regular file in either cache
//     directory that is not a live key is removed.
//
// Any prober, transcoder, listing, or removal failure aborts the pass. Entries
// are never refreshed when source content changes; only missing or orphaned
// entries are acted on.
//
// AcquirePassLock serializes passes across processes and Watch re-runs passes
// when the source directory changes.
package reconcile
