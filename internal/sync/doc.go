// package sync implements the feed-to-task synchronization run.
//
// The core abstraction is Engine, which drives one batch pass: fetch new
// entries per source, transform them into task payloads, create missing
// tasks, then advance the watermark. Operations emit progress updates via
// channels for non-blocking status reporting to the CLI layer.
package sync
