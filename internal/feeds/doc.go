// package feeds implements the [Source] interface for syndication feeds.
//
// Each feed kind (Apple Music releases via rss-bridge, YouTube channel
// uploads) has its own implementation, selected by configuration. Fetching
// returns normalized entries strictly newer than the watermark, in the
// feed's native order.
package feeds
