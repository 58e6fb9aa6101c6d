// Package media resolves a source URL into a byte stream and stages it on
// local disk for providers that need the bytes.
//
// A Locator turns a URL into a stream: HTTPLocator for direct media links,
// ExtractorLocator for video pages handled by yt-dlp, RoutingLocator to pick
// between them by host. A Stager writes one stream to a uniquely named file
// and returns a Handle whose Release removes it exactly once.
package media
