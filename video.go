package dochive

import "regexp"

// Recognized video URL shapes and their embeddable rewrites.
var (
	youtubeWatchRe  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]+)`)
	youtubeShortsRe = regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]+)`)
	loomShareRe     = regexp.MustCompile(`loom\.com/share/([a-zA-Z0-9]+)`)
	vimeoRe         = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// EmbedURL rewrites a video URL to its embeddable form. It recognizes
// YouTube watch and short-form URLs, Loom share URLs, and Vimeo canonical
// URLs. Unrecognized URLs pass through unchanged; empty input yields
// empty output.
func EmbedURL(url string) string {
	if url == "" {
		return ""
	}

	if m := youtubeWatchRe.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	if m := youtubeShortsRe.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	if m := loomShareRe.FindStringSubmatch(url); m != nil {
		return "https://www.loom.com/embed/" + m[1]
	}
	if m := vimeoRe.FindStringSubmatch(url); m != nil {
		return "https://player.vimeo.com/video/" + m[1]
	}

	// Already an embed URL, or an unrecognized host.
	return url
}
