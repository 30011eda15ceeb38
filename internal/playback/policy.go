package playback

import "time"

// PreviewLimit is how much of a track a viewer without access may hear.
const PreviewLimit = 30 * time.Second

// clampPosition bounds pos to [0, duration]. With an unknown duration
// only the lower bound applies.
func clampPosition(pos, duration time.Duration) time.Duration {
	pos = max(pos, 0)
	if duration > 0 {
		pos = min(pos, duration)
	}
	return pos
}

// progressFraction returns pos/duration, 0 while the duration is unknown.
// When capped, the result never exceeds limit/duration so a progress bar
// cannot suggest more than the preview window is reachable.
func progressFraction(pos, duration, limit time.Duration, capped bool) float64 {
	if duration <= 0 {
		return 0
	}
	if capped {
		pos = min(pos, limit)
	}
	return min(max(float64(pos)/float64(duration), 0), 1)
}

// bufferedFraction returns end/duration in [0, 1], 0 while the duration is unknown.
func bufferedFraction(end, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return min(max(float64(end)/float64(duration), 0), 1)
}

// clampVolume bounds v to [0, 1].
func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
