package stream

import (
	"github.com/kkdai/youtube/v2"

	"github.com/ytmkit/ytmkit/internal/shared"
)

// SelectAudioFormat picks the best audio-only format: audio channels
// present, no video dimensions, highest bitrate wins.
func SelectAudioFormat(formats youtube.FormatList) (*youtube.Format, error) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 {
			continue
		}
		if f.Width != 0 || f.Height != 0 {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}

	if best == nil {
		return nil, shared.ErrNoAudioFormat
	}
	return best, nil
}
