package player

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

type sourceFormat string

const (
	formatUnknown sourceFormat = ""
	formatMP3     sourceFormat = "mp3"
	formatFLAC    sourceFormat = "flac"
	formatWAV     sourceFormat = "wav"
)

// detectFormat picks a decoder from the Content-Type header, then the URL
// extension, then the leading bytes of the body.
func detectFormat(contentType, rawURL string, data []byte) sourceFormat {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "audio/mpeg", "audio/mp3":
			return formatMP3
		case "audio/flac", "audio/x-flac":
			return formatFLAC
		case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
			return formatWAV
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".mp3":
			return formatMP3
		case ".flac":
			return formatFLAC
		case ".wav":
			return formatWAV
		}
	}

	return sniffFormat(data)
}

func sniffFormat(data []byte) sourceFormat {
	switch {
	case bytes.HasPrefix(data, []byte("fLaC")):
		return formatFLAC
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return formatWAV
	case bytes.HasPrefix(data, []byte("ID3")):
		// ID3v2 is used in front of both MP3 and, occasionally, FLAC.
		if r := bytes.NewReader(data); skipID3v2(r) == nil {
			var magic [4]byte
			if _, err := io.ReadFull(r, magic[:]); err == nil && string(magic[:]) == "fLaC" {
				return formatFLAC
			}
		}
		return formatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return formatMP3
	}
	return formatUnknown
}

// memSource is an in-memory, seekable body handed to decoders.
type memSource struct {
	*bytes.Reader
}

func (memSource) Close() error { return nil }

func decode(data []byte, kind sourceFormat) (beep.StreamSeekCloser, beep.Format, error) {
	r := memSource{bytes.NewReader(data)}

	switch kind {
	case formatMP3:
		return decodeMP3(r)
	case formatFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(r); err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode flac: %w", err)
		}
		s, f, err := flac.Decode(r)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode flac: %w", err)
		}
		return s, f, nil
	case formatWAV:
		s, f, err := wav.Decode(r)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
		}
		return s, f, nil
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format")
	}
}

// skipID3v2 skips an ID3v2 tag if present at the current position.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n < 10 {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	if string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
