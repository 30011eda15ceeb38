package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3FrameBytes is one go-mp3 output frame: 16-bit little-endian stereo.
const mp3FrameBytes = 4

// mp3Stream adapts go-mp3 to beep.StreamSeekCloser.
type mp3Stream struct {
	dec *mp3.Decoder
	src io.Closer
	buf []byte
	err error
}

func decodeMP3(src memSource) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, errors.New("decode mp3: no sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, src: src}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil || len(samples) == 0 {
		return 0, false
	}

	need := len(samples) * mp3FrameBytes
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	n, err := io.ReadFull(s.dec, s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = fmt.Errorf("mp3 stream: %w", err)
		return 0, false
	}

	frames := n / mp3FrameBytes
	for i := range frames {
		samples[i] = pcm16Frame(s.buf[i*mp3FrameBytes:])
	}
	return frames, frames > 0
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int { return int(max(s.dec.SampleCount(), 0)) }

func (s *mp3Stream) Position() int { return int(s.dec.SamplePosition()) }

func (s *mp3Stream) Seek(p int) error {
	if err := s.dec.SeekToSample(int64(min(max(p, 0), s.Len()))); err != nil {
		return fmt.Errorf("mp3 seek: %w", err)
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error { return s.src.Close() }

// pcm16Frame converts one 16-bit little-endian stereo frame to samples.
func pcm16Frame(b []byte) [2]float64 {
	l := int16(binary.LittleEndian.Uint16(b))     //nolint:gosec // two's complement sample
	r := int16(binary.LittleEndian.Uint16(b[2:])) //nolint:gosec // two's complement sample
	return [2]float64{float64(l) / 32768, float64(r) / 32768}
}
