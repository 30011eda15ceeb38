package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// output is the audio sink a Player writes to.
type output interface {
	// Init prepares the sink for a source at rate and returns the rate the
	// sink actually runs at.
	Init(rate beep.SampleRate) (beep.SampleRate, error)
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerOutput drives the process-wide beep speaker. The speaker is
// initialised once, at the rate of the first source; later sources are
// resampled to it.
type speakerOutput struct {
	once sync.Once
	rate beep.SampleRate
	err  error
}

func (o *speakerOutput) Init(rate beep.SampleRate) (beep.SampleRate, error) {
	o.once.Do(func() {
		o.rate = rate
		o.err = speaker.Init(rate, rate.N(time.Second/10))
	})
	return o.rate, o.err
}

func (o *speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (o *speakerOutput) Clear() { speaker.Clear() }

func (o *speakerOutput) Lock() { speaker.Lock() }

func (o *speakerOutput) Unlock() { speaker.Unlock() }
