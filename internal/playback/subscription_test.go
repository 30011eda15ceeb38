package playback

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{TrackID: "t1", Previous: StateReady, Current: StatePlaying})
		sub.sendTime(TimeChange{Position: 12 * time.Second, Progress: 0.1})
		sub.sendBuffer(BufferChange{Fraction: 0.5})
		sub.sendVolume(VolumeChange{Volume: 0.3})
		sub.sendPreviewLimit(PreviewLimitReached{TrackID: "t1", Limit: PreviewLimit})
		sub.sendError(ErrorEvent{TrackID: "t1", Kind: KindMediaLoad, Err: ErrMediaLoad})

		e := <-sub.StateChanged
		if e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}

		tc := <-sub.TimeChanged
		if tc.Position != 12*time.Second {
			t.Errorf("TimeChanged.Position = %v, want 12s", tc.Position)
		}

		b := <-sub.BufferChanged
		if b.Fraction != 0.5 {
			t.Errorf("BufferChanged.Fraction = %v, want 0.5", b.Fraction)
		}

		v := <-sub.VolumeChanged
		if v.Volume != 0.3 {
			t.Errorf("VolumeChanged.Volume = %v, want 0.3", v.Volume)
		}

		p := <-sub.PreviewLimit
		if p.Limit != PreviewLimit {
			t.Errorf("PreviewLimit.Limit = %v, want %v", p.Limit, PreviewLimit)
		}

		er := <-sub.Error
		if er.Kind != KindMediaLoad {
			t.Errorf("Error.Kind = %v, want %v", er.Kind, KindMediaLoad)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendState(StateChange{})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}

func TestSubscription_SendTime_KeepsLatest(t *testing.T) {
	sub := newSubscription()

	for i := range eventBufferSize + 5 {
		sub.sendTime(TimeChange{Position: time.Duration(i) * time.Second})
	}

	var last TimeChange
	count := 0
	for len(sub.TimeChanged) > 0 {
		last = <-sub.TimeChanged
		count++
	}
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d", count, eventBufferSize)
	}
	want := time.Duration(eventBufferSize+4) * time.Second
	if last.Position != want {
		t.Errorf("last Position = %v, want %v", last.Position, want)
	}
}
