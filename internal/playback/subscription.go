package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged  <-chan StateChange
	TimeChanged   <-chan TimeChange
	BufferChanged <-chan BufferChange
	VolumeChanged <-chan VolumeChange
	PreviewLimit  <-chan PreviewLimitReached
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	stateCh   chan StateChange
	timeCh    chan TimeChange
	bufferCh  chan BufferChange
	volumeCh  chan VolumeChange
	previewCh chan PreviewLimitReached
	errorCh   chan ErrorEvent
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan StateChange, eventBufferSize),
		timeCh:    make(chan TimeChange, eventBufferSize),
		bufferCh:  make(chan BufferChange, eventBufferSize),
		volumeCh:  make(chan VolumeChange, eventBufferSize),
		previewCh: make(chan PreviewLimitReached, eventBufferSize),
		errorCh:   make(chan ErrorEvent, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TimeChanged = s.timeCh
	s.BufferChanged = s.bufferCh
	s.VolumeChanged = s.volumeCh
	s.PreviewLimit = s.previewCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendTime sends a time change event. The latest position always gets
// through.
func (s *Subscription) sendTime(e TimeChange) {
	sendLatest(s.timeCh, e)
}

// sendVolume sends a volume change event. The latest level always gets
// through.
func (s *Subscription) sendVolume(e VolumeChange) {
	sendLatest(s.volumeCh, e)
}

// sendLatest sends e, replacing the oldest pending event when ch is full.
func sendLatest[T any](ch chan T, e T) {
	select {
	case ch <- e:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendBuffer(e BufferChange) {
	select {
	case s.bufferCh <- e:
	default:
	}
}

func (s *Subscription) sendPreviewLimit(e PreviewLimitReached) {
	select {
	case s.previewCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
