// internal/player/interface.go
package player

import "time"

// Interface defines the media primitive contract for dependency injection and testing.
//
// Load and Play are asynchronous: their outcome is reported later, through
// listener events for Load and through the done callback for Play.
// Implementations never invoke listeners or done callbacks synchronously
// from inside one of these methods.
//
// Every Load returns a new Source token. Events are delivered together with
// the token of the load that produced them, so listeners can drop
// notifications that belong to a superseded load.
type Interface interface {
	Load(url string) Source
	Play(done func(error))
	Pause()
	SeekTo(position time.Duration)
	Position() time.Duration
	SetVolume(level float64)
	Listen(fn Listener) (cancel func())
	Close() error
}

// Source identifies one Load call on a media primitive.
type Source uint64

// Listener receives events from a media primitive.
type Listener func(src Source, e Event)

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
