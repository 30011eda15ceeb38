package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Track is the metadata of a catalog track.
type Track struct {
	ID          string
	Title       string
	Artist      string
	ArtworkURL  string
	AudioURL    string // direct audio file, may be empty
	Description string
	Duration    time.Duration // hint from the catalog, 0 when unknown
	Price       *Price        // starting price, nil when not for sale
}

// Price is a starting price in a currency's major unit.
type Price struct {
	Amount   float64
	Currency string
}

// String renders the price for display, e.g. "from 1,250.00 USD".
func (p Price) String() string {
	return fmt.Sprintf("from %s %s", humanize.FormatFloat("#,###.##", p.Amount), strings.ToUpper(p.Currency))
}

// Stream is a resolved streaming source for a track.
type Stream struct {
	URL    string
	Format string
	Size   int64 // bytes, 0 when unknown
}

// SizeLabel renders Size for display, "" when unknown.
func (s Stream) SizeLabel() string {
	return sizeLabel(s.Size)
}

// Origin tells where a resolved source URL came from.
type Origin string

const (
	OriginNone   Origin = ""
	OriginDirect Origin = "direct"
	OriginStream Origin = "stream"
)

// Source is the URL the player should load for a track.
// An empty URL means the track has no playable source.
type Source struct {
	URL    string
	Origin Origin
	Format string
	Size   int64
}

// Empty reports whether no playable source was found.
func (s Source) Empty() bool {
	return s.URL == ""
}

// SizeLabel renders Size for display, "" when unknown.
func (s Source) SizeLabel() string {
	return sizeLabel(s.Size)
}

func sizeLabel(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}

// ShareEvent records that a track view was opened.
type ShareEvent struct {
	ID       string
	TrackID  string
	Platform string
	At       time.Time
}

// Wire formats.

type trackResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist struct {
		DisplayName string `json:"display_name"`
	} `json:"artist"`
	ArtworkURL      string         `json:"artwork_url"`
	AudioURL        string         `json:"audio_url"`
	Description     string         `json:"description"`
	DurationSeconds float64        `json:"duration_seconds"`
	StartingPrice   *priceResponse `json:"starting_price"`
}

type priceResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type streamResponse struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

type shareRequest struct {
	EventID  string `json:"event_id"`
	TrackID  string `json:"track_id"`
	Platform string `json:"platform"`
	At       string `json:"created_at"`
}

func (r trackResponse) toTrack() *Track {
	t := &Track{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist.DisplayName,
		ArtworkURL:  r.ArtworkURL,
		AudioURL:    r.AudioURL,
		Description: r.Description,
		Duration:    time.Duration(r.DurationSeconds * float64(time.Second)),
	}
	if r.StartingPrice != nil {
		t.Price = &Price{Amount: r.StartingPrice.Amount, Currency: r.StartingPrice.Currency}
	}
	return t
}
