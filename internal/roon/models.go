package roon

import (
	"encoding/json"
)

// PlaybackState is the transport state of a zone.
type PlaybackState string

const (
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
	StateStopped PlaybackState = "stopped"
	StateLoading PlaybackState = "loading"
)

// ParsePlaybackState coerces a controller state string. Unknown values map to StateStopped.
func ParsePlaybackState(s string) PlaybackState {
	switch PlaybackState(s) {
	case StatePlaying, StatePaused, StateLoading:
		return PlaybackState(s)
	default:
		return StateStopped
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (s *PlaybackState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParsePlaybackState(raw)
	return nil
}

// LoopMode is the repeat setting of a zone.
type LoopMode string

const (
	LoopDisabled LoopMode = "disabled"
	LoopAll      LoopMode = "loop"
	LoopOne      LoopMode = "loop_one"
)

// Next returns the mode that follows m in the disabled, loop, loop_one cycle.
// Unrecognised modes restart the cycle at disabled.
func (m LoopMode) Next() LoopMode {
	switch m {
	case LoopDisabled:
		return LoopAll
	case LoopAll:
		return LoopOne
	default:
		return LoopDisabled
	}
}

// Zone is a logical audio destination as reported by `zones --json`.
type Zone struct {
	ZoneID              string        `json:"zoneId" yaml:"zone_id"`
	DisplayName         string        `json:"displayName" yaml:"display_name"`
	State               PlaybackState `json:"state" yaml:"state"`
	Outputs             []Output      `json:"outputs" yaml:"outputs"`
	NowPlaying          *NowPlaying   `json:"nowPlaying,omitempty" yaml:"now_playing,omitempty"`
	QueueItemsRemaining int           `json:"queueItemsRemaining" yaml:"queue_items_remaining"`
	QueueTimeRemaining  int           `json:"queueTimeRemaining" yaml:"queue_time_remaining"`
	Settings            ZoneSettings  `json:"settings" yaml:"settings"`
}

// FirstOutput returns the zone's first output, or nil when it has none.
func (z *Zone) FirstOutput() *Output {
	if z == nil || len(z.Outputs) == 0 {
		return nil
	}
	return &z.Outputs[0]
}

// ZoneSettings holds the per-zone playback toggles.
type ZoneSettings struct {
	Loop      LoopMode `json:"loop" yaml:"loop"`
	Shuffle   bool     `json:"shuffle" yaml:"shuffle"`
	AutoRadio bool     `json:"autoRadio" yaml:"auto_radio"`
}

// Output is an audio endpoint that belongs to a zone.
type Output struct {
	OutputID    string  `json:"outputId" yaml:"output_id"`
	DisplayName string  `json:"displayName" yaml:"display_name"`
	Volume      *Volume `json:"volume,omitempty" yaml:"volume,omitempty"`
}

// Volume of an output. Value is bounded by Min and Max.
type Volume struct {
	Value   float64 `json:"value" yaml:"value"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	IsMuted bool    `json:"isMuted" yaml:"is_muted"`
}

// NowPlaying describes the current track of a zone. Positions are in seconds;
// a Length of 0 means the duration is unknown.
type NowPlaying struct {
	Artist       string  `json:"artist" yaml:"artist"`
	Track        string  `json:"track" yaml:"track"`
	Album        string  `json:"album" yaml:"album"`
	ImageKey     string  `json:"imageKey,omitempty" yaml:"image_key,omitempty"`
	SeekPosition float64 `json:"seekPosition" yaml:"seek_position"`
	Length       float64 `json:"length" yaml:"length"`
	AlbumArtURL  *string `json:"albumArtUrl,omitempty" yaml:"album_art_url,omitempty"`
}

// ArtURL returns the album-art URL, or "" when none was reported.
func (np *NowPlaying) ArtURL() string {
	if np == nil || np.AlbumArtURL == nil {
		return ""
	}
	return *np.AlbumArtURL
}

// Browse item hints.
const (
	HintList       = "list"
	HintActionList = "action_list"
)

// BrowseItem is one row of a browse or search listing.
type BrowseItem struct {
	ItemKey  *string `json:"itemKey,omitempty"`
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	ImageKey *string `json:"imageKey,omitempty"`
	Hint     *string `json:"hint,omitempty"`
}

// HintValue returns the item's hint, or "" when absent.
func (i BrowseItem) HintValue() string {
	if i.Hint == nil {
		return ""
	}
	return *i.Hint
}

// SubtitleValue returns the item's subtitle, or "" when absent.
func (i BrowseItem) SubtitleValue() string {
	if i.Subtitle == nil {
		return ""
	}
	return *i.Subtitle
}

// ActionMessage marks a BrowseResult produced by a play-like terminal action.
const ActionMessage = "message"

// BrowseResult is the response of browse, search, select and back.
type BrowseResult struct {
	Action  *string      `json:"action,omitempty"`
	Items   []BrowseItem `json:"items"`
	Title   *string      `json:"title,omitempty"`
	Level   *int         `json:"level,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Message *string      `json:"message,omitempty"`
}

// IsMessage reports whether the result came from a terminal play action and
// carries no listing.
func (r *BrowseResult) IsMessage() bool {
	return r != nil && r.Action != nil && *r.Action == ActionMessage
}

// TitleOr returns the result title, or fallback when none was given.
func (r *BrowseResult) TitleOr(fallback string) string {
	if r == nil || r.Title == nil {
		return fallback
	}
	return *r.Title
}
