// Package audio models a single playable timeline as an explicit state
// machine fed by discrete events, so the same logic runs against a real audio
// asset or a synthesized narration timeline, and is testable without a media
// backend.
package audio

import "time"

// Mode distinguishes a real audio asset from the synthetic timeline used to
// narrate a text summary that has no underlying audio.
type Mode int

const (
	ModeReal Mode = iota
	ModeSynthetic
)

// Speeds is the fixed playback-rate cycle; CycleSpeed wraps to the first
// entry after the last.
var Speeds = []float64{1, 1.25, 1.5, 2}

// Event is a discrete input to the transport state machine.
type Event interface{ isEvent() }

// MetadataReady delivers the authoritative duration once the media backend
// has loaded it.
type MetadataReady struct{ Duration float64 }

// Progress reports the media backend's playback position.
type Progress struct{ Position float64 }

// Tick advances a clock-driven timeline by wall time; the transport scales it
// by the playback rate.
type Tick struct{ Elapsed time.Duration }

// Ended signals that the media backend reached the end of the track.
type Ended struct{}

// MediaError signals that the underlying media failed to load or play.
type MediaError struct{ Err error }

func (MetadataReady) isEvent() {}
func (Progress) isEvent()      {}
func (Tick) isEvent()          {}
func (Ended) isEvent()         {}
func (MediaError) isEvent()    {}

// Transport owns playback position, duration, play state, volume and speed
// for one timeline. Duration may be unknown at construction (real audio whose
// metadata has not loaded); position-dependent displays treat unknown
// duration as zero width.
type Transport struct {
	mode          Mode
	position      float64
	duration      float64
	durationKnown bool
	playing       bool
	volume        float64
	speedIndex    int
	err           error
}

// NewReal creates a transport for a real audio asset. The duration stays
// unknown until a MetadataReady event arrives.
func NewReal() *Transport {
	return &Transport{mode: ModeReal, volume: 1}
}

// NewSynthetic creates a transport narrating the given text; the duration is
// estimated from word count and known immediately.
func NewSynthetic(text string) *Transport {
	return &Transport{
		mode:          ModeSynthetic,
		volume:        1,
		duration:      EstimateNarration(text),
		durationKnown: true,
	}
}

// Play starts playback. Calling it while already playing, or after a media
// error, is a no-op.
func (t *Transport) Play() {
	if t.playing || t.err != nil {
		return
	}
	t.playing = true
}

// Pause stops playback without moving the position. A no-op when not playing.
func (t *Transport) Pause() {
	if !t.playing {
		return
	}
	t.playing = false
}

// Stop halts playback and rewinds to the start.
func (t *Transport) Stop() {
	t.playing = false
	t.position = 0
}

// Seek sets the position directly. It never changes the play state, and
// clamps into [0, duration] once the duration is known.
func (t *Transport) Seek(position float64) {
	if position < 0 {
		position = 0
	}
	if t.durationKnown && position > t.duration {
		position = t.duration
	}
	t.position = position
}

// SeekBy moves the position relative to where it is now.
func (t *Transport) SeekBy(delta float64) {
	t.Seek(t.position + delta)
}

// CycleSpeed advances to the next playback rate and returns it.
func (t *Transport) CycleSpeed() float64 {
	t.speedIndex = (t.speedIndex + 1) % len(Speeds)
	return Speeds[t.speedIndex]
}

// SetVolume clamps into [0, 1].
func (t *Transport) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	t.volume = v
}

// Apply feeds one event into the state machine.
func (t *Transport) Apply(ev Event) {
	switch ev := ev.(type) {
	case MetadataReady:
		if ev.Duration > 0 {
			t.duration = ev.Duration
			t.durationKnown = true
			if t.position > t.duration {
				t.position = t.duration
			}
		}
	case Progress:
		t.position = ev.Position
		t.clampAndFinish()
	case Tick:
		if !t.playing {
			return
		}
		t.position += ev.Elapsed.Seconds() * t.Speed()
		t.clampAndFinish()
	case Ended:
		t.finish()
	case MediaError:
		t.playing = false
		t.err = ev.Err
	}
}

// clampAndFinish enforces position <= duration and runs completion when the
// end of the track is reached.
func (t *Transport) clampAndFinish() {
	if !t.durationKnown {
		return
	}
	if t.position >= t.duration {
		t.position = t.duration
		if t.playing {
			t.finish()
		}
	}
}

// finish mirrors how the two backends report completion: the synthetic
// timeline rewinds to the start, a real media element stays parked at the end
// of the track.
func (t *Transport) finish() {
	t.playing = false
	if t.mode == ModeSynthetic {
		t.position = 0
		return
	}
	if t.durationKnown {
		t.position = t.duration
	}
}

// Mode returns the transport kind.
func (t *Transport) Mode() Mode { return t.mode }

// Position returns the elapsed seconds.
func (t *Transport) Position() float64 { return t.position }

// Duration returns the track length and whether it is known yet.
func (t *Transport) Duration() (float64, bool) { return t.duration, t.durationKnown }

// IsPlaying reports the play state.
func (t *Transport) IsPlaying() bool { return t.playing }

// Volume returns the current volume in [0, 1].
func (t *Transport) Volume() float64 { return t.volume }

// Speed returns the current playback rate.
func (t *Transport) Speed() float64 { return Speeds[t.speedIndex] }

// Unavailable returns the media failure, if playback is unavailable. The
// rest of the view keeps working; only the transport is dead.
func (t *Transport) Unavailable() error { return t.err }

// Fraction returns position/duration in [0, 1] for progress rendering, and 0
// while the duration is unknown.
func (t *Transport) Fraction() float64 {
	if !t.durationKnown || t.duration <= 0 {
		return 0
	}
	f := t.position / t.duration
	if f > 1 {
		return 1
	}
	return f
}
