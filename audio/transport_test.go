package audio

import (
	"errors"
	"testing"
	"time"
)

func TestPlayPauseIdempotent(t *testing.T) {
	tr := NewSynthetic("some summary text")

	tr.Pause()
	if tr.IsPlaying() {
		t.Fatal("pause while paused must stay paused")
	}

	tr.Play()
	if !tr.IsPlaying() {
		t.Fatal("play should start playback")
	}
	tr.Play()
	if !tr.IsPlaying() {
		t.Fatal("play while playing must be a no-op")
	}

	tr.Pause()
	tr.Pause()
	if tr.IsPlaying() {
		t.Fatal("pause must stop playback")
	}
}

func TestSeekDoesNotChangePlayState(t *testing.T) {
	tr := NewSynthetic("one two three")
	tr.Play()
	tr.Seek(30)
	if !tr.IsPlaying() {
		t.Fatal("seek must not pause")
	}
	if tr.Position() != 30 {
		t.Fatalf("position = %v", tr.Position())
	}

	tr.Pause()
	tr.Seek(10)
	if tr.IsPlaying() {
		t.Fatal("seek must not resume")
	}
}

func TestSeekClampsToKnownDuration(t *testing.T) {
	tr := NewSynthetic("short")
	duration, known := tr.Duration()
	if !known || duration != 60 {
		t.Fatalf("duration = %v, %v; want floor of 60", duration, known)
	}

	tr.Seek(-5)
	if tr.Position() != 0 {
		t.Fatalf("position = %v; want clamp to 0", tr.Position())
	}
	tr.Seek(500)
	if tr.Position() != 60 {
		t.Fatalf("position = %v; position must never exceed duration", tr.Position())
	}
}

func TestUnknownDurationZeroWidth(t *testing.T) {
	tr := NewReal()
	if _, known := tr.Duration(); known {
		t.Fatal("real transport must start with unknown duration")
	}
	if tr.Fraction() != 0 {
		t.Fatalf("Fraction = %v; unknown duration renders zero width", tr.Fraction())
	}

	tr.Seek(1000)
	if tr.Position() != 1000 {
		t.Fatalf("position = %v; seek is unclamped while duration is unknown", tr.Position())
	}

	tr.Apply(MetadataReady{Duration: 600})
	if tr.Position() != 600 {
		t.Fatalf("position = %v; metadata arrival must clamp", tr.Position())
	}
	if d, known := tr.Duration(); !known || d != 600 {
		t.Fatalf("duration = %v, %v", d, known)
	}
}

func TestSyntheticCompletionRewinds(t *testing.T) {
	tr := NewSynthetic("short")
	tr.Play()
	tr.Apply(Tick{Elapsed: 59 * time.Second})
	if !tr.IsPlaying() {
		t.Fatal("still mid-track")
	}
	tr.Apply(Tick{Elapsed: 2 * time.Second})
	if tr.IsPlaying() {
		t.Fatal("reaching the end must stop playback")
	}
	if tr.Position() != 0 {
		t.Fatalf("position = %v; synthetic transport rewinds on completion", tr.Position())
	}
}

func TestRealCompletionParksAtEnd(t *testing.T) {
	tr := NewReal()
	tr.Apply(MetadataReady{Duration: 120})
	tr.Play()
	tr.Apply(Progress{Position: 120})
	if tr.IsPlaying() {
		t.Fatal("reaching the end must stop playback")
	}
	if tr.Position() != 120 {
		t.Fatalf("position = %v; real transport stays at end of track", tr.Position())
	}

	tr2 := NewReal()
	tr2.Apply(MetadataReady{Duration: 90})
	tr2.Play()
	tr2.Apply(Ended{})
	if tr2.IsPlaying() || tr2.Position() != 90 {
		t.Fatalf("after Ended: playing=%v position=%v", tr2.IsPlaying(), tr2.Position())
	}
}

func TestTickScalesWithSpeed(t *testing.T) {
	tr := NewSynthetic("a long enough summary to have real duration padding words words words")
	tr.Play()
	if got := tr.CycleSpeed(); got != 1.25 {
		t.Fatalf("CycleSpeed = %v", got)
	}
	tr.Apply(Tick{Elapsed: 8 * time.Second})
	if tr.Position() != 10 {
		t.Fatalf("position = %v; 8s at 1.25x should advance 10s", tr.Position())
	}
}

func TestCycleSpeedWraps(t *testing.T) {
	tr := NewSynthetic("text")
	want := []float64{1.25, 1.5, 2, 1, 1.25}
	for i, w := range want {
		if got := tr.CycleSpeed(); got != w {
			t.Fatalf("cycle %d = %v; want %v", i, got, w)
		}
	}
}

func TestMediaErrorMakesPlaybackUnavailable(t *testing.T) {
	tr := NewReal()
	tr.Play()
	tr.Apply(MediaError{Err: errors.New("404 fetching audio")})
	if tr.IsPlaying() {
		t.Fatal("media error must stop playback")
	}
	if tr.Unavailable() == nil {
		t.Fatal("transport must report playback unavailable")
	}
	tr.Play()
	if tr.IsPlaying() {
		t.Fatal("play after media error must be a no-op; no automatic retry")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	tr := NewReal()
	tr.SetVolume(1.7)
	if tr.Volume() != 1 {
		t.Fatalf("volume = %v", tr.Volume())
	}
	tr.SetVolume(-0.2)
	if tr.Volume() != 0 {
		t.Fatalf("volume = %v", tr.Volume())
	}
}

func TestEstimateNarration(t *testing.T) {
	words := make([]byte, 0, 300*5)
	for i := 0; i < 300; i++ {
		words = append(words, []byte("word ")...)
	}
	if got := EstimateNarration(string(words)); got != 120 {
		t.Fatalf("300 words = %vs; want 120", got)
	}
	if got := EstimateNarration("just a few words"); got != 60 {
		t.Fatalf("short text = %vs; want 60s floor", got)
	}
	if got := EstimateNarration(""); got != 60 {
		t.Fatalf("empty text = %vs; want 60s floor", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Fatalf("FormatDuration(%v) = %q; want %q", c.seconds, got, c.want)
		}
	}
}
