package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Tone describes a short synthesized blip.
type Tone struct {
	Freq     float64
	EndFreq  float64 // linear sweep target; zero keeps Freq
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Wave     Wave
	Gain     float64
}

// Tones maps every event to the sound it makes.
var Tones = map[Event]Tone{
	EventMoved:          {Freq: 220, Duration: 30 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 20 * time.Millisecond, Wave: WaveTriangle, Gain: 0.15},
	EventItemCollected:  {Freq: 880, EndFreq: 1320, Duration: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 80 * time.Millisecond, Wave: WaveSine, Gain: 0.6},
	EventDroneDestroyed: {Freq: 300, EndFreq: 60, Duration: 250 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 180 * time.Millisecond, Wave: WaveSaw, Gain: 0.5},
	EventGameOver:       {Freq: 440, EndFreq: 110, Duration: 600 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 400 * time.Millisecond, Wave: WaveSquare, Gain: 0.4},
	EventVictory:        {Freq: 523, EndFreq: 1046, Duration: 500 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 250 * time.Millisecond, Wave: WaveSine, Gain: 0.6},
	EventFired:          {Freq: 1200, EndFreq: 600, Duration: 60 * time.Millisecond, Attack: 1 * time.Millisecond, Release: 40 * time.Millisecond, Wave: WaveSquare, Gain: 0.2},
	EventDroneHit:       {Freq: 160, Duration: 80 * time.Millisecond, Attack: 1 * time.Millisecond, Release: 60 * time.Millisecond, Wave: WaveSaw, Gain: 0.35},
}

type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newOscillator(t Tone, rate beep.SampleRate) *oscillator {
	return &oscillator{tone: t, rate: rate, total: rate.N(t.Duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.tone.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freqAt() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) freqAt() float64 {
	if o.tone.EndFreq == 0 || o.total == 0 {
		return o.tone.Freq
	}
	p := float64(o.position) / float64(o.total)
	return o.tone.Freq + (o.tone.EndFreq-o.tone.Freq)*p
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, t Tone, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(t.Attack),
		release:  rate.N(t.Release),
		total:    rate.N(t.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly. Zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer synthesizes the tone for e at the given rate and master volume.
// Unknown events yield a silent zero-length stream.
func Streamer(e Event, rate beep.SampleRate, master float64) beep.Streamer {
	t, ok := Tones[e]
	if !ok {
		return beep.Silence(0)
	}
	return withVolume(newEnvelope(newOscillator(t, rate), t, rate), t.Gain*master)
}
