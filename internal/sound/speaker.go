package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Options configure the speaker sink.
type Options struct {
	SampleRate int
	Volume     float64 // master volume, 0..1
}

// DefaultOptions returns 44.1 kHz at 70% volume.
func DefaultOptions() Options {
	return Options{SampleRate: 44100, Volume: 0.7}
}

// Speaker plays a tone per event through the system audio device.
type Speaker struct {
	mu          sync.Mutex
	opts        Options
	rate        beep.SampleRate
	mixer       *beep.Mixer
	muted       bool
	initialized bool
}

// NewSpeaker creates a speaker sink. Call Init before events are audible.
func NewSpeaker(opts Options) *Speaker {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOptions().SampleRate
	}
	return &Speaker{
		opts:  opts,
		rate:  beep.SampleRate(opts.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Init opens the audio device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("sound: cannot open audio device: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Notify queues the event's tone on the mixer. It is a no-op before Init
// or while muted.
func (s *Speaker) Notify(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.muted {
		return
	}
	st := Streamer(e, s.rate, s.opts.Volume)
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// SetMuted turns audio output off or back on.
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// Muted reports whether output is muted.
func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Close drops queued tones.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
