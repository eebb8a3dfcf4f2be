// Package audio plays the landing thuds and the optional YM background tune
// through a single beep mixer.
package audio

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	thudLength = 220 * time.Millisecond
	// Landing speeds at or above this play at full strength
	thudFullSpeed = 400
	// At most this many thuds overlap; extra landings in the same burst are dropped
	maxThuds = 6
)

// SoundManager owns the speaker. Every method is safe to call before
// Initialize or after Cleanup; they do nothing then.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	volume      float64
	music       *beep.Ctrl
	song        *YMStreamer
	thuds       atomic.Int32 // released from the speaker goroutine
	initialized bool
}

// NewSoundManager takes a master volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: newVolume(mixer, volume),
		volume: volume,
	}
}

// newVolume maps a linear gain onto effects.Volume's log2 scale.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	if vol > 1 {
		vol = 1
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	if sm.song != nil {
		sm.song.Close()
		sm.song = nil
	}
	sm.music = nil
	sm.thuds.Store(0)
	sm.initialized = false
}

// SetMuted silences the master bus without stopping the streams.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.master.Silent = muted || sm.volume <= 0
}

// PlayThud is wired to the letters' landing cue.
func (sm *SoundManager) PlayThud(speed float32) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.thuds.Load() >= maxThuds {
		return
	}
	sm.thuds.Add(1)
	thud := beep.Take(sampleRate.N(thudLength), NewThudGenerator(sampleRate, ThudStrength(speed)))
	done := beep.Callback(func() { sm.thuds.Add(-1) })

	speaker.Lock()
	sm.mixer.Add(beep.Seq(thud, done))
	speaker.Unlock()
}

// PlayMusicFile loops a YM tune under the effects. An empty path is a no-op.
func (sm *SoundManager) PlayMusicFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("music %s: %w", path, err)
	}
	return sm.PlayMusic(data)
}

func (sm *SoundManager) PlayMusic(data []byte) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	song, err := NewYMStreamer(data, int(sampleRate), true)
	if err != nil {
		return err
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.music = &beep.Ctrl{Streamer: newVolume(song, 0.5)}
	sm.mixer.Add(sm.music)
	speaker.Unlock()

	if sm.song != nil {
		sm.song.Close()
	}
	sm.song = song
	log.Printf("Audio: playing YM tune (%v)", song.Length())
	return nil
}

// ThudStrength maps a landing speed onto a gain in [0.1, 1].
func ThudStrength(speed float32) float64 {
	s := float64(speed) / thudFullSpeed
	return math.Max(0.1, math.Min(s, 1))
}

// ThudGenerator is a pitch-dropping sine with a burst of noise, decaying
// exponentially.
type ThudGenerator struct {
	sr       beep.SampleRate
	strength float64
	pos      int
	seed     uint32
}

func NewThudGenerator(sr beep.SampleRate, strength float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, strength: strength, seed: 0x9e3779b9}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 18)

		freq := 55 + 55*math.Exp(-t*30)
		body := math.Sin(2 * math.Pi * freq * t)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		click := noise * math.Exp(-t*120)

		sample := 0.45 * g.strength * env * (0.8*body + 0.2*click)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}
