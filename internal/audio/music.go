package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/olivierh59500/ym-player/pkg/stsound"
)

// YMStreamer renders an Atari ST YM tune as a mono beep.Streamer.
type YMStreamer struct {
	mu     sync.Mutex
	player *stsound.StSound
	buffer []int16
	length time.Duration
	loop   bool
	done   bool
}

func NewYMStreamer(data []byte, rate int, loop bool) (*YMStreamer, error) {
	player := stsound.CreateWithRate(rate)
	if err := player.LoadMemory(data); err != nil {
		player.Destroy()
		return nil, fmt.Errorf("failed to load YM data: %w", err)
	}
	player.SetLoopMode(loop)

	return &YMStreamer{
		player: player,
		buffer: make([]int16, 4096),
		length: time.Duration(player.GetInfo().MusicTimeInMs) * time.Millisecond,
		loop:   loop,
	}, nil
}

// Length is the tune's duration before it loops.
func (y *YMStreamer) Length() time.Duration {
	return y.length
}

func (y *YMStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.player == nil || y.done {
		return 0, false
	}

	for n < len(samples) {
		chunk := len(samples) - n
		if chunk > len(y.buffer) {
			chunk = len(y.buffer)
		}
		if !y.player.Compute(y.buffer[:chunk], chunk) && !y.loop {
			y.done = true
		}
		for i := 0; i < chunk; i++ {
			v := float64(y.buffer[i]) / 32768
			samples[n+i][0] = v
			samples[n+i][1] = v
		}
		n += chunk
		if y.done {
			break
		}
	}
	return n, true
}

func (y *YMStreamer) Err() error {
	return nil
}

func (y *YMStreamer) Close() {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.player != nil {
		y.player.Destroy()
		y.player = nil
	}
}
