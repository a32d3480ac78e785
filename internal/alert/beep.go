package alert

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

//go:embed beep.wav
var defaultSound []byte

var (
	speakerOnce sync.Once
	speakerErr  error
)

// BeepPlayer plays a buffered WAV clip through the system audio device.
type BeepPlayer struct {
	buffer *beep.Buffer
	volume float64
}

// NewBeep decodes the WAV file at path, or the built-in alert when path is
// empty, and opens the audio device. volume is a base-2 gain: 0 is the
// clip's own level, -1 is half, 1 is double.
func NewBeep(path string, volume float64) (*BeepPlayer, error) {
	buffer, err := loadClip(path)
	if err != nil {
		return nil, err
	}

	speakerOnce.Do(func() {
		sr := buffer.Format().SampleRate
		speakerErr = speaker.Init(sr, sr.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}

	return &BeepPlayer{buffer: buffer, volume: volume}, nil
}

func loadClip(path string) (*beep.Buffer, error) {
	var r io.Reader = bytes.NewReader(defaultSound)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sound file: %w", err)
		}
		r = f
	}

	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func (p *BeepPlayer) Play() {
	clip := p.buffer.Streamer(0, p.buffer.Len())
	speaker.Clear()
	speaker.Play(&effects.Volume{
		Streamer: clip,
		Base:     2,
		Volume:   p.volume,
		Silent:   false,
	})
}

func (p *BeepPlayer) Stop() {
	speaker.Clear()
}
