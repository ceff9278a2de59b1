package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Player plays a decoded buffer to completion.
type Player interface {
	Play(ctx context.Context, buf *Buffer) error
}

// PortAudioPlayer streams buffers to the default output device.
type PortAudioPlayer struct{}

// NewPortAudioPlayer returns a player backed by the default output device.
func NewPortAudioPlayer() *PortAudioPlayer {
	return &PortAudioPlayer{}
}

// Play writes buf to the default output stream and blocks until the last
// frame has been written or ctx is cancelled.
func (p *PortAudioPlayer) Play(ctx context.Context, buf *Buffer) error {
	if buf == nil || len(buf.Channels) == 0 || len(buf.Channels[0]) == 0 {
		return fmt.Errorf("empty audio buffer")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio: %w", err)
	}
	defer portaudio.Terminate()

	channels := len(buf.Channels)
	const framesPerChunk = 2048
	out := make([]float32, framesPerChunk*channels)

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(buf.SampleRate), framesPerChunk, &out)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	total := len(buf.Channels[0])
	for pos := 0; pos < total; pos += framesPerChunk {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := framesPerChunk
		if rem := total - pos; rem < n {
			n = rem
		}
		for i := range out {
			out[i] = 0
		}
		for frame := 0; frame < n; frame++ {
			for ch := 0; ch < channels; ch++ {
				out[frame*channels+ch] = buf.Channels[ch][pos+frame]
			}
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}
	return nil
}
