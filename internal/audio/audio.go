// Package audio converts the raw PCM returned by speech synthesis into
// playable sample buffers and WAV files.
//
// The provider emits little-endian 16-bit signed PCM, interleaved when more
// than one channel is present. Decoding normalizes samples to the [-1, 1)
// floating range by dividing by 32768.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Synthesis defaults used by the speech provider.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

// Buffer holds decoded audio, one sample slice per channel.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 || len(b.Channels) == 0 {
		return 0
	}
	return time.Duration(len(b.Channels[0])) * time.Second / time.Duration(b.SampleRate)
}

// Decode interprets pcm as little-endian int16 samples, de-interleaved into
// channels and normalized to [-1, 1). A trailing odd byte is ignored.
func Decode(pcm []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	frames := len(pcm) / 2 / channels
	buf := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float32, frames)
	}

	for frame := 0; frame < frames; frame++ {
		for ch := 0; ch < channels; ch++ {
			off := (frame*channels + ch) * 2
			sample := int16(binary.LittleEndian.Uint16(pcm[off : off+2]))
			buf.Channels[ch][frame] = float32(sample) / 32768
		}
	}
	return buf, nil
}

// WriteWAV wraps raw little-endian 16-bit PCM in a WAV container.
func WriteWAV(w io.Writer, pcm []byte, sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", channels)
	}

	const bitsPerSample = 16
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataLen := len(pcm)

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}
