// Package audio wraps raw device PCM into playable WAV files.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Device capture format: 16kHz mono 16-bit, the wearable's fixed output.
const (
	DefaultSampleRate    = 16000
	DefaultChannels      = 1
	DefaultBitsPerSample = 16
)

// ErrEmptyPCM is returned when there is no audio data to encode.
var ErrEmptyPCM = errors.New("no audio data")

// EncodeWAV writes a canonical RIFF/WAVE file: the 44-byte header followed
// by the PCM frames unchanged.
func EncodeWAV(w io.Writer, pcm []byte, sampleRate, channels, bitsPerSample int) error {
	if len(pcm) == 0 {
		return ErrEmptyPCM
	}
	if sampleRate <= 0 || channels <= 0 || bitsPerSample <= 0 {
		return fmt.Errorf("invalid format: rate=%d channels=%d bits=%d", sampleRate, channels, bitsPerSample)
	}

	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing WAV header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("writing PCM data: %w", err)
	}
	return nil
}

// EncodeDeviceWAV encodes PCM in the wearable's fixed capture format.
func EncodeDeviceWAV(w io.Writer, pcm []byte) error {
	return EncodeWAV(w, pcm, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
}

// Duration returns the clip length in seconds for PCM in the given format.
func Duration(pcmLen, sampleRate, channels, bitsPerSample int) float64 {
	byteRate := sampleRate * channels * bitsPerSample / 8
	if byteRate == 0 {
		return 0
	}
	return float64(pcmLen) / float64(byteRate)
}
