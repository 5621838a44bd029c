package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}

	var buf bytes.Buffer
	if err := EncodeDeviceWAV(&buf, pcm); err != nil {
		t.Fatalf("EncodeDeviceWAV() error = %v", err)
	}

	out := buf.Bytes()
	if len(out) != 44+len(pcm) {
		t.Fatalf("encoded length = %d, want %d", len(out), 44+len(pcm))
	}

	if string(out[0:4]) != "RIFF" || string(out[8:12]) != "WAVE" {
		t.Errorf("bad RIFF/WAVE markers: %q %q", out[0:4], out[8:12])
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("chunk size = %d, want %d", got, 36+len(pcm))
	}
	if got := binary.LittleEndian.Uint16(out[22:24]); got != DefaultChannels {
		t.Errorf("channels = %d, want %d", got, DefaultChannels)
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != DefaultSampleRate {
		t.Errorf("sample rate = %d, want %d", got, DefaultSampleRate)
	}
	if got := binary.LittleEndian.Uint16(out[34:36]); got != DefaultBitsPerSample {
		t.Errorf("bits per sample = %d, want %d", got, DefaultBitsPerSample)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
	if !bytes.Equal(out[44:], pcm) {
		t.Error("PCM frames not copied unchanged")
	}
}

func TestEncodeWAVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeDeviceWAV(&buf, nil)
	if !errors.Is(err, ErrEmptyPCM) {
		t.Errorf("EncodeDeviceWAV(nil) error = %v, want ErrEmptyPCM", err)
	}
}

func TestDuration(t *testing.T) {
	// One second of device audio: 16000 samples * 2 bytes.
	got := Duration(32000, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
	if got != 1.0 {
		t.Errorf("Duration() = %v, want 1.0", got)
	}

	if Duration(100, 0, 0, 0) != 0 {
		t.Error("Duration with zero format should be 0")
	}
}
