package video

import "encoding/binary"

// sampleRate is the audio output rate requested from both the APU and
// ebiten's audio context; it has no bearing on emulation cycle timing.
const sampleRate = 44100

type audioSource interface {
	AudioSamples() []float32
}

// apuStream adapts the APU's mono float32 sample queue into the stereo
// signed 16-bit little-endian PCM stream ebiten's audio player reads.
// Underruns (the emulator falling behind the audio callback) are padded
// with silence rather than blocking, since stalling audio would stall
// Draw right along with it.
type apuStream struct {
	src     audioSource
	pending []float32 // samples drained from the APU but not yet written out
}

func (s *apuStream) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		if len(s.pending) == 0 {
			s.pending = s.src.AudioSamples()
			if len(s.pending) == 0 {
				break
			}
		}
		v := int16(clampSample(s.pending[0]) * 32767)
		binary.LittleEndian.PutUint16(p[n:], uint16(v))
		binary.LittleEndian.PutUint16(p[n+2:], uint16(v))
		s.pending = s.pending[1:]
		n += 4
	}
	for i := n; i+1 < len(p); i += 2 {
		binary.LittleEndian.PutUint16(p[i:], 0)
	}
	if len(p)%4 != 0 {
		return len(p) - (len(p) % 4), nil
	}
	return len(p), nil
}

func clampSample(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
