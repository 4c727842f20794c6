package audio

import (
	"io"
	"math"
)

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// Pentatonic ladder, highest first: small fruit squeak, big fruit boom.
var tierNotes = []float64{1046.5, 880, 783.99, 659.25, 523.25, 440, 392, 329.63}

// TierFreq returns the base pitch for tier; out-of-range tiers clamp.
func TierFreq(tier int) float64 {
	tier = max(0, min(tier, len(tierNotes)-1))
	return tierNotes[tier]
}

// Generate renders kind as interleaved stereo float32 LE samples.
func Generate(kind SoundKind, tier int) []byte {
	switch kind {
	case SoundDrop:
		return genDrop(tier)
	case SoundMerge:
		return genMerge(tier)
	case SoundCull:
		return genCull()
	case SoundReset:
		return genReset()
	}
	return nil
}

// genDrop: short soft tick, pitched by tier.
func genDrop(tier int) []byte {
	n := SampleRate * 60 / 1000
	buf := makeBuf(n)
	freq := TierFreq(tier) * 0.5
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		s := fm(t, freq*(1+0.3*(1-p)), 1.0, 0.8*env) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMerge: FM bell pop with a rising second partial. Bigger tiers ring
// lower and longer.
func genMerge(tier int) []byte {
	freq := TierFreq(tier)
	dur := 0.12 + 0.03*float64(max(tier, 0))
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.05, 0.35)
		s := fm(t, freq, 2.756, 4.0*env) * env * 0.38
		s += math.Sin(2*math.Pi*freq*(1.5+0.5*p)*t) * env * 0.12
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCull: descending filtered noise whoosh.
func genCull() []byte {
	n := int(0.25 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(33333)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.9 + lcg(&seed)*0.1
		tone := math.Sin(2 * math.Pi * (300 - 180*p) * t)
		env := math.Exp(-p * 5)
		s := (lp*0.6 + tone*0.25) * env * 0.5
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genReset: crisp click + brief falling tone.
func genReset() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
