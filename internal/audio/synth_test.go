package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func TestGenerateSamplesInRange(t *testing.T) {
	tests := []struct {
		name string
		kind SoundKind
		tier int
	}{
		{"drop", SoundDrop, 0},
		{"merge small", SoundMerge, 1},
		{"merge big", SoundMerge, 7},
		{"cull", SoundCull, 2},
		{"reset", SoundReset, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Generate(tt.kind, tt.tier)
			if len(buf) == 0 || len(buf)%8 != 0 {
				t.Fatalf("buffer length %d, want a non-empty multiple of 8", len(buf))
			}
			for i := 0; i < len(buf); i += 4 {
				v := math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))
				if math.IsNaN(float64(v)) || v < -1 || v > 1 {
					t.Fatalf("sample %d = %v out of [-1,1]", i/4, v)
				}
			}
		})
	}
}

func TestMergeRingsLongerForBigTiers(t *testing.T) {
	if small, big := len(Generate(SoundMerge, 0)), len(Generate(SoundMerge, 7)); big <= small {
		t.Fatalf("tier 7 merge %d bytes, tier 0 %d bytes", big, small)
	}
	if TierFreq(0) <= TierFreq(7) {
		t.Fatal("higher tiers should sound lower")
	}
	if TierFreq(-3) != TierFreq(0) || TierFreq(99) != TierFreq(7) {
		t.Fatal("out-of-range tiers should clamp")
	}
}

func TestUnknownKindIsSilent(t *testing.T) {
	if buf := Generate(SoundKind(99), 0); buf != nil {
		t.Fatalf("unknown kind generated %d bytes", len(buf))
	}
}

func TestADSR(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 0},
		{0.05, 0.5},
		{0.1, 1},
		{0.5, 0.5},
		{0.95, 0.25},
	}
	for _, tt := range tests {
		if got := adsr(tt.p, 0.1, 0.2, 0.5, 0.1); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("adsr(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	if err != nil || len(got) != 5 {
		t.Fatalf("ReadAll = %v, %v", got, err)
	}
}

func TestNilSystemPlayIsNoop(t *testing.T) {
	var s *System
	s.Play(SoundMerge, 1, 1)
}
