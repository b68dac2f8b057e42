package audio

import (
	"math"
	"testing"
)

// constStreamer gera uma senoide de amplitude fixa para os testes.
type constStreamer struct {
	amp   float64
	phase float64
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := c.amp * math.Sin(2*math.Pi*c.phase)
		samples[i][0] = v
		samples[i][1] = v
		c.phase += 440.0 / float64(SampleRate)
		if c.phase >= 1.0 {
			c.phase -= 1.0
		}
	}
	return len(samples), true
}

func (c *constStreamer) Err() error { return nil }

func pump(s interface {
	Stream([][2]float64) (int, bool)
}, chunks, chunkSize int) {
	buf := make([][2]float64, chunkSize)
	for i := 0; i < chunks; i++ {
		s.Stream(buf)
	}
}

func TestMeterSineLevel(t *testing.T) {
	tests := []struct {
		amp    float64
		wantDb float64
	}{
		{1.0, -3.01}, // senoide cheia: RMS = 1/sqrt(2)
		{0.5, -9.03},
		{0.1, -23.0},
	}

	for _, tt := range tests {
		m := NewMeter(8)
		tap := m.Tap(&constStreamer{amp: tt.amp})
		pump(tap, 8, 1024)

		got := float64(m.LoudnessDb())
		if math.Abs(got-tt.wantDb) > 0.3 {
			t.Errorf("amp %.2f: loudness = %.2f dB, esperado ~%.2f", tt.amp, got, tt.wantDb)
		}
	}
}

func TestMeterSilenceReturnsFloor(t *testing.T) {
	m := NewMeter(4)
	if got := m.LoudnessDb(); got != FloorDb {
		t.Errorf("sem amostras: %.1f, esperado piso %.1f", got, FloorDb)
	}

	tap := m.Tap(&constStreamer{amp: 0})
	pump(tap, 4, 512)
	if got := m.LoudnessDb(); got != FloorDb {
		t.Errorf("silêncio: %.1f, esperado piso %.1f", got, FloorDb)
	}
}

func TestMeterSlidingWindowForgets(t *testing.T) {
	m := NewMeter(4)

	loud := m.Tap(&constStreamer{amp: 1.0})
	pump(loud, 4, 512)
	if db := m.LoudnessDb(); db < -4 {
		t.Fatalf("nível alto não registrou: %.1f dB", db)
	}

	// Janela inteira de silêncio empurra o pico para fora.
	quiet := m.Tap(&constStreamer{amp: 0})
	pump(quiet, 8, 512)
	if db := m.LoudnessDb(); db != FloorDb {
		t.Errorf("janela não esqueceu o pico: %.1f dB", db)
	}
}

func TestAmbientBoost(t *testing.T) {
	a := NewAmbient()
	if g := a.Gain(); g != AmbientQuietGain {
		t.Fatalf("ganho inicial = %f", g)
	}
	a.Boost(true)
	if g := a.Gain(); g != AmbientLoudGain {
		t.Errorf("ganho com sopro = %f, esperado %f", g, AmbientLoudGain)
	}
	a.Boost(false)
	if g := a.Gain(); g != AmbientQuietGain {
		t.Errorf("ganho em repouso = %f, esperado %f", g, AmbientQuietGain)
	}

	// Com o sopro ativo, o medidor deve cruzar o limiar de -4 dB.
	a.Boost(true)
	m := NewMeter(8)
	tap := m.Tap(a)
	pump(tap, 8, 1024)
	if db := m.LoudnessDb(); db < -6 {
		t.Errorf("sopro ficou em %.1f dB, esperado perto de %.1f", db,
			20*math.Log10(AmbientLoudGain/math.Sqrt2))
	}
}
