package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	pkgutil "TetraVision/shared/pkg/util"
)

// FloorDb é o piso retornado quando não há sinal mensurável.
const FloorDb float32 = -100

// chunkPower é a energia acumulada de um bloco de amostras entregue pelo
// callback do speaker.
type chunkPower struct {
	sum float64
	n   int
}

// Meter mede o nível RMS (em dBFS) de um streamer interceptado. O callback
// de áudio roda em outra thread, então as medições atravessam um buffer
// circular lock-free até o frame loop.
type Meter struct {
	ring *pkgutil.RingBuffer[chunkPower]

	// janela deslizante, tocada apenas pela thread do frame loop
	window []chunkPower
	idx    int
	filled int
}

// NewMeter cria um medidor com janela de windowChunks blocos de áudio
// (cada bloco é um callback do speaker, ~10-50ms).
func NewMeter(windowChunks int) *Meter {
	if windowChunks < 1 {
		windowChunks = 1
	}
	return &Meter{
		ring:   pkgutil.NewRingBuffer[chunkPower](windowChunks * 4),
		window: make([]chunkPower, windowChunks),
	}
}

// Tap devolve um streamer que repassa s e alimenta o medidor. O fluxo de
// áudio nunca é bloqueado: se o buffer encher, a medição do bloco é perdida.
func (m *Meter) Tap(s beep.Streamer) beep.Streamer {
	return &tapStreamer{src: s, meter: m}
}

// LoudnessDb drena as medições pendentes e retorna o nível RMS da janela em
// dBFS. Chamar apenas da thread do frame loop.
func (m *Meter) LoudnessDb() float32 {
	for {
		c, err := m.ring.Dequeue()
		if err != nil {
			break
		}
		m.window[m.idx] = c
		m.idx = (m.idx + 1) % len(m.window)
		if m.filled < len(m.window) {
			m.filled++
		}
	}

	var sum float64
	var n int
	for i := 0; i < m.filled; i++ {
		sum += m.window[i].sum
		n += m.window[i].n
	}
	if n == 0 {
		return FloorDb
	}
	rms := math.Sqrt(sum / float64(n))
	if rms < 1e-5 {
		return FloorDb
	}
	return float32(20 * math.Log10(rms))
}

type tapStreamer struct {
	src    beep.Streamer
	meter  *Meter
	closed atomic.Bool
}

func (t *tapStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)
	if n > 0 {
		var sum float64
		for i := 0; i < n; i++ {
			v := (samples[i][0] + samples[i][1]) * 0.5
			sum += v * v
		}
		// Best-effort: bloco descartado se o consumidor estiver atrasado.
		_ = t.meter.ring.Enqueue(chunkPower{sum: sum, n: n})
	}
	if !ok {
		t.closed.Store(true)
	}
	return n, ok
}

func (t *tapStreamer) Err() error {
	return t.src.Err()
}

// Ambient é o loop de fundo contínuo que serve de fonte para o medidor: um
// zumbido grave cujo ganho o app ajusta (segurar a tecla de "sopro" simula o
// usuário gritando no microfone). O ganho é lido pela thread de áudio, então
// vive em um atomic.
type Ambient struct {
	gainBits atomic.Uint64
	phase    float64
	freq     float64
}

// Ganhos do loop ambiente: quase inaudível em repouso, alto no sopro. O
// ganho de sopro precisa render RMS acima do limiar de revert do ritual
// (-4 dB): 0.95/sqrt(2) dá cerca de -3.5 dBFS.
const (
	AmbientQuietGain = 0.02
	AmbientLoudGain  = 0.95
)

// NewAmbient cria o loop ambiente em repouso.
func NewAmbient() *Ambient {
	a := &Ambient{freq: 110}
	a.SetGain(AmbientQuietGain)
	return a
}

// SetGain ajusta o ganho do loop (0 a 1).
func (a *Ambient) SetGain(g float64) {
	a.gainBits.Store(math.Float64bits(g))
}

// Gain retorna o ganho atual.
func (a *Ambient) Gain() float64 {
	return math.Float64frombits(a.gainBits.Load())
}

// Boost alterna entre o ganho de repouso e o de sopro.
func (a *Ambient) Boost(on bool) {
	if on {
		a.SetGain(AmbientLoudGain)
	} else {
		a.SetGain(AmbientQuietGain)
	}
}

func (a *Ambient) Stream(samples [][2]float64) (int, bool) {
	gain := a.Gain()
	inc := a.freq / float64(SampleRate)
	for i := range samples {
		v := math.Sin(2*math.Pi*a.phase) * gain
		samples[i][0] = v
		samples[i][1] = v
		a.phase += inc
		if a.phase >= 1.0 {
			a.phase -= 1.0
		}
	}
	return len(samples), true
}

func (a *Ambient) Err() error {
	return nil
}
