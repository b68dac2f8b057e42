// Package audio cuida do som dos demos: toca os sinais da máquina do ritual
// (chime e sparkle) como tons gerados, mantém um loop ambiente e mede o
// loudness desse fluxo como substituto do microfone do dispositivo.
package audio

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate é a taxa de amostragem de todo o pipeline de áudio.
const SampleRate beep.SampleRate = 44100

// Player inicializa o speaker e enfileira os efeitos. Se o dispositivo de
// áudio não estiver disponível, o player degrada para modo silencioso sem
// propagar erro (colaborador best-effort).
type Player struct {
	ready bool
}

// NewPlayer cria o player. enabled=false pula a inicialização do speaker.
func NewPlayer(enabled bool) *Player {
	p := &Player{}
	if !enabled {
		return p
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		log.Printf("[Audio] Speaker indisponível, seguindo em modo silencioso: %v", err)
		return p
	}
	p.ready = true
	return p
}

// Ready informa se o speaker foi inicializado.
func (p *Player) Ready() bool {
	return p.ready
}

// StartAmbient coloca um streamer contínuo para tocar (o loop ambiente que o
// medidor de loudness observa).
func (p *Player) StartAmbient(s beep.Streamer) {
	if !p.ready || s == nil {
		return
	}
	speaker.Play(s)
}

// PlayChime toca o sino de uma flor dourada: fundamental em 880Hz com um
// harmônico uma oitava acima, mais curto.
func (p *Player) PlayChime() {
	if !p.ready {
		return
	}
	speaker.Play(beep.Mix(
		newTone(880, 350*time.Millisecond, 0.5),
		newTone(1760, 220*time.Millisecond, 0.18),
	))
}

// PlaySparkle toca o arpejo ascendente do revert.
func (p *Player) PlaySparkle() {
	if !p.ready {
		return
	}
	speaker.Play(beep.Seq(
		newTone(660, 90*time.Millisecond, 0.4),
		newTone(880, 90*time.Millisecond, 0.4),
		newTone(1320, 90*time.Millisecond, 0.4),
		newTone(1760, 160*time.Millisecond, 0.35),
	))
}

// tone é um streamer finito: senoide com envelope de ataque/release linear.
type tone struct {
	freq    float64
	gain    float64
	total   int
	pos     int
	attack  int
	release int
}

func newTone(freq float64, d time.Duration, gain float64) *tone {
	total := SampleRate.N(d)
	att := SampleRate.N(5 * time.Millisecond)
	rel := SampleRate.N(60 * time.Millisecond)
	if rel > total/2 {
		rel = total / 2
	}
	return &tone{freq: freq, gain: gain, total: total, attack: att, release: rel}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		v := math.Sin(2 * math.Pi * t.freq * float64(t.pos) / float64(SampleRate))
		v *= t.gain * t.envelope()
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) envelope() float64 {
	if t.pos < t.attack && t.attack > 0 {
		return float64(t.pos) / float64(t.attack)
	}
	if rem := t.total - t.pos; rem < t.release && t.release > 0 {
		return float64(rem) / float64(t.release)
	}
	return 1.0
}

func (t *tone) Err() error {
	return nil
}
