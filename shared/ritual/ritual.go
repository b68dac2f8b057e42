// Package ritual implementa a máquina de estados do jardim: três flores que
// ficam douradas em ordem fixa conforme os toques, e voltam ao normal quando
// todas estão douradas e o nível de loudness cruza o limiar.
package ritual

// Flower identifica cada uma das três flores do ritual.
type Flower int

const (
	FlowerRose Flower = iota
	FlowerCrocus
	FlowerAnemone

	flowerCount = 3
)

// String retorna o nome exibido da flor.
func (f Flower) String() string {
	switch f {
	case FlowerRose:
		return "Rosa"
	case FlowerCrocus:
		return "Açafrão"
	case FlowerAnemone:
		return "Anêmona"
	}
	return "?"
}

// Signal é o efeito sonoro que uma transição pede ao host.
type Signal int

const (
	SignalNone Signal = iota
	SignalChime
	SignalSparkle
)

// flowerState guarda o estado mutável de uma flor. O material dourado e o
// original são responsabilidade do render; aqui só vive o flag.
type flowerState struct {
	isGold bool
	spin   float32 // ângulo acumulado da animação cosmética (radianos)
}

// Machine é a máquina de estados do ritual. Todas as mutações acontecem na
// thread do frame loop.
type Machine struct {
	planted     bool
	flowers     [flowerCount]flowerState
	hitCount    int
	wasReverted bool

	thresholdDb float32
	spinRate    float32 // radianos por segundo
}

// New cria a máquina com o limiar de loudness (dB) para o revert.
func New(thresholdDb float32) *Machine {
	return &Machine{
		thresholdDb: thresholdDb,
		spinRate:    0.9,
	}
}

// Plant cria as flores quando a imagem alvo é reconhecida. Idempotente: a
// criação acontece uma única vez.
func (m *Machine) Plant() {
	m.planted = true
}

// Planted informa se as flores já existem. Antes disso, todas as operações
// da máquina são no-ops.
func (m *Machine) Planted() bool {
	return m.planted
}

// Tap processa um toque na tela. A contagem decide qual flor doura:
// 1ª = rosa, 2ª = açafrão, 3ª = anêmona. Estouro da contagem ou flor já
// dourada apenas zera o contador.
func (m *Machine) Tap() Signal {
	if !m.planted {
		return SignalNone
	}

	m.hitCount++
	switch {
	case m.hitCount == 1 && !m.flowers[FlowerRose].isGold:
		m.flowers[FlowerRose].isGold = true
		return SignalChime
	case m.hitCount == 2 && !m.flowers[FlowerCrocus].isGold:
		m.flowers[FlowerCrocus].isGold = true
		return SignalChime
	case m.hitCount == 3 && !m.flowers[FlowerAnemone].isGold:
		m.flowers[FlowerAnemone].isGold = true
		if m.wasReverted {
			m.wasReverted = false
		}
		return SignalChime
	default:
		m.hitCount = 0
		return SignalNone
	}
}

// Step é a avaliação por frame: anima o giro das flores e dispara o revert
// quando todas estão douradas, ainda não houve revert e o loudness atual
// cruzou o limiar. dt em segundos, loudness em dB.
func (m *Machine) Step(dt, loudnessDb float32) Signal {
	if !m.planted {
		return SignalNone
	}

	// Giro cosmético contínuo em torno do eixo vertical; não afeta estado.
	for i := range m.flowers {
		m.flowers[i].spin += m.spinRate * dt
	}

	if loudnessDb >= m.thresholdDb && m.AllGolden() && !m.wasReverted {
		for i := range m.flowers {
			m.flowers[i].isGold = false
		}
		m.hitCount = 0
		m.wasReverted = true
		return SignalSparkle
	}
	return SignalNone
}

// AllGolden informa se as três flores estão douradas.
func (m *Machine) AllGolden() bool {
	for i := range m.flowers {
		if !m.flowers[i].isGold {
			return false
		}
	}
	return true
}

// IsGold informa se a flor dada está dourada.
func (m *Machine) IsGold(f Flower) bool {
	if f < 0 || f >= flowerCount {
		return false
	}
	return m.flowers[f].isGold
}

// SpinAngle retorna o ângulo acumulado da animação da flor (radianos).
func (m *Machine) SpinAngle(f Flower) float32 {
	if f < 0 || f >= flowerCount {
		return 0
	}
	return m.flowers[f].spin
}

// HitCount retorna a contagem atual de toques.
func (m *Machine) HitCount() int {
	return m.hitCount
}

// WasReverted informa se o revert já aconteceu desde a última anêmona.
func (m *Machine) WasReverted() bool {
	return m.wasReverted
}

// Snapshot é o estado persistível do ritual (shared/scene salva entre sessões).
type Snapshot struct {
	Planted     bool
	HitCount    int
	WasReverted bool
	Gold        [flowerCount]bool
}

// Snapshot captura o estado atual para persistência.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Planted:     m.planted,
		HitCount:    m.hitCount,
		WasReverted: m.wasReverted,
	}
	for i := range m.flowers {
		s.Gold[i] = m.flowers[i].isGold
	}
	return s
}

// Restore recompõe o estado a partir de um snapshot salvo.
func (m *Machine) Restore(s Snapshot) {
	m.planted = s.Planted
	m.hitCount = s.HitCount
	m.wasReverted = s.WasReverted
	for i := range m.flowers {
		m.flowers[i].isGold = s.Gold[i]
	}
}
