package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"TetraVision/shared/audio"
	"TetraVision/shared/ritual"
)

// updateRitual consome os eventos do rastreador, escolhe a fonte de loudness
// e avança a máquina de estados.
func (a *App) updateRitual() {
	// Reconhecimento da imagem alvo vindo do rastreador
	for {
		target, ok := a.feed.NextTarget()
		if !ok {
			break
		}
		if !a.machine.Planted() {
			a.anchor = target.Pose
			a.plant()
			log.Printf("[Jardim] Jardim plantado na imagem alvo %q", target.Name)
		}
	}

	a.loudnessDb = a.currentLoudness()

	signal := a.machine.Step(rl.GetFrameTime(), a.loudnessDb)
	a.playSignal(signal)
}

// currentLoudness prefere o nível medido pelo rastreador; sem feed, usa o
// medidor local do loop ambiente; sem áudio, fica no piso.
func (a *App) currentLoudness() float32 {
	if db, ok := a.feed.LoudnessDb(); ok {
		return db
	}
	if a.meter != nil {
		return a.meter.LoudnessDb()
	}
	return audio.FloorDb
}

// plant cria as flores na âncora atual.
func (a *App) plant() {
	a.machine.Plant()
	a.setStatus("As três flores brotaram")
}

// handleTap repassa um toque válido para a máquina.
func (a *App) handleTap() {
	signal := a.machine.Tap()
	a.playSignal(signal)

	switch a.machine.HitCount() {
	case 1:
		a.setStatus("A rosa dourou")
	case 2:
		a.setStatus("O açafrão dourou")
	case 3:
		a.setStatus("A anêmona dourou — grite para reverter!")
	default:
		a.setStatus("O ritual recomeça")
	}
	log.Printf("[Jardim] Toque processado: contagem=%d", a.machine.HitCount())
}

// playSignal converte o sinal da máquina em som.
func (a *App) playSignal(s ritual.Signal) {
	switch s {
	case ritual.SignalChime:
		a.audio.PlayChime()
	case ritual.SignalSparkle:
		a.audio.PlaySparkle()
		a.setStatus("O grito reverteu o ouro!")
		log.Printf("[Jardim] Revert disparado com %.1f dB", a.loudnessDb)
	}
}

// flowerSlots retorna a pose local de cada flor em ordem do ritual.
func (a *App) flowerSlots() [3]mgl32.Vec3 {
	spacing := a.Config.UnitSize * 3.0
	return [3]mgl32.Vec3{
		ritual.FlowerRose:    {-spacing, 0, 0},
		ritual.FlowerCrocus:  {0, 0, 0},
		ritual.FlowerAnemone: {spacing, 0, 0},
	}
}

// flowerBase retorna a posição de mundo da base do caule da flor.
func (a *App) flowerBase(f ritual.Flower) rl.Vector3 {
	p := a.anchor.Apply(a.flowerSlots()[f])
	return rl.Vector3{X: p.X(), Y: p.Y(), Z: p.Z()}
}

// flowerHeads retorna os centros das cabeças das três flores.
func (a *App) flowerHeads() [3]rl.Vector3 {
	stemHeight := a.Config.UnitSize * 2.4
	var heads [3]rl.Vector3
	for _, f := range []ritual.Flower{ritual.FlowerRose, ritual.FlowerCrocus, ritual.FlowerAnemone} {
		base := a.flowerBase(f)
		heads[f] = rl.Vector3{X: base.X, Y: base.Y + stemHeight, Z: base.Z}
	}
	return heads
}
