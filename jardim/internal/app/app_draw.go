package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TetraVision/shared/ritual"
	"TetraVision/shared/util"
)

// petalColors é a cor natural da cabeça de cada flor (dourada após o toque).
var petalColors = [3]rl.Color{
	ritual.FlowerRose:    rl.NewColor(220, 70, 100, 255),
	ritual.FlowerCrocus:  rl.NewColor(150, 90, 210, 255),
	ritual.FlowerAnemone: rl.NewColor(235, 235, 250, 255),
}

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 34, 28, 255))

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	// Grid de referência
	if a.Config.ShowGrid {
		rl.DrawGrid(40, a.Config.UnitSize)
	}

	if a.machine.Planted() {
		heads := a.flowerHeads()
		for _, f := range []ritual.Flower{ritual.FlowerRose, ritual.FlowerCrocus, ritual.FlowerAnemone} {
			a.drawFlower(f, heads[f])
		}
	}

	rl.EndMode3D()
}

// drawFlower desenha caule, miolo e pétalas de uma flor. As pétalas giram em
// torno do eixo Y conforme o ângulo acumulado da animação.
func (a *App) drawFlower(f ritual.Flower, head rl.Vector3) {
	unit := a.Config.UnitSize
	base := a.flowerBase(f)

	// Caule
	stem := rl.NewColor(60, 140, 70, 255)
	rl.DrawCylinder(base, unit*0.06, unit*0.09, head.Y-base.Y, 8, stem)

	// Cores da cabeça
	petal := petalColors[f]
	center := rl.NewColor(240, 200, 80, 255)
	if a.machine.IsGold(f) {
		petal = rl.Gold
		center = rl.NewColor(255, 235, 150, 255)
	}

	// Miolo
	rl.DrawSphere(head, unit*0.22, center)

	// Pétalas em círculo, giradas pelo ângulo da animação
	const petals = 6
	spin := float64(a.machine.SpinAngle(f))
	ring := float64(unit) * 0.5
	for i := 0; i < petals; i++ {
		ang := spin + float64(i)*(2*math.Pi/petals)
		p := rl.Vector3{
			X: head.X + float32(math.Cos(ang)*ring),
			Y: head.Y,
			Z: head.Z + float32(math.Sin(ang)*ring),
		}
		rl.DrawSphere(p, unit*0.18, petal)
	}
}

// drawHUD desenha a barra de loudness, o estado do ritual e o painel de debug.
func (a *App) drawHUD() {
	if !a.machine.Planted() {
		prompt := "Aponte para a imagem alvo (ou pressione ENTER) para plantar o jardim"
		width := rl.MeasureText(prompt, 20)
		rl.DrawText(prompt, (int32(rl.GetScreenWidth())-width)/2, 40, 20, rl.RayWhite)
	}

	a.drawLoudnessBar()

	// Mensagem transitória
	if a.statusMsg != "" && rl.GetTime() < a.statusUntil {
		width := rl.MeasureText(a.statusMsg, 20)
		rl.DrawText(a.statusMsg, (int32(rl.GetScreenWidth())-width)/2, 76, 20, rl.Gold)
	}

	if a.Config.ShowDebugInfo {
		a.drawDebugPanel()
	}
}

// drawLoudnessBar mostra o nível atual com o marcador do limiar do revert.
func (a *App) drawLoudnessBar() {
	barWidth := int32(260)
	barHeight := int32(18)
	x := int32(10)
	y := int32(rl.GetScreenHeight()) - barHeight - 16

	// Escala: -60 dB (vazio) até 0 dB (cheio)
	const minDb, maxDb = float32(-60), float32(0)
	level := util.Clamp((a.loudnessDb-minDb)/(maxDb-minDb), 0, 1)
	threshold := util.Clamp((a.Config.LoudnessThresholdDb-minDb)/(maxDb-minDb), 0, 1)

	fill := rl.SkyBlue
	if a.loudnessDb >= a.Config.LoudnessThresholdDb {
		fill = rl.Red
	}

	rl.DrawRectangle(x, y, barWidth, barHeight, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangle(x, y, int32(float32(barWidth)*level), barHeight, fill)
	rl.DrawRectangleLines(x, y, barWidth, barHeight, rl.White)

	// Marcador do limiar
	tx := x + int32(float32(barWidth)*threshold)
	rl.DrawLine(tx, y-3, tx, y+barHeight+3, rl.Gold)

	rl.DrawText(fmt.Sprintf("%.1f dB", a.loudnessDb), x+barWidth+10, y, 18, rl.RayWhite)
}

// drawDebugPanel desenha o painel de informações no canto direito.
func (a *App) drawDebugPanel() {
	width := int32(320)
	height := int32(210)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	// FPS
	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	// Fonte do loudness
	srcStr := "Loudness: local"
	srcColor := rl.LightGray
	if _, ok := a.feed.LoudnessDb(); ok {
		srcStr = "Loudness: rastreador"
		srcColor = rl.SkyBlue
	}
	rl.DrawText(srcStr, x+140, y+10, 18, srcColor)

	rl.DrawLine(x+10, y+38, x+width-10, y+38, rl.NewColor(100, 100, 100, 100))

	// Estado do ritual
	rl.DrawText(fmt.Sprintf("Toques: %d/3", a.machine.HitCount()), x+10, y+48, 16, rl.White)

	fy := y + 70
	for _, f := range []ritual.Flower{ritual.FlowerRose, ritual.FlowerCrocus, ritual.FlowerAnemone} {
		state := "natural"
		color := rl.LightGray
		if a.machine.IsGold(f) {
			state = "DOURADA"
			color = rl.Gold
		}
		rl.DrawText(fmt.Sprintf("%s: %s", f, state), x+10, fy, 16, color)
		fy += 20
	}

	if a.machine.WasReverted() {
		rl.DrawText("Revert já usado neste ciclo", x+10, fy, 14, rl.Orange)
	}

	rl.DrawLine(x+10, y+152, x+width-10, y+152, rl.NewColor(100, 100, 100, 100))

	// Atalhos Rápidos
	rl.DrawText("CONTROLES", x+10, y+160, 12, rl.Gray)
	rl.DrawText("Clique: Tocar flor | V: Sopro (grito)", x+10, y+176, 14, rl.LightGray)
	rl.DrawText("ENTER: Plantar | G: Grid | F3: HUD", x+10, y+192, 14, rl.LightGray)

	// Título no canto inferior direito
	title := "TetraVision - Jardim"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}
