package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"TetraVision/shared/geom"
	"TetraVision/shared/pose"
)

// draw renderiza a cena.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

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

	// Peças já travadas na cena
	for _, pl := range a.placements {
		a.drawPiece(pl.Kind, pl.Pose, 255)
	}

	// Peça ativa seguindo o cursor (semi-transparente até travar)
	if kind, world, ok := a.activeWorldPose(); ok {
		a.drawPiece(kind, world, 170)
	}

	// Marcador da âncora do cursor
	if cursor, visible := a.controller.Cursor(); visible && !a.controller.Locked() {
		p := cursor.Pos
		rl.DrawSphere(rl.Vector3{X: p.X(), Y: p.Y(), Z: p.Z()}, a.Config.UnitSize*0.08, rl.White)
	}

	rl.EndMode3D()
}

// drawPiece desenha os cubos de uma peça na pose de mundo dada.
func (a *App) drawPiece(kind geom.PieceKind, world pose.Pose, alpha uint8) {
	unit := a.Config.UnitSize
	size := unit
	if !kind.Valid() {
		// A montagem desconhecida cai na peça reta em escala reduzida.
		size = unit * 0.5
	}

	color := kind.Color()
	color.A = alpha
	wire := rl.NewColor(20, 20, 25, alpha)

	for _, offset := range geom.Assemble(kind, unit) {
		c := world.Apply(mgl32.Vec3{offset.X(), offset.Y(), offset.Z()})
		center := rl.Vector3{X: c.X(), Y: c.Y() + size*0.5, Z: c.Z()}
		rl.DrawCube(center, size, size, size, color)
		rl.DrawCubeWires(center, size, size, size, wire)
	}
}

// drawHUD desenha a barra de botões, a mensagem de status e o painel de debug.
func (a *App) drawHUD() {
	a.drawButtonBar()

	// Mensagem transitória
	if a.statusMsg != "" && rl.GetTime() < a.statusUntil {
		width := rl.MeasureText(a.statusMsg, 20)
		rl.DrawText(a.statusMsg, (int32(rl.GetScreenWidth())-width)/2, 70, 20, rl.RayWhite)
	}

	if a.Config.ShowDebugInfo {
		a.drawDebugPanel()
	}
}

// drawButtonBar desenha a barra de controles no topo. Clique em botão
// enfileira o mesmo comando dos atalhos.
func (a *App) drawButtonBar() {
	type button struct {
		label string
		cmd   Command
		color rl.Color
	}
	buttons := []button{
		{"Reta", CmdSelectStraight, rl.SkyBlue},
		{"Quadrado", CmdSelectSquare, rl.Yellow},
		{"T", CmdSelectT, rl.Purple},
		{"L", CmdSelectL, rl.Orange},
		{"Skew", CmdSelectSkew, rl.Green},
		{"◀", CmdMoveLeft, rl.LightGray},
		{"▶", CmdMoveRight, rl.LightGray},
		{"⟲", CmdRotateCCW, rl.LightGray},
		{"⟳", CmdRotateCW, rl.LightGray},
		{"Travar", CmdToggleLock, rl.Red},
	}

	x := int32(10)
	y := int32(10)
	h := int32(40)
	for _, b := range buttons {
		w := rl.MeasureText(b.label, 18) + 30
		if w < 46 {
			w = 46
		}
		label := b.label
		if b.cmd == CmdToggleLock && a.controller.Locked() {
			label = "Destravar"
			w = rl.MeasureText(label, 18) + 30
		}
		if a.drawButton(x, y, w, h, label, b.color) {
			a.commands.Push(b.cmd)
		}
		x += w + 6
	}
}

// drawButton desenha um botão genérico com hover e retorna true se clicado.
func (a *App) drawButton(x, y, w, h int32, text string, color rl.Color) bool {
	mousePos := rl.GetMousePosition()
	isHover := mousePos.X >= float32(x) && mousePos.X <= float32(x+w) &&
		mousePos.Y >= float32(y) && mousePos.Y <= float32(y+h)

	drawColor := color
	if isHover {
		drawColor.R += 30
		drawColor.G += 30
		drawColor.B += 30
	}

	rl.DrawRectangle(x, y, w, h, rl.NewColor(50, 50, 50, 255))
	rl.DrawRectangleLines(x, y, w, h, drawColor)

	textWidth := rl.MeasureText(text, 18)
	rl.DrawText(text, x+(w-textWidth)/2, y+(h-18)/2, 18, rl.White)

	return isHover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

// drawDebugPanel desenha o painel de informações no canto direito.
func (a *App) drawDebugPanel() {
	width := int32(320)
	height := int32(190)
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

	// Estado do rastreamento
	feedStr := "Cursor: mouse"
	feedColor := rl.LightGray
	if a.feed.IsConnected() {
		feedStr = "Cursor: rastreador"
		feedColor = rl.SkyBlue
	}
	rl.DrawText(feedStr, x+140, y+10, 20, feedColor)

	rl.DrawLine(x+10, y+38, x+width-10, y+38, rl.NewColor(100, 100, 100, 100))

	// Peça ativa
	activeStr := "Nenhuma peça ativa"
	if kind, ok := a.controller.Active(); ok && a.controller.Enabled(kind) {
		activeStr = fmt.Sprintf("Peça ativa: %s", kind)
	}
	rl.DrawText(activeStr, x+10, y+48, 16, rl.White)

	lockStr := "Rastreamento: livre"
	lockColor := rl.Green
	if a.controller.Locked() {
		lockStr = "Rastreamento: TRAVADO"
		lockColor = rl.Red
	}
	rl.DrawText(lockStr, x+10, y+70, 16, lockColor)

	rl.DrawText(fmt.Sprintf("Peças na cena: %d", len(a.placements)), x+10, y+92, 16, rl.LightGray)

	rl.DrawLine(x+10, y+116, x+width-10, y+116, rl.NewColor(100, 100, 100, 100))

	// Atalhos Rápidos
	rl.DrawText("CONTROLES", x+10, y+124, 12, rl.Gray)
	rl.DrawText("1-5: Peça | Setas: Mover | Q/E: Girar", x+10, y+140, 14, rl.LightGray)
	rl.DrawText("Espaço: Travar | R: Limpar cena", x+10, y+158, 14, rl.LightGray)

	// Título no canto inferior direito
	title := "TetraVision - Blocos"
	titleWidth := rl.MeasureText(title, 18)
	rl.DrawText(title,
		int32(rl.GetScreenWidth())-titleWidth-20, int32(rl.GetScreenHeight())-30,
		18, rl.NewColor(200, 200, 200, 150))
}
