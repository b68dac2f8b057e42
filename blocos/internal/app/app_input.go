package app

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TetraVision/shared/geom"
	"TetraVision/shared/pose"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)
}

// updateInput enfileira os comandos dos atalhos de teclado. Os botões do HUD
// enfileiram os mesmos comandos na hora do draw.
func (a *App) updateInput() {
	// Toggle debug info
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Toggle grid
	if rl.IsKeyPressed(rl.KeyG) {
		a.Config.ShowGrid = !a.Config.ShowGrid
	}

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Seleção de peça (1-5)
	if rl.IsKeyPressed(rl.KeyOne) {
		a.commands.Push(CmdSelectStraight)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.commands.Push(CmdSelectSquare)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		a.commands.Push(CmdSelectT)
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		a.commands.Push(CmdSelectL)
	}
	if rl.IsKeyPressed(rl.KeyFive) {
		a.commands.Push(CmdSelectSkew)
	}

	// Deslocamento e rotação da peça ativa
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.commands.Push(CmdMoveLeft)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.commands.Push(CmdMoveRight)
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.commands.Push(CmdRotateCCW)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		a.commands.Push(CmdRotateCW)
	}

	// Travar/destravar o rastreamento
	if rl.IsKeyPressed(rl.KeySpace) {
		a.commands.Push(CmdToggleLock)
	}

	// Reset da cena
	if rl.IsKeyPressed(rl.KeyR) {
		a.commands.Push(CmdClearScene)
	}
}

// updateCursor alimenta o controlador com a âncora do frame: a pose do
// rastreador quando o feed está fresco, senão o raycast do mouse no chão.
func (a *App) updateCursor() {
	if p, hit, fresh := a.feed.CursorPose(); fresh {
		if hit {
			a.controller.UpdateCursor(&p)
		} else {
			a.controller.UpdateCursor(nil)
		}
		return
	}

	p, hit := a.mouseGroundPose()
	if hit {
		a.controller.UpdateCursor(&p)
	} else {
		a.controller.UpdateCursor(nil)
	}
}

// mouseGroundPose projeta o mouse no plano do chão (Y=0).
func (a *App) mouseGroundPose() (pose.Pose, bool) {
	ray := rl.GetMouseRay(rl.GetMousePosition(), a.Cam.RLCamera)

	const half = float32(50.0)
	hit := rl.GetRayCollisionQuad(ray,
		rl.Vector3{X: -half, Y: 0, Z: -half},
		rl.Vector3{X: -half, Y: 0, Z: half},
		rl.Vector3{X: half, Y: 0, Z: half},
		rl.Vector3{X: half, Y: 0, Z: -half},
	)
	if !hit.Hit {
		return pose.Identity(), false
	}

	anchor := pose.AtPosition(mgl32.Vec3{hit.Point.X, hit.Point.Y, hit.Point.Z})
	return anchor, true
}

// activeWorldPose retorna o tipo e a pose de mundo da peça ativa visível.
func (a *App) activeWorldPose() (geom.PieceKind, pose.Pose, bool) {
	kind, ok := a.controller.Active()
	if !ok || !a.controller.Enabled(kind) {
		return kind, pose.Identity(), false
	}
	if _, visible := a.controller.Cursor(); !visible {
		return kind, pose.Identity(), false
	}
	return kind, a.controller.WorldPose(kind), true
}
