package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateCamera atualiza a câmera baseado no input.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)
}

// updateInput processa entradas de teclado e o toque do mouse.
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

	// Enter simula o reconhecimento da imagem alvo quando não há rastreador
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.plantAtDefaultAnchor()
	}

	// Sopro: segurar V sobe o ganho do loop ambiente e o medidor cruza o
	// limiar do revert, como se o usuário gritasse no microfone.
	if a.ambient != nil {
		a.ambient.Boost(rl.IsKeyDown(rl.KeyV))
	}

	// Toque nas flores com o botão esquerdo
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ray := rl.GetMouseRay(rl.GetMousePosition(), a.Cam.RLCamera)
		if a.rayHitsFlower(ray) {
			a.handleTap()
		}
	}
}

// rayHitsFlower testa o raio do mouse contra a cabeça de cada flor.
func (a *App) rayHitsFlower(ray rl.Ray) bool {
	if !a.machine.Planted() {
		return false
	}
	radius := a.Config.UnitSize * 0.9
	for _, head := range a.flowerHeads() {
		if rl.GetRayCollisionSphere(ray, head, radius).Hit {
			return true
		}
	}
	return false
}

// plantAtDefaultAnchor planta o jardim na origem da mesa (fluxo sem rastreador).
func (a *App) plantAtDefaultAnchor() {
	if a.machine.Planted() {
		return
	}
	a.plant()
	log.Println("[Jardim] Jardim plantado manualmente (Enter)")
}
