// Package camera implementa a câmera orbital compartilhada pelos demos.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"TetraVision/shared/util"
)

// Controller gerencia a movimentação da câmera orbital dos demos: órbita com
// o botão direito (o esquerdo fica livre para os toques e botões da cena),
// zoom no scroll e pan com WASD.
type Controller struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo (para interpolação suave)
	TargetLookAt rl.Vector3 // Para onde a câmera quer olhar (ponto central)
	TargetZoom   float32    // Zoom desejado
	TargetAngleY float32    // Rotação horizontal atual (radianos)
	TargetAngleX float32    // Elevação atual (radianos)

	// Estado Atual (interpolado)
	CurrentLookAt rl.Vector3
	CurrentZoom   float32
}

// New cria um controlador de câmera com enquadramento padrão para a mesa dos
// demos (cenas de poucos metros).
func New() *Controller {
	c := &Controller{
		MinZoom:      1.5,
		MaxZoom:      30.0,
		MoveSpeed:    4.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    1.0,
		SmoothFactor: 0.15,

		TargetLookAt: rl.Vector3{X: 0, Y: 0.5, Z: 0},
		TargetZoom:   6.0,
		TargetAngleY: 45.0 * rl.Deg2rad,
		TargetAngleX: -30.0 * rl.Deg2rad, // olhando de cima
	}

	// Inicializa os valores atuais com os alvos para não "saltar" no início
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	c.recompute()
	return c
}

// SetTarget reposiciona o ponto central imediatamente (sem suavização).
func (c *Controller) SetTarget(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.recompute()
}

// Update interpola o estado atual em direção ao alvo e recalcula a posição.
// Deve ser chamado a cada frame.
func (c *Controller) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt // Normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	curVec := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgtVec := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerpedVec := curVec.Add(tgtVec.Sub(curVec).Mul(factor))

	c.CurrentLookAt = rl.Vector3{X: lerpedVec.X(), Y: lerpedVec.Y(), Z: lerpedVec.Z()}
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.recompute()
}

// recompute converte ângulos e zoom (coordenadas esféricas) para a posição
// cartesiana da câmera.
func (c *Controller) recompute() {
	dist := c.CurrentZoom

	cosX := float32(math.Cos(float64(c.TargetAngleX)))
	sinX := float32(math.Sin(float64(c.TargetAngleX)))
	cosY := float32(math.Cos(float64(c.TargetAngleY)))
	sinY := float32(math.Sin(float64(c.TargetAngleY)))

	offsetX := dist * cosX * sinY
	offsetY := dist * -sinX // Y é UP no Raylib; sinX negativo pois olhamos de cima
	offsetZ := dist * cosX * cosY

	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + offsetX,
		Y: c.CurrentLookAt.Y + offsetY,
		Z: c.CurrentLookAt.Z + offsetZ,
	}

	c.RLCamera.Target = c.CurrentLookAt
}

// HandleInput processa entrada do usuário. Retorna true se houve input de
// movimento.
func (c *Controller) HandleInput(dt float32) bool {
	moved := false

	// Zoom com Scroll
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		moved = true
		c.TargetZoom -= wheel * c.ZoomSpeed
		c.TargetZoom = util.Clamp(c.TargetZoom, c.MinZoom, c.MaxZoom)
	}

	// Órbita com o botão direito; o esquerdo pertence à cena.
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.TargetAngleY -= delta.X * c.RotateSpeed * 0.005
		c.TargetAngleX -= delta.Y * c.RotateSpeed * 0.005

		// Clamp na elevação para não virar a câmera de ponta cabeça
		maxElev := float32(-5.0 * rl.Deg2rad)
		minElev := float32(-89.0 * rl.Deg2rad)
		c.TargetAngleX = util.Clamp(c.TargetAngleX, minElev, maxElev)
	}

	// Pan WASD relativo à câmera, projetado no plano do chão
	camPos := mgl32.Vec3{c.RLCamera.Position.X, c.RLCamera.Position.Y, c.RLCamera.Position.Z}
	targetPos := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}

	forward := targetPos.Sub(camPos)
	forward[1] = 0
	forward = forward.Normalize()

	upVec := mgl32.Vec3{0, 1, 0}
	right := forward.Cross(upVec).Normalize()

	// Quanto mais longe o zoom, mais rápido o pan.
	currentSpeed := c.MoveSpeed * (c.CurrentZoom / 6.0) * dt

	move := mgl32.Vec3{0, 0, 0}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}

	if move.Len() > 0 {
		move = move.Normalize().Mul(currentSpeed)
		targetPos = targetPos.Add(move)
		c.TargetLookAt = rl.Vector3{X: targetPos.X(), Y: targetPos.Y(), Z: targetPos.Z()}
		moved = true
	}

	return moved
}
