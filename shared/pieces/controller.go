// Package pieces implementa o controlador de seleção e transformação das
// peças tetrominó: qual peça está ativa, a pose de cada peça relativa à
// âncora do cursor, e o travamento do rastreamento.
package pieces

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"TetraVision/shared/geom"
	"TetraVision/shared/pose"
)

// pieceState guarda o estado mutável de uma peça (a geometria é fixa).
type pieceState struct {
	enabled bool
	pose    pose.Pose
}

// Controller mantém a seleção ativa e aplica comandos discretos de
// movimento/rotação. Todas as mutações acontecem na thread do frame loop;
// o controlador em si não é thread-safe de propósito.
type Controller struct {
	unit   float32
	pieces map[geom.PieceKind]*pieceState

	active    geom.PieceKind
	hasActive bool
	locked    bool

	cursor        pose.Pose
	cursorVisible bool
}

// New cria um controlador com todas as peças desabilitadas e poses identidade.
func New(unit float32) *Controller {
	c := &Controller{
		unit:   unit,
		pieces: make(map[geom.PieceKind]*pieceState, len(geom.Kinds())),
		cursor: pose.Identity(),
	}
	for _, k := range geom.Kinds() {
		c.pieces[k] = &pieceState{pose: pose.Identity()}
	}
	return c
}

// Select ativa a peça do tipo dado: desabilita todas, reseta a pose da peça
// que ESTAVA ativa (não a nova — o app original resetava via referência antiga
// antes da reatribuição, e preservamos esse comportamento) e habilita a nova.
// Tipo desconhecido é no-op.
func (c *Controller) Select(kind geom.PieceKind) {
	next, ok := c.pieces[kind]
	if !ok {
		return
	}

	for _, p := range c.pieces {
		p.enabled = false
	}

	// Reset da peça que sai de cena, usando a referência ativa antiga.
	if c.hasActive {
		if prev, ok := c.pieces[c.active]; ok {
			prev.pose = pose.Identity()
		}
	}

	next.enabled = true
	c.active = kind
	c.hasActive = true
}

// ToggleLock desabilita todas as peças (esconde o contorno que segue o
// cursor) e alterna o travamento do rastreamento.
func (c *Controller) ToggleLock() {
	for _, p := range c.pieces {
		p.enabled = false
	}
	c.locked = !c.locked
}

// MoveLeft desloca a peça ativa uma aresta de cubo no -X local.
func (c *Controller) MoveLeft() {
	c.translateActive(mgl32.Vec3{-c.unit, 0, 0})
}

// MoveRight desloca a peça ativa uma aresta de cubo no +X local.
func (c *Controller) MoveRight() {
	c.translateActive(mgl32.Vec3{c.unit, 0, 0})
}

// RotateCCW gira a peça ativa +90 graus em torno do Z local.
func (c *Controller) RotateCCW() {
	c.rotateActive(math.Pi / 2)
}

// RotateCW gira a peça ativa -90 graus em torno do Z local.
func (c *Controller) RotateCW() {
	c.rotateActive(-math.Pi / 2)
}

// translateActive aplica a translação local se houver peça ativa; senão no-op.
func (c *Controller) translateActive(d mgl32.Vec3) {
	if !c.hasActive {
		return
	}
	p := c.pieces[c.active]
	p.pose = p.pose.TranslateLocal(d)
}

func (c *Controller) rotateActive(angle float32) {
	if !c.hasActive {
		return
	}
	p := c.pieces[c.active]
	p.pose = p.pose.RotateLocalZ(angle)
}

// UpdateCursor recebe o resultado do raycast do colaborador de rastreamento.
// Com hit, a âncora do cursor segue a pose e fica visível; sem hit, o cursor
// some. Ignorado enquanto travado. A pose da peça ativa NÃO muda: a peça é
// filha da âncora, então o movimento do cursor a carrega implicitamente.
func (c *Controller) UpdateCursor(p *pose.Pose) {
	if c.locked {
		return
	}
	if p == nil {
		c.cursorVisible = false
		return
	}
	c.cursor = *p
	c.cursorVisible = true
}

// Active retorna a peça ativa, se houver.
func (c *Controller) Active() (geom.PieceKind, bool) {
	return c.active, c.hasActive
}

// Locked informa se o rastreamento está travado.
func (c *Controller) Locked() bool {
	return c.locked
}

// Cursor retorna a pose atual da âncora e se o cursor está visível.
func (c *Controller) Cursor() (pose.Pose, bool) {
	return c.cursor, c.cursorVisible
}

// Enabled informa se a peça do tipo dado está habilitada para render.
func (c *Controller) Enabled(kind geom.PieceKind) bool {
	p, ok := c.pieces[kind]
	return ok && p.enabled
}

// Pose retorna a pose local (relativa à âncora) da peça do tipo dado.
func (c *Controller) Pose(kind geom.PieceKind) pose.Pose {
	p, ok := c.pieces[kind]
	if !ok {
		return pose.Identity()
	}
	return p.pose
}

// WorldPose retorna a pose de mundo da peça: âncora do cursor * pose local.
func (c *Controller) WorldPose(kind geom.PieceKind) pose.Pose {
	return c.cursor.Mul(c.Pose(kind))
}

// Unit retorna a aresta do cubo usada pelos deslocamentos discretos.
func (c *Controller) Unit() float32 {
	return c.unit
}
