// Package pose define a transformação rígida (posição + orientação) usada
// pelas peças e pela âncora do cursor. Usa quaternions do mathgl para evitar
// gimbal lock nas composições de rotação.
package pose

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose representa uma transformação rígida no espaço 3D.
type Pose struct {
	Pos mgl32.Vec3
	Rot mgl32.Quat
}

// Identity retorna a pose identidade (origem, sem rotação).
func Identity() Pose {
	return Pose{Rot: mgl32.QuatIdent()}
}

// New cria uma pose a partir de posição e quaternion.
func New(pos mgl32.Vec3, rot mgl32.Quat) Pose {
	return Pose{Pos: pos, Rot: rot}
}

// AtPosition cria uma pose na posição dada sem rotação.
func AtPosition(pos mgl32.Vec3) Pose {
	return Pose{Pos: pos, Rot: mgl32.QuatIdent()}
}

// TranslateLocal compõe a pose com uma translação no referencial LOCAL.
// Equivale ao pós-multiplicar: nova = pose * translate(d).
func (p Pose) TranslateLocal(d mgl32.Vec3) Pose {
	p.Pos = p.Pos.Add(p.Rot.Rotate(d))
	return p
}

// RotateLocalZ compõe a orientação com uma rotação em torno do eixo Z LOCAL.
// Ângulo em radianos; positivo = anti-horário.
func (p Pose) RotateLocalZ(angle float32) Pose {
	p.Rot = p.Rot.Mul(mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})).Normalize()
	return p
}

// Mul compõe duas poses: o resultado aplica primeiro child no referencial de p.
// world = parent * child
func (p Pose) Mul(child Pose) Pose {
	return Pose{
		Pos: p.Pos.Add(p.Rot.Rotate(child.Pos)),
		Rot: p.Rot.Mul(child.Rot).Normalize(),
	}
}

// Apply transforma um ponto do referencial local da pose para o mundo.
func (p Pose) Apply(v mgl32.Vec3) mgl32.Vec3 {
	return p.Pos.Add(p.Rot.Rotate(v))
}

// ApproxEqual compara duas poses com tolerância absoluta por componente.
// Quaternions q e -q representam a mesma rotação, então ambos os sinais contam.
func (p Pose) ApproxEqual(other Pose, epsilon float32) bool {
	if !vecNear(p.Pos, other.Pos, epsilon) {
		return false
	}
	a, b := p.Rot, other.Rot
	neg := mgl32.Quat{W: -b.W, V: b.V.Mul(-1)}
	return quatNear(a, b, epsilon) || quatNear(a, neg, epsilon)
}

// floatNear compara pela diferença absoluta. Os limiares do mathgl viram
// relativos e apertam para epsilon² quando um dos lados é exatamente zero,
// o que rejeita o resíduo normal de float32 após rotações.
func floatNear(a, b, epsilon float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= epsilon
}

func vecNear(a, b mgl32.Vec3, epsilon float32) bool {
	return floatNear(a.X(), b.X(), epsilon) &&
		floatNear(a.Y(), b.Y(), epsilon) &&
		floatNear(a.Z(), b.Z(), epsilon)
}

func quatNear(a, b mgl32.Quat, epsilon float32) bool {
	return floatNear(a.W, b.W, epsilon) && vecNear(a.V, b.V, epsilon)
}
