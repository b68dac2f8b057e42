package pose

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestTranslateLocalRoundTrip(t *testing.T) {
	p := Identity().
		RotateLocalZ(math.Pi / 3).
		TranslateLocal(mgl32.Vec3{2, 0, 0}).
		TranslateLocal(mgl32.Vec3{-2, 0, 0})

	want := Identity().RotateLocalZ(math.Pi / 3)
	if !p.ApproxEqual(want, eps) {
		t.Errorf("ida e volta no X local não retornou à origem: %+v", p)
	}
}

func TestTranslateLocalFollowsRotation(t *testing.T) {
	// Com 90 graus em Z, o +X local aponta para o +Y do mundo.
	p := Identity().RotateLocalZ(math.Pi / 2).TranslateLocal(mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{0, 1, 0}
	if !vecNear(p.Pos, want, eps) {
		t.Errorf("posição = %v, esperado %v", p.Pos, want)
	}
}

func TestFourRotationsIdentity(t *testing.T) {
	p := Identity()
	for i := 0; i < 4; i++ {
		p = p.RotateLocalZ(-math.Pi / 2)
	}
	if !p.ApproxEqual(Identity(), eps) {
		t.Errorf("quatro rotações de -90 não voltaram à identidade: %+v", p.Rot)
	}
}

func TestMulCarriesChild(t *testing.T) {
	parent := AtPosition(mgl32.Vec3{10, 0, 0})
	child := AtPosition(mgl32.Vec3{0, 2, 0})

	world := parent.Mul(child)
	want := mgl32.Vec3{10, 2, 0}
	if !vecNear(world.Pos, want, eps) {
		t.Errorf("Mul posição = %v, esperado %v", world.Pos, want)
	}

	// Pai rotacionado gira o offset do filho. A rotação deixa resíduo de
	// float32 (~1e-7) nos componentes que deveriam zerar; a comparação
	// absoluta precisa aceitá-lo.
	parent = New(mgl32.Vec3{10, 0, 0}, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))
	world = parent.Mul(child)
	want = mgl32.Vec3{8, 0, 0}
	if !vecNear(world.Pos, want, eps) {
		t.Errorf("Mul com pai rotacionado = %v, esperado %v", world.Pos, want)
	}
}

func TestApply(t *testing.T) {
	p := New(mgl32.Vec3{1, 1, 1}, mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 0, 1}))
	got := p.Apply(mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{0, 1, 1}
	if !vecNear(got, want, eps) {
		t.Errorf("Apply = %v, esperado %v", got, want)
	}
}

func TestApproxEqualNegatedQuat(t *testing.T) {
	a := New(mgl32.Vec3{}, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))
	b := a
	b.Rot = mgl32.Quat{W: -a.Rot.W, V: a.Rot.V.Mul(-1)}
	if !a.ApproxEqual(b, eps) {
		t.Errorf("q e -q representam a mesma rotação e devem comparar iguais")
	}
}
