package pieces

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"TetraVision/shared/geom"
	"TetraVision/shared/pose"
)

const eps = 1e-5

// vecNear compara por diferença absoluta: componentes que deveriam zerar
// carregam resíduo de float32 (~1e-7) após rotações de quaternion.
func vecNear(a, b mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

func TestSelectResetsOutgoingPiece(t *testing.T) {
	c := New(1.0)

	c.Select(geom.PieceStraight)
	c.MoveRight()
	c.MoveRight()

	if p := c.Pose(geom.PieceStraight); p.ApproxEqual(pose.Identity(), eps) {
		t.Fatalf("peça ativa deveria ter saído da identidade após mover")
	}

	c.Select(geom.PieceSquare)

	// A peça que SAIU volta à identidade; a nova entra habilitada.
	if p := c.Pose(geom.PieceStraight); !p.ApproxEqual(pose.Identity(), eps) {
		t.Errorf("pose da peça anterior não foi resetada: %+v", p)
	}
	if !c.Enabled(geom.PieceSquare) {
		t.Errorf("peça nova deveria estar habilitada")
	}
	for _, k := range geom.Kinds() {
		if k != geom.PieceSquare && c.Enabled(k) {
			t.Errorf("peça %v deveria estar desabilitada", k)
		}
	}
	if active, ok := c.Active(); !ok || active != geom.PieceSquare {
		t.Errorf("ativa = %v/%v, esperado square", active, ok)
	}
}

func TestSelectUnknownKindNoOp(t *testing.T) {
	c := New(1.0)
	c.Select(geom.PieceT)
	c.Select(geom.PieceKind(42))

	if active, ok := c.Active(); !ok || active != geom.PieceT {
		t.Errorf("seleção de tipo desconhecido alterou a ativa: %v/%v", active, ok)
	}
	if !c.Enabled(geom.PieceT) {
		t.Errorf("tipo desconhecido desabilitou a peça ativa")
	}
}

func TestMoveRoundTrip(t *testing.T) {
	c := New(0.75)
	c.Select(geom.PieceL)

	c.MoveLeft()
	c.MoveRight()

	if p := c.Pose(geom.PieceL); !p.ApproxEqual(pose.Identity(), eps) {
		t.Errorf("esquerda+direita não retornou à pose original: %+v", p)
	}
}

func TestMoveWithoutActiveIsNoOp(t *testing.T) {
	c := New(1.0)
	c.MoveLeft()
	c.MoveRight()
	c.RotateCW()
	c.RotateCCW()

	for _, k := range geom.Kinds() {
		if p := c.Pose(k); !p.ApproxEqual(pose.Identity(), eps) {
			t.Errorf("comando sem peça ativa mutou a peça %v: %+v", k, p)
		}
	}
}

func TestFourRotationsReturnIdentity(t *testing.T) {
	c := New(1.0)
	c.Select(geom.PieceSkew)
	for i := 0; i < 4; i++ {
		c.RotateCW()
	}
	if p := c.Pose(geom.PieceSkew); !p.ApproxEqual(pose.Identity(), eps) {
		t.Errorf("quatro rotações horárias não voltaram à identidade: %+v", p.Rot)
	}
}

func TestMoveFollowsPieceRotation(t *testing.T) {
	c := New(1.0)
	c.Select(geom.PieceStraight)

	// Após 90 graus anti-horário, o +X local vira +Y: mover para a direita
	// deve subir a peça no referencial da âncora (pós-multiplicação).
	c.RotateCCW()
	c.MoveRight()

	p := c.Pose(geom.PieceStraight)
	want := mgl32.Vec3{0, 1, 0}
	if !vecNear(p.Pos, want, eps) {
		t.Errorf("posição após rotação+movimento = %v, esperado %v", p.Pos, want)
	}
}

func TestToggleLockFreezesCursor(t *testing.T) {
	c := New(1.0)
	c.Select(geom.PieceSquare)

	hit := pose.AtPosition(mgl32.Vec3{3, 0, 1})
	c.UpdateCursor(&hit)
	if cur, visible := c.Cursor(); !visible || !cur.ApproxEqual(hit, eps) {
		t.Fatalf("cursor não seguiu o hit: %+v visible=%v", cur, visible)
	}

	c.ToggleLock()
	if !c.Locked() {
		t.Fatalf("ToggleLock não travou")
	}
	if c.Enabled(geom.PieceSquare) {
		t.Errorf("travar deveria desabilitar todas as peças")
	}

	// Travado: atualizações de cursor são ignoradas.
	other := pose.AtPosition(mgl32.Vec3{-5, 0, -5})
	c.UpdateCursor(&other)
	if cur, _ := c.Cursor(); !cur.ApproxEqual(hit, eps) {
		t.Errorf("cursor mudou enquanto travado: %+v", cur)
	}

	c.ToggleLock()
	if c.Locked() {
		t.Errorf("segundo ToggleLock não destravou")
	}
}

func TestUpdateCursorMissHidesCursor(t *testing.T) {
	c := New(1.0)
	hit := pose.AtPosition(mgl32.Vec3{1, 0, 1})
	c.UpdateCursor(&hit)
	c.UpdateCursor(nil)

	if _, visible := c.Cursor(); visible {
		t.Errorf("sem hit do raycast o cursor deveria sumir")
	}
}

func TestCursorCarriesActivePiece(t *testing.T) {
	c := New(1.0)
	c.Select(geom.PieceT)
	c.MoveRight()

	local := c.Pose(geom.PieceT)

	anchor := pose.AtPosition(mgl32.Vec3{5, 0, 5})
	c.UpdateCursor(&anchor)

	// A pose local não muda com o cursor; a pose de mundo acompanha a âncora.
	if p := c.Pose(geom.PieceT); !p.ApproxEqual(local, eps) {
		t.Errorf("cursor alterou a pose local da peça: %+v", p)
	}
	world := c.WorldPose(geom.PieceT)
	want := mgl32.Vec3{6, 0, 5}
	if !vecNear(world.Pos, want, eps) {
		t.Errorf("pose de mundo = %v, esperado %v", world.Pos, want)
	}
}
