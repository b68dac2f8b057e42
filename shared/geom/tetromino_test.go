package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAssembleDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		a := Assemble(k, 2.0)
		b := Assemble(k, 2.0)
		if len(a) != len(b) {
			t.Fatalf("Assemble(%v) tamanhos diferentes: %d vs %d", k, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("Assemble(%v)[%d] = %v, segunda chamada %v", k, i, a[i], b[i])
			}
		}
	}
}

func TestAssembleStraight(t *testing.T) {
	u := float32(1.5)
	got := Assemble(PieceStraight, u)
	want := []mgl32.Vec3{{0, 0, 0}, {0, u, 0}, {0, 2 * u, 0}, {0, 3 * u, 0}}

	if len(got) != 4 {
		t.Fatalf("Assemble(straight) = %d cubos, esperado 4", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("offset[%d] = %v, esperado %v", i, got[i], want[i])
		}
	}
}

func TestAssembleSquareGrid(t *testing.T) {
	u := float32(2.0)
	got := Assemble(PieceSquare, u)
	if len(got) != 4 {
		t.Fatalf("Assemble(square) = %d cubos, esperado 4", len(got))
	}

	// Deve formar uma grade 2x2 com espaçamento u no plano XY.
	seen := map[mgl32.Vec3]bool{}
	for _, o := range got {
		seen[o] = true
	}
	for _, want := range []mgl32.Vec3{{0, 0, 0}, {0, u, 0}, {u, 0, 0}, {u, u, 0}} {
		if !seen[want] {
			t.Errorf("grade 2x2 sem o offset %v (got %v)", want, got)
		}
	}
}

func TestAssembleObservedShapes(t *testing.T) {
	u := float32(1.0)
	tests := []struct {
		kind PieceKind
		want []mgl32.Vec3
	}{
		// O "t" observado não tem cubo inferior.
		{PieceT, []mgl32.Vec3{{0, 0, 0}, {0, u, 0}, {-u, 0, 0}, {u, 0, 0}}},
		// O "l" observado é pilha de 3 + 1 lateral.
		{PieceL, []mgl32.Vec3{{0, 0, 0}, {0, u, 0}, {0, 2 * u, 0}, {u, 0, 0}}},
		{PieceSkew, []mgl32.Vec3{{0, 0, 0}, {-u, 0, 0}, {0, u, 0}, {u, u, 0}}},
	}

	for _, tt := range tests {
		got := Assemble(tt.kind, u)
		if len(got) != len(tt.want) {
			t.Fatalf("Assemble(%v) = %d cubos, esperado %d", tt.kind, len(got), len(tt.want))
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Assemble(%v)[%d] = %v, esperado %v", tt.kind, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAssembleUnknownKindFallback(t *testing.T) {
	u := float32(2.0)
	got := Assemble(PieceKind(99), u)
	want := Assemble(PieceStraight, u*0.5)

	if len(got) != len(want) {
		t.Fatalf("fallback = %d cubos, esperado %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fallback[%d] = %v, esperado %v (reta em escala reduzida)", i, got[i], want[i])
		}
	}
}

func TestKindStringAndColor(t *testing.T) {
	if PieceKind(99).String() != "Desconhecida" {
		t.Errorf("String de tipo inválido = %q", PieceKind(99).String())
	}
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("Kinds() retornou tipo inválido: %v", k)
		}
		if k.String() == "Desconhecida" {
			t.Errorf("tipo válido %d sem nome", k)
		}
	}
}
