// Package geom monta a geometria procedural das peças tetrominó: a partir do
// tipo da peça e do tamanho da aresta do cubo, produz a sequência de offsets
// locais dos cubos unitários. Função pura, sem estado.
package geom

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// PieceKind identifica o formato da peça.
type PieceKind int

const (
	PieceStraight PieceKind = iota // 4 cubos empilhados em +Y
	PieceSquare                    // bloco 2x2
	PieceT                         // centro com vizinhos esquerda/direita/topo
	PieceL                         // 3 empilhados + 1 lateral
	PieceSkew                      // formato S
)

// Kinds retorna todos os tipos válidos, na ordem dos botões da interface.
func Kinds() []PieceKind {
	return []PieceKind{PieceStraight, PieceSquare, PieceT, PieceL, PieceSkew}
}

// String retorna o nome exibido da peça.
func (k PieceKind) String() string {
	switch k {
	case PieceStraight:
		return "Reta"
	case PieceSquare:
		return "Quadrado"
	case PieceT:
		return "T"
	case PieceL:
		return "L"
	case PieceSkew:
		return "Skew"
	}
	return "Desconhecida"
}

// Valid verifica se o tipo é reconhecido.
func (k PieceKind) Valid() bool {
	return k >= PieceStraight && k <= PieceSkew
}

// Color retorna a cor associada à peça. Tipos desconhecidos recebem cinza.
func (k PieceKind) Color() rl.Color {
	switch k {
	case PieceStraight:
		return rl.SkyBlue
	case PieceSquare:
		return rl.Yellow
	case PieceT:
		return rl.Purple
	case PieceL:
		return rl.Orange
	case PieceSkew:
		return rl.Green
	}
	return rl.Gray
}

// Assemble produz os offsets locais dos cubos que formam a peça, em unidades
// da aresta do cubo. A ordem é estável e o resultado é determinístico.
//
// As peças "t" e "l" reproduzem o arranjo observado no app original, que não
// coincide com os tetrominós canônicos de mesmo nome: o "t" não tem cubo
// inferior e o "l" é uma pilha de 3 com um cubo lateral.
func Assemble(kind PieceKind, unit float32) []mgl32.Vec3 {
	u := unit
	switch kind {
	case PieceStraight:
		return []mgl32.Vec3{
			{0, 0, 0},
			{0, u, 0},
			{0, 2 * u, 0},
			{0, 3 * u, 0},
		}
	case PieceSquare:
		return []mgl32.Vec3{
			{0, 0, 0},
			{0, u, 0},
			{u, u, 0},
			{u, 0, 0},
		}
	case PieceT:
		return []mgl32.Vec3{
			{0, 0, 0},
			{0, u, 0},
			{-u, 0, 0},
			{u, 0, 0},
		}
	case PieceL:
		return []mgl32.Vec3{
			{0, 0, 0},
			{0, u, 0},
			{0, 2 * u, 0},
			{u, 0, 0},
		}
	case PieceSkew:
		return []mgl32.Vec3{
			{0, 0, 0},
			{-u, 0, 0},
			{0, u, 0},
			{u, u, 0},
		}
	}
	// Tipo desconhecido: degrada para a peça reta em escala reduzida.
	// Comportamento documentado, não é erro.
	return Assemble(PieceStraight, unit*0.5)
}
