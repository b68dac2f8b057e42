package app

import (
	"fmt"
	"log"

	"TetraVision/shared/geom"
	"TetraVision/shared/scene"
)

// Command é um comando discreto do usuário (botão do HUD ou atalho).
type Command int

const (
	CmdSelectStraight Command = iota
	CmdSelectSquare
	CmdSelectT
	CmdSelectL
	CmdSelectSkew
	CmdMoveLeft
	CmdMoveRight
	CmdRotateCCW
	CmdRotateCW
	CmdToggleLock
	CmdClearScene
)

// processCommands drena a fila e aplica cada comando ao controlador.
func (a *App) processCommands() {
	for {
		cmd, ok := a.commands.Pop()
		if !ok {
			return
		}
		a.applyCommand(cmd)
	}
}

func (a *App) applyCommand(cmd Command) {
	switch cmd {
	case CmdSelectStraight:
		a.selectPiece(geom.PieceStraight)
	case CmdSelectSquare:
		a.selectPiece(geom.PieceSquare)
	case CmdSelectT:
		a.selectPiece(geom.PieceT)
	case CmdSelectL:
		a.selectPiece(geom.PieceL)
	case CmdSelectSkew:
		a.selectPiece(geom.PieceSkew)
	case CmdMoveLeft:
		a.controller.MoveLeft()
	case CmdMoveRight:
		a.controller.MoveRight()
	case CmdRotateCCW:
		a.controller.RotateCCW()
	case CmdRotateCW:
		a.controller.RotateCW()
	case CmdToggleLock:
		a.toggleLock()
	case CmdClearScene:
		a.clearScene()
	}
}

func (a *App) selectPiece(kind geom.PieceKind) {
	a.controller.Select(kind)
	a.setStatus(fmt.Sprintf("Peça selecionada: %s", kind))
}

// toggleLock trava o rastreamento. Ao travar com uma peça ativa visível, a
// pose de mundo dela vira uma peça fixa da cena (e vai para o banco).
func (a *App) toggleLock() {
	if !a.controller.Locked() {
		if kind, world, ok := a.activeWorldPose(); ok {
			placement := scene.Placement{Kind: kind, Pose: world}
			a.placements = append(a.placements, placement)
			if a.store != nil {
				if err := a.store.SavePlacement(kind, world); err != nil {
					log.Printf("[Blocos] Peça travada apenas em memória: %v", err)
				}
			}
			log.Printf("[Blocos] Peça %s travada em %v", kind, world.Pos)
			a.setStatus(fmt.Sprintf("Peça %s travada", kind))
		} else {
			a.setStatus("Rastreamento travado")
		}
	} else {
		a.setStatus("Rastreamento destravado")
	}

	a.controller.ToggleLock()
}

func (a *App) clearScene() {
	a.placements = nil
	if a.store != nil {
		if err := a.store.ClearPlacements(); err != nil {
			log.Printf("[Blocos] Erro ao limpar a cena no banco: %v", err)
		}
	}
	log.Println("[Blocos] Cena limpa")
	a.setStatus("Cena limpa")
}
