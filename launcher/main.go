package main

import (
	"flag"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// exeName resolve o nome do binário conforme a plataforma.
func exeName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func main() {
	demo := flag.String("demo", "blocos", "Demo a abrir: blocos ou jardim")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║       TetraVision Launcher           ║")
	fmt.Println("╚══════════════════════════════════════╝")

	if *demo != "blocos" && *demo != "jardim" {
		log.Fatalf("Demo desconhecido: %q (use blocos ou jardim)", *demo)
	}

	// 1. Iniciar o Rastreador em background (os demos conectam nele)
	fmt.Println("[1/2] Iniciando Rastreador...")
	trackerPath, err := filepath.Abs(filepath.Join("rastreador", exeName("rastreador")))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do rastreador: %v", err)
	}
	trackerCmd := exec.Command(trackerPath)
	trackerCmd.Dir = "rastreador"
	if err := trackerCmd.Start(); err != nil {
		fmt.Printf("Aviso: rastreador não iniciou (%v). O demo seguirá com mouse/teclado.\n", err)
	} else {
		// 2. Dar tempo do WebSocket subir antes do demo tentar conectar
		fmt.Println("Aguardando inicialização do rastreador...")
		time.Sleep(2 * time.Second)
	}

	// 3. Abrir o demo escolhido
	fmt.Printf("[2/2] Abrindo demo %q...\n", *demo)
	demoPath, err := filepath.Abs(filepath.Join(*demo, exeName(*demo)))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do demo: %v", err)
	}

	demoCmd := exec.Command(demoPath)
	demoCmd.Dir = *demo // Diretório de trabalho do demo (config.json, saves/)

	if err := demoCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o demo em %s\n", demoPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! TetraVision foi iniciado.")
	fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
	time.Sleep(2 * time.Second)
}
