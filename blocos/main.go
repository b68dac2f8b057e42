package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"TetraVision/blocos/internal/app"
	"TetraVision/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade no Windows: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	feedURL := flag.String("feed", "", "URL do rastreador (padrão: ws://127.0.0.1:8090/ws)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_blocos.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO TETRAVISION: BLOCOS ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║        TetraVision - Blocos          ║")
	log.Println("║   Demo de posicionamento de peças    ║")
	log.Println("╚══════════════════════════════════════╝")

	// Carregar configurações
	cfg := config.Load()

	// Aplicar flags de linha de comando (sobrescrevem o config salvo)
	if *feedURL != "" {
		cfg.FeedURL = *feedURL
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}
	if *debug {
		cfg.ShowDebugInfo = true
	}
	if *width > 0 {
		cfg.WindowWidth = int32(*width)
	}
	if *height > 0 {
		cfg.WindowHeight = int32(*height)
	}

	// Criar e rodar a aplicação
	application := app.New(cfg)
	application.Run()
}
