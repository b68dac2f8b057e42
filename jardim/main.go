package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"TetraVision/jardim/internal/app"
	"TetraVision/shared/config"
)

func main() {
	// IMPORTANTE para estabilidade no Windows: Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	// Flags de linha de comando
	feedURL := flag.String("feed", "", "URL do rastreador (padrão: ws://127.0.0.1:8090/ws)")
	fullscreen := flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	debug := flag.Bool("debug", false, "Mostrar informações de debug")
	mute := flag.Bool("mute", false, "Desativar áudio")
	width := flag.Int("width", 0, "Largura da janela")
	height := flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	// Configurar Log em Arquivo
	f, err := os.OpenFile("debug_jardim.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		log.SetOutput(f)
		log.Println("--- INICIANDO TETRAVISION: JARDIM ---")
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║        TetraVision - Jardim          ║")
	log.Println("║    Demo do ritual das três flores    ║")
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
	if *mute {
		cfg.AudioEnabled = false
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
