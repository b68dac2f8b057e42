package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TetraVision/shared/camera"
	"TetraVision/shared/config"
	"TetraVision/shared/pieces"
	"TetraVision/shared/scene"
	"TetraVision/shared/track"
	"TetraVision/shared/util"
)

// App é o demo de posicionamento de peças tetrominó.
type App struct {
	Config *config.Config

	// Controlador de Câmera
	Cam *camera.Controller

	// Seleção e transformação das peças
	controller *pieces.Controller

	// Feed do rastreador externo (opcional; sem ele o cursor vem do mouse)
	feed *track.FeedClient

	// Persistência da cena (peças travadas entre sessões)
	store      *scene.Store
	placements []scene.Placement

	// Comandos discretos enfileirados pelos botões e atalhos do frame,
	// drenados pela lógica no mesmo frame.
	commands *util.EventQueue[Command]

	// Informações de debug
	frameCount int

	// Mensagem transitória do HUD
	statusMsg   string
	statusUntil float64
}

// New cria uma nova instância do demo.
func New(cfg *config.Config) *App {
	return &App{
		Config:     cfg,
		controller: pieces.New(cfg.UnitSize),
		commands:   util.NewEventQueue[Command](),
	}
}

// Run inicia o loop principal do demo.
func (a *App) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro fatal recuperado: %v", r)
			panic(r)
		}
	}()

	// Inicializar janela raylib
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle+" - Blocos")
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)

	// Inicializar sistema de câmera
	a.Cam = camera.New()
	a.Cam.SetTarget(rl.Vector3{X: 0, Y: 0.5, Z: 0})

	log.Println("[Blocos] Janela inicializada com sucesso")
	log.Printf("[Blocos] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	// Persistência da cena
	store, err := scene.Open(a.Config.SceneDB)
	if err != nil {
		log.Printf("[Blocos] Cena não será persistida: %v", err)
	} else {
		a.store = store
		if saved, err := store.Placements(); err == nil {
			a.placements = saved
			log.Printf("[Blocos] %d peça(s) restaurada(s) da sessão anterior", len(saved))
		}
	}

	// Feed do rastreador em background; sem ele o demo segue com o mouse
	a.feed = track.NewFeedClient(a.Config.FeedURL)
	go a.feed.Connect()

	// Loop principal
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	// Cleanup
	a.shutdown()
	rl.CloseWindow()
}

// update atualiza a lógica do demo a cada frame.
func (a *App) update() {
	a.frameCount++

	a.updateCamera()
	a.updateInput()
	a.updateCursor()
	a.processCommands()
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[Blocos] Finalizando demo...")

	if a.feed != nil {
		a.feed.Close()
	}
	if a.store != nil {
		a.store.Close()
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[Blocos] Erro ao salvar configurações: %v", err)
	}
}

// setStatus mostra uma mensagem transitória no HUD por alguns segundos.
func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusUntil = rl.GetTime() + 2.5
}
