package app

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"TetraVision/shared/audio"
	"TetraVision/shared/camera"
	"TetraVision/shared/config"
	"TetraVision/shared/pose"
	"TetraVision/shared/ritual"
	"TetraVision/shared/scene"
	"TetraVision/shared/track"
)

// App é o demo do ritual das três flores.
type App struct {
	Config *config.Config

	// Controlador de Câmera
	Cam *camera.Controller

	// Máquina de estados do ritual
	machine *ritual.Machine

	// Âncora onde o jardim foi plantado (pose da imagem alvo)
	anchor pose.Pose

	// Feed do rastreador externo (reconhecimento da imagem alvo e loudness)
	feed *track.FeedClient

	// Áudio: sinais do ritual e fonte local de loudness quando não há feed
	audio   *audio.Player
	meter   *audio.Meter
	ambient *audio.Ambient

	// Persistência do progresso do ritual
	store *scene.Store

	// Informações de debug
	frameCount int
	loudnessDb float32

	lastAutoSaveTime float64

	// Mensagem transitória do HUD
	statusMsg   string
	statusUntil float64
}

// New cria uma nova instância do demo.
func New(cfg *config.Config) *App {
	return &App{
		Config:  cfg,
		machine: ritual.New(cfg.LoudnessThresholdDb),
		anchor:  pose.Identity(),
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
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle+" - Jardim")
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}

	rl.SetTargetFPS(a.Config.TargetFPS)

	// Inicializar sistema de câmera
	a.Cam = camera.New()
	a.Cam.SetTarget(rl.Vector3{X: 0, Y: 0.5, Z: 0})

	log.Println("[Jardim] Janela inicializada com sucesso")
	log.Printf("[Jardim] Resolução: %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)

	// Áudio: sinais do ritual + loop ambiente medido localmente
	a.audio = audio.NewPlayer(a.Config.AudioEnabled)
	if a.audio.Ready() {
		a.ambient = audio.NewAmbient()
		a.meter = audio.NewMeter(16)
		a.audio.StartAmbient(a.meter.Tap(a.ambient))
		log.Println("[Jardim] Loop ambiente iniciado (segure V para o sopro)")
	}

	// Persistência do ritual
	store, err := scene.Open(a.Config.SceneDB)
	if err != nil {
		log.Printf("[Jardim] Progresso não será persistido: %v", err)
	} else {
		a.store = store
		if snap, found, err := store.LoadRitual(); err == nil && found {
			a.machine.Restore(snap)
			log.Printf("[Jardim] Ritual restaurado: plantado=%v toques=%d", snap.Planted, snap.HitCount)
		}
	}

	// Feed do rastreador em background; sem ele o demo segue com Enter + V
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
	a.updateRitual()
	a.handleAutoSave()
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	log.Println("[Jardim] Finalizando demo...")

	if a.store != nil {
		if err := a.store.SaveRitual(a.machine.Snapshot()); err == nil {
			log.Println("[Jardim] Progresso do ritual salvo")
		}
		a.store.Close()
	}
	if a.feed != nil {
		a.feed.Close()
	}

	if err := a.Config.Save(); err != nil {
		log.Printf("[Jardim] Erro ao salvar configurações: %v", err)
	}
}

// handleAutoSave grava o progresso do ritual periodicamente.
func (a *App) handleAutoSave() {
	currentTime := rl.GetTime()
	if currentTime-a.lastAutoSaveTime >= 30.0 {
		a.lastAutoSaveTime = currentTime
		if a.store != nil && a.machine.Planted() {
			if err := a.store.SaveRitual(a.machine.Snapshot()); err != nil {
				log.Printf("[Jardim] Auto-save falhou: %v", err)
			}
		}
	}
}

// setStatus mostra uma mensagem transitória no HUD por alguns segundos.
func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusUntil = rl.GetTime() + 2.5
}
