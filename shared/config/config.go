package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do TetraVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Rastreador externo (feed de pose e loudness, usado pelos demos)
	FeedURL string `json:"feed_url"`

	// Geometria das peças
	UnitSize float32 `json:"unit_size"` // aresta do cubo em unidades de mundo

	// Ritual do jardim
	LoudnessThresholdDb float32 `json:"loudness_threshold_db"`

	// Áudio
	AudioEnabled bool `json:"audio_enabled"`

	// Persistência da cena
	SceneDB string `json:"scene_db"`

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "TetraVision",
		Fullscreen:   false,
		TargetFPS:    60,

		FeedURL: "ws://127.0.0.1:8090/ws",

		UnitSize: 0.5,

		LoudnessThresholdDb: -4.0,

		AudioEnabled: true,

		SceneDB: filepath.Join("saves", "tetravision.db"),

		CameraSpeed:       10.0,
		CameraSensitivity: 0.3,
		ZoomSpeed:         5.0,

		ShowDebugInfo: true,
		ShowGrid:      true,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
