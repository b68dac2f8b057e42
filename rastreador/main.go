// O rastreador é o colaborador de rastreamento dos demos: publica por
// WebSocket a pose do cursor, o reconhecimento da imagem alvo e o nível de
// loudness. Sem hardware de AR na mesa, os três fluxos são sintetizados.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TetraVision/shared/proto/tvnet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	clients    map[*websocket.Conn]*sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		broadcast:  make(chan []byte, 1024), // Bufferizado para evitar deadlocks e bloqueios
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Recuperado de pânico fatal: %v", r)
		}
	}()

	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = &sync.Mutex{}
			h.mu.Unlock()
			log.Printf("Demo conectado: %s", client.RemoteAddr())
		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if lock, ok := h.clients[client]; ok {
				lock.Lock()
				delete(h.clients, client)
				client.Close()
				lock.Unlock()
				log.Printf("Demo desconectado: %s", client.RemoteAddr())
			}
			h.mu.Unlock()
		case message, ok := <-h.broadcast:
			if !ok {
				return
			}
			h.mu.Lock()
			type clientEntry struct {
				conn *websocket.Conn
				lock *sync.Mutex
			}
			var targets []clientEntry
			for c, l := range h.clients {
				targets = append(targets, clientEntry{c, l})
			}
			h.mu.Unlock()

			for _, target := range targets {
				target.lock.Lock()
				err := target.conn.WriteMessage(websocket.BinaryMessage, message)
				if err != nil {
					log.Printf("Erro ao enviar para %s: %v", target.conn.RemoteAddr(), err)
					target.conn.Close()
					h.mu.Lock()
					delete(h.clients, target.conn)
					h.mu.Unlock()
				}
				target.lock.Unlock()
			}
		}
	}
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("demo não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// safeSend envia para o canal de broadcast protegendo contra pânicos de canal fechado
func (h *Hub) safeSend(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Aviso: Falha no broadcast (canal fechado?): %v", r)
		}
	}()
	h.broadcast <- data
}

// BroadcastCursor publica a pose sintetizada do cursor.
func (h *Hub) BroadcastCursor(x, y, z float32, hit bool) {
	h.safeSend(tvnet.Pack(tvnet.FrameCursorPose, &tvnet.CursorPoseFrame{
		X: x, Y: y, Z: z,
		QW:  1,
		Hit: hit,
	}))
}

// BroadcastLoudness publica o nível de loudness atual.
func (h *Hub) BroadcastLoudness(db float32) {
	h.safeSend(tvnet.Pack(tvnet.FrameLoudness, &tvnet.LoudnessFrame{Db: db}))
}

// SendTarget envia o reconhecimento one-shot da imagem alvo para um demo.
func (h *Hub) SendTarget(conn *websocket.Conn, name string) {
	frame := &tvnet.ImageTargetFrame{Name: name, QW: 1}
	if err := h.WriteSafe(conn, tvnet.Pack(tvnet.FrameImageTarget, frame)); err != nil {
		log.Printf("Erro ao enviar imagem alvo: %v", err)
	}
}

func main() {
	port := flag.String("port", "8090", "Porta do servidor WebSocket")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	// Logar no console e em arquivo simultaneamente
	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/rastreador.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			mw := io.MultiWriter(os.Stdout, logFile)
			log.SetOutput(mw)
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║      TetraVision RASTREADOR          ║")
	log.Println("╚══════════════════════════════════════╝")

	hub := newHub()
	go hub.run()

	// Varredura sintética do cursor sobre a mesa
	go sweepCursor(hub)

	// Envelope de loudness: quieto com rajadas periódicas que cruzam o limiar
	go synthesizeLoudness(hub)

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})

	if p := os.Getenv("PORT"); p != "" {
		*port = p
	}

	// Verificação de porta antes de subir o servidor
	addr := "127.0.0.1:" + *port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("ERRO CRÍTICO: porta %s ocupada. Há outro rastreador rodando?", *port)
		log.Fatalf("Erro ao iniciar rastreador: %v", err)
	}
	ln.Close() // Fecha para o ListenAndServe reabrir

	log.Printf("Rastreador TetraVision iniciado em %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Erro fatal no rastreador: %v", err)
	}
}

// serveWs maneja requisições websocket dos demos.
func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Erro no upgrade do WebSocket: %v", err)
		return
	}
	hub.register <- conn

	// Status inicial
	status := &tvnet.StatusFrame{
		Message:      "Conectado ao rastreador TetraVision",
		TrackerReady: true,
	}
	if err := hub.WriteSafe(conn, tvnet.Pack(tvnet.FrameStatus, status)); err != nil {
		log.Printf("Erro ao enviar status inicial: %v", err)
	}

	// Reconhecimento one-shot da imagem alvo, com um pequeno atraso que
	// imita o tempo de detecção da câmera.
	go func() {
		time.Sleep(3 * time.Second)
		hub.SendTarget(conn, "jardim-alvo")
		log.Printf("Imagem alvo enviada para %s", conn.RemoteAddr())
	}()

	go func() {
		defer func() {
			hub.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Erro ao ler mensagem: %v", err)
				break
			}

			env, err := tvnet.Unpack(message)
			if err != nil {
				log.Printf("Erro ao desempacotar frame: %v", err)
				continue
			}

			if env.Type == tvnet.FramePing {
				if err := hub.WriteSafe(conn, tvnet.Pack(tvnet.FramePong, nil)); err != nil {
					log.Printf("Erro ao responder ping: %v", err)
				}
			}
		}
	}()
}

// sweepCursor percorre a mesa em uma figura de Lissajous, com janelas
// periódicas sem hit (cursor fora da superfície).
func sweepCursor(hub *Hub) {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for range ticker.C {
		t := time.Since(start).Seconds()

		x := float32(1.6 * math.Sin(t*0.7))
		z := float32(1.1 * math.Sin(t*0.9+math.Pi/3))

		// A cada ~15s o cursor sai da superfície por 2s
		hit := math.Mod(t, 15.0) > 2.0

		hub.BroadcastCursor(x, 0, z, hit)
	}
}

// synthesizeLoudness publica um nível de fundo quieto com rajadas que sobem
// acima do limiar de revert dos demos (-4 dB) a cada ~20 segundos.
func synthesizeLoudness(hub *Hub) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for range ticker.C {
		t := time.Since(start).Seconds()

		db := float32(-38 + 4*math.Sin(t*1.3)) // ruído de sala
		phase := math.Mod(t, 20.0)
		if phase > 17.0 {
			// Rajada: sobe até perto de -1.5 dB e desce
			burst := math.Sin((phase - 17.0) / 3.0 * math.Pi)
			db = float32(-38 + burst*36.5)
		}

		hub.BroadcastLoudness(db)
	}
}
