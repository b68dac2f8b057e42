// Package track liga os demos ao rastreador externo: recebe pela rede os
// frames de pose do cursor, o reconhecimento da imagem alvo e o nível de
// loudness. A goroutine de leitura nunca toca o estado dos demos; tudo
// atravessa filas e slots drenados pelo frame loop.
package track

import (
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	pkgutil "TetraVision/shared/pkg/util"
	"TetraVision/shared/pose"
	"TetraVision/shared/proto/tvnet"
	"TetraVision/shared/util"
)

// cursorStaleAfter define quando o último frame de cursor deixa de valer:
// sem frames novos o app volta para o raycast local.
const cursorStaleAfter = 500 * time.Millisecond

// TargetEvent é um reconhecimento de imagem alvo vindo do rastreador.
type TargetEvent struct {
	Name string
	Pose pose.Pose
}

// FeedClient consome o websocket do rastreador.
type FeedClient struct {
	url       string
	conn      *websocket.Conn
	connected bool
	mu        sync.RWMutex

	// Última pose do cursor: seção crítica minúscula, SpinLock basta.
	cursorLock   pkgutil.SpinLock
	cursor       pose.Pose
	cursorHit    bool
	cursorAtNano atomic.Int64

	// Eventos de alvo são one-shot e não podem se perder: fila.
	targets *util.EventQueue[TargetEvent]

	// Último loudness: só o valor mais recente interessa.
	loudnessBits atomic.Uint32
	hasLoudness  atomic.Bool
}

// NewFeedClient cria um cliente para a URL do rastreador (ws://...).
func NewFeedClient(url string) *FeedClient {
	return &FeedClient{
		url:     url,
		targets: util.NewEventQueue[TargetEvent](),
	}
}

// Connect tenta conectar com algumas repetições e inicia a goroutine de
// leitura. Pensado para rodar em background (go feed.Connect()).
func (c *FeedClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var err error
	var conn *websocket.Conn
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		log.Printf("[Track] Tentativa de conexão %d/%d em %s...", i+1, maxRetries, c.url)
		conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Track] Rastreador ainda não está pronto: %v. Aguardando...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Printf("[Track] Desistindo após %d tentativas: %v (seguindo com rastreamento local)", maxRetries, err)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

// IsConnected informa se o feed está ativo.
func (c *FeedClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Close encerra a conexão.
func (c *FeedClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *FeedClient) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[Track] Conexão com o rastreador perdida: %v", err)
			return
		}

		env, err := tvnet.Unpack(message)
		if err != nil {
			log.Printf("[Track] Frame inválido: %v", err)
			continue
		}
		c.handleFrame(env)
	}
}

func (c *FeedClient) handleFrame(env *tvnet.Envelope) {
	switch env.Type {
	case tvnet.FrameStatus:
		var status tvnet.StatusFrame
		if err := status.Unmarshal(env.Payload); err == nil {
			log.Printf("[Track] Rastreador: %s (pronto=%v)", status.Message, status.TrackerReady)
		}
	case tvnet.FrameCursorPose:
		var f tvnet.CursorPoseFrame
		if err := f.Unmarshal(env.Payload); err != nil {
			return
		}
		p := framePose(f.X, f.Y, f.Z, f.QW, f.QX, f.QY, f.QZ)
		c.cursorLock.Lock()
		c.cursor = p
		c.cursorHit = f.Hit
		c.cursorLock.Unlock()
		c.cursorAtNano.Store(time.Now().UnixNano())
	case tvnet.FrameImageTarget:
		var f tvnet.ImageTargetFrame
		if err := f.Unmarshal(env.Payload); err != nil {
			return
		}
		log.Printf("[Track] Imagem alvo reconhecida: %q", f.Name)
		c.targets.Push(TargetEvent{
			Name: f.Name,
			Pose: framePose(f.X, f.Y, f.Z, f.QW, f.QX, f.QY, f.QZ),
		})
	case tvnet.FrameLoudness:
		var f tvnet.LoudnessFrame
		if err := f.Unmarshal(env.Payload); err != nil {
			return
		}
		c.loudnessBits.Store(math.Float32bits(f.Db))
		c.hasLoudness.Store(true)
	case tvnet.FramePong:
		// ping/pong tratado
	}
}

// CursorPose retorna a última pose do cursor. fresh=false quando o frame é
// velho demais (ou nunca chegou) e o app deve usar o raycast local.
func (c *FeedClient) CursorPose() (p pose.Pose, hit bool, fresh bool) {
	at := c.cursorAtNano.Load()
	if at == 0 || time.Since(time.Unix(0, at)) > cursorStaleAfter {
		return pose.Identity(), false, false
	}
	c.cursorLock.Lock()
	p = c.cursor
	hit = c.cursorHit
	c.cursorLock.Unlock()
	return p, hit, true
}

// NextTarget retira o próximo evento de imagem alvo, se houver.
func (c *FeedClient) NextTarget() (TargetEvent, bool) {
	return c.targets.Pop()
}

// LoudnessDb retorna o último nível recebido, se algum chegou.
func (c *FeedClient) LoudnessDb() (float32, bool) {
	if !c.hasLoudness.Load() {
		return 0, false
	}
	return math.Float32frombits(c.loudnessBits.Load()), true
}

// framePose monta uma pose a partir dos componentes do frame. Quaternion
// todo zero (frame sem orientação) vira identidade.
func framePose(x, y, z, qw, qx, qy, qz float32) pose.Pose {
	rot := mgl32.Quat{W: qw, V: mgl32.Vec3{qx, qy, qz}}
	if qw == 0 && qx == 0 && qy == 0 && qz == 0 {
		rot = mgl32.QuatIdent()
	} else {
		rot = rot.Normalize()
	}
	return pose.New(mgl32.Vec3{x, y, z}, rot)
}
