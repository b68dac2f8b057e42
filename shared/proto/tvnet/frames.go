// Package tvnet define as mensagens trocadas entre o rastreador e os demos:
// pose do cursor, reconhecimento da imagem alvo e nível de loudness. Todas
// são serializadas à mão sobre o codec protowire.
package tvnet

import (
	"fmt"

	"TetraVision/shared/pkg/protowire"
)

// FrameType identifica o conteúdo de um Envelope.
type FrameType int32

const (
	FrameUnknown     FrameType = 0
	FrameStatus      FrameType = 1
	FrameCursorPose  FrameType = 2
	FrameImageTarget FrameType = 3
	FrameLoudness    FrameType = 4
	FramePing        FrameType = 5
	FramePong        FrameType = 6
)

// Envelope embrulha qualquer frame com seu tipo.
type Envelope struct {
	Type    FrameType
	Payload []byte
}

func (m *Envelope) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Type))
	e.EncodeBytes(2, m.Payload)
	return e.Bytes()
}

func (m *Envelope) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Type = FrameType(v)
		case 2:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.Payload = b
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// StatusFrame informa o estado do rastreador ao conectar.
type StatusFrame struct {
	Message      string
	TrackerReady bool
}

func (m *StatusFrame) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.Message)
	e.EncodeBool(2, m.TrackerReady)
	return e.Bytes()
}

func (m *StatusFrame) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Message = v
		case 2:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.TrackerReady = v
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// CursorPoseFrame é o resultado do raycast do rastreador no plano detectado.
// Hit=false significa que o plano saiu do campo de visão neste frame.
type CursorPoseFrame struct {
	X, Y, Z        float32
	QW, QX, QY, QZ float32
	Hit            bool
}

func (m *CursorPoseFrame) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeFloat32(1, m.X)
	e.EncodeFloat32(2, m.Y)
	e.EncodeFloat32(3, m.Z)
	e.EncodeFloat32(4, m.QW)
	e.EncodeFloat32(5, m.QX)
	e.EncodeFloat32(6, m.QY)
	e.EncodeFloat32(7, m.QZ)
	e.EncodeBool(8, m.Hit)
	return e.Bytes()
}

func (m *CursorPoseFrame) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		var fv *float32
		switch fieldNum {
		case 1:
			fv = &m.X
		case 2:
			fv = &m.Y
		case 3:
			fv = &m.Z
		case 4:
			fv = &m.QW
		case 5:
			fv = &m.QX
		case 6:
			fv = &m.QY
		case 7:
			fv = &m.QZ
		case 8:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			m.Hit = v
			continue
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
			continue
		}
		v, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		*fv = v
	}
	return nil
}

// ImageTargetFrame é emitido uma vez quando a imagem de referência é
// reconhecida, com a pose da âncora resultante.
type ImageTargetFrame struct {
	Name           string
	X, Y, Z        float32
	QW, QX, QY, QZ float32
}

func (m *ImageTargetFrame) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.Name)
	e.EncodeFloat32(2, m.X)
	e.EncodeFloat32(3, m.Y)
	e.EncodeFloat32(4, m.Z)
	e.EncodeFloat32(5, m.QW)
	e.EncodeFloat32(6, m.QX)
	e.EncodeFloat32(7, m.QY)
	e.EncodeFloat32(8, m.QZ)
	return e.Bytes()
}

func (m *ImageTargetFrame) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		var fv *float32
		switch fieldNum {
		case 1:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			m.Name = v
			continue
		case 2:
			fv = &m.X
		case 3:
			fv = &m.Y
		case 4:
			fv = &m.Z
		case 5:
			fv = &m.QW
		case 6:
			fv = &m.QX
		case 7:
			fv = &m.QY
		case 8:
			fv = &m.QZ
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
			continue
		}
		v, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		*fv = v
	}
	return nil
}

// LoudnessFrame carrega o nível atual do microfone do rastreador, em dB.
type LoudnessFrame struct {
	Db float32
}

func (m *LoudnessFrame) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeFloat32(1, m.Db)
	return e.Bytes()
}

func (m *LoudnessFrame) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadFloat32()
			if err != nil {
				return err
			}
			m.Db = v
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pack embrulha um frame em um Envelope já serializado.
func Pack(t FrameType, frame interface{ Marshal() []byte }) []byte {
	env := &Envelope{Type: t}
	if frame != nil {
		env.Payload = frame.Marshal()
	}
	return env.Marshal()
}

// Unpack decodifica um Envelope cru recebido do websocket.
func Unpack(data []byte) (*Envelope, error) {
	var env Envelope
	if err := env.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("tvnet: envelope inválido: %w", err)
	}
	return &env, nil
}
