// Package protowire implementa encoding/decoding minimalista do wire format
// protobuf, suficiente para os frames do rastreador (tvnet). Mensagens são
// serializadas à mão, sem código gerado nem dependência do runtime protobuf.
// Wire types: 0=Varint, 1=64bit, 2=LengthDelimited, 5=32bit
package protowire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Constantes de wire type do protobuf.
const (
	WireVarint          = 0
	Wire64Bit           = 1
	WireLengthDelimited = 2
	Wire32Bit           = 5
)

// ---------- ENCODER ----------

// Encoder acumula bytes no formato protobuf.
type Encoder struct {
	buf []byte
}

// NewEncoder cria um encoder vazio.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 128)}
}

// Bytes retorna o buffer serializado.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Reset limpa o buffer.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

func (e *Encoder) appendVarint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// appendTag adiciona field tag (field_number << 3 | wire_type).
func (e *Encoder) appendTag(fieldNum int, wireType int) {
	e.appendVarint(uint64(fieldNum<<3 | wireType))
}

// EncodeVarint codifica um campo varint (int32, int64, bool, enum).
// Semântica proto3: zero é valor default e não é serializado.
func (e *Encoder) EncodeVarint(fieldNum int, v int64) {
	if v == 0 {
		return
	}
	e.appendTag(fieldNum, WireVarint)
	e.appendVarint(uint64(v))
}

// EncodeBool codifica um boolean.
func (e *Encoder) EncodeBool(fieldNum int, v bool) {
	if !v {
		return
	}
	e.appendTag(fieldNum, WireVarint)
	e.appendVarint(1)
}

// EncodeString codifica uma string.
func (e *Encoder) EncodeString(fieldNum int, v string) {
	if v == "" {
		return
	}
	e.appendTag(fieldNum, WireLengthDelimited)
	e.appendVarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// EncodeBytes codifica bytes raw (length-delimited).
func (e *Encoder) EncodeBytes(fieldNum int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.appendTag(fieldNum, WireLengthDelimited)
	e.appendVarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// EncodeSubmessage codifica uma submensagem (length-delimited).
func (e *Encoder) EncodeSubmessage(fieldNum int, sub []byte) {
	e.EncodeBytes(fieldNum, sub)
}

// EncodeFloat32 codifica um float32 como fixed32. Sempre serializa, mesmo
// zero: os frames de pose carregam componentes legitimamente nulos.
func (e *Encoder) EncodeFloat32(fieldNum int, v float32) {
	e.appendTag(fieldNum, Wire32Bit)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	e.buf = append(e.buf, b[:]...)
}

// ---------- DECODER ----------

// Decoder lê campos protobuf de um buffer.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder cria um decoder sobre um buffer.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Done retorna true se não há mais bytes.
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

func (d *Decoder) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if d.pos >= len(d.buf) {
			return 0, errors.New("protowire: varint truncado")
		}
		b := d.buf[d.pos]
		d.pos++
		result |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return result, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, errors.New("protowire: varint overflow")
		}
	}
}

// ReadTag lê o número do campo e o wire type do próximo campo.
func (d *Decoder) ReadTag() (fieldNum int, wireType int, err error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, 0, err
	}
	return int(v >> 3), int(v & 0x07), nil
}

// ReadVarint lê um valor varint (após o tag já ter sido lido).
func (d *Decoder) ReadVarint() (int64, error) {
	v, err := d.readVarint()
	return int64(v), err
}

// ReadBool lê um boolean.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.readVarint()
	return v != 0, err
}

// ReadBytes lê um campo length-delimited.
func (d *Decoder) ReadBytes() ([]byte, error) {
	length, err := d.readVarint()
	if err != nil {
		return nil, err
	}

	// Guarda contra comprimentos maiores que o restante do buffer.
	remaining := uint64(len(d.buf) - d.pos)
	if length > remaining {
		return nil, fmt.Errorf("protowire: comprimento excessivo: precisa %d, tem %d", length, remaining)
	}

	intLen := int(length)
	data := d.buf[d.pos : d.pos+intLen]
	d.pos += intLen
	return data, nil
}

// ReadString lê uma string.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFloat32 lê um float32 / fixed32.
func (d *Decoder) ReadFloat32() (float32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, errors.New("protowire: fixed32 truncado")
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return math.Float32frombits(v), nil
}

// SkipField pula um campo baseado no wire type.
func (d *Decoder) SkipField(wireType int) error {
	switch wireType {
	case WireVarint:
		_, err := d.readVarint()
		return err
	case Wire64Bit:
		if d.pos+8 > len(d.buf) {
			return errors.New("protowire: 64-bit truncado")
		}
		d.pos += 8
		return nil
	case WireLengthDelimited:
		_, err := d.ReadBytes()
		return err
	case Wire32Bit:
		if d.pos+4 > len(d.buf) {
			return errors.New("protowire: 32-bit truncado")
		}
		d.pos += 4
		return nil
	default:
		return fmt.Errorf("protowire: wire type desconhecido: %d", wireType)
	}
}
