package track

import (
	"testing"

	"TetraVision/shared/proto/tvnet"
)

func deliver(c *FeedClient, t FrameMarshaler, kind tvnet.FrameType) error {
	env, err := tvnet.Unpack(tvnet.Pack(kind, t))
	if err != nil {
		return err
	}
	c.handleFrame(env)
	return nil
}

// FrameMarshaler espelha o contrato dos frames tvnet nos testes.
type FrameMarshaler interface{ Marshal() []byte }

func TestCursorFrameUpdatesSlot(t *testing.T) {
	c := NewFeedClient("ws://teste")

	if _, _, fresh := c.CursorPose(); fresh {
		t.Fatalf("cursor não deveria estar fresco antes de qualquer frame")
	}

	frame := &tvnet.CursorPoseFrame{X: 1, Y: 0, Z: -2, QW: 1, Hit: true}
	if err := deliver(c, frame, tvnet.FrameCursorPose); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	p, hit, fresh := c.CursorPose()
	if !fresh || !hit {
		t.Fatalf("cursor fresh=%v hit=%v, esperado true/true", fresh, hit)
	}
	if p.Pos.X() != 1 || p.Pos.Z() != -2 {
		t.Errorf("pose do cursor = %v", p.Pos)
	}
}

func TestTargetEventsQueueInOrder(t *testing.T) {
	c := NewFeedClient("ws://teste")

	for _, name := range []string{"alvo-a", "alvo-b"} {
		frame := &tvnet.ImageTargetFrame{Name: name, QW: 1}
		if err := deliver(c, frame, tvnet.FrameImageTarget); err != nil {
			t.Fatalf("deliver: %v", err)
		}
	}

	first, ok := c.NextTarget()
	if !ok || first.Name != "alvo-a" {
		t.Errorf("primeiro alvo = %+v ok=%v", first, ok)
	}
	second, ok := c.NextTarget()
	if !ok || second.Name != "alvo-b" {
		t.Errorf("segundo alvo = %+v ok=%v", second, ok)
	}
	if _, ok := c.NextTarget(); ok {
		t.Errorf("fila deveria estar vazia")
	}
}

func TestLoudnessKeepsLatest(t *testing.T) {
	c := NewFeedClient("ws://teste")

	if _, ok := c.LoudnessDb(); ok {
		t.Fatalf("loudness não deveria existir antes do primeiro frame")
	}

	for _, db := range []float32{-30, -12, -2.5} {
		if err := deliver(c, &tvnet.LoudnessFrame{Db: db}, tvnet.FrameLoudness); err != nil {
			t.Fatalf("deliver: %v", err)
		}
	}

	got, ok := c.LoudnessDb()
	if !ok || got != -2.5 {
		t.Errorf("loudness = %f ok=%v, esperado -2.5", got, ok)
	}
}

func TestZeroQuaternionBecomesIdentity(t *testing.T) {
	c := NewFeedClient("ws://teste")
	frame := &tvnet.CursorPoseFrame{X: 3, Hit: true} // sem orientação
	if err := deliver(c, frame, tvnet.FrameCursorPose); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	p, _, _ := c.CursorPose()
	if p.Rot.W != 1 {
		t.Errorf("quaternion zerado deveria virar identidade: %+v", p.Rot)
	}
}
