package tvnet

import "testing"

func TestCursorPoseFrameRoundTrip(t *testing.T) {
	in := CursorPoseFrame{
		X: 1.5, Y: 0, Z: -2.25,
		QW: 0.7071, QX: 0, QY: 0.7071, QZ: 0,
		Hit: true,
	}

	data := Pack(FrameCursorPose, &in)
	env, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if env.Type != FrameCursorPose {
		t.Fatalf("tipo = %v, esperado FrameCursorPose", env.Type)
	}

	var out CursorPoseFrame
	if err := out.Unmarshal(env.Payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip divergiu:\n in=%+v\nout=%+v", in, out)
	}
}

func TestCursorPoseFrameMiss(t *testing.T) {
	// Hit=false e componentes zero devem sobreviver (fixed32 sempre serializa).
	in := CursorPoseFrame{QW: 1}
	var out CursorPoseFrame
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Hit {
		t.Errorf("Hit deveria decodificar como false")
	}
	if out.QW != 1 || out.X != 0 {
		t.Errorf("round trip divergiu: %+v", out)
	}
}

func TestImageTargetFrameRoundTrip(t *testing.T) {
	in := ImageTargetFrame{Name: "jardim-alvo", X: 0.5, Y: 1, Z: -1, QW: 1}
	var out ImageTargetFrame
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip divergiu:\n in=%+v\nout=%+v", in, out)
	}
}

func TestLoudnessAndStatusFrames(t *testing.T) {
	l := LoudnessFrame{Db: -3.5}
	var lo LoudnessFrame
	if err := lo.Unmarshal(l.Marshal()); err != nil {
		t.Fatalf("Unmarshal loudness: %v", err)
	}
	if lo.Db != -3.5 {
		t.Errorf("Db = %f, esperado -3.5", lo.Db)
	}

	s := StatusFrame{Message: "Rastreador pronto", TrackerReady: true}
	var so StatusFrame
	if err := so.Unmarshal(s.Marshal()); err != nil {
		t.Fatalf("Unmarshal status: %v", err)
	}
	if so != s {
		t.Errorf("round trip divergiu: %+v", so)
	}
}

func TestUnpackGarbage(t *testing.T) {
	// Tag truncado deve retornar erro, não pânico.
	if _, err := Unpack([]byte{0x0A, 0xFF}); err == nil {
		t.Errorf("Unpack de lixo deveria falhar")
	}
}

func TestEnvelopePingWithoutPayload(t *testing.T) {
	data := Pack(FramePing, nil)
	env, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if env.Type != FramePing || len(env.Payload) != 0 {
		t.Errorf("ping = %+v", env)
	}
}
