package ritual

import "testing"

func newPlanted() *Machine {
	m := New(-4.0)
	m.Plant()
	return m
}

func TestTapBeforePlantIsNoOp(t *testing.T) {
	m := New(-4.0)
	if sig := m.Tap(); sig != SignalNone {
		t.Errorf("Tap antes do Plant retornou %v", sig)
	}
	if sig := m.Step(0.016, 0); sig != SignalNone {
		t.Errorf("Step antes do Plant retornou %v", sig)
	}
	if m.HitCount() != 0 {
		t.Errorf("hitCount mudou antes do Plant: %d", m.HitCount())
	}
}

func TestTapSequenceGoldsInOrder(t *testing.T) {
	m := newPlanted()

	order := []Flower{FlowerRose, FlowerCrocus, FlowerAnemone}
	for i, f := range order {
		sig := m.Tap()
		if sig != SignalChime {
			t.Errorf("toque %d: sinal = %v, esperado chime", i+1, sig)
		}
		if !m.IsGold(f) {
			t.Errorf("toque %d: %v deveria estar dourada", i+1, f)
		}
		for _, later := range order[i+1:] {
			if m.IsGold(later) {
				t.Errorf("toque %d: %v dourou antes da hora", i+1, later)
			}
		}
	}
	if m.HitCount() != 3 {
		t.Errorf("hitCount = %d, esperado 3", m.HitCount())
	}
}

func TestFourthTapResetsCountOnly(t *testing.T) {
	m := newPlanted()
	m.Tap()
	m.Tap()
	m.Tap()

	sig := m.Tap()
	if sig != SignalNone {
		t.Errorf("quarto toque retornou %v", sig)
	}
	if m.HitCount() != 0 {
		t.Errorf("hitCount = %d, esperado 0 após estouro", m.HitCount())
	}
	if !m.IsGold(FlowerRose) || !m.IsGold(FlowerCrocus) || !m.IsGold(FlowerAnemone) {
		t.Errorf("estouro de contagem não pode alterar flags de ouro")
	}
}

func TestRevertOnLoudness(t *testing.T) {
	m := newPlanted()
	m.Tap()
	m.Tap()
	m.Tap()

	// Abaixo do limiar: nada acontece.
	if sig := m.Step(0.016, -20); sig != SignalNone {
		t.Fatalf("Step abaixo do limiar retornou %v", sig)
	}
	if !m.AllGolden() {
		t.Fatalf("flores perderam o ouro sem loudness")
	}

	// -2 dB >= limiar de -4 dB: revert.
	sig := m.Step(0.016, -2)
	if sig != SignalSparkle {
		t.Errorf("revert deveria sinalizar sparkle, retornou %v", sig)
	}
	for _, f := range []Flower{FlowerRose, FlowerCrocus, FlowerAnemone} {
		if m.IsGold(f) {
			t.Errorf("%v continua dourada após o revert", f)
		}
	}
	if m.HitCount() != 0 {
		t.Errorf("hitCount = %d após revert, esperado 0", m.HitCount())
	}
	if !m.WasReverted() {
		t.Errorf("wasReverted deveria estar true após o revert")
	}

	// Revert não re-dispara enquanto wasReverted segue true.
	if sig := m.Step(0.016, -1); sig != SignalSparkle {
		// nada dourado, então nem chega na condição; só documenta o guard
		_ = sig
	}
}

func TestRestartableAfterRevert(t *testing.T) {
	m := newPlanted()
	m.Tap()
	m.Tap()
	m.Tap()
	m.Step(0.016, -2) // revert

	// Nova sequência de toques doura de novo; o terceiro limpa wasReverted.
	m.Tap()
	m.Tap()
	if m.WasReverted() != true {
		t.Fatalf("wasReverted limpou antes do terceiro toque")
	}
	m.Tap()
	if m.WasReverted() {
		t.Errorf("terceiro toque deveria limpar wasReverted")
	}
	if !m.AllGolden() {
		t.Errorf("máquina não re-dourou após o revert")
	}

	// E com wasReverted limpo, o loudness pode reverter de novo.
	if sig := m.Step(0.016, 0); sig != SignalSparkle {
		t.Errorf("segundo ciclo de revert não disparou: %v", sig)
	}
}

func TestRevertRequiresAllGolden(t *testing.T) {
	m := newPlanted()
	m.Tap() // só a rosa

	if sig := m.Step(0.016, 0); sig != SignalSparkle {
		// esperado: nenhum sparkle com apenas uma flor dourada
		if sig != SignalNone {
			t.Errorf("Step retornou %v", sig)
		}
	} else {
		t.Errorf("revert disparou sem todas douradas")
	}
	if !m.IsGold(FlowerRose) {
		t.Errorf("rosa perdeu o ouro sem revert")
	}
}

func TestSpinAccumulates(t *testing.T) {
	m := newPlanted()
	before := m.SpinAngle(FlowerRose)
	m.Step(0.5, -60)
	after := m.SpinAngle(FlowerRose)
	if after <= before {
		t.Errorf("giro cosmético não acumulou: antes=%f depois=%f", before, after)
	}
	if m.HitCount() != 0 || m.AllGolden() {
		t.Errorf("animação não pode afetar o estado do ritual")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := newPlanted()
	m.Tap()
	m.Tap()

	snap := m.Snapshot()

	restored := New(-4.0)
	restored.Restore(snap)

	if !restored.Planted() {
		t.Errorf("snapshot perdeu o planted")
	}
	if restored.HitCount() != 2 {
		t.Errorf("hitCount restaurado = %d, esperado 2", restored.HitCount())
	}
	if !restored.IsGold(FlowerRose) || !restored.IsGold(FlowerCrocus) || restored.IsGold(FlowerAnemone) {
		t.Errorf("flags de ouro restauradas incorretamente")
	}
}
