package util

import "testing"

func TestRingBufferFIFO(t *testing.T) {
	rb := NewRingBuffer[int](4)

	for i := 1; i <= 3; i++ {
		if err := rb.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if rb.Len() != 3 {
		t.Errorf("Len = %d, esperado 3", rb.Len())
	}

	for i := 1; i <= 3; i++ {
		got, err := rb.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if got != i {
			t.Errorf("Dequeue = %d, esperado %d", got, i)
		}
	}

	if _, err := rb.Dequeue(); err != ErrRingEmpty {
		t.Errorf("buffer vazio deveria retornar ErrRingEmpty, veio %v", err)
	}
}

func TestRingBufferFull(t *testing.T) {
	rb := NewRingBuffer[int](4)

	for i := 0; i < 4; i++ {
		if err := rb.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := rb.Enqueue(99); err != ErrRingFull {
		t.Errorf("buffer cheio deveria retornar ErrRingFull, veio %v", err)
	}

	// Consumir um abre espaço para o produtor novamente.
	if _, err := rb.Dequeue(); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if err := rb.Enqueue(99); err != nil {
		t.Errorf("Enqueue após Dequeue: %v", err)
	}
}

func TestRingBufferCapacityRoundsUp(t *testing.T) {
	rb := NewRingBuffer[int](5) // arredonda para 8

	for i := 0; i < 8; i++ {
		if err := rb.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if rb.Len() != 8 {
		t.Errorf("Len = %d, esperado 8", rb.Len())
	}
}
