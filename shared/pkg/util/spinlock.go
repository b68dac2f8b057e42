package util

import (
	"runtime"
	"sync/atomic"
)

// SpinLock é uma exclusão mútua por espera ativa, para seções críticas muito
// curtas (cópia de uma pose) onde o custo de um Mutex não compensa. A goroutine
// de leitura do feed escreve a última amostra e o frame loop a lê a cada frame.
type SpinLock struct {
	state int32
}

// Lock adquire o bloqueio.
func (s *SpinLock) Lock() {
	for !atomic.CompareAndSwapInt32(&s.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock libera o bloqueio.
func (s *SpinLock) Unlock() {
	atomic.StoreInt32(&s.state, 0)
}

// TryLock tenta adquirir o bloqueio sem esperar.
func (s *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapInt32(&s.state, 0, 1)
}
