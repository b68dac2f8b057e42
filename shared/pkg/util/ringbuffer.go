package util

import (
	"errors"
	"sync/atomic"
)

// RingBuffer é um buffer circular SPSC (um produtor, um consumidor) sem lock.
// Usado para entregar medições do callback de áudio ao frame loop sem alocar
// nem bloquear a thread de reprodução.
type RingBuffer[T any] struct {
	entries    []T
	mask       uint64
	producerID uint64
	consumerID uint64
}

// ErrRingFull indica buffer cheio; o produtor deve descartar (best-effort).
var ErrRingFull = errors.New("buffer circular cheio")

// ErrRingEmpty indica buffer vazio.
var ErrRingEmpty = errors.New("buffer circular vazio")

// NewRingBuffer cria um buffer circular com a capacidade dada (arredondada
// para a próxima potência de 2).
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	actualCap := nextPowerOfTwo(capacity)
	return &RingBuffer[T]{
		entries: make([]T, actualCap),
		mask:    uint64(actualCap - 1),
	}
}

// Enqueue adiciona um item. Retorna ErrRingFull se não couber.
func (r *RingBuffer[T]) Enqueue(item T) error {
	next := atomic.LoadUint64(&r.producerID)
	consumer := atomic.LoadUint64(&r.consumerID)

	if next-consumer >= uint64(len(r.entries)) {
		return ErrRingFull
	}

	r.entries[next&r.mask] = item
	atomic.AddUint64(&r.producerID, 1)
	return nil
}

// Dequeue remove um item. Retorna ErrRingEmpty se não houver.
func (r *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	consumer := atomic.LoadUint64(&r.consumerID)
	producer := atomic.LoadUint64(&r.producerID)

	if consumer >= producer {
		return zero, ErrRingEmpty
	}

	item := r.entries[consumer&r.mask]
	atomic.AddUint64(&r.consumerID, 1)
	return item, nil
}

// Len retorna quantos itens aguardam consumo.
func (r *RingBuffer[T]) Len() int {
	return int(atomic.LoadUint64(&r.producerID) - atomic.LoadUint64(&r.consumerID))
}

func nextPowerOfTwo(x int) int {
	res := 2
	for res < x {
		res <<= 1
	}
	return res
}
