package util

import "sync"

// EventQueue é uma fila thread-safe usada para serializar eventos externos
// (frames do rastreador, comandos de botão) na thread do frame loop: as
// goroutines de rede fazem Push e o update de cada frame drena com Pop.
type EventQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewEventQueue cria uma nova fila de eventos.
func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{
		items: make([]T, 0, 64),
	}
}

// Push adiciona um item ao fim da fila.
func (q *EventQueue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Pop remove e retorna o primeiro item. Retorna false se vazia.
func (q *EventQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len retorna o tamanho da fila.
func (q *EventQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear descarta todos os itens pendentes.
func (q *EventQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
}
