package datastructure

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQueue       = errors.New("priority queue: heap is empty")
	ErrElementNotFound  = errors.New("priority queue: element not found in the heap")
	ErrDuplicateElement = errors.New("priority queue: element already in the heap")
	ErrInvalidRank      = errors.New("priority queue: new rank is greater than the current rank")
)

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

// MinHeap binary heap priorityqueue.
// pos maps every item currently in the heap to its slot, so an item can be
// located in O(1) and removed or re-ranked in O(logN). An item is in the heap at most once.
type MinHeap[T comparable] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

// leftChild get index dari left child
func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

// rightChild get index dari right child
func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

// less is a strict order: equal ranks are never less than each other.
func (h *MinHeap[T]) less(i, j int) bool {
	return h.heap[i].Rank < h.heap[j].Rank
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp mempertahankan heap property. selama parent dari index lebih besar, swap lalu lanjut ke parent. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index > 0 && h.less(index, h.parent(index)) {
		p := h.parent(index)
		h.swap(index, p)
		index = p
	}
}

// heapifyDown mempertahankan heap property. selama salah satu children dari index lebih kecil, swap dengan child terkecil lalu lanjut ke child tersebut. O(logN) tree height.
// returns true kalau item di index berpindah.
func (h *MinHeap[T]) heapifyDown(index int) bool {
	start := index
	n := len(h.heap)
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			break
		}
		h.swap(index, smallest)
		index = smallest
	}
	return index > start
}

// IsEmpty check apakah heap kosong
func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

// Size ukuran heap
func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Contains reports whether item is currently in the heap.
func (h *MinHeap[T]) Contains(item T) bool {
	_, ok := h.pos[item]
	return ok
}

// GetMin mendapatkan nilai minimum dari min-heap (index 0)
func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	return h.heap[0], nil
}

// Insert item baru. O(logN).
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) error {
	if _, ok := h.pos[key.Item]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateElement, key.Item)
	}
	h.heap = append(h.heap, key)
	index := len(h.heap) - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
	return nil
}

// ExtractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN).
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	return h.removeAt(0), nil
}

// Remove deletes item from anywhere in the heap. O(logN): the slot is found through pos,
// the last node moves into it and is percolated once, up or down.
func (h *MinHeap[T]) Remove(item T) (PriorityQueueNode[T], error) {
	index, ok := h.pos[item]
	if !ok {
		return PriorityQueueNode[T]{}, fmt.Errorf("%w: %v", ErrElementNotFound, item)
	}
	return h.removeAt(index), nil
}

func (h *MinHeap[T]) removeAt(index int) PriorityQueueNode[T] {
	last := len(h.heap) - 1
	removed := h.heap[index]
	if index != last {
		h.swap(index, last)
	}
	h.heap[last] = PriorityQueueNode[T]{}
	h.heap = h.heap[:last]
	delete(h.pos, removed.Item)

	if index < last {
		if !h.heapifyDown(index) {
			h.heapifyUp(index)
		}
	}
	return removed
}

// DecreaseKey update Rank dari item min-heap. O(logN) heapify.
func (h *MinHeap[T]) DecreaseKey(key PriorityQueueNode[T]) error {
	index, ok := h.pos[key.Item]
	if !ok {
		return fmt.Errorf("%w: %v", ErrElementNotFound, key.Item)
	}
	if key.Rank > h.heap[index].Rank {
		return fmt.Errorf("%w: %v", ErrInvalidRank, key.Item)
	}
	h.heap[index] = key
	h.heapifyUp(index)
	return nil
}
