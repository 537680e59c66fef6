// Package queue holds work that failed and should be tried again later.
package queue

import (
	"sync"
	"time"
)

type Task struct {
	ID         string
	RetryAt    time.Time
	RetryCount int
	MaxRetries int
}

// Exhausted reports whether the task has used up its retries.
func (t *Task) Exhausted() bool {
	return t.RetryCount >= t.MaxRetries
}

// Queue keeps at most one task per ID.
type Queue struct {
	items []*Task
	mu    sync.Mutex
	now   func() time.Time
}

func NewQueue() *Queue {
	return &Queue{
		items: make([]*Task, 0),
		now:   time.Now,
	}
}

// Enqueue adds task. If a task with the same ID is already waiting, the
// earlier RetryAt wins and the retry count is not reset.
func (q *Queue) Enqueue(task *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, existing := range q.items {
		if existing.ID == task.ID {
			if task.RetryAt.Before(existing.RetryAt) {
				existing.RetryAt = task.RetryAt
			}
			return
		}
	}
	q.items = append(q.items, task)
}

// Dequeue removes and returns the first task that is due, or nil.
func (q *Queue) Dequeue() *Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	for i, task := range q.items {
		if !task.RetryAt.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return task
		}
	}
	return nil
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Backoff schedules the next attempt of task, doubling base with every
// retry already made.
func (q *Queue) Backoff(task *Task, base time.Duration) {
	task.RetryCount++
	task.RetryAt = q.now().Add(base << (task.RetryCount - 1))
}
