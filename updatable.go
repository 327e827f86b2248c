// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circsim

type updater interface {
	onUpdate()
}

// updatable is embedded by anything that can sit in the update queue.
//
type updatable struct {
	scheduled bool
	sched     *scheduler
	self      updater
}

func (u *updatable) bind(s *scheduler, self updater) {
	u.sched = s
	u.self = self
}

// scheduleUpdate queues u once. Unbound updatables are never queued.
//
func (u *updatable) scheduleUpdate() {
	if u.scheduled || u.sched == nil {
		return
	}
	u.scheduled = true
	u.sched.push(u)
}

// update runs the update handler. The scheduled flag is cleared afterwards.
//
func (u *updatable) update() {
	u.self.onUpdate()
	u.scheduled = false
}

// scheduler is a FIFO of pending updates.
//
type scheduler struct {
	q    []*updatable
	head int
}

func (s *scheduler) push(u *updatable) {
	s.q = append(s.q, u)
}

func (s *scheduler) pop() *updatable {
	if s.head >= len(s.q) {
		return nil
	}
	u := s.q[s.head]
	s.q[s.head] = nil
	s.head++
	if s.head == len(s.q) {
		s.q = s.q[:0]
		s.head = 0
	}
	return u
}

func (s *scheduler) len() int { return len(s.q) - s.head }

// clear drops pending updates and resets their scheduled flag.
//
func (s *scheduler) clear() {
	for _, u := range s.q[s.head:] {
		u.scheduled = false
	}
	s.q = s.q[:0]
	s.head = 0
}
