package compiler

type semaphore struct {
	x chan bool
}

func newSemaphore(v int) *semaphore {
	return &semaphore{
		x: make(chan bool, v),
	}
}
func (s *semaphore) Lock() {
	s.x <- false
}

func (s *semaphore) Unlock() {
	<-s.x
}
