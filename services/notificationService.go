package services

import (
	"sync"
)

// NotificationService is a best-effort, process-lifetime message board keyed
// by doctor id. The latest message wins; contents are lost on restart by
// contract. It is owned by a single instance and injected where needed rather
// than living in a package-level variable.
type NotificationService struct {
	mu       sync.Mutex
	messages map[uint]string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{messages: make(map[uint]string)}
}

// Notify records the latest message for a doctor, replacing any unread one.
func (s *NotificationService) Notify(doctorID uint, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[doctorID] = message
}

// Latest returns the pending message for a doctor, if any.
func (s *NotificationService) Latest(doctorID uint) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.messages[doctorID]
	return message, ok
}

// Clear drops the pending message for a doctor.
func (s *NotificationService) Clear(doctorID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, doctorID)
}
