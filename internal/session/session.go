// Package session holds per-user working state: one candidate record under
// edit, addressed by an opaque session ID. Sessions are in-memory only and
// expire after a configurable idle TTL.
package session

import (
	"strings"
	"sync"
	"time"

	"tradcv/internal/cv"
	"tradcv/internal/errors"
)

// Session is one user's working copy of a candidate record
type Session struct {
	ID        string    `json:"sessionId"`
	Record    cv.Record `json:"record"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	mu sync.Mutex
}

// lastUpdated reads the idle timestamp under the session mutex so the
// store sweep does not race with concurrent edits.
func (s *Session) lastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// GetRecord returns a deep copy of the session's record
func (s *Session) GetRecord() cv.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Record.Clone()
}

// SetRecord replaces the session's record with a normalized copy
func (s *Session) SetRecord(record cv.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Record = cv.Normalize(record)
	s.UpdatedAt = time.Now()
}

// UpdateStatics replaces the user-owned identity fields
func (s *Session) UpdateStatics(candidateName, contact, education string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Record.CandidateName = strings.TrimSpace(candidateName)
	s.Record.Contact = strings.TrimSpace(contact)
	s.Record.Education = strings.TrimSpace(education)
	s.UpdatedAt = time.Now()
}

// AddCompetency appends a competency
func (s *Session) AddCompetency(title, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Record.Competencies = append(s.Record.Competencies, cv.Competency{
		Title:       title,
		Description: description,
	})
	s.UpdatedAt = time.Now()
}

// UpdateCompetency replaces the competency at index, false if out of range
func (s *Session) UpdateCompetency(index int, competency cv.Competency) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.Record.Competencies) {
		return false
	}
	s.Record.Competencies[index] = competency
	s.UpdatedAt = time.Now()
	return true
}

// RemoveCompetency removes the competency at index, false if out of range
func (s *Session) RemoveCompetency(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.Record.Competencies) {
		return false
	}
	s.Record.Competencies = append(s.Record.Competencies[:index], s.Record.Competencies[index+1:]...)
	s.UpdatedAt = time.Now()
	return true
}

// AddRole appends a professional history entry
func (s *Session) AddRole(role cv.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role.Accomplishments = cv.CleanAccomplishments(role.Accomplishments)
	s.Record.ProfessionalHistory = append(s.Record.ProfessionalHistory, role)
	s.UpdatedAt = time.Now()
}

// UpdateRole replaces the history entry at index, false if out of range
func (s *Session) UpdateRole(index int, role cv.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.Record.ProfessionalHistory) {
		return false
	}
	role.Accomplishments = cv.CleanAccomplishments(role.Accomplishments)
	s.Record.ProfessionalHistory[index] = role
	s.UpdatedAt = time.Now()
	return true
}

// RemoveRole removes the history entry at index, false if out of range
func (s *Session) RemoveRole(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.Record.ProfessionalHistory) {
		return false
	}
	s.Record.ProfessionalHistory = append(s.Record.ProfessionalHistory[:index], s.Record.ProfessionalHistory[index+1:]...)
	s.UpdatedAt = time.Now()
	return true
}

// AddAwardCategory adds an award category, no-op false when the key exists
func (s *Session) AddAwardCategory(name, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Record.AddAwardCategory(name, description) {
		return false
	}
	s.UpdatedAt = time.Now()
	return true
}

// UpdateAwardCategory overwrites an existing award category, false when absent
func (s *Session) UpdateAwardCategory(name, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Record.AwardsLeadership == nil {
		return false
	}
	if _, ok := s.Record.AwardsLeadership[name]; !ok {
		return false
	}
	s.Record.AwardsLeadership[name] = description
	s.UpdatedAt = time.Now()
	return true
}

// RemoveAwardCategory removes an award category, false when absent
func (s *Session) RemoveAwardCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Record.RemoveAwardCategory(name) {
		return false
	}
	s.UpdatedAt = time.Now()
	return true
}

// NotFoundError builds the canonical unknown-session error
func NotFoundError(id string) error {
	return errors.NewValidationError(errors.ErrCodeSessionNotFound,
		"Session not found", nil).WithContext("session_id", id)
}
