package store

import "github.com/iliyamo/campus-canteen-reservation/internal/model"

// CreateStudent registers a new student and assigns the next sequential id.
// The email must not already be registered; admin status is taken as given
// and never changes afterwards.
func (s *Store) CreateStudent(st model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[st.Email]; taken {
		return model.Student{}, ErrDuplicateEmail
	}

	st.ID = s.nextStudentID
	s.nextStudentID++

	stored := st
	s.students[st.ID] = &stored
	s.emails[st.Email] = struct{}{}
	return st, nil
}

// GetStudent returns the student with the given id.
func (s *Store) GetStudent(id int64) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[id]
	if !ok {
		return model.Student{}, ErrStudentNotFound
	}
	return *st, nil
}

// requireAdmin resolves the requesting student and checks the admin flag.
// Callers must hold the lock.
func (s *Store) requireAdmin(studentID int64) error {
	st, ok := s.students[studentID]
	if !ok {
		return ErrStudentNotFound
	}
	if !st.IsAdmin {
		return ErrPermissionDenied
	}
	return nil
}
