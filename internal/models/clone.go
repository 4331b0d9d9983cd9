package models

import "github.com/jmoiron/sqlx/types"

// Clone methods return copies that share no pointers or byte slices with the
// receiver.

func cloneOptional[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (u User) Clone() User {
	u.ProfileImage = cloneOptional(u.ProfileImage)
	return u
}

func (s Student) Clone() Student {
	if s.Documents != nil {
		s.Documents = append(types.JSONText(nil), s.Documents...)
	}
	return s
}

func (t Teacher) Clone() Teacher {
	t.Specialization = cloneOptional(t.Specialization)
	return t
}

func (b Branch) Clone() Branch {
	b.Description = cloneOptional(b.Description)
	return b
}

func (s Subject) Clone() Subject {
	s.Description = cloneOptional(s.Description)
	return s
}

func (a Attendance) Clone() Attendance {
	a.Notes = cloneOptional(a.Notes)
	return a
}

func (a Assignment) Clone() Assignment {
	a.Description = cloneOptional(a.Description)
	a.DueDate = cloneOptional(a.DueDate)
	a.MaxMarks = cloneOptional(a.MaxMarks)
	a.ResourceURL = cloneOptional(a.ResourceURL)
	return a
}

func (s Submission) Clone() Submission {
	s.SubmissionURL = cloneOptional(s.SubmissionURL)
	s.Marks = cloneOptional(s.Marks)
	s.Feedback = cloneOptional(s.Feedback)
	return s
}

func (a Announcement) Clone() Announcement {
	a.TargetRole = cloneOptional(a.TargetRole)
	a.TargetClassID = cloneOptional(a.TargetClassID)
	return a
}

func (r Resource) Clone() Resource {
	r.Description = cloneOptional(r.Description)
	r.Type = cloneOptional(r.Type)
	r.SubjectID = cloneOptional(r.SubjectID)
	return r
}

func (e TimetableEntry) Clone() TimetableEntry {
	e.Room = cloneOptional(e.Room)
	return e
}

func (t Task) Clone() Task {
	t.Description = cloneOptional(t.Description)
	t.DueDate = cloneOptional(t.DueDate)
	t.DueTime = cloneOptional(t.DueTime)
	return t
}
