package database

import (
	"gorm.io/gorm"
)

// Session is a store handle pinned to a single pooled connection. It lives for one
// request and must not be shared.
type Session struct {
	db *gorm.DB
}

func newSession(tx *gorm.DB) *Session {
	return &Session{db: tx.Session(&gorm.Session{NewDB: true})}
}

func (s *Session) ProjectRepo() *ProjectRepo {
	return NewProjectRepo(s.db)
}
