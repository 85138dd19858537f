package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jordan/talentbridge/internal/ats"
	"github.com/jordan/talentbridge/internal/db"
)

// fakeDB is an in-memory DBClient and ReportStore for handler and service
// tests.
type fakeDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resets  map[string]*db.PasswordReset // token hash -> reset
	reports []*db.Report

	verifyHash   map[uuid.UUID]string
	verifyExpiry map[uuid.UUID]time.Time
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:        make(map[uuid.UUID]*db.User),
		resets:       make(map[string]*db.PasswordReset),
		verifyHash:   make(map[uuid.UUID]string),
		verifyExpiry: make(map[uuid.UUID]time.Time),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash, provider string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     provider,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDB) SetVerifyToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyHash[userID] = tokenHash
	f.verifyExpiry[userID] = expiresAt
	return nil
}

func (f *fakeDB) VerifyUserByToken(_ context.Context, tokenHash string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, hash := range f.verifyHash {
		if hash == tokenHash && f.verifyExpiry[id].After(time.Now()) {
			u := f.users[id]
			u.Verified = true
			delete(f.verifyHash, id)
			delete(f.verifyExpiry, id)
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
		u.Provider = "local"
	}
	return nil
}

func (f *fakeDB) CreatePasswordReset(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets[tokenHash] = &db.PasswordReset{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeDB) ConsumePasswordReset(_ context.Context, tokenHash string) (*db.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resets[tokenHash]
	if !ok || r.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	delete(f.resets, tokenHash)
	return r, nil
}

func (f *fakeDB) SaveReport(_ context.Context, userID *uuid.UUID, resumeName, jobDescription string, result *ats.Result) (*db.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &db.Report{
		ID:                  uuid.New(),
		UserID:              userID,
		ResumeName:          resumeName,
		Score:               result.Score,
		Level:               result.Level,
		KeywordMatchPercent: result.KeywordMatchPercent,
		Breakdown:           result.Breakdown,
		Sections:            result.SectionStatus,
		Checklist:           result.Checklist,
		Issues:              result.Issues,
		Fixes:               result.Fixes,
		Examples:            result.Examples,
		JobDescSnippet:      db.Snippet(jobDescription),
		SchemaVersion:       result.SchemaVersion,
		CreatedAt:           time.Now(),
	}
	f.reports = append(f.reports, r)
	return r, nil
}

func (f *fakeDB) GetReport(_ context.Context, id uuid.UUID, userID *uuid.UUID) (*db.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.ID != id {
			continue
		}
		if userID == nil {
			if r.UserID == nil {
				return r, nil
			}
			return nil, nil
		}
		if r.UserID != nil && *r.UserID == *userID {
			return r, nil
		}
		return nil, nil
	}
	return nil, nil
}

func (f *fakeDB) ListReports(_ context.Context, userID *uuid.UUID, limit int) ([]*db.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*db.Report
	for i := len(f.reports) - 1; i >= 0 && len(out) < limit; i-- {
		r := f.reports[i]
		if userID == nil {
			out = append(out, r)
			continue
		}
		if r.UserID != nil && *r.UserID == *userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeMailer records every send for assertions.
type fakeMailer struct {
	mu            sync.Mutex
	verifications []string // "to|link"
	welcomes      []string
	resets        []string // "to|link"
	loginAlerts   []string
}

func (m *fakeMailer) SendVerification(to, _, verifyLink string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, to+"|"+verifyLink)
}

func (m *fakeMailer) SendWelcome(to, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, to)
}

func (m *fakeMailer) SendPasswordReset(to, _, resetLink string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, to+"|"+resetLink)
}

func (m *fakeMailer) SendLoginAlert(to, _, _, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginAlerts = append(m.loginAlerts, to)
}
