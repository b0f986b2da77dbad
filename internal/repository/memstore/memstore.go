// Package memstore keeps repository rows in memory. It backs service and job
// tests that exercise the scheduling pipeline without Postgres.
package memstore

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type Store struct {
	mu     sync.Mutex
	nextID int64

	Users         *Users
	Accounts      *Accounts
	Settings      *Settings
	Schedules     *Schedules
	Contents      *Contents
	Posts         *Posts
	Notifications *Notifications
	Team          *Team
	Campaigns     *Campaigns
	Reviews       *Reviews

	users         map[int64]*models.User
	accounts      map[int64]*models.ConnectedAccount
	settings      map[int64]*models.ContentSetting
	schedules     map[int64]*models.Schedule
	contents      map[int64]*models.GeneratedContent
	posts         map[int64]*models.Post
	notifications map[int64]*models.Notification
	members       map[int64]*models.TeamMember
	activity      []*models.ActivityLog
	campaigns     map[int64]*models.Campaign
	reviews       []*models.ReviewRecord
}

func New() *Store {
	s := &Store{
		users:         map[int64]*models.User{},
		accounts:      map[int64]*models.ConnectedAccount{},
		settings:      map[int64]*models.ContentSetting{},
		schedules:     map[int64]*models.Schedule{},
		contents:      map[int64]*models.GeneratedContent{},
		posts:         map[int64]*models.Post{},
		notifications: map[int64]*models.Notification{},
		members:       map[int64]*models.TeamMember{},
		campaigns:     map[int64]*models.Campaign{},
	}
	s.Users = &Users{s}
	s.Accounts = &Accounts{s}
	s.Settings = &Settings{s}
	s.Schedules = &Schedules{s}
	s.Contents = &Contents{s}
	s.Posts = &Posts{s}
	s.Notifications = &Notifications{s}
	s.Team = &Team{s}
	s.Campaigns = &Campaigns{s}
	s.Reviews = &Reviews{s}
	return s
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]*T, keep func(*T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*T
	for _, id := range ids {
		if keep(m[id]) {
			cp := *m[id]
			out = append(out, &cp)
		}
	}
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

type Users struct{ s *Store }

var _ repository.UserRepository = (*Users)(nil)

func (r *Users) GetByID(_ context.Context, id int64) (*models.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	return clone(u), ok, nil
}

func (r *Users) GetByOpenID(_ context.Context, openID string) (*models.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.OpenID == openID {
			return clone(u), true, nil
		}
	}
	return nil, false, nil
}

func (r *Users) Upsert(_ context.Context, user *models.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, u := range r.s.users {
		if u.OpenID == user.OpenID {
			u.Name, u.Email, u.LoginMethod = user.Name, user.Email, user.LoginMethod
			if user.Role == models.RoleAdmin {
				u.Role = models.RoleAdmin
			}
			u.LastSignedIn, u.UpdatedAt = now, now
			return u.ID, nil
		}
	}
	cp := *user
	cp.ID = r.s.id()
	if cp.Role == "" {
		cp.Role = models.RoleUser
	}
	cp.CreatedAt, cp.UpdatedAt, cp.LastSignedIn = now, now, now
	r.s.users[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Users) ListAdmins(_ context.Context) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.users, func(u *models.User) bool { return u.Role == models.RoleAdmin }), nil
}

type Accounts struct{ s *Store }

var _ repository.ConnectedAccountRepository = (*Accounts)(nil)

func (r *Accounts) Create(_ context.Context, _ *sql.Tx, acc *models.ConnectedAccount) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *acc
	cp.ID = r.s.id()
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	r.s.accounts[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Accounts) GetByID(_ context.Context, id int64) (*models.ConnectedAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.accounts[id]), nil
}

func (r *Accounts) ListByUser(_ context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.accounts, func(a *models.ConnectedAccount) bool { return a.UserID == userID }), nil
}

func (r *Accounts) ListActiveByUser(_ context.Context, userID int64) ([]*models.ConnectedAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.accounts, func(a *models.ConnectedAccount) bool {
		return a.UserID == userID && a.IsActive
	}), nil
}

func (r *Accounts) Exists(_ context.Context, userID, platformID int64, accountID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.UserID == userID && a.PlatformID == platformID && a.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Accounts) UpdateStatus(_ context.Context, id int64, isActive bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[id]; ok {
		a.IsActive = isActive
	}
	return nil
}

func (r *Accounts) UpdateTokens(_ context.Context, id int64, accessToken, refreshToken string, expiry *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[id]; ok {
		a.AccessToken, a.RefreshToken, a.TokenExpiry = accessToken, refreshToken, expiry
	}
	return nil
}

func (r *Accounts) ListExpiring(_ context.Context, platformIDs []int64, before time.Time) ([]*models.ConnectedAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.accounts, func(a *models.ConnectedAccount) bool {
		if a.RefreshToken == "" || a.TokenExpiry == nil || !a.TokenExpiry.Before(before) {
			return false
		}
		for _, id := range platformIDs {
			if a.PlatformID == id {
				return true
			}
		}
		return false
	}), nil
}

func (r *Accounts) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.accounts, id)
	return nil
}

type Settings struct{ s *Store }

var _ repository.ContentSettingRepository = (*Settings)(nil)

func (r *Settings) Create(_ context.Context, _ *sql.Tx, st *models.ContentSetting) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *st
	cp.ID = r.s.id()
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	r.s.settings[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Settings) GetByID(_ context.Context, id int64) (*models.ContentSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.settings[id]), nil
}

func (r *Settings) ListByUser(_ context.Context, userID int64) ([]*models.ContentSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.settings, func(st *models.ContentSetting) bool { return st.UserID == userID }), nil
}

func (r *Settings) Update(_ context.Context, st *models.ContentSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[st.ID]; ok {
		cp := *st
		cp.UpdatedAt = time.Now()
		r.s.settings[st.ID] = &cp
	}
	return nil
}

func (r *Settings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.settings, id)
	return nil
}

type Schedules struct{ s *Store }

var _ repository.ScheduleRepository = (*Schedules)(nil)

func (r *Schedules) Create(_ context.Context, _ *sql.Tx, sc *models.Schedule) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sc
	cp.ID = r.s.id()
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	r.s.schedules[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Schedules) GetByID(_ context.Context, id int64) (*models.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.schedules[id]), nil
}

func (r *Schedules) ListByUser(_ context.Context, userID int64) ([]*models.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.schedules, func(sc *models.Schedule) bool { return sc.UserID == userID }), nil
}

func (r *Schedules) ListDue(_ context.Context, now time.Time) ([]*models.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	due := sortedValues(r.s.schedules, func(sc *models.Schedule) bool {
		return sc.IsActive && sc.NextRunAt != nil && !sc.NextRunAt.After(now)
	})
	sort.SliceStable(due, func(i, j int) bool { return due[i].NextRunAt.Before(*due[j].NextRunAt) })
	return due, nil
}

func (r *Schedules) Update(_ context.Context, sc *models.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.schedules[sc.ID]; ok {
		cp := *sc
		cp.UpdatedAt = time.Now()
		r.s.schedules[sc.ID] = &cp
	}
	return nil
}

func (r *Schedules) SetNextRun(_ context.Context, id int64, next *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sc, ok := r.s.schedules[id]; ok {
		sc.NextRunAt = next
	}
	return nil
}

func (r *Schedules) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sc, ok := r.s.schedules[id]; ok {
		sc.IsActive = false
	}
	return nil
}

func (r *Schedules) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.schedules, id)
	return nil
}

type Contents struct{ s *Store }

var _ repository.GeneratedContentRepository = (*Contents)(nil)

func (r *Contents) Create(_ context.Context, _ *sql.Tx, c *models.GeneratedContent) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	cp.ID = r.s.id()
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	r.s.contents[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Contents) GetByID(_ context.Context, id int64) (*models.GeneratedContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.contents[id]), nil
}

func (r *Contents) ListByUser(_ context.Context, userID int64) ([]*models.GeneratedContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.contents, func(c *models.GeneratedContent) bool { return c.UserID == userID }), nil
}

func (r *Contents) UpdateStatus(_ context.Context, id int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.contents[id]; ok {
		c.Status = status
	}
	return nil
}

func (r *Contents) UpdateText(_ context.Context, id int64, text string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.contents[id]; ok {
		c.ContentText = text
	}
	return nil
}

type Posts struct{ s *Store }

var _ repository.PostRepository = (*Posts)(nil)

func (r *Posts) Create(_ context.Context, _ *sql.Tx, p *models.Post) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.ID = r.s.id()
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	r.s.posts[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Posts) ListByUser(_ context.Context, userID int64) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.posts, func(p *models.Post) bool { return p.UserID == userID }), nil
}

func (r *Posts) ListByContent(_ context.Context, contentID int64) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.posts, func(p *models.Post) bool { return p.ContentID == contentID }), nil
}

type Notifications struct{ s *Store }

var _ repository.NotificationRepository = (*Notifications)(nil)

func (r *Notifications) Create(_ context.Context, n *models.Notification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	cp.ID = r.s.id()
	cp.CreatedAt = time.Now()
	r.s.notifications[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Notifications) ListByUser(_ context.Context, userID int64) ([]*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.notifications, func(n *models.Notification) bool { return n.UserID == userID }), nil
}

func (r *Notifications) MarkRead(_ context.Context, id, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

func (r *Notifications) Delete(_ context.Context, id, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	delete(r.s.notifications, id)
	return true, nil
}

type Team struct{ s *Store }

var _ repository.TeamRepository = (*Team)(nil)

func (r *Team) CreateMember(_ context.Context, m *models.TeamMember) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ID = r.s.id()
	cp.JoinedAt = time.Now()
	r.s.members[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Team) GetMember(_ context.Context, id int64) (*models.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.members[id]), nil
}

func (r *Team) ListMembers(_ context.Context, ownerID int64) ([]*models.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.members, func(m *models.TeamMember) bool { return m.OwnerID == ownerID }), nil
}

func (r *Team) MemberExists(_ context.Context, ownerID int64, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.OwnerID == ownerID && strings.EqualFold(m.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Team) UpdateRole(_ context.Context, id int64, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.members[id]; ok {
		m.Role = role
	}
	return nil
}

func (r *Team) DeleteMember(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.members, id)
	return nil
}

func (r *Team) LogActivity(_ context.Context, a *models.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	cp.ID = r.s.id()
	cp.CreatedAt = time.Now()
	r.s.activity = append(r.s.activity, &cp)
	return nil
}

func (r *Team) ListActivity(_ context.Context, userID int64, limit int) ([]*models.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.ActivityLog
	for i := len(r.s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.activity[i].UserID == userID {
			out = append(out, clone(r.s.activity[i]))
		}
	}
	return out, nil
}

type Campaigns struct{ s *Store }

var _ repository.CampaignRepository = (*Campaigns)(nil)

func (r *Campaigns) Create(_ context.Context, c *models.Campaign) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	cp.ID = r.s.id()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.campaigns[cp.ID] = &cp
	return cp.ID, nil
}

func (r *Campaigns) GetByID(_ context.Context, id int64) (*models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.campaigns[id]), nil
}

func (r *Campaigns) ListByUser(_ context.Context, userID int64) ([]*models.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.campaigns, func(c *models.Campaign) bool { return c.UserID == userID }), nil
}

func (r *Campaigns) Update(_ context.Context, c *models.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.campaigns[c.ID]; ok {
		cp := *c
		cp.UpdatedAt = time.Now()
		r.s.campaigns[c.ID] = &cp
	}
	return nil
}

func (r *Campaigns) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.campaigns, id)
	return nil
}

type Reviews struct{ s *Store }

var _ repository.ReviewRepository = (*Reviews)(nil)

func (r *Reviews) Save(_ context.Context, rec *models.ReviewRecord) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	cp.ID = r.s.id()
	cp.CreatedAt = time.Now()
	r.s.reviews = append(r.s.reviews, &cp)
	return cp.ID, nil
}

func (r *Reviews) Latest(_ context.Context) (*models.ReviewRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.reviews) == 0 {
		return nil, nil
	}
	return clone(r.s.reviews[len(r.s.reviews)-1]), nil
}
