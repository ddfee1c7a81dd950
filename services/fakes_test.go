package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/fitness-challenge/feed"
	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
	"github.com/Dosada05/fitness-challenge/storage"
)

// In-memory repository fakes. They reproduce the constraint behavior of the
// postgres implementations (uniqueness conflicts, not-found sentinels) so the
// services can be exercised without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	clock  time.Time
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[int]*models.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	user.ID = r.nextID
	user.CreatedAt = r.clock
	user.UpdatedAt = r.clock
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Gender = user.Gender
	stored.AgeGroup = user.AgeGroup
	stored.Location = user.Location
	return nil
}

func (r *fakeUserRepo) UpdateAvatarKey(_ context.Context, id int, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.AvatarKey = key
	return nil
}

func (r *fakeUserRepo) SetTeam(_ context.Context, userID int, teamID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TeamID = teamID
	return nil
}

func (r *fakeUserRepo) ListByTeamID(_ context.Context, teamID int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]models.User, 0)
	for _, u := range r.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			members = append(members, *u)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Username < members[j].Username })
	return members, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	r.nextID++
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, *t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

type fakeSportRepo struct {
	mu     sync.Mutex
	nextID int
	sports map[int]*models.Sport
}

func newFakeSportRepo() *fakeSportRepo {
	return &fakeSportRepo{sports: make(map[int]*models.Sport)}
}

func (r *fakeSportRepo) add(name, unit string, rate float64) *models.Sport {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s := &models.Sport{ID: r.nextID, Name: name, Unit: unit, PointsPerUnit: rate}
	r.sports[s.ID] = s
	cp := *s
	return &cp
}

func (r *fakeSportRepo) Create(_ context.Context, sport *models.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sports {
		if s.Name == sport.Name {
			return repositories.ErrSportNameConflict
		}
	}
	r.nextID++
	sport.ID = r.nextID
	cp := *sport
	r.sports[sport.ID] = &cp
	return nil
}

func (r *fakeSportRepo) GetByID(_ context.Context, id int) (*models.Sport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSportRepo) GetAll(_ context.Context) ([]models.Sport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sports := make([]models.Sport, 0, len(r.sports))
	for _, s := range r.sports {
		sports = append(sports, *s)
	}
	sort.Slice(sports, func(i, j int) bool { return sports[i].Name < sports[j].Name })
	return sports, nil
}

func (r *fakeSportRepo) Update(_ context.Context, sport *models.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sports[sport.ID]
	if !ok {
		return repositories.ErrSportNotFound
	}
	*s = *sport
	return nil
}

type fakePerformanceRepo struct {
	mu     sync.Mutex
	nextID int
	perfs  []models.Performance
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{perfs: make([]models.Performance, 0)}
}

func (r *fakePerformanceRepo) Create(_ context.Context, perf *models.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	perf.ID = r.nextID
	perf.CreatedAt = time.Now()
	r.perfs = append(r.perfs, *perf)
	return nil
}

func (r *fakePerformanceRepo) GetByID(_ context.Context, id int) (*models.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.perfs {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPerformanceNotFound
}

func (r *fakePerformanceRepo) ListByUserID(_ context.Context, userID, limit, offset int) ([]models.Performance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mine := make([]models.Performance, 0)
	for _, p := range r.perfs {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].DateRecorded.Equal(mine[j].DateRecorded) {
			return mine[i].DateRecorded.After(mine[j].DateRecorded)
		}
		return mine[i].ID > mine[j].ID
	})
	if offset >= len(mine) {
		return []models.Performance{}, nil
	}
	mine = mine[offset:]
	if limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, nil
}

type fakeHub struct {
	mu     sync.Mutex
	events []feed.Event
}

func (h *fakeHub) BroadcastEvent(event feed.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *fakeHub) Events() []feed.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]feed.Event(nil), h.events...)
}

type fakeUploader struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	failWith error
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failWith != nil {
		return nil, u.failWith
	}
	u.uploads = append(u.uploads, key)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deletes = append(u.deletes, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.test/" + key
}
