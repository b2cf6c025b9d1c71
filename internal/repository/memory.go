package repository

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu             sync.RWMutex
	members        map[int64]Member
	schedules      map[int64]Schedule
	nextMemberID   int64
	nextScheduleID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		members:   make(map[int64]Member),
		schedules: make(map[int64]Schedule),
	}
}

// ============================================
// In-memory Member Repository
// ============================================

type memoryMemberRepository struct {
	store *memoryStore
}

func (r *memoryMemberRepository) Create(_ context.Context, member *Member) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIDTaken(member.UserID, 0) {
		return ErrDuplicateKey
	}
	s.nextMemberID++
	member.ID = s.nextMemberID
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = time.Now()
	}
	s.members[member.ID] = *member
	return nil
}

func (r *memoryMemberRepository) FindByID(_ context.Context, id int64) (*Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memoryMemberRepository) FindByUserID(_ context.Context, userID string) (*Member, error) {
	return r.findFirst(func(m Member) bool { return m.UserID == userID }), nil
}

func (r *memoryMemberRepository) FindByName(_ context.Context, name string) (*Member, error) {
	return r.findFirst(func(m Member) bool { return m.Name == name }), nil
}

func (r *memoryMemberRepository) FindAll(_ context.Context) ([]*Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]*Member, 0, len(s.members))
	for _, m := range s.members {
		m := m
		members = append(members, &m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *memoryMemberRepository) Update(_ context.Context, member *Member) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; !ok {
		return 0, nil
	}
	if s.userIDTaken(member.UserID, member.ID) {
		return 0, ErrDuplicateKey
	}
	s.members[member.ID] = *member
	return 1, nil
}

func (r *memoryMemberRepository) DeleteByID(_ context.Context, id int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return 0, nil
	}
	delete(s.members, id)

	// ON DELETE SET NULL
	for sid, sch := range s.schedules {
		if sch.MemberID != nil && *sch.MemberID == id {
			sch.MemberID = nil
			s.schedules[sid] = sch
		}
	}
	return 1, nil
}

func (r *memoryMemberRepository) findFirst(match func(Member) bool) *Member {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Member
	for _, m := range s.members {
		if match(m) && (found == nil || m.ID < found.ID) {
			m := m
			found = &m
		}
	}
	return found
}

// userIDTaken must be called with the lock held.
func (s *memoryStore) userIDTaken(userID string, exceptID int64) bool {
	for id, m := range s.members {
		if id != exceptID && m.UserID == userID {
			return true
		}
	}
	return false
}

// ============================================
// In-memory Schedule Repository
// ============================================

type memoryScheduleRepository struct {
	store *memoryStore
}

func (r *memoryScheduleRepository) Create(_ context.Context, schedule *Schedule) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextScheduleID++
	schedule.ID = s.nextScheduleID
	s.schedules[schedule.ID] = cloneSchedule(*schedule)
	return nil
}

func (r *memoryScheduleRepository) FindByID(_ context.Context, id int64) (*Schedule, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sch, ok := s.schedules[id]
	if !ok {
		return nil, nil
	}
	out := cloneSchedule(sch)
	return &out, nil
}

func (r *memoryScheduleRepository) FindPaged(_ context.Context, filter ScheduleFilter, limit, offset int) ([]*Schedule, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Schedule
	for _, sch := range s.schedules {
		if matchesFilter(sch, filter) {
			matched = append(matched, sch)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if int64(offset) >= total {
		return []*Schedule{}, total, nil
	}
	end := min(offset+limit, len(matched))

	page := make([]*Schedule, 0, end-offset)
	for _, sch := range matched[offset:end] {
		out := cloneSchedule(sch)
		page = append(page, &out)
	}
	return page, total, nil
}

func (r *memoryScheduleRepository) Update(_ context.Context, schedule *Schedule) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.schedules[schedule.ID]
	if !ok {
		return 0, nil
	}
	updated := cloneSchedule(*schedule)
	updated.CreatedAt = existing.CreatedAt
	s.schedules[schedule.ID] = updated
	return 1, nil
}

func (r *memoryScheduleRepository) DeleteByID(_ context.Context, id int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[id]; !ok {
		return 0, nil
	}
	delete(s.schedules, id)
	return 1, nil
}

func (r *memoryScheduleRepository) MarkDeletedByMemberID(_ context.Context, memberID int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var n int64
	for id, sch := range s.schedules {
		if sch.MemberID != nil && *sch.MemberID == memberID && sch.DeletedAt == nil {
			sch.DeletedAt = &now
			s.schedules[id] = sch
			n++
		}
	}
	return n, nil
}

func (r *memoryScheduleRepository) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sch := range s.schedules {
		if sch.DeletedAt != nil && sch.DeletedAt.Before(cutoff) {
			delete(s.schedules, id)
			n++
		}
	}
	return n, nil
}

func matchesFilter(sch Schedule, f ScheduleFilter) bool {
	if f.UpdatedOn != nil && sch.UpdatedAt.UTC().Format(DateLayout) != f.UpdatedOn.UTC().Format(DateLayout) {
		return false
	}
	if f.Author != nil && sch.Author != *f.Author {
		return false
	}
	if f.MemberID != nil && (sch.MemberID == nil || *sch.MemberID != *f.MemberID) {
		return false
	}
	return true
}

func cloneSchedule(s Schedule) Schedule {
	if s.DeletedAt != nil {
		t := *s.DeletedAt
		s.DeletedAt = &t
	}
	if s.MemberID != nil {
		id := *s.MemberID
		s.MemberID = &id
	}
	return s
}
