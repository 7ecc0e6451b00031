package controllers

import (
	"context"
	"time"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
)

// In-memory stores standing in for the mysql package. Soft deletes are
// modelled the same way: a set DeletedAt hides the row from every lookup.

type fakeCommunityDB struct {
	nextId      int64
	communities map[int64]*model.Community
	panicNext   bool
}

func newFakeCommunityDB() *fakeCommunityDB {
	return &fakeCommunityDB{communities: map[int64]*model.Community{}}
}

func (f *fakeCommunityDB) CreateCommunity(_ context.Context, req *db.CreateCommunity) (int64, error) {
	f.nextId++
	f.communities[f.nextId] = &model.Community{
		Id:        f.nextId,
		Name:      req.Name,
		IsPublic:  req.IsPublic,
		Region:    req.Region,
		TagsStr:   model.JoinTags(req.Tags),
		CreatedAt: time.Now(),
	}
	return f.nextId, nil
}

func (f *fakeCommunityDB) GetCommunityById(_ context.Context, id int64) (*model.Community, error) {
	c, ok := f.communities[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCommunityDB) UpdateCommunity(_ context.Context, id int64, req *db.UpdateCommunity) error {
	c, ok := f.communities[id]
	if !ok || c.DeletedAt != nil {
		return db.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	return nil
}

func (f *fakeCommunityDB) DeleteCommunity(_ context.Context, id int64) error {
	c, ok := f.communities[id]
	if !ok || c.DeletedAt != nil {
		return db.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (f *fakeCommunityDB) SearchCommunities(_ context.Context, query *db.CommunitySearchQuery) ([]*model.CommunityWithMemberCount, error) {
	return f.GetPublicCommunities(context.Background())
}

func (f *fakeCommunityDB) GetPublicCommunities(_ context.Context) ([]*model.CommunityWithMemberCount, error) {
	if f.panicNext {
		f.panicNext = false
		panic("listing public communities")
	}
	var out []*model.CommunityWithMemberCount
	for _, c := range f.communities {
		if c.IsPublic && c.DeletedAt == nil {
			out = append(out, &model.CommunityWithMemberCount{Community: c})
		}
	}
	return out, nil
}

type fakeMemberDB struct {
	nextId  int64
	members map[int64]*model.CommunityMember
}

func newFakeMemberDB() *fakeMemberDB {
	return &fakeMemberDB{members: map[int64]*model.CommunityMember{}}
}

func (f *fakeMemberDB) CreateMember(_ context.Context, member *model.CommunityMember) (int64, error) {
	f.nextId++
	stored := *member
	stored.Id = f.nextId
	stored.JoinedAt = time.Now()
	f.members[stored.Id] = &stored
	return stored.Id, nil
}

func (f *fakeMemberDB) GetMember(_ context.Context, communityId, userId int64) (*model.CommunityMember, error) {
	for _, m := range f.members {
		if m.CommunityId == communityId && m.UserId == userId && m.DeletedAt == nil {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberDB) GetMemberById(_ context.Context, id int64) (*model.CommunityMember, error) {
	m, ok := f.members[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMemberDB) GetMembers(_ context.Context, communityId int64, page db.OffsetQuery) ([]*model.MemberWithUser, int64, error) {
	return nil, 0, nil
}

func (f *fakeMemberDB) CountActiveAdmins(_ context.Context, communityId int64) (int64, error) {
	var count int64
	for _, m := range f.members {
		if m.CommunityId == communityId && m.DeletedAt == nil && m.Role.AdminGrade() {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberDB) UpdateMemberRole(_ context.Context, memberId int64, role model.Role) error {
	m, ok := f.members[memberId]
	if !ok || m.DeletedAt != nil {
		return db.ErrNotFound
	}
	m.Role = role
	return nil
}

func (f *fakeMemberDB) DeleteMember(_ context.Context, memberId int64) error {
	m, ok := f.members[memberId]
	if !ok || m.DeletedAt != nil {
		return db.ErrNotFound
	}
	now := time.Now()
	m.DeletedAt = &now
	return nil
}

type fakeAttendanceDB struct {
	nextId  int64
	records map[int64]*model.Attendance
}

func newFakeAttendanceDB() *fakeAttendanceDB {
	return &fakeAttendanceDB{records: map[int64]*model.Attendance{}}
}

func (f *fakeAttendanceDB) CreateAttendance(_ context.Context, attendance *model.Attendance) (int64, error) {
	f.nextId++
	stored := *attendance
	stored.Id = f.nextId
	stored.MarkedAt = time.Now()
	f.records[stored.Id] = &stored
	return stored.Id, nil
}

func (f *fakeAttendanceDB) GetAttendance(_ context.Context, roundId, userId int64) (*model.Attendance, error) {
	for _, a := range f.records {
		if a.RoundId == roundId && a.UserId == userId && a.DeletedAt == nil {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceDB) GetAttendanceForRound(_ context.Context, roundId int64) ([]*model.Attendance, error) {
	var out []*model.Attendance
	for _, a := range f.records {
		if a.RoundId == roundId && a.DeletedAt == nil {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeNotificationDB struct {
	nextId        int64
	notifications map[int64]*model.Notification
}

func newFakeNotificationDB() *fakeNotificationDB {
	return &fakeNotificationDB{notifications: map[int64]*model.Notification{}}
}

func (f *fakeNotificationDB) CreateNotification(_ context.Context, req *db.CreateNotification) (int64, error) {
	f.nextId++
	f.notifications[f.nextId] = &model.Notification{
		Id:          f.nextId,
		CommunityId: req.CommunityId,
		AuthorId:    req.AuthorId,
		Title:       req.Title,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}
	return f.nextId, nil
}

func (f *fakeNotificationDB) GetNotificationById(_ context.Context, id int64) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok || n.DeletedAt != nil {
		return nil, nil
	}
	return n, nil
}

func (f *fakeNotificationDB) GetNotifications(_ context.Context, query *db.NotificationsListQuery) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.notifications {
		if n.CommunityId == query.CommunityId && n.DeletedAt == nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationDB) GetPinnedNotification(_ context.Context, communityId int64) (*model.Notification, error) {
	for _, n := range f.notifications {
		if n.CommunityId == communityId && n.IsPinned && n.DeletedAt == nil {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationDB) UpdateNotification(_ context.Context, id int64, req *db.UpdateNotification) error {
	n, ok := f.notifications[id]
	if !ok || n.DeletedAt != nil {
		return db.ErrNotFound
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	return nil
}

func (f *fakeNotificationDB) SetNotificationPinned(_ context.Context, id int64, pinned bool) error {
	n, ok := f.notifications[id]
	if !ok || n.DeletedAt != nil {
		return db.ErrNotFound
	}
	n.IsPinned = pinned
	return nil
}

func (f *fakeNotificationDB) DeleteNotification(_ context.Context, id int64) error {
	n, ok := f.notifications[id]
	if !ok || n.DeletedAt != nil {
		return db.ErrNotFound
	}
	now := time.Now()
	n.DeletedAt = &now
	return nil
}

type fakeUserDB struct {
	nextId    int64
	users     map[int64]*model.User
	createErr error
}

func newFakeUserDB() *fakeUserDB {
	return &fakeUserDB{users: map[int64]*model.User{}}
}

func (f *fakeUserDB) CreateUser(_ context.Context, user *model.User) (int64, error) {
	if f.createErr != nil {
		return -1, f.createErr
	}
	f.nextId++
	stored := *user
	stored.Id = f.nextId
	stored.CreatedAt = time.Now()
	f.users[stored.Id] = &stored
	return stored.Id, nil
}

func (f *fakeUserDB) GetUserById(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserDB) GetUserByProvider(_ context.Context, provider, providerId string) (*model.User, error) {
	for _, u := range f.users {
		if u.Provider == provider && u.ProviderId == providerId && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserDB) UpdateUser(_ context.Context, id int64, req *db.UpdateUser) error {
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return db.ErrNotFound
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Nickname != nil {
		u.Nickname = *req.Nickname
	}
	if req.ImageUrl != nil {
		u.ImageUrl = *req.ImageUrl
	}
	return nil
}
