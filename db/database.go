package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/studyclub-io/study-club-be/model"
)

type Database interface {
	UserDatabase
	CommunityDatabase
	MemberDatabase
	RoundDatabase
	GoalDatabase
	AttendanceDatabase
	NotificationDatabase
	ReactionDatabase
	GetSQLDB() *sql.DB
	Close() error
}

// OffsetQuery is the page/limit request used by the plain list endpoints.
type OffsetQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (oq *OffsetQuery) Normalize() {
	if oq.Page < 1 {
		oq.Page = 1
	}
	if oq.Limit == 0 {
		oq.Limit = DefaultPageLimit
	}
	if oq.Limit < 1 {
		oq.Limit = 1
	}
	if oq.Limit > MaxPageLimit {
		oq.Limit = MaxPageLimit
	}
}

func (oq OffsetQuery) Offset() int {
	return (oq.Page - 1) * oq.Limit
}

type UpdateUser struct {
	Username *string
	Nickname *string
	ImageUrl *string
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserById(ctx context.Context, id int64) (*model.User, error)
	// GetUserByProvider looks up the local account for an external identity.
	GetUserByProvider(ctx context.Context, provider, providerId string) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, req *UpdateUser) error
}

type CreateCommunity struct {
	Name        string
	Description string
	IsPublic    bool
	Region      string
	SubRegion   string
	Tags        []string
	ImageUrl    string
}

type UpdateCommunity struct {
	Name        *string
	Description *string
	IsPublic    *bool
	Region      *string
	SubRegion   *string
	Tags        []string
	ImageUrl    *string
}

// CommunitySearchQuery filters public communities; all filters are optional.
type CommunitySearchQuery struct {
	Term   string
	Region string
	Tag    string
	Page   PageQuery
}

type CommunityDatabase interface {
	CreateCommunity(ctx context.Context, req *CreateCommunity) (communityId int64, err error)
	GetCommunityById(ctx context.Context, id int64) (*model.Community, error)
	UpdateCommunity(ctx context.Context, id int64, req *UpdateCommunity) error
	DeleteCommunity(ctx context.Context, id int64) error
	// SearchCommunities pages over active public communities.
	SearchCommunities(ctx context.Context, query *CommunitySearchQuery) ([]*model.CommunityWithMemberCount, error)
	// GetPublicCommunities feeds the cached directory. nil query opts: all active public rows.
	GetPublicCommunities(ctx context.Context) ([]*model.CommunityWithMemberCount, error)
}

type MemberDatabase interface {
	CreateMember(ctx context.Context, member *model.CommunityMember) (memberId int64, err error)
	// GetMember returns the caller's active membership row, nil when absent.
	GetMember(ctx context.Context, communityId, userId int64) (*model.CommunityMember, error)
	GetMemberById(ctx context.Context, id int64) (*model.CommunityMember, error)
	GetMembers(ctx context.Context, communityId int64, page OffsetQuery) ([]*model.MemberWithUser, int64, error)
	// CountActiveAdmins counts admin-grade active memberships of a community.
	CountActiveAdmins(ctx context.Context, communityId int64) (int64, error)
	UpdateMemberRole(ctx context.Context, memberId int64, role model.Role) error
	DeleteMember(ctx context.Context, memberId int64) error
}

type CreateRound struct {
	CommunityId int64
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
}

type UpdateRound struct {
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
}

type RoundDatabase interface {
	// CreateRound assigns the next sequence number within the community.
	CreateRound(ctx context.Context, req *CreateRound) (roundId int64, err error)
	GetRoundById(ctx context.Context, id int64) (*model.Round, error)
	GetRounds(ctx context.Context, communityId int64, page OffsetQuery) ([]*model.Round, int64, error)
	UpdateRound(ctx context.Context, id int64, req *UpdateRound) error
	DeleteRound(ctx context.Context, id int64) error
}

// GoalsListQuery pages a user's goals, optionally narrowed to a community or
// round.
type GoalsListQuery struct {
	OwnerId     int64
	CommunityId int64
	RoundId     int64
	Page        PageQuery
}

type UpdateGoal struct {
	Title       *string
	Description *string
	StartsOn    *time.Time
	EndsOn      *time.Time
}

type GoalDatabase interface {
	CreateGoal(ctx context.Context, goal *model.StudyGoal) (goalId int64, err error)
	GetGoalById(ctx context.Context, id int64) (*model.StudyGoal, error)
	GetGoals(ctx context.Context, query *GoalsListQuery) ([]*model.StudyGoal, error)
	UpdateGoal(ctx context.Context, id int64, req *UpdateGoal) error
	SetGoalDone(ctx context.Context, id int64, done bool) error
	DeleteGoal(ctx context.Context, id int64) error
}

type AttendanceDatabase interface {
	CreateAttendance(ctx context.Context, attendance *model.Attendance) (attendanceId int64, err error)
	// GetAttendance returns the active row for (round, user), nil when absent.
	GetAttendance(ctx context.Context, roundId, userId int64) (*model.Attendance, error)
	GetAttendanceForRound(ctx context.Context, roundId int64) ([]*model.Attendance, error)
}

type CreateNotification struct {
	CommunityId int64
	AuthorId    int64
	Title       string
	Content     string
}

type UpdateNotification struct {
	Title   *string
	Content *string
}

// NotificationsListQuery pages a community's notifications.
type NotificationsListQuery struct {
	CommunityId int64
	Page        PageQuery
}

type NotificationDatabase interface {
	CreateNotification(ctx context.Context, req *CreateNotification) (notificationId int64, err error)
	GetNotificationById(ctx context.Context, id int64) (*model.Notification, error)
	GetNotifications(ctx context.Context, query *NotificationsListQuery) ([]*model.Notification, error)
	// GetPinnedNotification returns the community's pinned row, nil when none.
	GetPinnedNotification(ctx context.Context, communityId int64) (*model.Notification, error)
	UpdateNotification(ctx context.Context, id int64, req *UpdateNotification) error
	SetNotificationPinned(ctx context.Context, id int64, pinned bool) error
	DeleteNotification(ctx context.Context, id int64) error
}

type ReactionDatabase interface {
	CreateReaction(ctx context.Context, reaction *model.Reaction) (reactionId int64, err error)
	GetReactionById(ctx context.Context, id int64) (*model.Reaction, error)
	GetReactionsForMember(ctx context.Context, memberId int64) ([]*model.Reaction, error)
	DeleteReaction(ctx context.Context, id int64) error
}
