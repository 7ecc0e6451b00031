package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/model"
)

func TestCreateCommunityMakesCreatorOwner(t *testing.T) {
	communities := newFakeCommunityDB()
	members := newFakeMemberDB()
	controller, err := NewCommunityController(context.Background(), communities, members)
	if err != nil {
		t.Fatal(err)
	}

	communityId, httpErr := controller.CreateCommunity(context.Background(), 10, &db.CreateCommunity{
		Name:     "evening readers",
		IsPublic: true,
	})
	if httpErr != nil {
		t.Fatal(httpErr)
	}

	member, err := members.GetMember(context.Background(), communityId, 10)
	if err != nil {
		t.Fatal(err)
	}
	if member == nil {
		t.Fatal("creator has no membership")
	}
	if member.Role != model.RoleOwner {
		t.Errorf("creator should own the community, got %v", member.Role)
	}
}

func TestGetCommunityByIdMissing(t *testing.T) {
	controller, err := NewCommunityController(context.Background(), newFakeCommunityDB(), newFakeMemberDB())
	if err != nil {
		t.Fatal(err)
	}
	_, httpErr := controller.GetCommunityById(context.Background(), 99)
	if httpErr == nil || httpErr.Status != 404 {
		t.Errorf("missing community should be 404, got %v", httpErr)
	}
}

func TestSoftDeletedCommunityIsGone(t *testing.T) {
	communities := newFakeCommunityDB()
	controller, err := NewCommunityController(context.Background(), communities, newFakeMemberDB())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	id, httpErr := controller.CreateCommunity(ctx, 10, &db.CreateCommunity{Name: "short lived"})
	if httpErr != nil {
		t.Fatal(httpErr)
	}
	if err := communities.DeleteCommunity(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, httpErr := controller.GetCommunityById(ctx, id); httpErr == nil || httpErr.Status != 404 {
		t.Errorf("deleted community should read as 404, got %v", httpErr)
	}
}

func TestDirectoryServesSnapshot(t *testing.T) {
	communities := newFakeCommunityDB()
	if _, err := communities.CreateCommunity(context.Background(), &db.CreateCommunity{Name: "public", IsPublic: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := communities.CreateCommunity(context.Background(), &db.CreateCommunity{Name: "private"}); err != nil {
		t.Fatal(err)
	}

	controller, err := NewCommunityController(context.Background(), communities, newFakeMemberDB())
	if err != nil {
		t.Fatal(err)
	}
	directory := controller.Directory()
	if len(directory) != 1 || directory[0].Name != "public" {
		t.Errorf("directory should hold the public communities, got %v", directory)
	}
}

func TestDirectoryRefreshSurvivesPanic(t *testing.T) {
	communities := newFakeCommunityDB()
	controller, err := NewCommunityController(context.Background(), communities, newFakeMemberDB())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	communities.panicNext = true
	controller.refreshDirectoryOnce(ctx)

	if _, err := communities.CreateCommunity(ctx, &db.CreateCommunity{Name: "still alive", IsPublic: true}); err != nil {
		t.Fatal(err)
	}
	controller.refreshDirectoryOnce(ctx)
	if directory := controller.Directory(); len(directory) != 1 {
		t.Errorf("refresher should keep working after a panic, got %v", directory)
	}
}

func TestDirectoryRefreshAfterCreate(t *testing.T) {
	communities := newFakeCommunityDB()
	members := newFakeMemberDB()
	controller, err := NewCommunityController(context.Background(), communities, members)
	if err != nil {
		t.Fatal(err)
	}

	if _, httpErr := controller.CreateCommunity(context.Background(), 10, &db.CreateCommunity{
		Name:     "fresh",
		IsPublic: true,
	}); httpErr != nil {
		t.Fatal(httpErr)
	}

	// The post-create refresh runs asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(controller.Directory()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("directory never picked up the new community")
}
