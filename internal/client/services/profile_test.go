package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clubportal/internal/client/models"
)

func TestProfile_LoadKeepsAcceptedClubsOnly(t *testing.T) {
	gw := &fakeGateway{
		clubs: []models.Club{{ID: "c1", Name: "Chess"}, {ID: "c2", Name: "Robotics"}, {ID: "c3", Name: "Drama"}},
		regs: []models.Registration{
			{ClubID: "c1", Status: models.StatusAccepted},
			{ClubID: "c2", Status: models.StatusPending},
			{ClubID: "c3", Status: models.StatusRejected},
		},
		badges: []models.Badge{{Name: "Rising Star", Icon: "✨", ClubName: "Chess"}},
	}
	p, err := NewProfileService(gw, asUser("s1", models.RoleStudent), nil).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, p.Clubs, 1)
	assert.Equal(t, "Chess", p.Clubs[0].Name)
	require.Len(t, p.Badges, 1)
	assert.Equal(t, models.ID("s1"), p.Identity.ID)
}

func TestProfile_LoadDegradesBadges(t *testing.T) {
	gw := &fakeGateway{badgesErr: transportErr("badges")}
	p, err := NewProfileService(gw, asUser("s1", models.RoleStudent), nil).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, p.Badges)
	assert.Empty(t, p.Badges)
}

func TestProfile_UpdateBioMergesAfterSuccess(t *testing.T) {
	sess := asUser("s1", models.RoleStudent)
	gw := &fakeGateway{}
	svc := NewProfileService(gw, sess, nil)

	id, err := svc.UpdateBio(context.Background(), "chess fan")
	require.NoError(t, err)
	assert.Equal(t, "chess fan", id.Bio)
	assert.Equal(t, "chess fan", sess.Snapshot().Identity.Bio)
	assert.Equal(t, models.ProfileInput{Name: "User s1", Bio: "chess fan"}, gw.lastProfile)
}

func TestProfile_UpdateBioFailureLeavesIdentity(t *testing.T) {
	sess := asUser("s1", models.RoleStudent)
	gw := &fakeGateway{mutationErr: transportErr("update profile")}

	_, err := NewProfileService(gw, sess, nil).UpdateBio(context.Background(), "new")
	require.Error(t, err)
	assert.Empty(t, sess.Snapshot().Identity.Bio)
}

func TestProfile_UpdateAvatar(t *testing.T) {
	sess := asUser("s1", models.RoleStudent)
	gw := &fakeGateway{avatarRef: "/uploads/a.png"}
	svc := NewProfileService(gw, sess, nil)

	id, err := svc.UpdateAvatar(context.Background(), Image{Name: "a.png", Content: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", id.Avatar)
	assert.Equal(t, "avatar", gw.lastAvatar.Field)
	assert.Equal(t, "a.png", gw.lastAvatar.FileName)
	assert.False(t, gw.called("GetUser"))
}

func TestProfile_UpdateAvatarRereadsWhenNotEchoed(t *testing.T) {
	sess := asUser("s1", models.RoleStudent)
	gw := &fakeGateway{user: models.Identity{User: models.User{ID: "s1", Role: models.RoleStudent, Avatar: "/uploads/b.png"}}}

	id, err := NewProfileService(gw, sess, nil).UpdateAvatar(context.Background(), Image{Name: "b.png", Content: strings.NewReader("x")})
	require.NoError(t, err)
	assert.True(t, gw.called("GetUser"))
	assert.Equal(t, "/uploads/b.png", id.Avatar)
}

func TestProfile_UpdateAvatarNeedsFile(t *testing.T) {
	gw := &fakeGateway{}
	_, err := NewProfileService(gw, asUser("s1", models.RoleStudent), nil).UpdateAvatar(context.Background(), Image{})
	require.Error(t, err)
	assert.False(t, gw.called("UpdateAvatar"))
}
