package restapi

import (
	"context"
	"testing"

	"bhasaconnect/internal/ports/apiclient"
	"bhasaconnect/internal/ports/authapi"
	"bhasaconnect/internal/ports/posts"
	"bhasaconnect/internal/ports/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthGateway_LoginAndProfile(t *testing.T) {
	srv, _ := newFakeBackend(t)
	client := NewClient(srv.URL)
	gateway := NewAuthGatewayREST(client)
	ctx := context.Background()

	pair, err := gateway.Login(ctx, authapi.Credentials{Email: fakeEmail, Password: fakePassword})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "refresh-ok", pair.RefreshToken)

	client.SetAuthToken(pair.AccessToken)
	profile, err := gateway.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakeUserID, profile.ID)
	assert.Equal(t, fakeEmail, profile.Email)
	assert.Equal(t, "A B", profile.FullName())
	assert.Equal(t, []string{"English", "Hindi"}, profile.Languages)
}

func TestAuthGateway_ProfileWithoutToken(t *testing.T) {
	srv, _ := newFakeBackend(t)
	gateway := NewAuthGatewayREST(NewClient(srv.URL))

	_, err := gateway.GetProfile(context.Background())
	require.Error(t, err)
}

func TestAuthGateway_Refresh(t *testing.T) {
	srv, _ := newFakeBackend(t)
	gateway := NewAuthGatewayREST(NewClient(srv.URL))
	ctx := context.Background()

	token, err := gateway.Refresh(ctx, "refresh-ok")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = gateway.Refresh(ctx, "stale")
	assert.Error(t, err)
}

func TestPostsService_ListEnvelopedAndGetRaw(t *testing.T) {
	srv, _ := newFakeBackend(t)
	svc := NewPostsServiceREST(NewClient(srv.URL))
	ctx := context.Background()

	// لیست با envelope
	page, err := svc.GetPosts(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-1", page.Items[0].ID)
	assert.Equal(t, 2, page.Items[0].LikesCount)
	assert.Equal(t, "A B", page.Items[0].Author.FullName())
	require.NotNil(t, page.HasNext)
	assert.False(t, *page.HasNext)

	// تک پست بدون envelope
	single, err := svc.GetPost(ctx, "p-9")
	require.NoError(t, err)
	assert.Equal(t, "p-9", single.ID)
	assert.False(t, single.CreatedAt.IsZero())
}

func TestPostsService_LikeUnlike(t *testing.T) {
	srv, backend := newFakeBackend(t)
	svc := NewPostsServiceREST(NewClient(srv.URL))
	ctx := context.Background()

	require.NoError(t, svc.LikePost(ctx, "p-1"))
	assert.True(t, backend.liked["p-1"])

	require.NoError(t, svc.UnlikePost(ctx, "p-1"))
	assert.False(t, backend.liked["p-1"])
}

func TestPostsService_CreateAndUpload(t *testing.T) {
	srv, backend := newFakeBackend(t)
	client := NewClient(srv.URL)
	client.SetAuthToken("tok")
	svc := NewPostsServiceREST(client)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, posts.CreatePostData{Content: "a fresh post", Language: "Hindi"})
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID)
	assert.Equal(t, "a fresh post", created.Content)

	url, err := svc.UploadImage(ctx, apiclient.Upload{
		FileName:    "pic.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img.png", url)
	assert.Equal(t, 1, backend.hits("upload"))
}

func TestCommentsService_RoundTrip(t *testing.T) {
	srv, _ := newFakeBackend(t)
	svc := NewCommentsServiceREST(NewClient(srv.URL))
	ctx := context.Background()

	list, err := svc.GetComments(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c-1", list[0].ID)
	assert.Equal(t, "p-1", list[0].PostID)
	assert.True(t, list[0].CanDelete)

	created, err := svc.CreateComment(ctx, "p-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "c-2", created.ID)
	assert.Equal(t, "hello", created.Content)

	require.NoError(t, svc.DeleteComment(ctx, "c-2"))
}

func TestUsersService_SearchAndFollow(t *testing.T) {
	srv, backend := newFakeBackend(t)
	svc := NewUsersServiceREST(NewClient(srv.URL))
	ctx := context.Background()

	result, err := svc.SearchUsers(ctx, "an", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "u-2", result.Items[0].ID)
	assert.False(t, result.Items[0].IsFollowing)
	assert.False(t, result.HasNext)

	require.NoError(t, svc.FollowUser(ctx, "u-2"))
	require.NoError(t, svc.UnfollowUser(ctx, "u-2"))
	assert.Equal(t, 1, backend.hits("follow"))
	assert.Equal(t, 1, backend.hits("unfollow"))
}

func TestUsersService_ProfileSettings(t *testing.T) {
	srv, backend := newFakeBackend(t)
	client := NewClient(srv.URL)
	client.SetAuthToken("tok")
	svc := NewUsersServiceREST(client)
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, users.ProfileUpdate{Bio: "new bio", State: "Tamil Nadu"})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "Tamil Nadu", updated.State)

	require.NoError(t, svc.UpdatePassword(ctx, fakePassword, "NewSecret456"))

	// رمز فعلی اشتباه: خطای سرور برمی‌گردد
	err = svc.UpdatePassword(ctx, "wrong-pass", "NewSecret456")
	var apiErr *apiclient.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Current password is incorrect", apiErr.Message)

	avatarURL, err := svc.UploadAvatar(ctx, apiclient.Upload{
		FileName:    "me.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", avatarURL)
	assert.Equal(t, 1, backend.hits("uploadAvatar"))
}

func TestUsersService_GetUserProfile(t *testing.T) {
	srv, _ := newFakeBackend(t)
	svc := NewUsersServiceREST(NewClient(srv.URL))

	profile, err := svc.GetUserProfile(context.Background(), "u-7")
	require.NoError(t, err)
	assert.Equal(t, "u-7", profile.ID)
	assert.Equal(t, 3, profile.FollowersCount)
}
