package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mAbdullah821/gallery-app-task/internal/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gallery-repo-test")
	if err != nil {
		panic(err)
	}

	if err := InitDB(filepath.Join(dir, "test.db")); err != nil {
		panic(err)
	}

	code := m.Run()

	Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

var seq int

func unique(prefix string) string {
	seq++
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq)
}

func storedObject(name string, size int64, uploadedAt string) *model.StoredObject {
	return &model.StoredObject{
		FileName:    name,
		ContentType: "image/png",
		Size:        size,
		PublicURL:   "https://storage.googleapis.com/test-bucket/images/" + name,
		CreatedAt:   uploadedAt,
	}
}

func mustCreateUser(t *testing.T, prefix string) *model.User {
	t.Helper()
	user, err := CreateUser("Test User", unique(prefix), "hash")
	require.NoError(t, err)
	return user
}

func TestUserLifecycle(t *testing.T) {
	user := mustCreateUser(t, "lifecycle")
	require.NotEmpty(t, user.ID)
	require.Empty(t, user.RefreshTokenHash)

	byName, err := GetUserByUsername(user.Username)
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, user.ID, byName.ID)

	byID, err := GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, user.Username, byID.Username)

	require.NoError(t, UpdateRefreshTokenHash(user.ID, "new-hash"))
	updated, err := GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", updated.RefreshTokenHash)
}

func TestGetUser_AbsentReturnsNil(t *testing.T) {
	user, err := GetUserByUsername(unique("missing"))
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = GetUserByID("no-such-id")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUserExists(t *testing.T) {
	user := mustCreateUser(t, "exists")

	exists, err := UserExists(user.Username)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = UserExists(unique("absent"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	user := mustCreateUser(t, "dup")

	_, err := CreateUser("Someone Else", user.Username, "hash2")
	require.Error(t, err)
}

func TestUpdateRefreshTokenHash_UnknownUser(t *testing.T) {
	err := UpdateRefreshTokenHash("no-such-id", "hash")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestImageFilters(t *testing.T) {
	user := mustCreateUser(t, "filters")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		uploadedAt := base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
		_, err := CreateImage(user.ID, storedObject(fmt.Sprintf("img-%d.png", i), int64(100*(i+1)), uploadedAt))
		require.NoError(t, err)
	}

	// No filters: everything, oldest first
	images, total, err := FindImagesByFilter(user.ID, model.ImageFilter{}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, "img-0.png", images[0].FileName)
	require.Equal(t, "img-3.png", images[3].FileName)

	// Time window
	after := base.Add(30 * time.Minute)
	before := base.Add(150 * time.Minute)
	images, total, err = FindImagesByFilter(user.ID, model.ImageFilter{CreatedAfter: &after, CreatedBefore: &before}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "img-1.png", images[0].FileName)
	require.Equal(t, "img-2.png", images[1].FileName)

	// Size bounds combined with time lower bound
	minSize := int64(250)
	images, total, err = FindImagesByFilter(user.ID, model.ImageFilter{CreatedAfter: &after, MinSize: &minSize}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "img-2.png", images[0].FileName)

	maxSize := int64(250)
	images, total, err = FindImagesByFilter(user.ID, model.ImageFilter{MaxSize: &maxSize}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, images, 2)
}

func TestImagePagination(t *testing.T) {
	user := mustCreateUser(t, "paging")

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		uploadedAt := base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		_, err := CreateImage(user.ID, storedObject(fmt.Sprintf("p-%d.png", i), 100, uploadedAt))
		require.NoError(t, err)
	}

	page1, total, err := FindImagesByFilter(user.ID, model.ImageFilter{}, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page1, 2)

	page3, total, err := FindImagesByFilter(user.ID, model.ImageFilter{}, 4, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page3, 1)
	require.Equal(t, "p-4.png", page3[0].FileName)
}

func TestImageTenantScoping(t *testing.T) {
	userA := mustCreateUser(t, "tenant-a")
	userB := mustCreateUser(t, "tenant-b")

	now := time.Now().UTC().Format(time.RFC3339)
	imgA, err := CreateImage(userA.ID, storedObject("a.png", 10, now))
	require.NoError(t, err)
	_, err = CreateImage(userB.ID, storedObject("b.png", 10, now))
	require.NoError(t, err)

	images, total, err := FindImagesByFilter(userA.ID, model.ImageFilter{}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	for _, img := range images {
		require.Equal(t, userA.ID, img.UserID)
	}

	// Lookup under the wrong owner misses
	got, err := GetImageByID(imgA.ID, userB.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = GetImageByID(imgA.ID, userA.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "a.png", got.FileName)
}
