package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/testutil"
)

func TestLinkRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLinkRepository(db)
	user := testutil.TestUser(t, db)

	link := &model.Link{
		UserID: user.ID,
		Title:  "My Blog",
		URL:    "https://blog.example.com",
		Icon:   "pen",
	}

	require.NoError(t, repo.Create(link))
	assert.NotZero(t, link.ID)
}

func TestLinkRepository_ListByUserID_Order(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLinkRepository(db)
	user := testutil.TestUser(t, db)

	// 乱序插入，读取按 sort_order 升序
	testutil.TestLink(t, db, user.ID, testutil.WithTitle("third"), testutil.WithOrder(3))
	testutil.TestLink(t, db, user.ID, testutil.WithTitle("first"), testutil.WithOrder(1))
	testutil.TestLink(t, db, user.ID, testutil.WithTitle("second"), testutil.WithOrder(2))

	links, err := repo.ListByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "first", links[0].Title)
	assert.Equal(t, "second", links[1].Title)
	assert.Equal(t, "third", links[2].Title)
}

func TestLinkRepository_ListByUserID_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLinkRepository(db)
	user := testutil.TestUser(t, db)

	links, err := repo.ListByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLinkRepository_ListByUserID_ScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLinkRepository(db)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	testutil.TestLink(t, db, owner.ID)
	testutil.TestLink(t, db, other.ID)

	links, err := repo.ListByUserID(owner.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, owner.ID, links[0].UserID)
}

func TestLinkRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLinkRepository(db)
	user := testutil.TestUser(t, db)
	link := testutil.TestLink(t, db, user.ID)

	require.NoError(t, repo.Delete(link.ID))

	_, err := repo.GetByID(link.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
