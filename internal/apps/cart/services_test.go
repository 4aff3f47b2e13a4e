package cart

import (
	"testing"

	"github.com/dilshodm/hamxona-backend/internal/apps/catalog"
	"github.com/dilshodm/hamxona-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) (*CartService, *gorm.DB, *models.User, *catalog.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &catalog.Category{}, &catalog.Product{},
		&CartItem{}, &SavedCard{},
	))

	user := &models.User{
		ID:       uuid.New(),
		Email:    "a@b.com",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, db.Create(user).Error)

	product := &catalog.Product{
		ID:    uuid.New(),
		Title: "Kettle",
		Price: 19.99,
	}
	require.NoError(t, db.Create(product).Error)

	return NewCartService(db), db, user, product
}

func TestAddProduct(t *testing.T) {
	svc, _, user, product := testService(t)

	item, err := svc.AddProduct(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, item.Status)
	assert.Equal(t, 3, item.Quantity)
	assert.InDelta(t, 59.97, item.TotalPrice(), 0.001)
}

func TestAddProduct_Errors(t *testing.T) {
	svc, _, user, product := testService(t)

	_, err := svc.AddProduct(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddProduct(user.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetCart_OnlyActiveItems(t *testing.T) {
	svc, db, user, product := testService(t)

	item, err := svc.AddProduct(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(user.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, db.Model(&CartItem{}).Where("id = ?", item.ID).Update("status", StatusSold).Error)

	items, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Kettle", items[0].Product.Title)
}

func TestRemoveProduct(t *testing.T) {
	svc, _, user, product := testService(t)

	_, err := svc.AddProduct(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveProduct(user.ID, product.ID))
	assert.ErrorIs(t, svc.RemoveProduct(user.ID, product.ID), ErrCartItemNotFound)
}

func TestOrderCart(t *testing.T) {
	svc, db, user, product := testService(t)

	_, err := svc.OrderCart(user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.AddProduct(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(user.ID, product.ID, 2)
	require.NoError(t, err)

	updated, err := svc.OrderCart(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	var active int64
	db.Model(&CartItem{}).Where("user_id = ? AND status = ?", user.ID, StatusActive).Count(&active)
	assert.EqualValues(t, 0, active)

	// A second order with nothing active fails again.
	_, err = svc.OrderCart(user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCards(t *testing.T) {
	svc, _, user, _ := testService(t)

	card, err := svc.AddCard(user.ID, &AddCardRequest{
		CardName:   "Personal",
		CardNumber: "8600123412341234",
		ExpiryDate: "12/28",
		CVV:        "123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, card.UserID)

	cards, err := svc.ListCards(user.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Personal", cards[0].CardName)

	// Another user sees nothing.
	other, err := svc.ListCards(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
