package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/upload"
)

func makeFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()

	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	return &CatalogService{
		Repo:    newTestRepo(t),
		Uploads: uploads,
	}
}

func TestCreateItem(t *testing.T) {
	svc := newCatalogService(t)

	in := ItemInput{
		Name:        "widget",
		Description: "a very useful widget",
		Price:       19.99,
		Quantity:    5,
	}
	item, err := svc.CreateItem(context.Background(), in, makeFileHeader(t, "widget.png"))
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	require.True(t, strings.HasPrefix(item.Image, "/static/uploads/"))
	require.Equal(t, 19.99, item.Price)
}

func TestCreateItemValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	longName := strings.Repeat("x", 51)
	_, err := svc.CreateItem(ctx, ItemInput{Name: longName, Description: "d", Price: 1, Quantity: 1}, nil)
	require.ErrorIs(t, err, ErrValidation)

	longDescription := strings.Repeat("x", 81)
	_, err = svc.CreateItem(ctx, ItemInput{Name: "n", Description: longDescription, Price: 1, Quantity: 1}, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(ctx, ItemInput{Name: "n", Description: "d", Price: -1, Quantity: 1}, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(ctx, ItemInput{Name: "n", Description: "d", Price: 1, Quantity: -1}, nil)
	require.ErrorIs(t, err, ErrValidation)

	// valid fields but no image
	_, err = svc.CreateItem(ctx, ItemInput{Name: "n", Description: "d", Price: 1, Quantity: 1}, nil)
	require.ErrorIs(t, err, ErrValidation)

	// valid fields, disallowed extension
	_, err = svc.CreateItem(ctx, ItemInput{Name: "n", Description: "d", Price: 1, Quantity: 1}, makeFileHeader(t, "evil.gif"))
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItemKeepsImageWithoutNewFile(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	item := seedItem(t, svc.Repo, "widget", 9.99)

	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{
		Name:        "widget v2",
		Description: "now even better",
		Price:       12.50,
		Quantity:    3,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "widget v2", updated.Name)
	require.Equal(t, 12.50, updated.Price)
	require.Equal(t, item.Image, updated.Image)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.UpdateItem(context.Background(), 42, ItemInput{
		Name: "n", Description: "d", Price: 1, Quantity: 1,
	}, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItemNotFound(t *testing.T) {
	svc := newCatalogService(t)

	err := svc.DeleteItem(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItemRemovesCartReferences(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	user := seedUser(t, svc.Repo, "test@example.com", "user")
	item := seedItem(t, svc.Repo, "widget", 9.99)

	cart := &CartService{Repo: svc.Repo}
	_, err := cart.AddToCart(ctx, user.ID, item.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	var rows []models.CartItem
	require.NoError(t, svc.Repo.DB.Where("item_id = ?", item.ID).Find(&rows).Error)
	require.Len(t, rows, 0)
}
