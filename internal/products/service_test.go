package products

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{Repo: NewRepository(conn)})
	require.NoError(t, err)
	return svc
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, category enums.ProductCategory, featured bool, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    1500,
		Category: category,
		Featured: featured,
		Stock:    stock,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestListFiltersByCategory(t *testing.T) {
	conn := setupProductsTestDB(t)
	seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, 5)
	seedProduct(t, conn, "Kalung Mutiara", enums.ProductCategoryNecklaces, false, 5)
	svc := newTestService(t, conn)

	category := enums.ProductCategoryRings
	result, err := svc.List(context.Background(), ListFilter{Category: &category})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Cincin Emas", result.Items[0].Name)
}

func TestListFeaturedOnly(t *testing.T) {
	conn := setupProductsTestDB(t)
	seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, true, 5)
	seedProduct(t, conn, "Kalung Mutiara", enums.ProductCategoryNecklaces, false, 5)
	svc := newTestService(t, conn)

	featured := true
	result, err := svc.List(context.Background(), ListFilter{Featured: &featured})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Featured)
}

func TestListRejectsUnknownCategory(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	bogus := enums.ProductCategory("watches")
	_, err := svc.List(context.Background(), ListFilter{Category: &bogus})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListPaginatesWithCursor(t *testing.T) {
	conn := setupProductsTestDB(t)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		product := &models.Product{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Gelang %d", i),
			Price:     1000,
			Category:  enums.ProductCategoryBracelets,
			Stock:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(product).Error)
	}
	svc := newTestService(t, conn)

	first, err := svc.List(context.Background(), ListFilter{Page: pagination.Params{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, "Gelang 4", first.Items[0].Name)

	second, err := svc.List(context.Background(), ListFilter{
		Page: pagination.Params{Limit: 2, Cursor: *first.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "Gelang 2", second.Items[0].Name)
}

func TestListRejectsMalformedCursor(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.List(context.Background(), ListFilter{
		Page: pagination.Params{Cursor: "not-base64!!"},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetByIDNotFound(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateAndUpdateProduct(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	created, err := svc.Create(context.Background(), CreateProductRequest{
		Name:        "Anting Perak",
		Description: "Anting perak sterling 925",
		Price:       2500,
		ImageURL:    "https://example.com/anting-perak.jpg",
		Category:    enums.ProductCategoryEarrings,
		Stock:       10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	newPrice := 3000
	featured := true
	updated, err := svc.Update(context.Background(), created.ID, UpdateProductRequest{
		Price:    &newPrice,
		Featured: &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Anting Perak", updated.Name)
}

func TestCreateRejectsInvalidCategory(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:        "Jam Tangan",
		Description: "Jam tangan kulit",
		Price:       100,
		ImageURL:    "https://example.com/jam.jpg",
		Category:    enums.ProductCategory("watches"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateEnforcesCatalogConstraints(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newTestService(t, conn)

	valid := CreateProductRequest{
		Name:        "Cincin Berlian",
		Description: "Cincin berlian solitaire",
		Price:       100,
		ImageURL:    "https://example.com/cincin.jpg",
		Category:    enums.ProductCategoryRings,
		Stock:       1,
	}

	cases := map[string]func(req *CreateProductRequest){
		"one-char name":     func(req *CreateProductRequest) { req.Name = "R" },
		"overlong name":     func(req *CreateProductRequest) { req.Name = strings.Repeat("x", 101) },
		"empty description": func(req *CreateProductRequest) { req.Description = "  " },
		"empty image url":   func(req *CreateProductRequest) { req.ImageURL = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count, "rejected payloads must not be persisted")
}

func TestUpdateRejectsEmptyDescriptionAndImage(t *testing.T) {
	conn := setupProductsTestDB(t)
	product := seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, 5)
	svc := newTestService(t, conn)

	empty := ""
	_, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{Description: &empty})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Update(context.Background(), product.ID, UpdateProductRequest{ImageURL: &empty})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateRejectsNegativeStock(t *testing.T) {
	conn := setupProductsTestDB(t)
	product := seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, 5)
	svc := newTestService(t, conn)

	bad := -1
	_, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{Stock: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteProduct(t *testing.T) {
	conn := setupProductsTestDB(t)
	product := seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, 5)
	svc := newTestService(t, conn)

	require.NoError(t, svc.Delete(context.Background(), product.ID))

	_, err := svc.GetByID(context.Background(), product.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDecrementStockGuardsRemaining(t *testing.T) {
	conn := setupProductsTestDB(t)
	product := seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, 5)
	repo := NewRepository(conn)

	ok, err := repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(context.Background(), product.ID, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.Stock)
}

func TestDecrementStockUnderConcurrentCheckouts(t *testing.T) {
	conn := setupProductsTestDB(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// A single pooled connection keeps sqlite from returning busy errors
	// while the goroutines race.
	sqlDB.SetMaxOpenConns(1)

	const startingStock = 5
	const buyers = 12
	product := seedProduct(t, conn, "Cincin Emas", enums.ProductCategoryRings, false, startingStock)
	repo := NewRepository(conn)

	var wg sync.WaitGroup
	var committed atomic.Int64
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementStock(context.Background(), product.ID, 1)
			if err == nil && ok {
				committed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, startingStock, committed.Load(),
		"committed quantity must match starting stock exactly")

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
}
