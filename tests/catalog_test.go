package tests

import (
	"context"
	"testing"

	"dinepos/internal/dto"
	"dinepos/internal/model"
	"dinepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCatalogSvc() (service.CatalogService, *stubCategoryRepo, *stubProductRepo) {
	prodRepo := newStubProductRepo()
	catRepo := newStubCategoryRepo(prodRepo)
	svc := service.NewCatalogService(catRepo, prodRepo, nil)
	return svc, catRepo, prodRepo
}

func seedCategory(repo *stubCategoryRepo, name string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, Active: true}
	repo.categories[c.ID] = c
	return c
}

func TestCreateCategory(t *testing.T) {
	svc, _, _ := buildCatalogSvc()

	resp, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", resp.Name)
	assert.True(t, resp.Active)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc, _, _ := buildCatalogSvc()

	_, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, catRepo, _ := buildCatalogSvc()
	seedCategory(catRepo, "Beverages")

	_, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Beverages"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeleteCategory_RefusedWhileReferenced(t *testing.T) {
	svc, catRepo, prodRepo := buildCatalogSvc()
	cat := seedCategory(catRepo, "Mains")
	p := seedProduct(prodRepo, "Pizza", "35.00")
	p.CategoryID = cat.ID

	err := svc.DeleteCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, service.ErrCategoryInUse)

	// Even an inactive product keeps the category pinned.
	p.Active = false
	err = svc.DeleteCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, service.ErrCategoryInUse)
}

func TestDeleteCategory_EmptyCategory(t *testing.T) {
	svc, catRepo, _ := buildCatalogSvc()
	cat := seedCategory(catRepo, "Seasonal")

	require.NoError(t, svc.DeleteCategory(context.Background(), cat.ID))
	_, ok := catRepo.categories[cat.ID]
	assert.False(t, ok)
}

func TestCreateProduct(t *testing.T) {
	svc, catRepo, _ := buildCatalogSvc()
	cat := seedCategory(catRepo, "Beverages")

	resp, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Tea",
		CategoryID: cat.ID.String(),
		UnitPrice:  decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "5", resp.UnitPrice.String())
	assert.Equal(t, "Beverages", resp.Category)
	assert.True(t, resp.Active)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	svc, catRepo, _ := buildCatalogSvc()
	cat := seedCategory(catRepo, "Beverages")

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Tea",
		CategoryID: cat.ID.String(),
		UnitPrice:  decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc, _, _ := buildCatalogSvc()

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Tea",
		CategoryID: uuid.New().String(),
		UnitPrice:  decimal.RequireFromString("5.00"),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeactivateProduct_HiddenFromDefaultListing(t *testing.T) {
	svc, _, prodRepo := buildCatalogSvc()
	p := seedProduct(prodRepo, "Tea", "5.00")

	require.NoError(t, svc.DeactivateProduct(context.Background(), p.ID))

	active, err := svc.ListProducts(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListProducts(context.Background(), dto.ProductFilter{Active: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.ReactivateProduct(context.Background(), p.ID))
	active, err = svc.ListProducts(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMenu_GroupsActiveProductsByCategory(t *testing.T) {
	svc, catRepo, prodRepo := buildCatalogSvc()
	bev := seedCategory(catRepo, "Beverages")
	mains := seedCategory(catRepo, "Mains")

	tea := seedProduct(prodRepo, "Tea", "5.00")
	tea.CategoryID = bev.ID
	pizza := seedProduct(prodRepo, "Pizza", "35.00")
	pizza.CategoryID = mains.ID
	retired := seedProduct(prodRepo, "Old Special", "9.00")
	retired.CategoryID = mains.ID
	retired.Active = false

	menu, err := svc.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Categories, 2)

	byName := make(map[string]dto.MenuCategory)
	for _, c := range menu.Categories {
		byName[c.Name] = c
	}
	assert.Len(t, byName["Beverages"].Products, 1)
	// Inactive products never reach the menu.
	assert.Len(t, byName["Mains"].Products, 1)
	assert.Equal(t, "Pizza", byName["Mains"].Products[0].Name)
}

func TestUpdateProduct_PriceEdit(t *testing.T) {
	svc, _, prodRepo := buildCatalogSvc()
	p := seedProduct(prodRepo, "Coffee", "8.00")

	newPrice := decimal.RequireFromString("9.50")
	resp, err := svc.UpdateProduct(context.Background(), p.ID, dto.UpdateProductRequest{UnitPrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "9.5", resp.UnitPrice.String())
}
