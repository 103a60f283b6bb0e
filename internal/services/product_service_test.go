package services_test

import (
	"testing"

	"storeup/internal/models"
	"storeup/internal/repositories"
	"storeup/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCatalog(t *testing.T) *services.ProductService {
	t.Helper()
	svc := services.NewProductService(repositories.NewMockProductRepository())

	seed := []models.Product{
		{ID: "p-hoodie", StoreID: "store-1", CategoryID: "cat-apparel", Name: "Winter Hoodie", Price: 60.0, Stock: 10, Featured: true},
		{ID: "p-tee", StoreID: "store-1", CategoryID: "cat-apparel", Name: "Logo Tee", Price: 35.0, Stock: 120},
		{ID: "p-mug", StoreID: "store-1", CategoryID: "cat-home", Name: "Coffee Mug", Price: 12.0, Stock: 40, OnSale: true},
		{ID: "p-other", StoreID: "store-2", Name: "Other Store Item", Price: 5.0, Stock: 5},
	}
	for i := range seed {
		assert.NoError(t, svc.CreateProduct(&seed[i]))
	}
	return svc
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestListProductsScopedToStore(t *testing.T) {
	svc := newCatalog(t)

	products, err := svc.ListProducts("store-1", repositories.ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.NotContains(t, productIDs(products), "p-other")
}

func TestListProductsFilters(t *testing.T) {
	svc := newCatalog(t)

	featured := true
	products, err := svc.ListProducts("store-1", repositories.ProductFilter{Featured: &featured})
	assert.NoError(t, err)
	assert.Equal(t, []string{"p-hoodie"}, productIDs(products))

	products, err = svc.ListProducts("store-1", repositories.ProductFilter{Query: "hoodie"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"p-hoodie"}, productIDs(products))

	products, err = svc.ListProducts("store-1", repositories.ProductFilter{CategoryID: "cat-apparel"})
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-hoodie", "p-tee"}, productIDs(products))
}

func TestGetProductByID(t *testing.T) {
	svc := newCatalog(t)

	product, err := svc.GetProductByID("p-hoodie")
	assert.NoError(t, err)
	assert.Equal(t, "Winter Hoodie", product.Name)

	product, err = svc.GetProductByID("p-missing")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateProductAssignsID(t *testing.T) {
	svc := newCatalog(t)

	product := &models.Product{StoreID: "store-1", Name: "New Product", Price: 50.0, Stock: 20}
	assert.NoError(t, svc.CreateProduct(product))
	assert.NotEmpty(t, product.ID)

	stored, err := svc.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "New Product", stored.Name)
}

func TestUpdateProduct(t *testing.T) {
	svc := newCatalog(t)

	updated := &models.Product{ID: "p-tee", StoreID: "store-1", CategoryID: "cat-apparel", Name: "Logo Tee v2", Price: 38.0, Stock: 90}
	assert.NoError(t, svc.UpdateProduct(updated))

	stored, err := svc.GetProductByID("p-tee")
	assert.NoError(t, err)
	assert.Equal(t, "Logo Tee v2", stored.Name)
	assert.Equal(t, 38.0, stored.Price)

	missing := &models.Product{ID: "p-missing", Name: "Ghost", Price: 1.0}
	err = svc.UpdateProduct(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for update")
}

func TestDeleteProduct(t *testing.T) {
	svc := newCatalog(t)

	assert.NoError(t, svc.DeleteProduct("p-mug"))
	_, err := svc.GetProductByID("p-mug")
	assert.Error(t, err)

	err = svc.DeleteProduct("p-missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
}
