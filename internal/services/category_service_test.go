package services_test

import (
	"testing"

	"storeup/internal/models"
	"storeup/internal/repositories"
	"storeup/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesScopedToStore(t *testing.T) {
	svc := services.NewCategoryService(repositories.NewMockCategoryRepository())

	apparel := &models.Category{StoreID: "store-1", Name: "Apparel"}
	home := &models.Category{StoreID: "store-1", Name: "Home Goods"}
	other := &models.Category{StoreID: "store-2", Name: "Electronics"}
	assert.NoError(t, svc.CreateCategory(apparel))
	assert.NoError(t, svc.CreateCategory(home))
	assert.NoError(t, svc.CreateCategory(other))
	assert.NotEmpty(t, apparel.ID)

	categories, err := svc.ListCategories("store-1")
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, "store-1", c.StoreID)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	svc := services.NewCategoryService(repositories.NewMockCategoryRepository())

	category := &models.Category{StoreID: "store-1", Name: "Apparel", Description: "Clothing and accessories"}
	assert.NoError(t, svc.CreateCategory(category))

	stored, err := svc.GetCategoryByID(category.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Apparel", stored.Name)

	stored.Name = "Apparel & Footwear"
	assert.NoError(t, svc.UpdateCategory(stored))
	stored, err = svc.GetCategoryByID(category.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Apparel & Footwear", stored.Name)

	assert.NoError(t, svc.DeleteCategory(category.ID))
	_, err = svc.GetCategoryByID(category.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = svc.DeleteCategory(category.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
}
