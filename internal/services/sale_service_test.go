package services

import (
	"testing"
	"time"

	"hotel_crm_backend/internal/models"
	"hotel_crm_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products  map[int64]*models.Product
	purchases []*models.Purchase
	nextID    int64
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[int64]*models.Product{}, nextID: 1}
	for _, product := range products {
		repo.products[product.ID] = product
		if product.ID >= repo.nextID {
			repo.nextID = product.ID + 1
		}
	}
	return repo
}

func (f *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	for _, existing := range f.products {
		if existing.Code == product.Code {
			return 0, repositories.ErrDuplicateKey
		}
	}
	product.ID = f.nextID
	f.nextID++
	f.products[product.ID] = product
	return product.ID, nil
}

func (f *fakeProductRepo) GetProductByID(id int64) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) GetProductByCode(code string) (*models.Product, error) {
	for _, product := range f.products {
		if product.Code == code {
			copied := *product
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProductRepo) GetProducts(models.ProductFilters) ([]models.Product, int, error) {
	products := make([]models.Product, 0, len(f.products))
	for _, product := range f.products {
		products = append(products, *product)
	}
	return products, len(products), nil
}

func (f *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	existing, ok := f.products[product.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	product.Stock = existing.Stock
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DecrementStock(_ repositories.SQLExecutor, productID int64, quantity int) (int64, error) {
	product, ok := f.products[productID]
	if !ok || product.Stock < quantity {
		return 0, nil
	}
	product.Stock -= quantity
	return 1, nil
}

func (f *fakeProductRepo) IncrementStock(_ repositories.SQLExecutor, productID int64, quantity int) (int, error) {
	product, ok := f.products[productID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	product.Stock += quantity
	return product.Stock, nil
}

func (f *fakeProductRepo) CreatePurchase(_ repositories.SQLExecutor, purchase *models.Purchase) (int64, error) {
	purchase.ID = int64(len(f.purchases) + 1)
	f.purchases = append(f.purchases, purchase)
	return purchase.ID, nil
}

func (f *fakeProductRepo) GetPurchases(*int64, int, int) ([]models.Purchase, int, error) {
	purchases := make([]models.Purchase, 0, len(f.purchases))
	for _, purchase := range f.purchases {
		purchases = append(purchases, *purchase)
	}
	return purchases, len(purchases), nil
}

type fakeSaleRepo struct {
	sales  map[int64]*models.Sale
	items  map[int64][]models.SaleLineItem
	nextID int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[int64]*models.Sale{}, items: map[int64][]models.SaleLineItem{}, nextID: 1}
}

func (f *fakeSaleRepo) CreateSale(_ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
	sale.ID = f.nextID
	f.nextID++
	f.sales[sale.ID] = sale
	return sale.ID, nil
}

func (f *fakeSaleRepo) CreateSaleItem(_ repositories.SQLExecutor, item *models.SaleLineItem) (int64, error) {
	item.ID = int64(len(f.items[item.SaleID]) + 1)
	f.items[item.SaleID] = append(f.items[item.SaleID], *item)
	return item.ID, nil
}

func (f *fakeSaleRepo) GetSaleByID(saleID int64) (*models.Sale, error) {
	sale, ok := f.sales[saleID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *sale
	copied.Items = f.items[saleID]
	return &copied, nil
}

func (f *fakeSaleRepo) GetSaleItemsBySaleID(saleID int64) ([]models.SaleLineItem, error) {
	return f.items[saleID], nil
}

func (f *fakeSaleRepo) GetSales(models.SaleFilters) ([]models.Sale, int, error) {
	sales := make([]models.Sale, 0, len(f.sales))
	for _, sale := range f.sales {
		sales = append(sales, *sale)
	}
	return sales, len(sales), nil
}

func (f *fakeSaleRepo) DeleteSale(_ repositories.SQLExecutor, saleID int64) error {
	if _, ok := f.sales[saleID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.sales, saleID)
	return nil
}

func (f *fakeSaleRepo) DeleteSaleItemsBySaleID(_ repositories.SQLExecutor, saleID int64) (int64, error) {
	count := int64(len(f.items[saleID]))
	delete(f.items, saleID)
	return count, nil
}

func (f *fakeSaleRepo) SummaryBetween(start, end time.Time) (int, decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range f.sales {
		total = total.Add(sale.Total)
	}
	return len(f.sales), total, nil
}

// User 9 is on the staff directory as employee 31; user 7 has an account but
// no employee record.
func newSaleFixture(t *testing.T) (SaleService, *fakeProductRepo, *fakeSaleRepo) {
	t.Helper()
	products := newFakeProductRepo(&models.Product{
		ID:    1,
		Code:  "SKU1",
		Name:  "Soap",
		Price: decimal.NewFromInt(10),
		Stock: 5,
	})
	sales := newFakeSaleRepo()
	employees := newFakeEmployeeRepo(&models.Employee{ID: 31, UserID: int64Ptr(9), FullName: "Aigerim S."})
	svc := NewSaleService(sales, products, employees, newTestDB(), fixedNow)
	return svc, products, sales
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	svc, products, _ := newSaleFixture(t)

	sale, err := svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, sale.Tax.IsZero())
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(30)))
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)))

	product, err := products.GetProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	svc, products, _ := newSaleFixture(t)

	_, err := svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	product, err := products.GetProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock, "failed sale must not change stock")
}

func TestCreateSaleWithTax(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	sale, err := svc.CreateSale(9, CreateSaleRequest{
		Items:   []SaleItemRequest{{ProductID: 1, Quantity: 2}},
		TaxRate: "0.16",
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, sale.Tax.Equal(decimal.RequireFromString("3.2")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("23.2")))
}

func TestCreateSaleAttributesStaff(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	sale, err := svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.EmployeeID)
	assert.Equal(t, int64(31), *sale.EmployeeID)
	assert.True(t, sale.SoldAt.Equal(fixedNow()))

	// An account without an employee record still sells, unattributed.
	sale, err = svc.CreateSale(7, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Nil(t, sale.EmployeeID)
}

func TestCreateSaleValidation(t *testing.T) {
	svc, _, _ := newSaleFixture(t)

	_, err := svc.CreateSale(9, CreateSaleRequest{})
	assert.ErrorIs(t, err, ErrEmptySale)

	_, err = svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: -2}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	svc, products, _ := newSaleFixture(t)

	sale, err := svc.CreateSale(9, CreateSaleRequest{
		Items: []SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSale(sale.ID))

	product, err := products.GetProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	assert.ErrorIs(t, svc.DeleteSale(sale.ID), ErrSaleNotFound)
}
