package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/codec"
	"salesdesk/internal/domain"
	"salesdesk/internal/notify"
	"salesdesk/internal/validation"
)

func TestImportRoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := domain.NewDepartment("Books")
	require.NoError(t, f.departments.SaveOrUpdate(ctx, existing))

	sellers := NewListView[*domain.Seller](f.sellers, f.registry, notify.TopicSeller, nil)
	sellers.Attach(notify.TopicSeller)
	defer sellers.Close()

	roster := &codec.Roster{Departments: []codec.DepartmentRecord{
		{Name: " Books ", Sellers: []codec.SellerRecord{
			{Name: "Ana", Email: "ana@shop.io", BaseSalary: "1000.00"},
			{Name: "", Email: "broken@shop.io", BaseSalary: "1"},
		}},
		{Name: "Music", Sellers: []codec.SellerRecord{
			{Name: "Leo", Email: "leo@shop.io", BirthDate: "02/03/1999", BaseSalary: "1200"},
		}},
		{Name: "Music\t"},
		{Name: ""},
	}}

	im := NewImporter(f.departments, f.sellers, f.registry, validation.DefaultLimits(), nil)
	result, err := im.Import(ctx, roster)
	require.NoError(t, err)

	assert.Equal(t, 1, result.DepartmentsCreated)
	assert.Equal(t, 2, result.SellersCreated)
	assert.Len(t, result.Rejected, 2)

	deps, err := f.departments.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, *existing.ID, *deps[0].ID, "existing department reused by trimmed name")
	assert.Equal(t, "Music", deps[1].Name)

	items := sellers.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Ana", items[0].Name)
	assert.Equal(t, "Books", items[0].Department.Name)
	assert.Equal(t, "Music", items[1].Department.Name)
}
