package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/domain"
)

func TestDepartmentInsertAndFind(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	d := insertDepartment(t, p, "Electronics")

	got, err := p.Departments().FindByID(ctx, *d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *d.ID, *got.ID)
	assert.Equal(t, "Electronics", got.Name)
}

func TestDepartmentInsertRejectsSavedEntity(t *testing.T) {
	p := newTestProvider(t)
	d := insertDepartment(t, p, "Books")

	err := p.Departments().Insert(context.Background(), d)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
}

func TestDepartmentIDsAreDistinct(t *testing.T) {
	p := newTestProvider(t)

	a := insertDepartment(t, p, "A")
	b := insertDepartment(t, p, "B")
	assert.NotEqual(t, *a.ID, *b.ID)
}

func TestDepartmentUpdate(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	d := insertDepartment(t, p, "Computers")
	d.Name = "Computing"
	require.NoError(t, p.Departments().Update(ctx, d))

	got, err := p.Departments().FindByID(ctx, *d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computing", got.Name)
}

func TestDepartmentUpdateMissingRowIsNotAnError(t *testing.T) {
	p := newTestProvider(t)

	d := domain.NewDepartment("Ghost")
	d.SetID(404)
	assert.NoError(t, p.Departments().Update(context.Background(), d))
}

func TestDepartmentUpdateRequiresID(t *testing.T) {
	p := newTestProvider(t)

	err := p.Departments().Update(context.Background(), domain.NewDepartment("x"))
	assert.True(t, domain.IsPersistence(err))
}

func TestDepartmentFindByIDAbsent(t *testing.T) {
	p := newTestProvider(t)

	got, err := p.Departments().FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDepartmentFindAllOrderedByName(t *testing.T) {
	p := newTestProvider(t)

	for _, name := range []string{"Fashion", "Books", "Electronics"} {
		insertDepartment(t, p, name)
	}

	all, err := p.Departments().FindAll(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, d := range all {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Books", "Electronics", "Fashion"}, names)
}

func TestDepartmentFindAllEmpty(t *testing.T) {
	p := newTestProvider(t)

	all, err := p.Departments().FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestDepartmentDelete(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	d := insertDepartment(t, p, "Temp")
	require.NoError(t, p.Departments().DeleteByID(ctx, *d.ID))

	got, err := p.Departments().FindByID(ctx, *d.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDepartmentDeleteMissing(t *testing.T) {
	p := newTestProvider(t)

	err := p.Departments().DeleteByID(context.Background(), 77)
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.False(t, domain.IsIntegrity(err))
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestDepartmentDeleteReferencedBySeller(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	d := insertDepartment(t, p, "Sales")
	insertSeller(t, p, "bob", d)

	err := p.Departments().DeleteByID(ctx, *d.ID)
	require.Error(t, err)
	assert.True(t, domain.IsIntegrity(err))
	assert.False(t, domain.IsPersistence(err))

	still, err := p.Departments().FindByID(ctx, *d.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, "Sales", still.Name)
}
