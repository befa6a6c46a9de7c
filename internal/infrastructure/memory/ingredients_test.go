package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/menuplanner/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIngredients(t *testing.T, s *IngredientStore, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, s.Create(context.Background(), &domain.Ingredient{Name: name, Nutrients: domain.NutrientsFromMacros(1, 1, 1)}))
	}
}

func TestIngredientStore_CreateAssignsIDs(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()

	egg := &domain.Ingredient{Name: "Egg", Nutrients: domain.NutrientsFromMacros(13, 11, 1)}
	milk := &domain.Ingredient{Name: "Milk", Nutrients: domain.NutrientsFromMacros(3.4, 2.5, 4.8)}
	require.NoError(t, s.Create(ctx, egg))
	require.NoError(t, s.Create(ctx, milk))

	assert.Equal(t, int64(1), egg.ID)
	assert.Equal(t, int64(2), milk.ID)
}

func TestIngredientStore_DuplicateNameIsCaseInsensitive(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()
	seedIngredients(t, s, "Egg")

	err := s.Create(ctx, &domain.Ingredient{Name: "EGG"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Egg", all[0].Name, "stored spelling is kept")
}

func TestIngredientStore_GetByName(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s, "Olive Oil")

	got, err := s.GetByName(context.Background(), "olive oil")
	require.NoError(t, err)
	assert.Equal(t, "Olive Oil", got.Name)

	_, err = s.GetByName(context.Background(), "butter")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngredientStore_Update(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()
	seedIngredients(t, s, "Egg")

	updated := &domain.Ingredient{Name: "egg", Nutrients: domain.NutrientsFromMacros(12, 10, 1)}
	require.NoError(t, s.Update(ctx, updated))
	assert.Equal(t, "Egg", updated.Name)
	assert.Equal(t, int64(1), updated.ID)

	got, err := s.GetByName(ctx, "Egg")
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Nutrients.Protein)

	err = s.Update(ctx, &domain.Ingredient{Name: "Butter"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngredientStore_Delete(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()
	seedIngredients(t, s, "Egg")

	require.NoError(t, s.Delete(ctx, "EGG"))
	_, err := s.GetByName(ctx, "Egg")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "Egg"), domain.ErrNotFound)

	// The name is free again and gets a new ID
	egg := &domain.Ingredient{Name: "Egg"}
	require.NoError(t, s.Create(ctx, egg))
	assert.Equal(t, int64(2), egg.ID)
}

func TestIngredientStore_ListAndSearch(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()
	seedIngredients(t, s, "milk", "Egg", "Butter", "buttermilk", "Apple")

	tests := []struct {
		name string
		run  func() ([]domain.Ingredient, error)
		want []string
	}{
		{"list all", func() ([]domain.Ingredient, error) { return s.List(ctx, 0, 100) }, []string{"Apple", "Butter", "buttermilk", "Egg", "milk"}},
		{"list page", func() ([]domain.Ingredient, error) { return s.List(ctx, 1, 2) }, []string{"Butter", "buttermilk"}},
		{"list past end", func() ([]domain.Ingredient, error) { return s.List(ctx, 10, 2) }, []string{}},
		{"search substring", func() ([]domain.Ingredient, error) { return s.Search(ctx, "MILK", 0) }, []string{"buttermilk", "milk"}},
		{"search limited", func() ([]domain.Ingredient, error) { return s.Search(ctx, "butter", 1) }, []string{"Butter"}},
		{"search no match", func() ([]domain.Ingredient, error) { return s.Search(ctx, "zzz", 0) }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, ing := range got {
				names = append(names, ing.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestIngredientStore_ConcurrentCreateSameName(t *testing.T) {
	s := NewIngredientStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "egg"
			if i%2 == 0 {
				name = "EGG"
			}
			errs <- s.Create(ctx, &domain.Ingredient{Name: name})
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateName)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 0, 0))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 4, 10))
	assert.Equal(t, []int{}, paginate(items, 5, 1))
	assert.Equal(t, []int{1}, paginate(items, -1, 1))
	assert.Empty(t, paginate([]int(nil), 0, 3))
}
