package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"github.com/dmitrijs2005/empdirectory/internal/queryir"
	"github.com/dmitrijs2005/empdirectory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCollection is an in-memory Collection.
type memCollection struct {
	docs      []queryir.Document
	countErr  error
	insertErr error
}

func (m *memCollection) Count(ctx context.Context) (int, error) {
	return len(m.docs), m.countErr
}

func (m *memCollection) InsertMany(ctx context.Context, docs []queryir.Document) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.docs = append(m.docs, docs...)
	return nil
}

func synthetic(n int) []models.Employee {
	offices := []string{"NY", "SF"}
	depts := []string{"Eng", "Sales"}
	out := make([]models.Employee, n)
	for i := range out {
		out[i] = models.Employee{
			ID:         int64(i + 1),
			FirstName:  fmt.Sprintf("First%03d", i+1),
			LastName:   fmt.Sprintf("Last%03d", (i*7)%n),
			Title:      "Staff",
			Office:     offices[i%2],
			Department: depts[(i/2)%2],
		}
	}
	return out
}

func TestSeedIfEmpty_Bound(t *testing.T) {
	tests := []struct {
		name    string
		dataset int
		want    int
	}{
		{"larger than limit", 250, 200},
		{"exactly limit", 200, 200},
		{"smaller than limit", 120, 120},
		{"empty dataset", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &memCollection{}
			s := NewSeeder(DefaultLimit, nil)

			n, err := s.SeedIfEmpty(context.Background(), c, synthetic(tt.dataset))
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Len(t, c.docs, tt.want)
		})
	}
}

func TestSeedIfEmpty_Idempotent(t *testing.T) {
	c := &memCollection{}
	s := NewSeeder(0, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SeedIfEmpty(ctx, c, synthetic(250))
		require.NoError(t, err)
	}

	assert.Len(t, c.docs, 200)
	assert.EqualValues(t, 3, s.Runs())
}

func TestSeedIfEmpty_SeedsFirstRecordsInOrder(t *testing.T) {
	c := &memCollection{}
	_, err := NewSeeder(3, nil).SeedIfEmpty(context.Background(), c, synthetic(10))
	require.NoError(t, err)

	require.Len(t, c.docs, 3)
	for i, d := range c.docs {
		assert.Equal(t, int64(i+1), d[models.FieldID])
		assert.Len(t, d, 6, "every seeded document carries all six fields")
	}
}

func TestNewSeeder_ClampsLimit(t *testing.T) {
	for _, limit := range []int{-1, 0, 201, 500} {
		assert.Equal(t, DefaultLimit, NewSeeder(limit, nil).Limit(), "limit %d", limit)
	}
	assert.Equal(t, 3, NewSeeder(3, nil).Limit())

	c := &memCollection{}
	n, err := NewSeeder(500, nil).SeedIfEmpty(context.Background(), c, synthetic(250))
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, n)
	assert.Len(t, c.docs, DefaultLimit)
}

func TestSeedIfEmpty_NonEmptyIsNoop(t *testing.T) {
	c := &memCollection{docs: []queryir.Document{{"id": 99}}}

	n, err := NewSeeder(0, nil).SeedIfEmpty(context.Background(), c, synthetic(5))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, c.docs, 1)
}

func TestSeedIfEmpty_InvalidRecordsWriteNothing(t *testing.T) {
	ds := synthetic(5)
	ds[3].Office = ""
	c := &memCollection{}

	_, err := NewSeeder(0, nil).SeedIfEmpty(context.Background(), c, ds)
	require.ErrorIs(t, err, common.ErrInvalidRecord)
	assert.Empty(t, c.docs)

	ds = synthetic(5)
	ds[0].Office = models.AnyValue
	_, err = NewSeeder(0, nil).SeedIfEmpty(context.Background(), c, ds)
	require.ErrorIs(t, err, common.ErrInvalidRecord)
	assert.Empty(t, c.docs)

	ds = synthetic(5)
	ds[4].ID = ds[0].ID
	_, err = NewSeeder(0, nil).SeedIfEmpty(context.Background(), c, ds)
	require.ErrorIs(t, err, common.ErrInvalidRecord)
	assert.Empty(t, c.docs)
}

func TestSeedIfEmpty_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewSeeder(0, nil).SeedIfEmpty(context.Background(), &memCollection{countErr: boom}, synthetic(2))
	require.ErrorIs(t, err, boom)

	_, err = NewSeeder(0, nil).SeedIfEmpty(context.Background(), &memCollection{insertErr: boom}, synthetic(2))
	require.ErrorIs(t, err, boom)
}

func TestSeedIfEmpty_EncryptedStoreAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := NewSeeder(0, nil)

	for i := 0; i < 2; i++ {
		st, err := storage.Open(ctx, storage.Options{Dir: dir, Name: "employees", EncryptionKey: "k"})
		require.NoError(t, err)

		_, err = s.SeedIfEmpty(ctx, st, synthetic(250))
		require.NoError(t, err)

		n, err := st.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 200, n)
		require.NoError(t, st.Close())
	}
}

func TestDefaultDataset(t *testing.T) {
	ds, err := DefaultDataset()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ds), DefaultLimit)

	seen := map[int64]bool{}
	for _, e := range ds {
		require.NoError(t, e.Validate())
		require.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}

func TestLoadDataset_Formats(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "staff.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"id":1,"firstName":"Ada","lastName":"Lovelace","title":"Analyst","office":"London","department":"Research"}]`), 0o600))

	yamlPath := filepath.Join(dir, "staff.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- id: 1
  firstName: Ada
  lastName: Lovelace
  title: Analyst
  office: London
  department: Research
`), 0o600))

	want := []models.Employee{{ID: 1, FirstName: "Ada", LastName: "Lovelace", Title: "Analyst", Office: "London", Department: "Research"}}
	for _, p := range []string{jsonPath, yamlPath} {
		got, err := LoadDataset(p)
		require.NoError(t, err, p)
		assert.Equal(t, want, got, p)
	}

	for name, body := range map[string]string{
		"extra.json": `[{"id":1,"firstName":"Ada","lastName":"Lovelace","title":"Analyst","office":"London","department":"Research","salary":1}]`,
		"extra.yml":  "- id: 1\n  firstName: Ada\n  lastName: Lovelace\n  title: Analyst\n  office: London\n  department: Research\n  salary: 1\n",
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		_, err := LoadDataset(p)
		require.Error(t, err, "unknown field must be rejected in %s", name)
	}

	_, err := LoadDataset(filepath.Join(dir, "staff.csv"))
	require.Error(t, err)

	txt := filepath.Join(dir, "staff.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))
	_, err = LoadDataset(txt)
	require.Error(t, err)
}
