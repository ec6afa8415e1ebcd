package services

import (
	"context"
	"mime/multipart"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/media"
)

type stubImages struct {
	saved   []string
	deleted []string
	err     error
}

func (s *stubImages) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	url := "/bucket/svc-" + strconv.Itoa(len(s.saved)) + ".webp"
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *stubImages) Delete(ctx context.Context, url string) {
	s.deleted = append(s.deleted, url)
}

func newCatalog(seed ...Service) (*Catalog, *InMemoryRepository, *stubImages) {
	repo := NewInMemoryRepository(seed)
	images := &stubImages{}
	return NewCatalog(repo, images, zap.NewNop()), repo, images
}

func TestCatalog_RoofingScenario(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCatalog(Service{ID: "seed", Title: "Obras y Proyectos", CreatedAt: time.Now().Add(-time.Hour)})

	before, err := c.List(ctx)
	require.NoError(t, err)

	created, err := c.Create(ctx, Form{Title: "Roofing"}, nil)
	require.NoError(t, err)

	after, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "Roofing", after[0].Title)
	assert.Nil(t, after[0].ImageURL)

	require.NoError(t, c.Delete(ctx, created.ID))
	final, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, final, len(before))
}

func TestCatalog_IconNormalization(t *testing.T) {
	c, _, _ := newCatalog()
	ctx := context.Background()

	s, err := c.Create(ctx, Form{Title: "Techos", IconName: "hardhat"}, nil)
	require.NoError(t, err)
	require.NotNil(t, s.IconName)
	assert.Equal(t, "HardHat", *s.IconName)

	s, err = c.Create(ctx, Form{Title: "Pintura", IconName: "Paintbrush"}, nil)
	require.NoError(t, err)
	assert.Nil(t, s.IconName)
	assert.Equal(t, DefaultIcon, s.Icon())
}

func TestCatalog_CreateInvalid(t *testing.T) {
	c, repo, images := newCatalog()

	_, err := c.Create(context.Background(), Form{Title: "   ", Tag: "x"}, &multipart.FileHeader{Size: 10})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, images.saved)
	all, _ := repo.List(context.Background())
	assert.Empty(t, all)
}

func TestCatalog_UpdateImageLifecycle(t *testing.T) {
	old := "/bucket/old.webp"
	c, _, images := newCatalog(Service{ID: "s1", Title: "A", ImageURL: &old})
	ctx := context.Background()

	s, err := c.Update(ctx, "s1", Form{Title: "B", Tag: "Ingeniería"}, &multipart.FileHeader{Size: 10})
	require.NoError(t, err)
	assert.NotEqual(t, old, *s.ImageURL)
	assert.Equal(t, []string{old}, images.deleted)

	images.err = media.ErrUploadFailed
	_, err = c.Update(ctx, "s1", Form{Title: "C"}, &multipart.FileHeader{Size: 10})
	assert.ErrorIs(t, err, media.ErrUploadFailed)

	stored, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "B", stored.Title, "failed upload must leave the row untouched")

	_, err = c.Update(ctx, "missing", Form{Title: "C"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_ListByTag(t *testing.T) {
	ing, esp := "Ingeniería", "Especializado"
	c, _, _ := newCatalog(
		Service{ID: "1", Title: "a", Tag: &ing},
		Service{ID: "2", Title: "b", Tag: &esp},
		Service{ID: "3", Title: "c"},
	)

	got, err := c.ListByTag(context.Background(), "ingeniería")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	all, err := c.ListByTag(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCatalog_DeleteUnknownIsNoop(t *testing.T) {
	c, _, images := newCatalog()
	assert.NoError(t, c.Delete(context.Background(), "nope"))
	assert.Empty(t, images.deleted)
}
