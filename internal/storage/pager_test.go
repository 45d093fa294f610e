package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPager(t *testing.T, content []byte) (*Pager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pager.db")
	if content != nil {
		require.NoError(t, os.WriteFile(path, content, FileMode0644))
	}

	p, err := OpenPager(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.file.Close() })

	return p, path
}

func TestOpenPager_CreatesFile(t *testing.T) {
	p, path := newTestPager(t, nil)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
	assert.Equal(t, int64(0), p.FileLength())
	assert.Equal(t, 0, p.ResidentPages())
}

func TestOpenPager_DoesNotTruncate(t *testing.T) {
	content := []byte("existing bytes")
	p, path := newTestPager(t, content)

	assert.Equal(t, int64(len(content)), p.FileLength())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestOpenPager_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "pager.db")

	_, err := OpenPager(path)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStorageIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestGetPage_EmptyFileIsZeroPage(t *testing.T) {
	p, _ := newTestPager(t, nil)

	page, err := p.GetPage(3)
	require.NoError(t, err)
	require.Len(t, page, PageSize)
	assert.Equal(t, make([]byte, PageSize), page)
	assert.True(t, p.IsResident(3))
	assert.False(t, p.IsResident(0))
	assert.Equal(t, 1, p.ResidentPages())
}

func TestGetPage_PartialLastPage(t *testing.T) {
	content := make([]byte, PageSize+10)
	for i := range content {
		content[i] = byte(i%250) + 1
	}
	p, _ := newTestPager(t, content)

	first, err := p.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, content[:PageSize], first)

	second, err := p.GetPage(1)
	require.NoError(t, err)
	assert.Equal(t, content[PageSize:], second[:10])
	assert.Equal(t, make([]byte, PageSize-10), second[10:])

	// beyond the file: nothing to read
	third, err := p.GetPage(2)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, PageSize), third)
}

func TestGetPage_CacheHitSkipsDisk(t *testing.T) {
	content := make([]byte, PageSize)
	content[0] = 0xAA
	p, path := newTestPager(t, content)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	page[1] = 0xBB

	// A change on disk is not observed once the page is resident.
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize), FileMode0644))

	again, err := p.GetPage(0)
	require.NoError(t, err)
	assert.Same(t, &page[0], &again[0])
	assert.Equal(t, byte(0xAA), again[0])
	assert.Equal(t, byte(0xBB), again[1])
}

func TestGetPage_OutOfBoundsPanics(t *testing.T) {
	p, _ := newTestPager(t, nil)

	require.PanicsWithError(t,
		fmt.Sprintf("%v: %d (max %d)", ErrPageOutOfBounds, TableMaxPages, TableMaxPages),
		func() { _, _ = p.GetPage(TableMaxPages) },
	)
	require.Panics(t, func() { _, _ = p.GetPage(-1) })
}

func TestFlushPage_NeverLoadedPanics(t *testing.T) {
	p, _ := newTestPager(t, nil)

	require.PanicsWithError(t,
		fmt.Sprintf("%v: %d", ErrPageNotLoaded, 0),
		func() { _ = p.FlushPage(0, PageSize) },
	)
}

func TestFlushPage_InvalidSizePanics(t *testing.T) {
	p, _ := newTestPager(t, nil)
	_, err := p.GetPage(0)
	require.NoError(t, err)

	require.Panics(t, func() { _ = p.FlushPage(0, PageSize+1) })
	require.Panics(t, func() { _ = p.FlushPage(0, -1) })
}

func TestFlushPage_WritesPrefixAtOffset(t *testing.T) {
	p, path := newTestPager(t, nil)

	page0, err := p.GetPage(0)
	require.NoError(t, err)
	copy(page0, "page zero")

	page1, err := p.GetPage(1)
	require.NoError(t, err)
	copy(page1, "page one")

	require.NoError(t, p.FlushPage(0, PageSize))
	require.NoError(t, p.FlushPage(1, 8))
	require.NoError(t, p.Sync())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, PageSize+8)
	assert.Equal(t, []byte("page zero"), got[:9])
	assert.Equal(t, []byte("page one"), got[PageSize:])
}

func TestPager_RoundTripAcrossSessions(t *testing.T) {
	p, path := newTestPager(t, nil)

	page, err := p.GetPage(2)
	require.NoError(t, err)
	copy(page, "third page")
	require.NoError(t, p.FlushPage(2, 10))
	require.NoError(t, p.Close())

	p2, err := OpenPager(path)
	require.NoError(t, err)
	defer func() { _ = p2.Close() }()

	assert.Equal(t, int64(2*PageSize+10), p2.FileLength())

	// the hole before page 2 reads back as zeros
	hole, err := p2.GetPage(0)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, PageSize), hole)

	page, err = p2.GetPage(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("third page"), page[:10])
}
