package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortField(t *testing.T) {
	t.Run("AcceptsWhitelistedFields", func(t *testing.T) {
		cases := map[string]CertificateSortField{
			"name":       SortByName,
			"date":       SortByCreatedAt,
			"created_at": SortByCreatedAt,
			"createDate": SortByCreatedAt,
			"price":      SortByPrice,
		}
		for input, want := range cases {
			field, err := ParseSortField(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, want, field)
			assert.True(t, field.Valid())
		}
	})

	t.Run("RejectsUnknownFields", func(t *testing.T) {
		for _, input := range []string{"id", "duration", "NAME", "price; DROP TABLE certificates", "created_at--"} {
			_, err := ParseSortField(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortOrder("DESC"))

	// Only the exact literal sorts descending
	for _, input := range []string{"desc", "Desc", "DESCENDING", "", "ASC", "asc"} {
		assert.Equal(t, SortAsc, ParseSortOrder(input), "input %q", input)
	}
}

func TestNewCertificateSearchCriteria(t *testing.T) {
	t.Run("BlankInputsMeanNoConstraints", func(t *testing.T) {
		criteria, err := NewCertificateSearchCriteria("", "  ", "", []string{"", "  "}, "", "")
		require.NoError(t, err)
		assert.False(t, criteria.HasPartOfName())
		assert.False(t, criteria.HasPartOfDescription())
		assert.False(t, criteria.HasTagName())
		assert.False(t, criteria.HasTagNames())
		assert.False(t, criteria.HasSort())
		assert.Equal(t, SortAsc, criteria.SortOrder)
	})

	t.Run("PresentFieldsAreKept", func(t *testing.T) {
		criteria, err := NewCertificateSearchCriteria("spa", "relax", "health", []string{"health", "beauty"}, "price", "DESC")
		require.NoError(t, err)
		assert.True(t, criteria.HasPartOfName())
		assert.Equal(t, "spa", *criteria.PartOfName)
		assert.True(t, criteria.HasPartOfDescription())
		assert.True(t, criteria.HasTagName())
		assert.Equal(t, []string{"health", "beauty"}, criteria.TagNames)
		require.True(t, criteria.HasSort())
		assert.Equal(t, SortByPrice, *criteria.SortBy)
		assert.Equal(t, SortDesc, criteria.SortOrder)
	})

	t.Run("UnknownSortFieldFails", func(t *testing.T) {
		_, err := NewCertificateSearchCriteria("", "", "", nil, "duration", "DESC")
		assert.Error(t, err)
	})

	t.Run("BlankTagEntriesAreDropped", func(t *testing.T) {
		criteria, err := NewCertificateSearchCriteria("", "", "", []string{" health ", "", "beauty"}, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"health", "beauty"}, criteria.TagNames)
	})
}

func TestNewPageRequest(t *testing.T) {
	t.Run("RejectsOutOfRangeValues", func(t *testing.T) {
		for _, window := range [][2]int{{0, 10}, {-1, 10}, {1, 0}, {1, -5}, {1, MaxPageSize + 1}} {
			_, err := NewPageRequest(window[0], window[1])
			assert.Error(t, err, "page=%d pageSize=%d", window[0], window[1])
		}
	})

	t.Run("OffsetAndLimit", func(t *testing.T) {
		page, err := NewPageRequest(1, 20)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Offset())
		assert.Equal(t, 20, page.Limit())

		page, err = NewPageRequest(3, 25)
		require.NoError(t, err)
		assert.Equal(t, 50, page.Offset())
		assert.Equal(t, 25, page.Limit())
	})
}
