package query

import (
	"math"
	"testing"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Cat   string
	Name  string
	Views int
}

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_Bounds(t *testing.T) {
	for _, tc := range []struct {
		total, page, limit int
		wantLen, wantPages int
	}{
		{total: 0, page: 1, limit: 10, wantLen: 0, wantPages: 0},
		{total: 25, page: 1, limit: 10, wantLen: 10, wantPages: 3},
		{total: 25, page: 3, limit: 10, wantLen: 5, wantPages: 3},
		{total: 25, page: 4, limit: 10, wantLen: 0, wantPages: 3},
		{total: 7, page: 1, limit: 1, wantLen: 1, wantPages: 7},
		{total: 10, page: 1, limit: 10, wantLen: 10, wantPages: 1},
		{total: 11, page: 2, limit: 10, wantLen: 1, wantPages: 2},
	} {
		out, meta := Paginate(items(tc.total), Page{Page: tc.page, Limit: tc.limit})
		require.Len(t, out, tc.wantLen, "%+v", tc)
		require.LessOrEqual(t, len(out), tc.limit)
		require.Equal(t, tc.wantPages, meta.TotalPages, "%+v", tc)
		require.Equal(t, tc.total, meta.Total)
		require.NotNil(t, out)
	}
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	p, err := ParsePage("100000000000000000", "100", 10)
	require.NoError(t, err)

	out, meta := Paginate([]int{1, 2, 3}, p)
	require.NotNil(t, out)
	require.Empty(t, out)
	require.Equal(t, 1, meta.TotalPages)
	require.Equal(t, 3, meta.Total)

	out, _ = Paginate(items(5), Page{Page: math.MaxInt, Limit: 2})
	require.Empty(t, out)
}

func TestPaginate_Window(t *testing.T) {
	out, _ := Paginate(items(25), Page{Page: 2, Limit: 10})
	require.Equal(t, 10, out[0])
	require.Equal(t, 19, out[9])
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage("", "", 0)
	require.NoError(t, err)
	require.Equal(t, Page{Page: 1, Limit: 10}, p)

	p, err = ParsePage("3", "5", 10)
	require.NoError(t, err)
	require.Equal(t, Page{Page: 3, Limit: 5}, p)

	p, err = ParsePage("1", "1000", 10)
	require.NoError(t, err)
	require.Equal(t, MaxLimit, p.Limit)

	for _, bad := range [][2]string{{"0", "10"}, {"-1", "10"}, {"1", "0"}, {"1", "-5"}, {"x", "10"}, {"1", "ten"}} {
		_, err := ParsePage(bad[0], bad[1], 10)
		require.Error(t, err, "%v", bad)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestFilter_EqualsAndContains(t *testing.T) {
	all := []item{
		{ID: "1", Cat: "a", Name: "Cấp Căn cước"},
		{ID: "2", Cat: "b", Name: "Đăng ký khai sinh"},
		{ID: "3", Cat: "a", Name: "Đăng ký kết hôn"},
	}
	cat := func(i item) string { return i.Cat }
	name := func(i item) string { return i.Name }

	got := Filter(all, Equals("a", cat))
	require.Len(t, got, 2)

	got = Filter(all, Equals("a", cat), Contains("ĐĂNG KÝ", name))
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)

	got = Filter(all, Equals("", cat), Contains("", name))
	require.Len(t, got, 3)

	got = Filter(all, Contains("zzz", name))
	require.NotNil(t, got)
	require.Len(t, got, 0)
}

func TestSubstring_KeepsSpaces(t *testing.T) {
	all := []item{{ID: "1", Name: "Đăng ký tạm trú"}, {ID: "2", Name: "Tạm vắng"}}
	name := func(i item) string { return i.Name }

	require.Len(t, Filter(all, Substring(" tạm", name)), 1)
	require.Len(t, Filter(all, Contains(" tạm", name)), 2)
	require.Len(t, Filter(all, Substring("", name)), 2)
}

func TestTopBy_DoesNotReorderInput(t *testing.T) {
	all := []item{{ID: "1", Views: 5}, {ID: "2", Views: 50}, {ID: "3", Views: 50}, {ID: "4", Views: 1}}
	top := TopBy(all, 3, func(i item) int { return i.Views })
	require.Equal(t, []string{"2", "3", "1"}, []string{top[0].ID, top[1].ID, top[2].ID})
	require.Equal(t, "1", all[0].ID)
}

func TestHead(t *testing.T) {
	require.Len(t, Head(items(3), 10), 3)
	require.Len(t, Head(items(3), 2), 2)
	require.Len(t, Head(items(3), -1), 0)
}
