package catalog

import (
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

func prod(id, category, name string, price int64) models.Product {
	return models.Product{ID: id, CategoryName: category, Name: name, Price: price}
}

func idsOf(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSortByCategoryListedFirst(t *testing.T) {
	input := []models.Product{
		prod("z1", "Zeta", "z", 1),
		prod("b1", "B", "b", 5),
		prod("a1", "A", "a", 30),
		prod("c1", "Cê", "c", 2),
		prod("a2", "A", "a", 10),
		prod("b2", "B", "b", 1),
		prod("a3", "A", "a", 20),
	}
	out := SortByCategory(input, []string{"A", "B"}, SortByPrice)
	assert.DeepEqual(t, idsOf(out), []string{"a2", "a3", "a1", "b2", "b1", "c1", "z1"})

	// input slice is left as given
	assert.Equal(t, input[0].ID, "z1")
}

func TestSortByCategoryPriceWithinCategory(t *testing.T) {
	input := []models.Product{prod("x", "A", "x", 30), prod("y", "A", "y", 10), prod("z", "A", "z", 20)}
	out := SortByCategory(input, []string{"A", "B"}, SortByPrice)

	prices := make([]int64, 0, len(out))
	for _, p := range out {
		prices = append(prices, p.Price)
	}
	assert.DeepEqual(t, prices, []int64{10, 20, 30})
}

func TestSortByCategoryIsStable(t *testing.T) {
	input := []models.Product{
		prod("1", "A", "same", 10),
		prod("2", "Other", "n", 0),
		prod("3", "A", "same", 10),
		prod("4", "A", "same", 10),
	}
	for _, key := range []SecondaryKey{SortNone, SortByPrice, SortByName} {
		out := SortByCategory(input, []string{"A"}, key)
		assert.DeepEqual(t, idsOf(out), []string{"1", "3", "4", "2"})
	}
}

func TestSortByCategoryByName(t *testing.T) {
	input := []models.Product{
		prod("3", "Gạo nở", "Đài Thơm", 0),
		prod("1", "Gạo nở", "504", 0),
		prod("2", "Gạo nở", "bông sen", 0),
		prod("4", "Gạo nở", "Ấn Độ", 0),
	}
	out := SortByCategory(input, []string{"Gạo nở"}, SortByName)
	assert.DeepEqual(t, idsOf(out), []string{"1", "4", "2", "3"})
}

func TestSortByCategoryUnlistedByCollatedName(t *testing.T) {
	input := []models.Product{prod("n", "Nếp", "n", 0), prod("l", "Lúa", "l", 0), prod("t", "Tấm", "t", 0)}
	out := SortByCategory(input, nil, SortNone)
	assert.DeepEqual(t, idsOf(out), []string{"l", "n", "t"})
}

func TestParseSecondaryKey(t *testing.T) {
	for in, want := range map[string]SecondaryKey{"": SortNone, "category": SortNone, "price": SortByPrice, "name": SortByName} {
		got, err := ParseSecondaryKey(in)
		assert.NilError(t, err)
		assert.Equal(t, got, want)
	}
	_, err := ParseSecondaryKey("stock")
	assert.ErrorContains(t, err, "stock")
}

func TestGroupByCategoryOrderAndRoundTrip(t *testing.T) {
	input := []models.Product{
		prod("1", "Tấm", "tấm b", 0),
		prod("2", "Gạo dẻo", "st25", 0),
		prod("3", "Khác", "x", 0),
		prod("4", "Gạo nở", "504", 0),
		prod("5", "Tấm", "tấm a", 0),
		prod("6", "Gạo nở", "4900", 0),
	}
	groups := GroupByCategory(input, []string{"Gạo nở", "Gạo dẻo", "Nếp"})

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Category)
	}
	assert.DeepEqual(t, names, []string{"Gạo nở", "Gạo dẻo", "Tấm", "Khác"})
	assert.DeepEqual(t, idsOf(groups[0].Products), []string{"6", "4"})
	assert.DeepEqual(t, idsOf(groups[2].Products), []string{"5", "1"})

	flat := Flatten(groups)
	assert.Assert(t, is.Len(flat, len(input)))
	seen := make(map[string]int)
	for _, p := range flat {
		seen[p.ID]++
	}
	for _, p := range input {
		assert.Equal(t, seen[p.ID], 1, p.ID)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Assert(t, is.Len(GroupByCategory(nil, []string{"A"}), 0))
}

func TestVisibleIDs(t *testing.T) {
	products := []models.Product{
		{ID: "1", CategoryName: "Gạo nở", CategoryID: "10"},
		{ID: "2", CategoryName: "Nếp", CategoryID: "20"},
		{ID: "3", CategoryName: "Tấm", CategoryID: "30"},
	}
	assert.DeepEqual(t, VisibleIDs(products, nil), []string{"1", "2", "3"})
	assert.DeepEqual(t, VisibleIDs(products, []string{"Nếp", "30"}), []string{"2", "3"})
	assert.DeepEqual(t, VisibleIDs(products, []string{"missing"}), []string{})
}
