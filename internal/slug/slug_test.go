package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vuhoang-dev/store-backend/internal/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Basic T-Shirt",
			want:  "basic-t-shirt",
		},
		{
			name:  "vietnamese diacritics",
			title: "Sản phẩm mới",
			want:  "san-pham-moi",
		},
		{
			name:  "dj letter folds to d",
			title: "Áo khoác đen",
			want:  "ao-khoac-den",
		},
		{
			name:  "symbol runs collapse to one separator",
			title: "Hoodie  --  (Limited!!) Edition",
			want:  "hoodie-limited-edition",
		},
		{
			name:  "leading and trailing separators trimmed",
			title: "  ***Sale*** ",
			want:  "sale",
		},
		{
			name:  "empty input",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.title))
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	first := slug.Make("Quần jeans Slim-Fit")
	second := slug.Make("Quần jeans Slim-Fit")
	assert.Equal(t, first, second)
}

func TestMakeIdempotent(t *testing.T) {
	titles := []string{"Basic T-Shirt", "Sản phẩm mới", "Hoodie (Limited)", "áo-thun"}
	for _, title := range titles {
		once := slug.Make(title)
		assert.Equal(t, once, slug.Make(once), "slug of slug should be stable for %q", title)
	}
}
