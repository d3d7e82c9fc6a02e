package pagecache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stefifm/dashboard/internal/pagecache"
)

func TestCache_Revalidate(t *testing.T) {
	ctx := context.Background()
	c := pagecache.New(pagecache.Config{Enabled: true})

	c.Set(ctx, "/dashboard/invoices", "", "all")
	c.Set(ctx, "/dashboard/invoices", "amy", "filtered")
	c.Set(ctx, "/dashboard/customers", "", "customers")
	c.Set(ctx, "/dashboard/invoices-archive", "", "archive")

	c.Revalidate(ctx, "/dashboard/invoices")

	_, ok := c.Get(ctx, "/dashboard/invoices", "")
	assert.False(t, ok)

	_, ok = c.Get(ctx, "/dashboard/invoices", "amy")
	assert.False(t, ok)

	got, ok := c.Get(ctx, "/dashboard/customers", "")
	assert.True(t, ok)
	assert.Equal(t, "customers", got)

	_, ok = c.Get(ctx, "/dashboard/invoices-archive", "")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := pagecache.New(pagecache.Config{Enabled: false})

	c.Set(ctx, "/dashboard/invoices", "", "all")

	_, ok := c.Get(ctx, "/dashboard/invoices", "")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
