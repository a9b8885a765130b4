package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	supabasego "github.com/supabase-community/supabase-go"

	"stallion/errors"
)

// RequestTimeout bounds every PostgREST call that reaches the helpers below.
const RequestTimeout = 30 * time.Second

const schema = "public"

// NewClient builds a supabase-go client authenticated with key. The sdk only rejects an empty url,
// anything that is not an absolute http url is refused here.
func NewClient(endpoint, key string) (*supabasego.Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidEndpoint, endpoint)
	}
	client, err := supabasego.NewClient(endpoint, key, &supabasego.ClientOptions{Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidEndpoint, err)
	}
	return client, nil
}

// Fetch runs a select built with From and decodes the returned rows into dest.
func Fetch(ctx context.Context, q *postgrest.FilterBuilder, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	if _, err := q.ExecuteTo(dest); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRequestFailed, err)
	}
	return nil
}

// Exec runs a write and discards the response body.
func Exec(ctx context.Context, q *postgrest.FilterBuilder) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	if _, _, err := q.Execute(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRequestFailed, err)
	}
	return nil
}

// Count runs a head select asking for an exact count and returns the total of Content-Range.
func Count(ctx context.Context, client *supabasego.Client, table, column string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	_, total, err := client.From(table).Select(column, "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %w", errors.ErrRequestFailed, table, err)
	}
	return int(total), nil
}

// Between renders an inclusive range on one column. The query builder keys its filters by column,
// so a Gte followed by a Lte on the same column would keep only the last one.
func Between(q *postgrest.FilterBuilder, column, from, to string) *postgrest.FilterBuilder {
	return q.Or(fmt.Sprintf("and(%s.gte.%s,%s.lte.%s)", column, from, column, to), "")
}
