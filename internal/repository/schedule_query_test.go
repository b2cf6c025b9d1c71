package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulePredicates(t *testing.T) {
	day := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)
	author := "kim"
	memberID := int64(7)

	tests := []struct {
		name      string
		filter    ScheduleFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    ScheduleFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "date only",
			filter:    ScheduleFilter{UpdatedOn: &day},
			wantWhere: " WHERE (updated_at AT TIME ZONE 'UTC')::date = $1::date",
			wantArgs:  []any{"2024-03-15"},
		},
		{
			name:      "author only",
			filter:    ScheduleFilter{Author: &author},
			wantWhere: " WHERE author = $1",
			wantArgs:  []any{"kim"},
		},
		{
			name:      "all predicates",
			filter:    ScheduleFilter{UpdatedOn: &day, Author: &author, MemberID: &memberID},
			wantWhere: " WHERE (updated_at AT TIME ZONE 'UTC')::date = $1::date AND author = $2 AND member_id = $3",
			wantArgs:  []any{"2024-03-15", "kim", int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := schedulePredicates(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSchedulePredicatesUseUTCDate(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	local := time.Date(2024, 3, 16, 2, 0, 0, 0, seoul) // 2024-03-15 17:00 UTC

	_, args := schedulePredicates(ScheduleFilter{UpdatedOn: &local})
	assert.Equal(t, []any{"2024-03-15"}, args)
}

func TestBuildPageQueryKeepsCountAndDataInSync(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	author := "lee"

	filters := []ScheduleFilter{
		{},
		{UpdatedOn: &day},
		{Author: &author},
		{UpdatedOn: &day, Author: &author},
	}

	for _, f := range filters {
		q := buildPageQuery(f, 10, 20)
		where, args := schedulePredicates(f)

		assert.Equal(t, countScheduleSQL+where, q.countSQL)
		assert.True(t, strings.HasPrefix(q.dataSQL, selectScheduleSQL+where+" ORDER BY updated_at DESC"))
		assert.Equal(t, args, q.countArgs)
		assert.Equal(t, len(args)+2, len(q.dataArgs))
		assert.Equal(t, []any{10, 20}, q.dataArgs[len(args):])
	}
}

func TestBuildPageQueryPlaceholders(t *testing.T) {
	author := "park"
	q := buildPageQuery(ScheduleFilter{Author: &author}, 5, 15)

	assert.True(t, strings.HasSuffix(q.dataSQL, "ORDER BY updated_at DESC, id DESC LIMIT $2 OFFSET $3"))
	assert.Equal(t, []any{"park", 5, 15}, q.dataArgs)
}
