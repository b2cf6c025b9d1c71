package repository

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by date predicates.
const DateLayout = "2006-01-02"

// ScheduleFilter holds the optional predicates of a paged schedule search.
// Set fields are combined with AND.
type ScheduleFilter struct {
	// UpdatedOn matches on the UTC calendar date of updated_at, not the instant.
	UpdatedOn *time.Time
	Author    *string
	MemberID  *int64
}

const (
	scheduleColumns = `id, title, author, password, COALESCE(description, '') AS description,
		created_at, updated_at, deleted_at, member_id`

	selectScheduleSQL = `SELECT ` + scheduleColumns + ` FROM schedule`
	countScheduleSQL  = `SELECT COUNT(*) FROM schedule`
)

// schedulePredicates renders filter into a WHERE clause and its positional
// arguments. It is the only place predicates are built, so the data and the
// count query always agree.
func schedulePredicates(filter ScheduleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if filter.UpdatedOn != nil {
		add("(updated_at AT TIME ZONE 'UTC')::date = $%d::date", filter.UpdatedOn.UTC().Format(DateLayout))
	}
	if filter.Author != nil {
		add("author = $%d", *filter.Author)
	}
	if filter.MemberID != nil {
		add("member_id = $%d", *filter.MemberID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type pageQuery struct {
	countSQL  string
	countArgs []any
	dataSQL   string
	dataArgs  []any
}

// buildPageQuery pairs the COUNT and the data statement for one search.
func buildPageQuery(filter ScheduleFilter, limit, offset int) pageQuery {
	where, args := schedulePredicates(filter)

	dataArgs := make([]any, 0, len(args)+2)
	dataArgs = append(dataArgs, args...)
	dataArgs = append(dataArgs, limit, offset)

	return pageQuery{
		countSQL:  countScheduleSQL + where,
		countArgs: args,
		dataSQL: selectScheduleSQL + where +
			fmt.Sprintf(" ORDER BY updated_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2),
		dataArgs: dataArgs,
	}
}
