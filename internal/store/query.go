package store

import (
	"fmt"
	"strings"
)

// Dialect controls how a query is rendered for a particular SQL engine.
type Dialect int

const (
	// Postgres renders $n placeholders and ILIKE matching.
	Postgres Dialect = iota
	// SQLite renders ? placeholders and relies on LIKE being case-insensitive.
	SQLite
)

// DialectForDriver maps a database/sql driver name to its Dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

func (d Dialect) placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

func (d Dialect) caseInsensitiveLike() string {
	if d == SQLite {
		return "LIKE"
	}
	return "ILIKE"
}

// Page bounds a listing after ordering has been applied.
type Page struct {
	Limit  int
	Offset int
}

type operator int

const (
	opEqual operator = iota
	opContains
	opAtLeast
	opAtMost
)

type predicate struct {
	column string
	op     operator
	arg    any
}

// Predicates accumulates optional filter conditions that are combined with AND.
// Every value is carried as a bound argument; only column names reach the SQL text.
type Predicates struct {
	clauses []predicate
}

// Equal constrains column to equal v.
func (p *Predicates) Equal(column string, v any) {
	p.clauses = append(p.clauses, predicate{column: column, op: opEqual, arg: v})
}

// Contains constrains column to contain text, ignoring case.
func (p *Predicates) Contains(column, text string) {
	p.clauses = append(p.clauses, predicate{column: column, op: opContains, arg: "%" + text + "%"})
}

// AtLeast constrains column to be >= v.
func (p *Predicates) AtLeast(column string, v any) {
	p.clauses = append(p.clauses, predicate{column: column, op: opAtLeast, arg: v})
}

// AtMost constrains column to be <= v.
func (p *Predicates) AtMost(column string, v any) {
	p.clauses = append(p.clauses, predicate{column: column, op: opAtMost, arg: v})
}

// Len reports the number of active conditions.
func (p *Predicates) Len() int {
	return len(p.clauses)
}

func (p *Predicates) render(d Dialect, args []any) (string, []any) {
	if len(p.clauses) == 0 {
		return "", args
	}

	conds := make([]string, 0, len(p.clauses))
	for _, c := range p.clauses {
		args = append(args, c.arg)
		ph := d.placeholder(len(args))

		var cond string
		switch c.op {
		case opContains:
			cond = fmt.Sprintf("%s %s %s", c.column, d.caseInsensitiveLike(), ph)
		case opAtLeast:
			cond = fmt.Sprintf("%s >= %s", c.column, ph)
		case opAtMost:
			cond = fmt.Sprintf("%s <= %s", c.column, ph)
		default:
			cond = fmt.Sprintf("%s = %s", c.column, ph)
		}
		conds = append(conds, cond)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// selectQuery is a fixed SELECT ... FROM ... JOIN prefix plus the parts that vary per request.
type selectQuery struct {
	from    string
	where   Predicates
	orderBy string
	page    *Page
}

func (q *selectQuery) build(d Dialect) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)

	b.WriteString(strings.TrimSpace(q.from))

	where, args := q.where.render(d, args)
	if where != "" {
		b.WriteString("\n")
		b.WriteString(where)
	}

	if q.orderBy != "" {
		b.WriteString("\nORDER BY ")
		b.WriteString(q.orderBy)
	}

	if q.page != nil {
		args = append(args, q.page.Limit)
		limit := d.placeholder(len(args))
		args = append(args, q.page.Offset)
		offset := d.placeholder(len(args))
		fmt.Fprintf(&b, "\nLIMIT %s OFFSET %s", limit, offset)
	}

	return b.String(), args
}
