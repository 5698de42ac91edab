package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const maxChainDepth = 8

// DBError carries the Postgres fields of a driver error, whichever driver
// produced it.
type DBError struct {
	Driver     string `json:"driver"`
	SQLState   string `json:"sqlstate"`
	Message    string `json:"message,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// Transient reports whether the SQLSTATE class means the statement may
// succeed on retry: connection exceptions, serialization and deadlock
// failures, insufficient resources, operator intervention.
func (e *DBError) Transient() bool {
	if e == nil || len(e.SQLState) < 2 {
		return false
	}
	switch e.SQLState[:2] {
	case "08", "40", "53", "57":
		return true
	}
	return false
}

// ErrorDump is a log-friendly view of an error chain.
type ErrorDump struct {
	Message string   `json:"message"`
	Code    Code     `json:"code,omitempty"`
	Chain   []string `json:"chain,omitempty"`
	DB      *DBError `json:"db,omitempty"`
}

// Dump walks err's chain, recording each link's type and the first coded
// error and Postgres driver error it finds.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{Message: err.Error()}
	if typed := As(err); typed != nil {
		d.Code = typed.Code()
	}

	for e, depth := err, 0; e != nil && depth < maxChainDepth; e, depth = stdErrors.Unwrap(e), depth+1 {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.DB = dbErrorFrom(err)
	return d
}

// Fields flattens the dump into logger fields.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{"error": d.Message}
	if d.Code != "" {
		fields["error_code"] = string(d.Code)
	}
	if len(d.Chain) > 1 {
		fields["error_chain"] = strings.Join(d.Chain, " <- ")
	}
	if d.DB != nil {
		fields["db_driver"] = d.DB.Driver
		fields["db_sqlstate"] = d.DB.SQLState
		fields["db_transient"] = d.DB.Transient()
		for key, val := range map[string]string{
			"db_message":    d.DB.Message,
			"db_detail":     d.DB.Detail,
			"db_table":      d.DB.Table,
			"db_column":     d.DB.Column,
			"db_constraint": d.DB.Constraint,
		} {
			if val != "" {
				fields[key] = val
			}
		}
	}
	return fields
}

func dbErrorFrom(err error) *DBError {
	var pgxErr *pgconn.PgError
	if stdErrors.As(err, &pgxErr) {
		return &DBError{
			Driver:     "pgx",
			SQLState:   pgxErr.Code,
			Message:    pgxErr.Message,
			Detail:     pgxErr.Detail,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Constraint: pgxErr.ConstraintName,
		}
	}
	var pqErr *pq.Error
	if stdErrors.As(err, &pqErr) {
		return &DBError{
			Driver:     "pq",
			SQLState:   string(pqErr.Code),
			Message:    pqErr.Message,
			Detail:     pqErr.Detail,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Constraint: pqErr.Constraint,
		}
	}
	return nil
}
