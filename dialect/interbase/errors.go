package interbase

import (
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"slices"
	"strings"
	"syscall"
)

// sqlCoder is implemented by driver errors exposing the SQLCODE.
type sqlCoder interface {
	SQLCode() int
}

// gdsCoder is implemented by driver errors exposing the status vector.
type gdsCoder interface {
	GDSCodes() []int
}

// Status codes of interest.
const (
	sqlcodeNetwork = -902

	gdsNetworkError   = 335544721 // unable to complete network request
	gdsNetworkRead    = 335544726 // error reading data from the connection
	gdsNetworkWrite   = 335544727 // error writing data to the connection
	gdsConnShutdown   = 335544856 // connection shutdown
	gdsUniqueKey      = 335544665 // violation of PRIMARY or UNIQUE KEY constraint
	gdsNoDuplicates   = 335544349 // attempt to store duplicate value
	gdsForeignKey     = 335544466 // violation of FOREIGN KEY constraint
	gdsCheckViolation = 335544558 // operation violates CHECK constraint
)

// IsDisconnect reports whether err means the connection to the server is
// gone and the attachment must be discarded.
//
// Drivers exposing the SQLCODE and status vector are classified by code:
// SQLCODE -902 counts only with one of the network status codes. Drivers
// returning plain errors, such as nakagami/firebirdsql, are classified by
// the socket error or the engine message text.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	if g, ok := asError[gdsCoder](err); ok && len(g.GDSCodes()) > 0 {
		if e, ok := asError[sqlCoder](err); ok && e.SQLCode() != sqlcodeNetwork {
			return false
		}
		return hasCode(g, gdsNetworkError, gdsNetworkRead, gdsNetworkWrite, gdsConnShutdown)
	}
	return containsAny(strings.ToLower(err.Error()),
		"error writing data to the connection",
		"error reading data from the connection",
		"unable to complete network request",
		"connection shutdown",
		"connection lost to database",
		"closed the connection",
	)
}

// IsConstraintError reports whether err resulted from a constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports whether err resulted from a primary key or
// unique constraint violation.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if g, ok := asError[gdsCoder](err); ok && hasCode(g, gdsUniqueKey, gdsNoDuplicates) {
		return true
	}
	return containsAny(err.Error(),
		"violation of PRIMARY or UNIQUE KEY constraint",
		"attempt to store duplicate value",
	)
}

// IsForeignKeyConstraintError reports whether err resulted from a foreign
// key violation.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if g, ok := asError[gdsCoder](err); ok && hasCode(g, gdsForeignKey) {
		return true
	}
	return containsAny(err.Error(), "violation of FOREIGN KEY constraint")
}

// IsCheckConstraintError reports whether err resulted from a check
// constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if g, ok := asError[gdsCoder](err); ok && hasCode(g, gdsCheckViolation) {
		return true
	}
	return containsAny(err.Error(), "Operation violates CHECK constraint")
}

func hasCode(g gdsCoder, codes ...int) bool {
	return slices.ContainsFunc(g.GDSCodes(), func(c int) bool {
		return slices.Contains(codes, c)
	})
}

// asError attempts to extract an error implementing interface T from the error chain.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
