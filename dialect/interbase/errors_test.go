package interbase

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

// engineError mimics a driver error carrying an SQLCODE and a status vector.
type engineError struct {
	msg     string
	sqlcode int
	gds     []int
}

func (e *engineError) Error() string { return e.msg }
func (e *engineError) SQLCode() int { return e.sqlcode }
func (e *engineError) GDSCodes() []int { return e.gds }

func TestIsDisconnect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "eof", err: fmt.Errorf("read: %w", io.EOF), want: true},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF, want: true},
		{name: "network sqlcode alone", err: &engineError{msg: "x", sqlcode: -902}},
		{name: "network sqlcode with network gds", err: &engineError{msg: "x", sqlcode: -902, gds: []int{335544721}}, want: true},
		{name: "network sqlcode with read gds", err: &engineError{msg: "x", sqlcode: -902, gds: []int{335544726}}, want: true},
		{name: "network sqlcode with other gds", err: &engineError{msg: "x", sqlcode: -902, gds: []int{335544344}}},
		{name: "network gds under other sqlcode", err: &engineError{msg: "x", sqlcode: -901, gds: []int{335544726}}},
		{name: "shutdown gds", err: fmt.Errorf("wrap: %w", &engineError{msg: "x", sqlcode: -902, gds: []int{335544856}}), want: true},
		{name: "codes win over message", err: &engineError{msg: "Error reading data from the connection.", sqlcode: -902, gds: []int{335544344}}},
		{name: "closed socket", err: fmt.Errorf("read tcp: %w", net.ErrClosed), want: true},
		{name: "reset by peer", err: &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, want: true},
		{name: "broken pipe", err: &net.OpError{Op: "write", Net: "tcp", Err: syscall.EPIPE}, want: true},
		{name: "unrelated", err: errors.New("table unknown")},
		{name: "constraint", err: &engineError{msg: "x", sqlcode: -803, gds: []int{335544665}}},

		// Plain errors carrying the engine message, as firebirdsql returns them.
		{name: "write error text", err: errors.New("Error writing data to the connection.\n"), want: true},
		{name: "read error text", err: errors.New("Error reading data from the connection.\n"), want: true},
		{name: "network request text", err: errors.New("Unable to complete network request to host \"db.local\".\nFailed to establish a connection.\n"), want: true},
		{name: "shutdown text", err: errors.New("connection shutdown\n"), want: true},
		{name: "shutdown text upper", err: errors.New("Connection shutdown\n"), want: true},
		{name: "lost text", err: errors.New("connection lost to database\n"), want: true},
		{name: "unique text", err: errors.New("violation of PRIMARY or UNIQUE KEY constraint \"PK_USERS\" on table \"USERS\"\n")},
		{name: "table text", err: errors.New("Dynamic SQL Error\nSQL error code = -204\nTable unknown\nGHOST\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisconnect(tt.err))
		})
	}
}

func TestConstraintErrors(t *testing.T) {
	tests := []struct {
		name                   string
		err                    error
		unique, foreign, check bool
	}{
		{name: "nil"},
		{name: "unique gds", err: &engineError{msg: "x", gds: []int{335544665}}, unique: true},
		{name: "duplicate gds", err: &engineError{msg: "x", gds: []int{335544349}}, unique: true},
		{name: "unique message", err: errors.New(`violation of PRIMARY or UNIQUE KEY constraint "PK_USERS" on table "USERS"`), unique: true},
		{name: "foreign gds", err: fmt.Errorf("exec: %w", &engineError{msg: "x", gds: []int{335544466}}), foreign: true},
		{name: "foreign message", err: errors.New(`violation of FOREIGN KEY constraint "FK_X"`), foreign: true},
		{name: "check gds", err: &engineError{msg: "x", gds: []int{335544558}}, check: true},
		{name: "check message", err: errors.New(`Operation violates CHECK constraint CK_AGE on view or table USERS`), check: true},
		{name: "other", err: errors.New("deadlock")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueConstraintError(tt.err))
			assert.Equal(t, tt.foreign, IsForeignKeyConstraintError(tt.err))
			assert.Equal(t, tt.check, IsCheckConstraintError(tt.err))
			assert.Equal(t, tt.unique || tt.foreign || tt.check, IsConstraintError(tt.err))
		})
	}
}
