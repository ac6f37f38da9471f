package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver is a minimal database/sql driver that records transaction
// outcomes. It is just enough to drive the begin/commit/rollback plumbing.
type stubDriver struct {
	commitErr error
	commits   int
	rollbacks int
}

func (d *stubDriver) Connect(context.Context) (driver.Conn, error) { return &stubConn{d: d}, nil }
func (d *stubDriver) Driver() driver.Driver                        { return nil }

type stubConn struct {
	d *stubDriver
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not scripted") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return c.d, nil }

func (c *stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return c.d, nil
}

func (d *stubDriver) Commit() error {
	d.commits++
	return d.commitErr
}

func (d *stubDriver) Rollback() error {
	d.rollbacks++
	return nil
}

func newStubUnitOfWork(t *testing.T, commitErr error) (*SQLUnitOfWork, *stubDriver) {
	t.Helper()
	d := &stubDriver{commitErr: commitErr}
	db := sql.OpenDB(d)
	t.Cleanup(func() { db.Close() })
	return NewSQLUnitOfWork(db), d
}

func TestRun_CommitsWhenFnSucceeds(t *testing.T) {
	uow, d := newStubUnitOfWork(t, nil)

	err := uow.RepeatableRead(context.Background(), func(StoreTx) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, d.commits)
	assert.Equal(t, 0, d.rollbacks)
}

func TestRun_RollsBackWhenFnFails(t *testing.T) {
	uow, d := newStubUnitOfWork(t, nil)
	cause := errors.New("transfer rejected")

	err := uow.RepeatableRead(context.Background(), func(StoreTx) error { return cause })
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, d.commits)
	assert.Equal(t, 1, d.rollbacks)
}

func TestRun_RollsBackWhenFnPanics(t *testing.T) {
	uow, d := newStubUnitOfWork(t, nil)

	func() {
		defer func() {
			require.NotNil(t, recover())
		}()
		_ = uow.ReadCommitted(context.Background(), func(StoreTx) error {
			panic("handler gave up")
		})
	}()

	assert.Equal(t, 0, d.commits)
	assert.Equal(t, 1, d.rollbacks)
}

func TestRun_CommitSerializationFailureIsVersionConflict(t *testing.T) {
	// REPEATABLE READ can defer the loss of an update race to COMMIT; it must
	// classify the same as a mid-transaction version check failure.
	uow, d := newStubUnitOfWork(t, &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to concurrent update",
	})

	err := uow.RepeatableRead(context.Background(), func(StoreTx) error { return nil })
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, 1, d.commits)
}

func TestRun_OtherCommitErrorsStayUnclassified(t *testing.T) {
	uow, _ := newStubUnitOfWork(t, errors.New("connection reset"))

	err := uow.RepeatableRead(context.Background(), func(StoreTx) error { return nil })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVersionConflict)
	assert.Contains(t, err.Error(), "failed to commit transaction")
}
