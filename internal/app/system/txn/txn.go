// internal/app/system/txn/txn.go

// Package txn runs a function inside a MongoDB multi-document transaction,
// falling back to a plain (non-transactional) run when the server does not
// support transactions (standalone servers, some DocumentDB configurations).
//
// Handlers and stores that mutate more than one document per logical
// operation should wrap the mutation in Run so readers never observe a
// half-written state on servers that support transactions.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. If the server does
// not support transactions, fn runs once without one (best effort) and a
// warning is logged. Any error returned by fn aborts the transaction and is
// returned unchanged, so sentinel errors survive the round trip.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			warnNoTxn(log, err)
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		warnNoTxn(log, err)
		return fn(ctx)
	}
	return err
}

func warnNoTxn(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("mongo transactions unavailable; running without transaction", zap.Error(err))
	}
}

// Server error codes that indicate transactions are unavailable:
// 20 IllegalOperation (not a replica set member), 51 reserved illegal op,
// 263 OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions. Besides the known command error codes, it
// matches the message shapes various server versions and Mongo-compatible
// services produce.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(mongo.CommandError); ok && notSupportedCodes[ce.Code] {
		return true
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") {
		if strings.Contains(s, "replica set") ||
			strings.Contains(s, "session") ||
			strings.Contains(s, "illegal operation") {
			return true
		}
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
