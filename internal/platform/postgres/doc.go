// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. Each store accepts a store.DBTX
// so it can run on a pool or inside a transaction (see WithTx).
package postgres
