// Package storage is the encrypted on-device document store.
//
// # Overview
//
// A Store is one named collection kept in a SQLite file
// (<dir>/<name>.db). Documents are schemaless field maps
// (queryir.Document); each is serialized to JSON and sealed with AES-GCM
// under a key derived from the caller's secret with argon2id. Only the
// ciphertext, its nonce, a random document id and an insertion sequence are
// visible to SQLite.
//
// # Key handling
//
// On first open a random salt and a verifier of the derived key are written to
// the metadata table. Later opens re-derive the key and compare verifiers, so a
// wrong secret fails fast with common.ErrStorageUnavailable instead of
// producing undecryptable reads.
//
// # Queries
//
// Because fields are encrypted, Query decrypts the collection in insertion
// order and evaluates the queryir.Query in process. Insertion order is the
// storage order that breaks ordering ties.
//
// # Concurrency
//
// A Store is safe for concurrent use; reads share the *sql.DB pool.
// InsertMany is a single transaction.
//
// Typical usage
//
//	st, err := storage.Open(ctx, storage.Options{Dir: "data", Name: "employees", EncryptionKey: key})
//	n, _ := st.Count(ctx)
//	_ = st.InsertMany(ctx, docs)
//	rows, _ := st.Query(ctx, queryir.Query{OrderBy: []queryir.Ordering{{Field: "lastName"}}})
package storage
