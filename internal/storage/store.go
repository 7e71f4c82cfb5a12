package storage

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/cryptox"
	"github.com/dmitrijs2005/empdirectory/internal/dbx"
	"github.com/dmitrijs2005/empdirectory/internal/filex"
	"github.com/dmitrijs2005/empdirectory/internal/logging"
	"github.com/dmitrijs2005/empdirectory/internal/queryir"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Options configures Open.
type Options struct {
	// Dir is the data directory; created with 0700 if missing.
	Dir string
	// Name identifies the collection and names the database file.
	Name string
	// EncryptionKey is the secret the document key is derived from.
	EncryptionKey string
	Logger        logging.Logger
}

// Store is an open, unlocked encrypted collection.
type Store struct {
	db   *sql.DB
	name string
	path string
	key  []byte
	log  logging.Logger
}

// Open opens (creating if absent) the encrypted collection described by opts.
// Any failure to reach the file, migrate it, or unlock it with the supplied
// key is reported as common.ErrStorageUnavailable.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: empty collection name", common.ErrStorageUnavailable)
	}
	if opts.EncryptionKey == "" {
		return nil, fmt.Errorf("%w: empty encryption key", common.ErrStorageUnavailable)
	}
	log := logging.OrDiscard(opts.Logger).With("collection", opts.Name)

	dir, err := filex.EnsureDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	path := filepath.Join(dir, opts.Name+".db")

	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", common.ErrStorageUnavailable, path, err)
	}

	s, err := initStore(ctx, db, opts.Name, path, []byte(opts.EncryptionKey), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := filex.RestrictFile(path); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	return s, nil
}

func initStore(ctx context.Context, db *sql.DB, name, path string, secret []byte, log logging.Logger) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %w", common.ErrStorageUnavailable, path, err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	key, created, err := unlock(ctx, db, name, secret)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "store opened", "path", path, "created", created)
	return &Store{db: db, name: name, path: path, key: key, log: log}, nil
}

// unlock derives the document key. A fresh store gets a new salt and verifier;
// an existing one must match the stored verifier.
func unlock(ctx context.Context, db *sql.DB, name string, secret []byte) (key []byte, created bool, err error) {
	meta := &metadataRepository{db: db}

	salt, err := meta.Get(ctx, metaKeySalt)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	if salt == nil {
		salt, err = cryptox.NewSalt()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
		key = cryptox.DeriveKey(secret, salt)

		err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			m := &metadataRepository{db: tx}
			if err := m.Set(ctx, metaKeySalt, salt); err != nil {
				return err
			}
			if err := m.Set(ctx, metaKeyVerifier, cryptox.MakeVerifier(key)); err != nil {
				return err
			}
			return m.Set(ctx, metaKeyName, []byte(name))
		})
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
		return key, true, nil
	}

	verifier, err := meta.Get(ctx, metaKeyVerifier)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	key = cryptox.DeriveKey(secret, salt)
	if subtle.ConstantTimeCompare(cryptox.MakeVerifier(key), verifier) != 1 {
		cryptox.WipeByteArray(key)
		return nil, false, fmt.Errorf("%w: encryption key rejected", common.ErrStorageUnavailable)
	}
	return key, false, nil
}

// Name returns the collection name.
func (s *Store) Name() string { return s.name }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database and wipes the in-memory key.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	cryptox.WipeByteArray(s.key)
	return s.db.Close()
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := dbx.QueryInt(ctx, s.db, `SELECT COUNT(*) FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Insert stores doc as a new document.
func (s *Store) Insert(ctx context.Context, doc queryir.Document) error {
	return s.insert(ctx, s.db, doc)
}

// InsertMany stores docs in one transaction: either all are written or none.
func (s *Store) InsertMany(ctx context.Context, docs []queryir.Document) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i, doc := range docs {
			if err := s.insert(ctx, tx, doc); err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
		}
		return nil
	})
}

func (s *Store) insert(ctx context.Context, db dbx.DBTX, doc queryir.Document) error {
	if len(doc) == 0 {
		return errors.New("empty document")
	}

	body, nonce, err := cryptox.EncryptEntry(doc, s.key)
	if err != nil {
		return fmt.Errorf("encryption error: %w", err)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO documents (doc_id, body, nonce) VALUES (?, ?, ?)`,
		uuid.NewString(), body, nonce)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Query evaluates q over the collection. Results for equal sort keys keep
// insertion order.
func (s *Store) Query(ctx context.Context, q queryir.Query) ([]queryir.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	docs, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := queryir.Execute(q, docs)
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "query executed", "scanned", len(docs), "returned", len(rows))
	return rows, nil
}

// scan decrypts every document in insertion order.
func (s *Store) scan(ctx context.Context) ([]queryir.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, body, nonce FROM documents ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var docs []queryir.Document
	for rows.Next() {
		var (
			id          string
			body, nonce []byte
		)
		if err := rows.Scan(&id, &body, &nonce); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		var doc queryir.Document
		if err := cryptox.DecryptEntry(body, nonce, s.key, &doc); err != nil {
			return nil, fmt.Errorf("%w: document %s: %w", common.ErrCorruptDocument, id, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}
