// Package cmdb is the object store behind the mock endpoint, kept in sqlite.
package cmdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound          = errors.New("object not found")
	ErrUnknownType       = errors.New("unknown object type")
	ErrUnknownCMDBStatus = errors.New("unknown cmdb status")
	ErrUnknownStatus     = errors.New("unknown record status")
)

const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT    NOT NULL,
	sysid       TEXT    NOT NULL,
	type_id     INTEGER NOT NULL,
	status      INTEGER NOT NULL,
	cmdb_status INTEGER NOT NULL,
	category    TEXT,
	purpose     TEXT,
	description TEXT,
	created     TEXT    NOT NULL,
	updated     TEXT    NOT NULL
);`

type StoreContract interface {
	Create(ctx context.Context, o *NewObject) (int64, error)
	Read(ctx context.Context, id int64) (*Object, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	SetStatus(ctx context.Context, id int64, status int) error
	Purge(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]Object, error)
	Close() error
}

// NewObject carries the parameters of cmdb.object.create. Type and
// CMDBStatus hold a constant string or a JSON number.
type NewObject struct {
	Type        any
	Title       string
	Category    *string
	Purpose     *string
	CMDBStatus  any
	Description *string
}

// Object has the shape returned by cmdb.object.read.
type Object struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	SysID           string `json:"sysid"`
	ObjectType      int    `json:"objecttype"`
	TypeTitle       string `json:"type_title"`
	TypeIcon        string `json:"type_icon"`
	Status          int    `json:"status"`
	CMDBStatus      int    `json:"cmdb_status"`
	CMDBStatusTitle string `json:"cmdb_status_title"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	Image           string `json:"image"`
	TypeConst       string `json:"-"`
}

type Store struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// Open opens (or creates) the sqlite database at path; ":memory:" keeps
// everything in process. All access goes through one connection.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening object store: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA busy_timeout=5000;",
		"PRAGMA journal_mode=WAL;",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("error preparing object store: %w", err)
		}
	}

	return &Store{db: db, log: log, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, o *NewObject) (int64, error) {
	typ, ok := objectTypeByRef(o.Type)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownType, o.Type)
	}
	status, ok := cmdbStatusByRef(o.CMDBStatus)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCMDBStatus, o.CMDBStatus)
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO objects (title, sysid, type_id, status, cmdb_status, category, purpose, description, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Title, "SYSID_"+strconv.FormatInt(now.UnixNano(), 10), typ.ID, StatusNormal, status.ID,
		o.Category, o.Purpose, o.Description, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("error inserting object: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.log.Debug("object created", slog.Int64("id", id), slog.String("type", typ.Const))
	return id, nil
}

func (s *Store) Read(ctx context.Context, id int64) (*Object, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, sysid, type_id, status, cmdb_status, created, updated FROM objects WHERE id = ?`, id)
	return s.scan(row)
}

func (s *Store) UpdateTitle(ctx context.Context, id int64, title string) error {
	return s.exec(ctx, `UPDATE objects SET title = ?, updated = ? WHERE id = ?`, title, s.now().Format(timeLayout), id)
}

// SetStatus moves an object to one of the RecordStates.
func (s *Store) SetStatus(ctx context.Context, id int64, status int) error {
	if !knownStatus(status) {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, status)
	}
	return s.exec(ctx, `UPDATE objects SET status = ?, updated = ? WHERE id = ?`, status, s.now().Format(timeLayout), id)
}

func (s *Store) Purge(ctx context.Context, id int64) error {
	return s.exec(ctx, `DELETE FROM objects WHERE id = ?`, id)
}

// Search matches query as a case-insensitive substring of object titles.
func (s *Store) Search(ctx context.Context, query string) ([]Object, error) {
	pattern := "%" + strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, sysid, type_id, status, cmdb_status, created, updated FROM objects
		 WHERE title LIKE ? ESCAPE '\' AND status = ? ORDER BY id`, pattern, StatusNormal)
	if err != nil {
		return nil, fmt.Errorf("error searching objects: %w", err)
	}
	defer rows.Close()

	var out []Object
	for rows.Next() {
		o, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scan(row scanner) (*Object, error) {
	var o Object
	err := row.Scan(&o.ID, &o.Title, &o.SysID, &o.ObjectType, &o.Status, &o.CMDBStatus, &o.Created, &o.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading object: %w", err)
	}
	typ := objectTypeByID(o.ObjectType)
	o.TypeTitle = typ.Title
	o.TypeIcon = typ.Icon
	o.TypeConst = typ.Const
	o.CMDBStatusTitle = cmdbStatusByID(o.CMDBStatus).Title
	return &o, nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating object: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ StoreContract = (*Store)(nil)
