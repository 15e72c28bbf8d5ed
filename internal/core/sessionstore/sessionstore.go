// Package sessionstore persists the i-doit session between godoit invocations
// in a small ini file, one section per endpoint URL.
package sessionstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/ini.v1"
)

var ErrNoSession = errors.New("no stored session")

const (
	keySessionID = "session-id"
	keyUsername  = "username"
	keyTimestamp = "timestamp"
	keyUnix      = "timestamp-unix"
)

type Record struct {
	URL       string
	Username  string
	SessionID string
	Created   time.Time
}

type StoreContract interface {
	Load(url string) (*Record, error)
	Save(r *Record) error
	Clear(url string) error
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) open() (*ini.File, error) {
	f, err := ini.Load(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ini.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}
	return f, nil
}

// Load returns the session stored for url, or ErrNoSession.
func (s *Store) Load(url string) (*Record, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	if !f.HasSection(url) {
		return nil, ErrNoSession
	}
	sec := f.Section(url)
	id := sec.Key(keySessionID).String()
	if id == "" {
		return nil, ErrNoSession
	}

	r := &Record{
		URL:       url,
		Username:  sec.Key(keyUsername).String(),
		SessionID: id,
	}
	if unix, err := strconv.ParseInt(sec.Key(keyUnix).String(), 10, 64); err == nil {
		r.Created = time.Unix(unix, 0)
	}
	return r, nil
}

// Save replaces the session of r.URL. The file is created with mode 0600.
func (s *Store) Save(r *Record) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	f.DeleteSection(r.URL)
	sec, err := f.NewSection(r.URL)
	if err != nil {
		return err
	}
	created := r.Created
	if created.IsZero() {
		created = time.Now()
	}
	sec.Key(keySessionID).SetValue(r.SessionID)
	sec.Key(keyUsername).SetValue(r.Username)
	sec.Key(keyTimestamp).SetValue(created.Format("2006-01-02/15:04:05 MST"))
	sec.Key(keyUnix).SetValue(strconv.FormatInt(created.Unix(), 10))
	return s.write(f)
}

// Clear drops the session of url. Clearing a missing session is not an error.
func (s *Store) Clear(url string) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	if !f.HasSection(url) {
		return nil
	}
	f.DeleteSection(url)
	return s.write(f)
}

func (s *Store) write(f *ini.File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	out, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("error writing session file: %w", err)
	}
	return out.Close()
}

var _ StoreContract = (*Store)(nil)
