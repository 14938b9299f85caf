// Package store keeps encoded UI packages in a bbolt database so tools can
// load them by id or name without tracking files.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/go-drift/uipack/pkg/asset"
	uierrors "github.com/go-drift/uipack/pkg/errors"
)

const (
	bucketPackages = "packages"
	bucketNames    = "names"
)

// ErrNotFound is returned when no stored package matches.
var ErrNotFound = errors.New("store: package not found")

// initDB holds the bucket initializers run when a database is opened.
var initDB = map[string]func(*bolt.Tx) error{
	"initialize package table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPackages))
		return err
	},
	"initialize name index": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketNames))
		return err
	},
}

// Store is a persistent package store. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Entry describes one stored package.
type Entry struct {
	ID   string
	Name string
	Size int
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, storeError("store.Open", "", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, storeError("store.Open", "", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put validates data as a package container and stores it under the
// package id, replacing any previous version. It returns the decoded
// package.
func (s *Store) Put(data []byte) (*asset.Package, error) {
	pkg, err := asset.Decode(data)
	if err != nil {
		return nil, storeError("store.Put", "", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		pkgs := tx.Bucket([]byte(bucketPackages))
		names := tx.Bucket([]byte(bucketNames))
		if id := names.Get([]byte(pkg.Name)); id != nil && string(id) != pkg.ID {
			return fmt.Errorf("name %q already used by package %s", pkg.Name, id)
		}
		if old := pkgs.Get([]byte(pkg.ID)); old != nil {
			if prev, err := asset.Decode(old); err == nil && prev.Name != pkg.Name {
				if err := names.Delete([]byte(prev.Name)); err != nil {
					return err
				}
			}
		}
		if err := pkgs.Put([]byte(pkg.ID), data); err != nil {
			return err
		}
		return names.Put([]byte(pkg.Name), []byte(pkg.ID))
	})
	if err != nil {
		return nil, storeError("store.Put", pkg.Name, err)
	}
	return pkg, nil
}

// Get returns the stored container of the package with the given id.
func (s *Store) Get(id string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPackages)).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		// Values are only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// GetByName returns the stored container of the package with the given name.
func (s *Store) GetByName(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(bucketNames)).Get([]byte(name))
		if id == nil {
			return ErrNotFound
		}
		v := tx.Bucket([]byte(bucketPackages)).Get(id)
		if v == nil {
			return ErrNotFound
		}
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// Delete removes the package with the given id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		pkgs := tx.Bucket([]byte(bucketPackages))
		v := pkgs.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		names := tx.Bucket([]byte(bucketNames))
		var stale [][]byte
		err := names.ForEach(func(name, ref []byte) error {
			if string(ref) == id {
				stale = append(stale, append([]byte(nil), name...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, name := range stale {
			if err := names.Delete(name); err != nil {
				return err
			}
		}
		return pkgs.Delete([]byte(id))
	})
}

// List returns the stored packages ordered by name.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		pkgs := tx.Bucket([]byte(bucketPackages))
		return tx.Bucket([]byte(bucketNames)).ForEach(func(name, id []byte) error {
			entries = append(entries, Entry{
				ID:   string(id),
				Name: string(name),
				Size: len(pkgs.Get(id)),
			})
			return nil
		})
	})
	return entries, err
}

// LoadInto decodes every stored package and adds it to reg. Packages that
// fail to decode or register are reported and skipped; the number loaded
// is returned.
func (s *Store) LoadInto(reg *asset.Registry) (int, error) {
	loaded := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPackages)).ForEach(func(id, v []byte) error {
			// Decoded items alias their container.
			pkg, err := asset.Decode(append([]byte(nil), v...))
			if err == nil {
				err = reg.Add(pkg)
			}
			if err != nil {
				uierrors.Report(storeError("store.LoadInto", string(id), err))
				return nil
			}
			loaded++
			return nil
		})
	})
	return loaded, err
}

func storeError(op, pkg string, err error) *uierrors.Error {
	return &uierrors.Error{Op: op, Kind: uierrors.KindStore, Package: pkg, Err: err}
}
