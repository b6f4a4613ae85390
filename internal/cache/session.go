package cache

import (
	"database/sql"
	"errors"
	"time"
)

// Keys in the session table.
const (
	KeyToken = "token"
)

// GetSessionValue returns the stored value for key, or "" if none is stored.
func (d *DB) GetSessionValue(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// PutSessionValue stores value under key, overwriting any prior value.
func (d *DB) PutSessionValue(key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO session (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().Unix())
	return err
}

// DeleteSessionValue removes key from the session table.
func (d *DB) DeleteSessionValue(key string) error {
	_, err := d.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}
