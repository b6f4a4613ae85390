package cache

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fragmede/shopauth/internal/api"
)

// GetProfile retrieves a cached profile by token subject.
// Returns (profile, isFresh, error); profile is nil on cache miss.
func (d *DB) GetProfile(subject string, ttl time.Duration) (*api.Profile, bool, error) {
	row := d.db.QueryRow(`SELECT id, full_name, email, role, email_confirmed, fetched_at
		FROM profiles WHERE subject = ?`, subject)

	var p api.Profile
	var id sql.NullInt64
	var fullName, email, role sql.NullString
	var confirmed int
	var fetchedAt int64

	err := row.Scan(&id, &fullName, &email, &role, &confirmed, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p.ID = id.Int64
	p.FullName = fullName.String
	p.Email = email.String
	p.Role = role.String
	p.EmailConfirmed = confirmed != 0

	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return &p, isFresh, nil
}

// PutProfile stores a profile under the token subject.
func (d *DB) PutProfile(subject string, p *api.Profile) error {
	var confirmed int
	if p.EmailConfirmed {
		confirmed = 1
	}
	_, err := d.db.Exec(`INSERT OR REPLACE INTO profiles
		(subject, id, full_name, email, role, email_confirmed, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		subject, p.ID, nullStr(p.FullName), nullStr(p.Email), nullStr(p.Role),
		confirmed, time.Now().Unix())
	return err
}

// DeleteProfile drops the cached profile for subject.
func (d *DB) DeleteProfile(subject string) error {
	_, err := d.db.Exec(`DELETE FROM profiles WHERE subject = ?`, subject)
	return err
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
