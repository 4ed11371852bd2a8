// Package catalogstore is an optional Postgres-backed Catalog
// loader/persister (github.com/jackc/pgx/v5), alongside whatever
// in-process JSON loader a caller otherwise uses. It stores §3's
// declarative tables (programs, gen-eds, prereqs, courses) without
// touching the core Catalog value shape — grounded on
// 99ridho-siakad-poc and hasan-ston-mactrack's pgx usage (see
// SPEC_FULL.md DOMAIN STACK).
package catalogstore

import (
	"context"
	"encoding/json"

	"coursesched/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres using connString (a libpq-style DSN) and
// ensures the catalog tables exist.
func Open(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.Wrap(err, "catalogstore: connect")
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS catalogs (
	low_year INTEGER PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS catalog_programs (
	low_year INTEGER REFERENCES catalogs(low_year),
	name TEXT NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (low_year, name)
);
CREATE TABLE IF NOT EXISTS catalog_geneds (
	low_year INTEGER REFERENCES catalogs(low_year),
	name TEXT NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (low_year, name)
);
CREATE TABLE IF NOT EXISTS catalog_courses (
	low_year INTEGER REFERENCES catalogs(low_year),
	stem TEXT NOT NULL,
	suffix TEXT NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (low_year, stem, suffix)
);
CREATE TABLE IF NOT EXISTS catalog_prereqs (
	low_year INTEGER REFERENCES catalogs(low_year),
	stem TEXT NOT NULL,
	suffix TEXT NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (low_year, stem, suffix)
);
`)
	if err != nil {
		return errors.Wrap(err, "catalogstore: migrate")
	}
	return nil
}

// Save persists cat's declarative tables, replacing any prior rows for
// the same low_year.
func (s *Store) Save(ctx context.Context, cat catalog.Catalog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "catalogstore: begin")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO catalogs(low_year) VALUES ($1) ON CONFLICT DO NOTHING`, cat.LowYear); err != nil {
		return errors.Wrap(err, "catalogstore: insert catalog row")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM catalog_programs WHERE low_year = $1`, cat.LowYear); err != nil {
		return errors.Wrap(err, "catalogstore: clear programs")
	}
	for _, p := range cat.Programs {
		body, err := json.Marshal(p)
		if err != nil {
			return errors.Wrap(err, "catalogstore: marshal program")
		}
		if _, err := tx.Exec(ctx, `INSERT INTO catalog_programs(low_year, name, body) VALUES ($1,$2,$3)`, cat.LowYear, p.Name, body); err != nil {
			return errors.Wrap(err, "catalogstore: insert program")
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_geneds WHERE low_year = $1`, cat.LowYear); err != nil {
		return errors.Wrap(err, "catalogstore: clear geneds")
	}
	for _, ge := range cat.GenEds {
		body, err := json.Marshal(ge)
		if err != nil {
			return errors.Wrap(err, "catalogstore: marshal gened")
		}
		if _, err := tx.Exec(ctx, `INSERT INTO catalog_geneds(low_year, name, body) VALUES ($1,$2,$3)`, cat.LowYear, ge.Name, body); err != nil {
			return errors.Wrap(err, "catalogstore: insert gened")
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_courses WHERE low_year = $1`, cat.LowYear); err != nil {
		return errors.Wrap(err, "catalogstore: clear courses")
	}
	for code, rec := range cat.Courses {
		body, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrap(err, "catalogstore: marshal course")
		}
		if _, err := tx.Exec(ctx, `INSERT INTO catalog_courses(low_year, stem, suffix, body) VALUES ($1,$2,$3,$4)`,
			cat.LowYear, code.Stem, code.Suffix.String(), body); err != nil {
			return errors.Wrap(err, "catalogstore: insert course")
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_prereqs WHERE low_year = $1`, cat.LowYear); err != nil {
		return errors.Wrap(err, "catalogstore: clear prereqs")
	}
	for code, req := range cat.Prereqs {
		body, err := json.Marshal(req)
		if err != nil {
			return errors.Wrap(err, "catalogstore: marshal prereq")
		}
		if _, err := tx.Exec(ctx, `INSERT INTO catalog_prereqs(low_year, stem, suffix, body) VALUES ($1,$2,$3,$4)`,
			cat.LowYear, code.Stem, code.Suffix.String(), body); err != nil {
			return errors.Wrap(err, "catalogstore: insert prereq")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "catalogstore: commit")
	}
	return nil
}

// Load reconstructs a Catalog value for the given low_year. It returns
// pgx.ErrNoRows (wrapped) if no catalog row exists for that year.
func (s *Store) Load(ctx context.Context, lowYear int) (catalog.Catalog, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM catalogs WHERE low_year=$1)`, lowYear).Scan(&exists); err != nil {
		return catalog.Catalog{}, errors.Wrap(err, "catalogstore: check catalog row")
	}
	if !exists {
		return catalog.Catalog{}, errors.Wrap(pgx.ErrNoRows, "catalogstore: no such catalog")
	}

	cat := catalog.Catalog{
		LowYear: lowYear,
		Courses: make(map[catalog.CourseCode]catalog.CourseRecord),
		Prereqs: make(map[catalog.CourseCode]catalog.CourseReq),
	}

	progRows, err := s.pool.Query(ctx, `SELECT body FROM catalog_programs WHERE low_year=$1`, lowYear)
	if err != nil {
		return catalog.Catalog{}, errors.Wrap(err, "catalogstore: query programs")
	}
	for progRows.Next() {
		var body []byte
		if err := progRows.Scan(&body); err != nil {
			progRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: scan program")
		}
		var p catalog.Program
		if err := json.Unmarshal(body, &p); err != nil {
			progRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: unmarshal program")
		}
		cat.Programs = append(cat.Programs, p)
	}
	progRows.Close()

	geRows, err := s.pool.Query(ctx, `SELECT body FROM catalog_geneds WHERE low_year=$1`, lowYear)
	if err != nil {
		return catalog.Catalog{}, errors.Wrap(err, "catalogstore: query geneds")
	}
	for geRows.Next() {
		var body []byte
		if err := geRows.Scan(&body); err != nil {
			geRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: scan gened")
		}
		var ge catalog.GenEd
		if err := json.Unmarshal(body, &ge); err != nil {
			geRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: unmarshal gened")
		}
		cat.GenEds = append(cat.GenEds, ge)
	}
	geRows.Close()

	courseRows, err := s.pool.Query(ctx, `SELECT stem, suffix, body FROM catalog_courses WHERE low_year=$1`, lowYear)
	if err != nil {
		return catalog.Catalog{}, errors.Wrap(err, "catalogstore: query courses")
	}
	for courseRows.Next() {
		var stem, suffix string
		var body []byte
		if err := courseRows.Scan(&stem, &suffix, &body); err != nil {
			courseRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: scan course")
		}
		var rec catalog.CourseRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			courseRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: unmarshal course")
		}
		cat.Courses[codeFromParts(stem, suffix)] = rec
	}
	courseRows.Close()

	prereqRows, err := s.pool.Query(ctx, `SELECT stem, suffix, body FROM catalog_prereqs WHERE low_year=$1`, lowYear)
	if err != nil {
		return catalog.Catalog{}, errors.Wrap(err, "catalogstore: query prereqs")
	}
	for prereqRows.Next() {
		var stem, suffix string
		var body []byte
		if err := prereqRows.Scan(&stem, &suffix, &body); err != nil {
			prereqRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: scan prereq")
		}
		var req catalog.CourseReq
		if err := json.Unmarshal(body, &req); err != nil {
			prereqRows.Close()
			return catalog.Catalog{}, errors.Wrap(err, "catalogstore: unmarshal prereq")
		}
		cat.Prereqs[codeFromParts(stem, suffix)] = req
	}
	prereqRows.Close()

	return cat, nil
}

func codeFromParts(stem, suffix string) catalog.CourseCode {
	if n, ok := parseInt(suffix); ok {
		return catalog.NewCourseCode(stem, n)
	}
	return catalog.NewSymbolicCode(stem, suffix)
}

func parseInt(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
