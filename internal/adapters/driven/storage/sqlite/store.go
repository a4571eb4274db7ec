package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all persistence interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scout/data/scout.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scout", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "scout.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CandidateStore returns a CandidateStore interface backed by this store.
func (s *Store) CandidateStore() driven.CandidateStore {
	return &candidateStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Candidate Store ====================

// candidateStore implements driven.CandidateStore.
type candidateStore struct {
	store *Store
}

var _ driven.CandidateStore = (*candidateStore)(nil)

const candidateColumns = `id, name, email, role, industry, company_name, company_size,
		remote, team_size, experience_years, tools, skills, description, location,
		embedding, created_at, updated_at`

const candidateUpsert = `
	INSERT INTO candidates (id, name, email, role, industry, company_name, company_size,
		remote, team_size, experience_years, tools, skills, description, location,
		embedding, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		email = excluded.email,
		role = excluded.role,
		industry = excluded.industry,
		company_name = excluded.company_name,
		company_size = excluded.company_size,
		remote = excluded.remote,
		team_size = excluded.team_size,
		experience_years = excluded.experience_years,
		tools = excluded.tools,
		skills = excluded.skills,
		description = excluded.description,
		location = excluded.location,
		embedding = excluded.embedding,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at
`

// candidateArgs flattens a candidate into upsert parameters.
// Timestamps are stored as supplied; the ingest pipeline owns them.
func candidateArgs(c *domain.Candidate) ([]interface{}, error) {
	toolsJSON, err := json.Marshal(c.Tools)
	if err != nil {
		return nil, fmt.Errorf("marshalling tools: %w", err)
	}
	skillsJSON, err := json.Marshal(c.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshalling skills: %w", err)
	}

	return []interface{}{
		c.ID, c.Name, c.Email, c.Role, c.Industry, c.CompanyName, c.CompanySize,
		boolToInt(c.Remote), c.TeamSize, c.ExperienceYears,
		string(toolsJSON), string(skillsJSON), c.Description, c.Location,
		float32SliceToBytes(c.Embedding), nullTime(c.CreatedAt), nullTime(c.UpdatedAt),
	}, nil
}

// Save stores or updates a candidate.
func (s *candidateStore) Save(ctx context.Context, candidate *domain.Candidate) error {
	args, err := candidateArgs(candidate)
	if err != nil {
		return err
	}

	if _, err := s.store.db.ExecContext(ctx, candidateUpsert, args...); err != nil {
		return fmt.Errorf("saving candidate: %w", err)
	}
	return nil
}

// SaveBatch stores or updates many candidates in one transaction.
func (s *candidateStore) SaveBatch(ctx context.Context, candidates []domain.Candidate) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, candidateUpsert)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range candidates {
		args, err := candidateArgs(&candidates[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("saving candidate %s: %w", candidates[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a candidate by ID.
func (s *candidateStore) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidates WHERE id = ?
	`, id)

	candidate, err := scanCandidate(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return candidate, nil
}

// List returns every candidate in insertion order. Upserts keep a
// row's original rowid, so reloading a record does not reorder it.
func (s *candidateStore) List(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidates ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate //nolint:prealloc // size unknown from query
	for rows.Next() {
		candidate, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return candidates, nil
}

// Count returns the number of stored candidates.
func (s *candidateStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting candidates: %w", err)
	}
	return count, nil
}

// Delete removes a candidate.
func (s *candidateStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM candidates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting candidate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceAll atomically swaps the whole corpus for a new one.
func (s *candidateStore) ReplaceAll(ctx context.Context, candidates []domain.Candidate) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM candidates"); err != nil {
		return fmt.Errorf("clearing candidates: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, candidateUpsert)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range candidates {
		args, err := candidateArgs(&candidates[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("saving candidate %s: %w", candidates[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// scanCandidate scans a candidate from a row-scanning function, so the
// same code serves both *sql.Row and *sql.Rows.
func scanCandidate(scan func(dest ...interface{}) error) (*domain.Candidate, error) {
	var candidate domain.Candidate
	var remote int
	var toolsJSON, skillsJSON string
	var embeddingBlob []byte
	var createdAt, updatedAt sql.NullTime

	if err := scan(&candidate.ID, &candidate.Name, &candidate.Email, &candidate.Role,
		&candidate.Industry, &candidate.CompanyName, &candidate.CompanySize,
		&remote, &candidate.TeamSize, &candidate.ExperienceYears,
		&toolsJSON, &skillsJSON, &candidate.Description, &candidate.Location,
		&embeddingBlob, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning candidate: %w", err)
	}

	candidate.Remote = remote != 0

	if err := json.Unmarshal([]byte(toolsJSON), &candidate.Tools); err != nil {
		return nil, fmt.Errorf("unmarshalling tools: %w", err)
	}
	if err := json.Unmarshal([]byte(skillsJSON), &candidate.Skills); err != nil {
		return nil, fmt.Errorf("unmarshalling skills: %w", err)
	}

	candidate.Embedding = bytesToFloat32Slice(embeddingBlob)
	if createdAt.Valid {
		candidate.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		candidate.UpdatedAt = updatedAt.Time
	}

	return &candidate, nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// LogSearch appends a search record.
func (s *historyStore) LogSearch(ctx context.Context, record *domain.SearchRecord) error {
	filtersJSON, err := json.Marshal(record.Filters)
	if err != nil {
		return fmt.Errorf("marshalling filters: %w", err)
	}
	topJSON, err := json.Marshal(record.TopResultIDs)
	if err != nil {
		return fmt.Errorf("marshalling top result ids: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO searches (id, user_id, query, filters, strategy, result_count, top_result_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.UserID, record.Query, string(filtersJSON),
		string(record.Strategy), record.ResultCount, string(topJSON), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("logging search: %w", err)
	}
	return nil
}

// RecentQueries returns the user's most recent query strings, newest first.
func (s *historyStore) RecentQueries(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query FROM searches
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent queries: %w", err)
	}
	defer rows.Close()

	var queries []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		queries = append(queries, query)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queries: %w", err)
	}

	return queries, nil
}

// ListSearches returns one page of the user's search records, newest
// first, plus the total record count.
func (s *historyStore) ListSearches(ctx context.Context, userID string, offset, limit int) ([]domain.SearchRecord, int, error) {
	var total int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searches WHERE user_id = ?", userID)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting searches: %w", err)
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= total {
		return nil, total, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, query, filters, strategy, result_count, top_result_ids, created_at
		FROM searches
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	records, err := scanSearchRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// AllSearches returns every search record for the user, newest first.
func (s *historyStore) AllSearches(ctx context.Context, userID string) ([]domain.SearchRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, query, filters, strategy, result_count, top_result_ids, created_at
		FROM searches
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	return scanSearchRows(rows)
}

// DeleteSearch removes a single search record.
func (s *historyStore) DeleteSearch(ctx context.Context, userID, recordID string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM searches WHERE user_id = ? AND id = ?", userID, recordID)
	if err != nil {
		return fmt.Errorf("deleting search: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearSearches removes all of the user's search records.
func (s *historyStore) ClearSearches(ctx context.Context, userID string) (int, error) {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM searches WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("clearing searches: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking clear result: %w", err)
	}
	return int(affected), nil
}

// SaveCandidate marks a candidate as saved for the user. Saving an
// already-saved candidate updates notes, tags and the saved time.
func (s *historyStore) SaveCandidate(ctx context.Context, saved *domain.SavedCandidate) error {
	tagsJSON, err := json.Marshal(saved.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	if saved.SavedAt.IsZero() {
		saved.SavedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO saved_candidates (user_id, candidate_id, notes, tags, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, candidate_id) DO UPDATE SET
			notes = excluded.notes,
			tags = excluded.tags,
			saved_at = excluded.saved_at
	`, saved.UserID, saved.CandidateID, saved.Notes, string(tagsJSON), saved.SavedAt)

	if err != nil {
		return fmt.Errorf("saving candidate mark: %w", err)
	}
	return nil
}

// UnsaveCandidate removes a saved-candidate mark.
func (s *historyStore) UnsaveCandidate(ctx context.Context, userID, candidateID string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM saved_candidates WHERE user_id = ? AND candidate_id = ?", userID, candidateID)
	if err != nil {
		return fmt.Errorf("unsaving candidate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking unsave result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SavedCandidates returns the user's saved candidates, newest first.
func (s *historyStore) SavedCandidates(ctx context.Context, userID string) ([]domain.SavedCandidate, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT user_id, candidate_id, notes, tags, saved_at
		FROM saved_candidates
		WHERE user_id = ?
		ORDER BY saved_at DESC, rowid DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying saved candidates: %w", err)
	}
	defer rows.Close()

	var saved []domain.SavedCandidate //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.SavedCandidate
		var tagsJSON string
		var savedAt sql.NullTime
		if err := rows.Scan(&entry.UserID, &entry.CandidateID, &entry.Notes, &tagsJSON, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning saved candidate: %w", err)
		}

		if err := json.Unmarshal([]byte(tagsJSON), &entry.Tags); err != nil {
			return nil, fmt.Errorf("unmarshalling tags: %w", err)
		}
		if savedAt.Valid {
			entry.SavedAt = savedAt.Time
		}
		saved = append(saved, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved candidates: %w", err)
	}

	return saved, nil
}

// IsSaved reports whether the user has saved the candidate.
func (s *historyStore) IsSaved(ctx context.Context, userID, candidateID string) (bool, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM saved_candidates WHERE user_id = ? AND candidate_id = ?",
		userID, candidateID)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("checking saved candidate: %w", err)
	}
	return count > 0, nil
}

// scanSearchRows scans search records from *sql.Rows.
func scanSearchRows(rows *sql.Rows) ([]domain.SearchRecord, error) {
	var records []domain.SearchRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.SearchRecord
		var filtersJSON, topJSON, strategy string
		var createdAt sql.NullTime
		if err := rows.Scan(&record.ID, &record.UserID, &record.Query, &filtersJSON,
			&strategy, &record.ResultCount, &topJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning search record: %w", err)
		}

		if err := json.Unmarshal([]byte(filtersJSON), &record.Filters); err != nil {
			return nil, fmt.Errorf("unmarshalling filters: %w", err)
		}
		if err := json.Unmarshal([]byte(topJSON), &record.TopResultIDs); err != nil {
			return nil, fmt.Errorf("unmarshalling top result ids: %w", err)
		}

		record.Strategy = domain.RetrievalStrategy(strategy)
		if createdAt.Valid {
			record.CreatedAt = createdAt.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search records: %w", err)
	}

	return records, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// nullTime returns nil for zero times, otherwise the time.
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
