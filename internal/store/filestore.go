package store

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/fsutil"
	"github.com/revlog-project/revlog/pkg/jsonutil"
	"github.com/revlog-project/revlog/pkg/model"
)

const (
	entriesDirName   = "entries"
	entryRecordFile  = "entry.json"
	revisionsLogFile = "revisions.jsonl"
	commentsLogFile  = "comments.jsonl"
)

// FileStore keeps one directory per entry under <root>/.revlog/entries/,
// holding the entry record plus two JSONL logs. Revision records form a
// hash chain so a truncated or edited log is detected on read.
type FileStore struct {
	root string
	mu   sync.Mutex
}

type revisionRecord struct {
	Revision   *model.Revision `json:"revision"`
	PrevHash   model.HashValue `json:"prev_hash,omitempty"`
	RecordHash model.HashValue `json:"record_hash"`
}

type commentRecord struct {
	Comment  *model.Comment  `json:"comment"`
	Checksum model.HashValue `json:"checksum"`
}

// NewFileStore opens a file store rooted at root, creating the entries
// directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	dir := filepath.Join(root, ".revlog", entriesDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create entries dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) entryDir(name string) string {
	return filepath.Join(s.root, ".revlog", entriesDirName, name)
}

func (s *FileStore) CreateEntry(rec *model.EntryRecord, first *model.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.entryDir(rec.Name)
	if _, err := os.Stat(filepath.Join(dir, entryRecordFile)); err == nil {
		return errclass.ErrAlreadyExists.WithMessagef("entry %s already exists", rec.Name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create entry dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entry record: %w", err)
	}
	if err := fsutil.AtomicWrite(filepath.Join(dir, entryRecordFile), data, 0644); err != nil {
		return fmt.Errorf("write entry record: %w", err)
	}

	return s.appendRevisionLocked(rec.Name, first)
}

func (s *FileStore) GetEntry(name string) (*model.EntryRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.entryDir(name), entryRecordFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errclass.ErrNotFound.WithMessagef("entry %s not found", name)
		}
		return nil, fmt.Errorf("read entry record: %w", err)
	}
	var rec model.EntryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errclass.ErrStorageCorruption.WithMessagef("entry record for %s: %v", name, err)
	}
	return &rec, nil
}

func (s *FileStore) ListEntries() ([]*model.EntryRecord, error) {
	dir := filepath.Join(s.root, ".revlog", entriesDirName)
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read entries dir: %w", err)
	}

	var out []*model.EntryRecord
	for _, de := range dirents {
		if !de.IsDir() {
			continue
		}
		rec, err := s.GetEntry(de.Name())
		if err != nil {
			return nil, fmt.Errorf("list entry %s: %w", de.Name(), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *FileStore) AppendRevision(name string, rev *model.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getEntryLocked(name); err != nil {
		return err
	}
	return s.appendRevisionLocked(name, rev)
}

func (s *FileStore) getEntryLocked(name string) (*model.EntryRecord, error) {
	return s.GetEntry(name)
}

func (s *FileStore) appendRevisionLocked(name string, rev *model.Revision) error {
	path := filepath.Join(s.entryDir(name), revisionsLogFile)

	prev, err := lastRecordHash(path)
	if err != nil {
		return err
	}

	record := &revisionRecord{Revision: rev, PrevHash: prev}
	hash, err := recordHash(record)
	if err != nil {
		return err
	}
	record.RecordHash = hash

	return appendLine(path, record)
}

func (s *FileStore) Revisions(name string) ([]*model.Revision, error) {
	if _, err := s.GetEntry(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.entryDir(name), revisionsLogFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open revision log: %w", err)
	}
	defer file.Close()

	var (
		revisions []*model.Revision
		prev      model.HashValue
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var record revisionRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"revision log for %s: malformed record %d", name, len(revisions)+1)
		}
		if record.PrevHash != prev {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"revision log for %s: broken chain at record %d", name, len(revisions)+1)
		}
		want, err := recordHash(&revisionRecord{Revision: record.Revision, PrevHash: record.PrevHash})
		if err != nil {
			return nil, err
		}
		if record.RecordHash != want {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"revision log for %s: checksum mismatch at record %d", name, len(revisions)+1)
		}
		if record.Revision.Sequence != int64(len(revisions))+1 {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"revision log for %s: sequence %d at record %d", name, record.Revision.Sequence, len(revisions)+1)
		}
		revisions = append(revisions, record.Revision)
		prev = record.RecordHash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan revision log: %w", err)
	}
	return revisions, nil
}

func (s *FileStore) AppendComment(c *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getEntryLocked(c.EntryName); err != nil {
		return err
	}

	record := &commentRecord{Comment: c}
	hash, err := recordHash(&commentRecord{Comment: c})
	if err != nil {
		return err
	}
	record.Checksum = hash

	path := filepath.Join(s.entryDir(c.EntryName), commentsLogFile)
	return appendLine(path, record)
}

func (s *FileStore) Comments(name string) ([]*model.Comment, error) {
	if _, err := s.GetEntry(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.entryDir(name), commentsLogFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open comment log: %w", err)
	}
	defer file.Close()

	var comments []*model.Comment
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var record commentRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"comment log for %s: malformed record %d", name, len(comments)+1)
		}
		want, err := recordHash(&commentRecord{Comment: record.Comment})
		if err != nil {
			return nil, err
		}
		if record.Checksum != want {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"comment log for %s: checksum mismatch at record %d", name, len(comments)+1)
		}
		comments = append(comments, record.Comment)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan comment log: %w", err)
	}
	return comments, nil
}

func (s *FileStore) Close() error { return nil }

// lastRecordHash scans the log for the hash of its final record.
func lastRecordHash(path string) (model.HashValue, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var last model.HashValue
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var record revisionRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return "", errclass.ErrStorageCorruption.WithMessagef("log %s: malformed trailing record", filepath.Base(path))
		}
		last = record.RecordHash
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan log: %w", err)
	}
	return last, nil
}

func recordHash(v any) (model.HashValue, error) {
	data, err := jsonutil.CanonicalMarshal(v)
	if err != nil {
		return "", fmt.Errorf("hash record: %w", err)
	}
	sum := sha256.Sum256(data)
	return model.HashValue(hex.EncodeToString(sum[:])), nil
}

func appendLine(path string, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}
